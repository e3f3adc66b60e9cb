package report

import "curriculum-kit/internal/domain"

type Summary struct {
	Users        int                       `json:"users"`
	Curriculums  int                       `json:"curriculums"`
	Modules      int                       `json:"modules"`
	BySkillLevel map[domain.SkillLevel]int `json:"bySkillLevel"`
	// Authors counts distinct userIds referenced by curriculums.
	Authors int `json:"authors"`
}

func Summarize(sc domain.SavedContent) Summary {
	s := Summary{
		Users:        len(sc.Users),
		Curriculums:  len(sc.Curriculums),
		BySkillLevel: make(map[domain.SkillLevel]int, 3),
	}
	for _, l := range domain.SkillLevels() {
		s.BySkillLevel[l] = 0
	}

	authors := map[string]bool{}
	for _, c := range sc.Curriculums {
		s.Modules += len(c.Modules)
		s.BySkillLevel[c.SkillLevel]++
		authors[c.UserID] = true
	}
	s.Authors = len(authors)
	return s
}
