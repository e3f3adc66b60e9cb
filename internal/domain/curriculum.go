package domain

import "strings"

// User is an account holder. JoinedAt is an opaque timestamp string and is never reparsed.
type User struct {
	ID       string `json:"id" yaml:"id"`
	Email    string `json:"email" yaml:"email"`
	Name     string `json:"name" yaml:"name"`
	JoinedAt string `json:"joinedAt" yaml:"joinedAt"`
}

// Curriculum is a generated learning plan owned by a User (UserID -> User.ID).
// All list fields are ordered.
type Curriculum struct {
	ID                string     `json:"id" yaml:"id"`
	UserID            string     `json:"userId" yaml:"userId"`
	Title             string     `json:"title" yaml:"title"`
	TargetAudience    string     `json:"targetAudience" yaml:"targetAudience"`
	SkillLevel        SkillLevel `json:"skillLevel" yaml:"skillLevel"`
	Industry          string     `json:"industry" yaml:"industry"`
	Duration          string     `json:"duration" yaml:"duration"`
	Objectives        []string   `json:"objectives" yaml:"objectives"`
	Description       string     `json:"description" yaml:"description"`
	Modules           []Module   `json:"modules" yaml:"modules"`
	Outcomes          []string   `json:"outcomes" yaml:"outcomes"`
	Assignments       []string   `json:"assignments" yaml:"assignments"`
	Tools             []string   `json:"tools" yaml:"tools"`
	QualityScore      float64    `json:"qualityScore" yaml:"qualityScore"`
	IndustryAlignment float64    `json:"industryAlignment" yaml:"industryAlignment"`
	CreatedAt         string     `json:"createdAt" yaml:"createdAt"`
}

// Module is a unit of a Curriculum. It has no identity of its own on the wire;
// see ModuleKey for the in-process identity.
type Module struct {
	Title          string   `json:"title" yaml:"title"`
	Topics         []string `json:"topics" yaml:"topics"`
	PracticalTasks []string `json:"practicalTasks" yaml:"practicalTasks"`
}

// Slide belongs to the Module whose title equals Slide.Title.
type Slide struct {
	Title        string   `json:"title" yaml:"title"`
	Bullets      []string `json:"bullets" yaml:"bullets"`
	SpeakerNotes string   `json:"speakerNotes" yaml:"speakerNotes"`
}

// TeachingNote is instructor material for the Module named by ModuleTitle.
// CaseStudy is the only optional field in the model.
type TeachingNote struct {
	ModuleTitle string   `json:"moduleTitle" yaml:"moduleTitle"`
	Content     string   `json:"content" yaml:"content"`
	Examples    []string `json:"examples" yaml:"examples"`
	CaseStudy   *string  `json:"caseStudy,omitempty" yaml:"caseStudy,omitempty"`
}

// SavedContent is the bulk save/load envelope.
type SavedContent struct {
	Curriculums []Curriculum `json:"curriculums" yaml:"curriculums"`
	Users       []User       `json:"users" yaml:"users"`
}

// HasCaseStudy reports whether a case study is attached.
func (n TeachingNote) HasCaseStudy() bool {
	return n.CaseStudy != nil
}

// ModuleByTitle returns the first module whose trimmed title matches.
func (c Curriculum) ModuleByTitle(title string) (Module, int, bool) {
	t := strings.TrimSpace(title)
	for i, m := range c.Modules {
		if strings.TrimSpace(m.Title) == t {
			return m, i, true
		}
	}
	return Module{}, -1, false
}

func (sc SavedContent) UserByID(id string) (User, bool) {
	for _, u := range sc.Users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

func (sc SavedContent) CurriculumByID(id string) (Curriculum, bool) {
	for _, c := range sc.Curriculums {
		if c.ID == id {
			return c, true
		}
	}
	return Curriculum{}, false
}

// CurriculumsByUser keeps the snapshot order.
func (sc SavedContent) CurriculumsByUser(userID string) []Curriculum {
	out := make([]Curriculum, 0)
	for _, c := range sc.Curriculums {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out
}

// Normalize replaces nil lists with empty ones, recursively.
func (sc SavedContent) Normalize() SavedContent {
	out := SavedContent{
		Curriculums: make([]Curriculum, 0, len(sc.Curriculums)),
		Users:       make([]User, 0, len(sc.Users)),
	}
	for _, c := range sc.Curriculums {
		out.Curriculums = append(out.Curriculums, c.Normalize())
	}
	out.Users = append(out.Users, sc.Users...)
	return out
}

func (c Curriculum) Normalize() Curriculum {
	c.Objectives = orEmpty(c.Objectives)
	c.Outcomes = orEmpty(c.Outcomes)
	c.Assignments = orEmpty(c.Assignments)
	c.Tools = orEmpty(c.Tools)

	mods := make([]Module, 0, len(c.Modules))
	for _, m := range c.Modules {
		mods = append(mods, m.Normalize())
	}
	c.Modules = mods
	return c
}

func (m Module) Normalize() Module {
	m.Topics = orEmpty(m.Topics)
	m.PracticalTasks = orEmpty(m.PracticalTasks)
	return m
}

func (s Slide) Normalize() Slide {
	s.Bullets = orEmpty(s.Bullets)
	return s
}

func (n TeachingNote) Normalize() TeachingNote {
	n.Examples = orEmpty(n.Examples)
	return n
}

func orEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
