package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"curriculum-kit/internal/domain"
)

// Catalog CSV layout. Keep header order EXACT; downstream imports map by position.
var curriculumHeader = []string{
	"CURRICULUM_ID",
	"TITLE",
	"DESCRIPTION",
	"SKILL_LEVEL",
	"TARGET_AUDIENCE",
	"INDUSTRY",
	"DURATION",
	"MODULE_COUNT",
	"MODULES",
	"OBJECTIVES",
	"OUTCOMES",
	"ASSIGNMENTS",
	"TOOLS",
	"QUALITY_SCORE",
	"INDUSTRY_ALIGNMENT",
	"AUTHOR_ID",
	"AUTHOR_NAME",
	"AUTHOR_EMAIL",
	"CREATED_AT",
}

const listSep = " | "

// WriteCurriculumCSV writes one row per curriculum, in snapshot order.
// Author columns stay empty when userId does not resolve.
func WriteCurriculumCSV(w io.Writer, sc domain.SavedContent) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(curriculumHeader); err != nil {
		return err
	}

	users := make(map[string]domain.User, len(sc.Users))
	for _, u := range sc.Users {
		users[u.ID] = u
	}

	for _, c := range sc.Curriculums {
		if err := cw.Write(toCurriculumRow(c, users[c.UserID])); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func toCurriculumRow(c domain.Curriculum, author domain.User) []string {
	titles := make([]string, 0, len(c.Modules))
	for _, m := range c.Modules {
		titles = append(titles, m.Title)
	}

	return []string{
		c.ID,                               // CURRICULUM_ID
		oneLine(c.Title),                   // TITLE
		oneLine(c.Description),             // DESCRIPTION
		string(c.SkillLevel),               // SKILL_LEVEL
		oneLine(c.TargetAudience),          // TARGET_AUDIENCE
		oneLine(c.Industry),                // INDUSTRY
		oneLine(c.Duration),                // DURATION
		strconv.Itoa(len(c.Modules)),       // MODULE_COUNT
		joinList(titles),                   // MODULES
		joinList(c.Objectives),             // OBJECTIVES
		joinList(c.Outcomes),               // OUTCOMES
		joinList(c.Assignments),            // ASSIGNMENTS
		joinList(c.Tools),                  // TOOLS
		floatToString(c.QualityScore),      // QUALITY_SCORE
		floatToString(c.IndustryAlignment), // INDUSTRY_ALIGNMENT
		author.ID,                          // AUTHOR_ID
		oneLine(author.Name),               // AUTHOR_NAME
		author.Email,                       // AUTHOR_EMAIL
		c.CreatedAt,                        // CREATED_AT
	}
}

// joinList keeps order, drops blanks and flattens newlines.
func joinList(in []string) string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = oneLine(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return strings.Join(out, listSep)
}

func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}

func floatToString(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
