package validate

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"curriculum-kit/internal/domain"
)

func User(u domain.User) error {
	var errs []error
	req := func(field, v string) {
		if blank(v) {
			errs = append(errs, fieldErr("user", u.ID, field, ErrMissingField))
		}
	}
	req("id", u.ID)
	req("email", u.Email)
	req("name", u.Name)
	req("joinedAt", u.JoinedAt)
	return errors.Join(errs...)
}

func Curriculum(c domain.Curriculum) error {
	var errs []error
	req := func(field, v string) {
		if blank(v) {
			errs = append(errs, fieldErr("curriculum", c.ID, field, ErrMissingField))
		}
	}
	list := func(field string, v []string) {
		if v == nil {
			errs = append(errs, fieldErr("curriculum", c.ID, field, ErrMissingField))
		}
	}
	num := func(field string, v float64) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, fieldErr("curriculum", c.ID, field, ErrInvalidNumber))
		}
	}

	req("id", c.ID)
	req("userId", c.UserID)
	req("title", c.Title)
	req("targetAudience", c.TargetAudience)
	switch {
	case c.SkillLevel == "":
		errs = append(errs, fieldErr("curriculum", c.ID, "skillLevel", ErrMissingField))
	case !c.SkillLevel.Valid():
		errs = append(errs, fieldErr("curriculum", c.ID, "skillLevel",
			fmt.Errorf("%w: %q", ErrInvalidEnum, string(c.SkillLevel))))
	}
	req("industry", c.Industry)
	req("duration", c.Duration)
	list("objectives", c.Objectives)
	req("description", c.Description)
	if c.Modules == nil {
		errs = append(errs, fieldErr("curriculum", c.ID, "modules", ErrMissingField))
	}
	for i, m := range c.Modules {
		if err := Module(m); err != nil {
			errs = append(errs, fmt.Errorf("curriculum[%s].modules[%d]: %w", c.ID, i, err))
		}
	}
	list("outcomes", c.Outcomes)
	list("assignments", c.Assignments)
	list("tools", c.Tools)
	num("qualityScore", c.QualityScore)
	num("industryAlignment", c.IndustryAlignment)
	req("createdAt", c.CreatedAt)

	return errors.Join(errs...)
}

func Module(m domain.Module) error {
	var errs []error
	if blank(m.Title) {
		errs = append(errs, fieldErr("module", "", "title", ErrMissingField))
	}
	if m.Topics == nil {
		errs = append(errs, fieldErr("module", m.Title, "topics", ErrMissingField))
	}
	if m.PracticalTasks == nil {
		errs = append(errs, fieldErr("module", m.Title, "practicalTasks", ErrMissingField))
	}
	return errors.Join(errs...)
}

func Slide(s domain.Slide) error {
	var errs []error
	if blank(s.Title) {
		errs = append(errs, fieldErr("slide", "", "title", ErrMissingField))
	}
	if s.Bullets == nil {
		errs = append(errs, fieldErr("slide", s.Title, "bullets", ErrMissingField))
	}
	if blank(s.SpeakerNotes) {
		errs = append(errs, fieldErr("slide", s.Title, "speakerNotes", ErrMissingField))
	}
	return errors.Join(errs...)
}

// TeachingNote requires every field except CaseStudy. A present but blank case study is rejected.
func TeachingNote(n domain.TeachingNote) error {
	var errs []error
	if blank(n.ModuleTitle) {
		errs = append(errs, fieldErr("teachingNote", "", "moduleTitle", ErrMissingField))
	}
	if blank(n.Content) {
		errs = append(errs, fieldErr("teachingNote", n.ModuleTitle, "content", ErrMissingField))
	}
	if n.Examples == nil {
		errs = append(errs, fieldErr("teachingNote", n.ModuleTitle, "examples", ErrMissingField))
	}
	if n.CaseStudy != nil && blank(*n.CaseStudy) {
		errs = append(errs, fieldErr("teachingNote", n.ModuleTitle, "caseStudy", ErrMissingField))
	}
	return errors.Join(errs...)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
