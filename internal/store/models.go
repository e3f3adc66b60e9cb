package store

import (
	"gorm.io/datatypes"

	"curriculum-kit/internal/domain"
)

// Position columns keep the snapshot order; ids alone carry no order.

type userRow struct {
	ID       string `gorm:"primaryKey;column:id"`
	Email    string `gorm:"column:email;not null;index"`
	Name     string `gorm:"column:name;not null"`
	JoinedAt string `gorm:"column:joined_at;not null"`
	Position int    `gorm:"column:position;not null;index"`
}

func (userRow) TableName() string { return "users" }

type curriculumRow struct {
	ID                string                      `gorm:"primaryKey;column:id"`
	UserID            string                      `gorm:"column:user_id;not null;index"`
	User              *userRow                    `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID"`
	Title             string                      `gorm:"column:title;not null"`
	TargetAudience    string                      `gorm:"column:target_audience"`
	SkillLevel        string                      `gorm:"column:skill_level;not null;index"`
	Industry          string                      `gorm:"column:industry;index"`
	Duration          string                      `gorm:"column:duration"`
	Objectives        datatypes.JSONSlice[string] `gorm:"column:objectives"`
	Description       string                      `gorm:"column:description"`
	Modules           []moduleRow                 `gorm:"constraint:OnDelete:CASCADE;foreignKey:CurriculumID;references:ID"`
	Outcomes          datatypes.JSONSlice[string] `gorm:"column:outcomes"`
	Assignments       datatypes.JSONSlice[string] `gorm:"column:assignments"`
	Tools             datatypes.JSONSlice[string] `gorm:"column:tools"`
	QualityScore      float64                     `gorm:"column:quality_score"`
	IndustryAlignment float64                     `gorm:"column:industry_alignment"`
	CreatedAtRaw      string                      `gorm:"column:created_at"`
	Position          int                         `gorm:"column:position;not null;index"`
	// ModulesNil distinguishes a nil module list from an empty one.
	ModulesNil bool `gorm:"column:modules_nil;not null"`
}

func (curriculumRow) TableName() string { return "curriculums" }

type moduleRow struct {
	Key            string                      `gorm:"primaryKey;column:module_key"`
	CurriculumID   string                      `gorm:"column:curriculum_id;not null;index"`
	Position       int                         `gorm:"column:position;not null"`
	Title          string                      `gorm:"column:title;not null"`
	Topics         datatypes.JSONSlice[string] `gorm:"column:topics"`
	PracticalTasks datatypes.JSONSlice[string] `gorm:"column:practical_tasks"`
}

func (moduleRow) TableName() string { return "curriculum_modules" }

func toUserRow(u domain.User, pos int) userRow {
	return userRow{ID: u.ID, Email: u.Email, Name: u.Name, JoinedAt: u.JoinedAt, Position: pos}
}

func (r userRow) toDomain() domain.User {
	return domain.User{ID: r.ID, Email: r.Email, Name: r.Name, JoinedAt: r.JoinedAt}
}

func toCurriculumRow(c domain.Curriculum, pos int) curriculumRow {
	row := curriculumRow{
		ID:                c.ID,
		UserID:            c.UserID,
		Title:             c.Title,
		TargetAudience:    c.TargetAudience,
		SkillLevel:        string(c.SkillLevel),
		Industry:          c.Industry,
		Duration:          c.Duration,
		Objectives:        datatypes.JSONSlice[string](c.Objectives),
		Description:       c.Description,
		Outcomes:          datatypes.JSONSlice[string](c.Outcomes),
		Assignments:       datatypes.JSONSlice[string](c.Assignments),
		Tools:             datatypes.JSONSlice[string](c.Tools),
		QualityScore:      c.QualityScore,
		IndustryAlignment: c.IndustryAlignment,
		CreatedAtRaw:      c.CreatedAt,
		Position:          pos,
		ModulesNil:        c.Modules == nil,
	}
	return row
}

func toModuleRows(c domain.Curriculum) []moduleRow {
	out := make([]moduleRow, 0, len(c.Modules))
	for i, m := range c.Modules {
		out = append(out, moduleRow{
			Key:            domain.ModuleKey(c.ID, i).String(),
			CurriculumID:   c.ID,
			Position:       i,
			Title:          m.Title,
			Topics:         datatypes.JSONSlice[string](m.Topics),
			PracticalTasks: datatypes.JSONSlice[string](m.PracticalTasks),
		})
	}
	return out
}

// toDomain expects Modules preloaded in position order.
func (r curriculumRow) toDomain() domain.Curriculum {
	c := domain.Curriculum{
		ID:                r.ID,
		UserID:            r.UserID,
		Title:             r.Title,
		TargetAudience:    r.TargetAudience,
		SkillLevel:        domain.SkillLevel(r.SkillLevel),
		Industry:          r.Industry,
		Duration:          r.Duration,
		Objectives:        []string(r.Objectives),
		Description:       r.Description,
		Outcomes:          []string(r.Outcomes),
		Assignments:       []string(r.Assignments),
		Tools:             []string(r.Tools),
		QualityScore:      r.QualityScore,
		IndustryAlignment: r.IndustryAlignment,
		CreatedAt:         r.CreatedAtRaw,
	}
	if !r.ModulesNil {
		c.Modules = make([]domain.Module, 0, len(r.Modules))
		for _, m := range r.Modules {
			c.Modules = append(c.Modules, domain.Module{
				Title:          m.Title,
				Topics:         []string(m.Topics),
				PracticalTasks: []string(m.PracticalTasks),
			})
		}
	}
	return c
}
