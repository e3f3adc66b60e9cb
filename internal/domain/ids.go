package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// moduleNamespace scopes ModuleKey values so they never collide with random ids.
var moduleNamespace = uuid.MustParse("6f1c2f52-8d6e-4c1b-9a55-0b7f3f3c9e21")

// Timestamp formats t the way constructors stamp joinedAt / createdAt.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// NewUser builds a User with a fresh id. Email is lowercased and trimmed.
func NewUser(email, name string, now time.Time) User {
	return User{
		ID:       uuid.NewString(),
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Name:     strings.TrimSpace(name),
		JoinedAt: Timestamp(now),
	}
}

// NewCurriculum builds an empty Curriculum owned by userID. Lists start empty, not nil.
func NewCurriculum(userID, title string, level SkillLevel, now time.Time) Curriculum {
	return Curriculum{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       strings.TrimSpace(title),
		SkillLevel:  level,
		Objectives:  []string{},
		Modules:     []Module{},
		Outcomes:    []string{},
		Assignments: []string{},
		Tools:       []string{},
		CreatedAt:   Timestamp(now),
	}
}

// ModuleKey is the stable identity of the module at position index of a curriculum.
// The same inputs always give the same key; renaming a module keeps its key.
func ModuleKey(curriculumID string, index int) uuid.UUID {
	return uuid.NewSHA1(moduleNamespace, []byte(curriculumID+"/"+strconv.Itoa(index)))
}

// ModuleKeys returns one key per module, in module order.
func (c Curriculum) ModuleKeys() []uuid.UUID {
	out := make([]uuid.UUID, len(c.Modules))
	for i := range c.Modules {
		out[i] = ModuleKey(c.ID, i)
	}
	return out
}
