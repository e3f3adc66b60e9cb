package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// SkillLevel is the closed set of audience levels a curriculum can target.
type SkillLevel string

const (
	Beginner     SkillLevel = "Beginner"
	Intermediate SkillLevel = "Intermediate"
	Advanced     SkillLevel = "Advanced"
)

// ErrInvalidSkillLevel is returned when a value outside the three levels is decoded or parsed.
var ErrInvalidSkillLevel = errors.New("invalid skill level")

// SkillLevels lists every level in ascending order.
func SkillLevels() []SkillLevel {
	return []SkillLevel{Beginner, Intermediate, Advanced}
}

func (l SkillLevel) Valid() bool {
	switch l {
	case Beginner, Intermediate, Advanced:
		return true
	}
	return false
}

func (l SkillLevel) String() string { return string(l) }

// ParseSkillLevel accepts any casing ("beginner", " ADVANCED ") and returns the canonical value.
func ParseSkillLevel(s string) (SkillLevel, error) {
	v := strings.TrimSpace(s)
	for _, l := range SkillLevels() {
		if strings.EqualFold(v, string(l)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSkillLevel, s)
}

// UnmarshalJSON only accepts the canonical spelling, so encoded data never drifts.
func (l *SkillLevel) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("skillLevel: %w", err)
	}
	v := SkillLevel(s)
	if !v.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSkillLevel, s)
	}
	*l = v
	return nil
}

func (l *SkillLevel) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("skillLevel: %w", err)
	}
	v := SkillLevel(s)
	if !v.Valid() {
		return fmt.Errorf("%w: %q (line %d)", ErrInvalidSkillLevel, s, node.Line)
	}
	*l = v
	return nil
}
