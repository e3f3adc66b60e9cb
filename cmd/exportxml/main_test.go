package main

import (
	"errors"
	"reflect"
	"testing"

	"curriculum-kit/internal/domain"
)

func TestParseLevels(t *testing.T) {
	testCases := []struct {
		input    string
		expected map[domain.SkillLevel]bool
	}{
		{"", nil},
		{"   ", nil},
		{"beginner", map[domain.SkillLevel]bool{domain.Beginner: true}},
		{"Beginner, ADVANCED,", map[domain.SkillLevel]bool{domain.Beginner: true, domain.Advanced: true}},
	}

	for _, tc := range testCases {
		got, err := parseLevels(tc.input)
		if err != nil {
			t.Errorf("parseLevels(%q) error = %v", tc.input, err)
			continue
		}
		if !reflect.DeepEqual(got, tc.expected) {
			t.Errorf("parseLevels(%q) = %v, want %v", tc.input, got, tc.expected)
		}
	}

	if _, err := parseLevels("beginner,expert"); !errors.Is(err, domain.ErrInvalidSkillLevel) {
		t.Errorf("Expected ErrInvalidSkillLevel, got %v", err)
	}
}

func TestFilterByLevel(t *testing.T) {
	sc := domain.SavedContent{
		Users: []domain.User{{ID: "u1"}},
		Curriculums: []domain.Curriculum{
			{ID: "c1", SkillLevel: domain.Beginner},
			{ID: "c2", SkillLevel: domain.Advanced},
			{ID: "c3", SkillLevel: domain.Beginner},
		},
	}

	got := filterByLevel(sc, map[domain.SkillLevel]bool{domain.Beginner: true})
	if len(got.Curriculums) != 2 || got.Curriculums[0].ID != "c1" || got.Curriculums[1].ID != "c3" {
		t.Errorf("Expected [c1 c3], got %+v", got.Curriculums)
	}
	if len(got.Users) != 1 {
		t.Errorf("Expected users to be kept, got %+v", got.Users)
	}

	if all := filterByLevel(sc, nil); len(all.Curriculums) != 3 {
		t.Errorf("Expected nil filter to keep everything, got %d", len(all.Curriculums))
	}
}
