package report

import (
	"reflect"
	"testing"

	"curriculum-kit/internal/domain"
)

func TestPick(t *testing.T) {
	c := domain.Curriculum{
		ID:         "c1",
		Title:      "Go for Backend Teams",
		SkillLevel: domain.Advanced,
		Tools:      []string{"go"},
	}

	testCases := []struct {
		name     string
		input    any
		keys     []string
		expected map[string]any
	}{
		{
			name:  "Pick from curriculum",
			input: c,
			keys:  []string{"id", "skillLevel", "tools"},
			expected: map[string]any{
				"id":         "c1",
				"skillLevel": "Advanced",
				"tools":      []any{"go"},
			},
		},
		{
			name:     "Pick from map",
			input:    map[string]any{"name": "A", "age": 25},
			keys:     []string{"age"},
			expected: map[string]any{"age": float64(25)},
		},
		{
			name:     "Missing keys are skipped",
			input:    c,
			keys:     []string{"nope"},
			expected: map[string]any{},
		},
		{
			name:     "Pick from nil",
			input:    nil,
			keys:     []string{"id"},
			expected: map[string]any{},
		},
		{
			name:     "Unencodable input",
			input:    make(chan int),
			keys:     []string{"id"},
			expected: map[string]any{},
		},
		{
			name:     "Non-object input",
			input:    []int{1, 2},
			keys:     []string{"id"},
			expected: map[string]any{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Pick(tc.input, tc.keys...)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Pick() = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestPickEach(t *testing.T) {
	users := []domain.User{{ID: "u1", Name: "A"}, {ID: "u2", Name: "B"}}
	got := PickEach(users, "id")
	want := []map[string]any{{"id": "u1"}, {"id": "u2"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestSummarize(t *testing.T) {
	sc := domain.SavedContent{
		Users: []domain.User{{ID: "u1"}, {ID: "u2"}},
		Curriculums: []domain.Curriculum{
			{ID: "c1", UserID: "u1", SkillLevel: domain.Beginner, Modules: []domain.Module{{Title: "M1"}, {Title: "M2"}}},
			{ID: "c2", UserID: "u1", SkillLevel: domain.Beginner, Modules: []domain.Module{{Title: "M1"}}},
			{ID: "c3", UserID: "u2", SkillLevel: domain.Advanced},
		},
	}

	s := Summarize(sc)
	if s.Users != 2 || s.Curriculums != 3 || s.Modules != 3 || s.Authors != 2 {
		t.Errorf("Unexpected summary %+v", s)
	}
	want := map[domain.SkillLevel]int{domain.Beginner: 2, domain.Intermediate: 0, domain.Advanced: 1}
	if !reflect.DeepEqual(s.BySkillLevel, want) {
		t.Errorf("Expected %v, got %v", want, s.BySkillLevel)
	}
}
