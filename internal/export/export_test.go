package export

import (
	"bytes"
	"encoding/csv"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"curriculum-kit/internal/domain"
)

func sampleContent() domain.SavedContent {
	return domain.SavedContent{
		Users: []domain.User{{ID: "u1", Email: "a@b.com", Name: "Ada Lovelace", JoinedAt: "2024-01-01"}},
		Curriculums: []domain.Curriculum{
			{
				ID:             "c1",
				UserID:         "u1",
				Title:          "Go for Backend Teams",
				TargetAudience: "Backend developers",
				SkillLevel:     domain.Intermediate,
				Industry:       "Software",
				Duration:       "6 weeks",
				Objectives:     []string{"Write idiomatic Go", " ", "Ship, a service"},
				Description:    "Line one\nline two",
				Modules: []domain.Module{
					{Title: "M1", Topics: []string{"t1"}, PracticalTasks: []string{"p1"}},
					{Title: "M2", Topics: []string{}, PracticalTasks: []string{}},
				},
				Outcomes:          []string{},
				Assignments:       []string{"Build a CLI"},
				Tools:             []string{"go", "sqlite", "go"},
				QualityScore:      0.92,
				IndustryAlignment: 80,
				CreatedAt:         "2024-01-02",
			},
			{
				ID:         "c2",
				UserID:     "ghost",
				Title:      "Orphan",
				SkillLevel: domain.Advanced,
			},
		},
	}
}

func TestWriteCurriculumCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCurriculumCSV(&buf, sampleContent()); err != nil {
		t.Fatalf("WriteCurriculumCSV() error = %v", err)
	}

	if !strings.Contains(buf.String(), "\r\n") {
		t.Error("Expected CRLF line endings")
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d", len(rows))
	}
	if strings.Join(rows[0], ",") != strings.Join(curriculumHeader, ",") {
		t.Errorf("Unexpected header %v", rows[0])
	}

	col := func(name string) int {
		for i, h := range curriculumHeader {
			if h == name {
				return i
			}
		}
		t.Fatalf("unknown column %s", name)
		return -1
	}

	r := rows[1]
	testCases := []struct {
		column   string
		expected string
	}{
		{"CURRICULUM_ID", "c1"},
		{"DESCRIPTION", "Line one line two"},
		{"SKILL_LEVEL", "Intermediate"},
		{"MODULE_COUNT", "2"},
		{"MODULES", "M1 | M2"},
		{"OBJECTIVES", "Write idiomatic Go | Ship, a service"},
		{"OUTCOMES", ""},
		{"TOOLS", "go | sqlite | go"},
		{"QUALITY_SCORE", "0.92"},
		{"INDUSTRY_ALIGNMENT", "80"},
		{"AUTHOR_NAME", "Ada Lovelace"},
		{"AUTHOR_EMAIL", "a@b.com"},
		{"CREATED_AT", "2024-01-02"},
	}
	for _, tc := range testCases {
		if got := r[col(tc.column)]; got != tc.expected {
			t.Errorf("%s = %q, want %q", tc.column, got, tc.expected)
		}
	}

	if rows[2][col("AUTHOR_NAME")] != "" || rows[2][col("AUTHOR_ID")] != "" {
		t.Errorf("Expected empty author for dangling userId, got %v", rows[2])
	}
}

func TestWriteCurriculumXML(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCurriculumXML(&buf, sampleContent(), XMLConfig{Operation: "upsert", Provider: "Curriculum Studio"})
	if err != nil {
		t.Fatalf("WriteCurriculumXML() error = %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, xml.Header) {
		t.Error("Expected XML header")
	}

	var parsed xmlCurriculumList
	if err := xml.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("xml.Unmarshal() error = %v", err)
	}
	if len(parsed.Curriculums) != 2 {
		t.Fatalf("Expected 2 curriculums, got %d", len(parsed.Curriculums))
	}

	c := parsed.Curriculums[0]
	if c.Operation != "upsert" {
		t.Errorf("Expected operation 'upsert', got %q", c.Operation)
	}
	if c.Difficulty != "intermediate" {
		t.Errorf("Expected difficulty 'intermediate', got %q", c.Difficulty)
	}
	if c.Author == nil || c.Author.ID != "u1" || c.Author.Name != "Ada Lovelace" {
		t.Errorf("Unexpected author %+v", c.Author)
	}
	if c.Provider != "Curriculum Studio" {
		t.Errorf("Expected provider, got %q", c.Provider)
	}
	if c.Modules == nil || len(c.Modules.Modules) != 2 {
		t.Fatalf("Expected 2 modules, got %+v", c.Modules)
	}
	m1 := c.Modules.Modules[0]
	if m1.Position != 1 || m1.Title != "M1" || m1.Topics == nil || m1.Topics.Topics[0] != "t1" {
		t.Errorf("Unexpected first module %+v", m1)
	}
	if c.Modules.Modules[1].Topics != nil {
		t.Error("Expected empty topics to be omitted")
	}
	if c.Tools == nil || len(c.Tools.Tools) != 2 {
		t.Errorf("Expected deduplicated tools, got %+v", c.Tools)
	}
	if c.Outcomes != nil {
		t.Error("Expected empty outcomes to be omitted")
	}
	if len(c.Objectives.Items) != 2 {
		t.Errorf("Expected 2 objectives, got %v", c.Objectives.Items)
	}

	if parsed.Curriculums[1].Author != nil {
		t.Error("Expected no author for dangling userId")
	}
	if parsed.Curriculums[1].Difficulty != "advanced" {
		t.Errorf("Expected 'advanced', got %q", parsed.Curriculums[1].Difficulty)
	}
}

func TestWriteCurriculumXMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.xml")
	if err := WriteCurriculumXMLFile(path, sampleContent(), XMLConfig{}); err != nil {
		t.Fatalf("WriteCurriculumXMLFile() error = %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if strings.Contains(string(b), "operation=") {
		t.Error("Expected no operation attribute when not configured")
	}
	if !strings.Contains(string(b), "<curriculum_id>c1</curriculum_id>") {
		t.Error("Expected curriculum id in output")
	}
}

func TestFloatToString(t *testing.T) {
	testCases := []struct {
		input    float64
		expected string
	}{
		{1.5, "1.5"},
		{2.0, "2"},
		{0.0, "0"},
		{3.14159, "3.14159"},
	}

	for _, tc := range testCases {
		if got := floatToString(tc.input); got != tc.expected {
			t.Errorf("floatToString(%f) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestCompactStrings(t *testing.T) {
	got := compactStrings([]string{" b", "a", "", "b", "a "})
	if strings.Join(got, ",") != "b,a" {
		t.Errorf("compactStrings() = %v, want [b a]", got)
	}
}
