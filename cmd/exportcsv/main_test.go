package main

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"curriculum-kit/internal/domain"
)

func TestMissingAuthors(t *testing.T) {
	sc := domain.SavedContent{
		Users: []domain.User{{ID: "u1"}},
		Curriculums: []domain.Curriculum{
			{ID: "c1", UserID: "u1"},
			{ID: "c2", UserID: "ghost"},
			{ID: "c3", UserID: ""},
		},
	}

	got := missingAuthors(sc)
	if !reflect.DeepEqual(got, []string{"c2", "c3"}) {
		t.Errorf("Expected [c2 c3], got %v", got)
	}
	if got := missingAuthors(domain.SavedContent{}); len(got) != 0 {
		t.Errorf("Expected no ids, got %v", got)
	}
}

func TestWriteCSVCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.csv")
	sc := domain.SavedContent{Curriculums: []domain.Curriculum{{ID: "c1", Title: "Go", SkillLevel: domain.Beginner}}}

	if err := writeCSV(path, sc); err != nil {
		t.Fatalf("writeCSV() error = %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(b), "\r\n"), "\r\n")
	if len(lines) != 2 {
		t.Fatalf("Expected header + 1 row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[1], "c1,Go,,Beginner,") {
		t.Errorf("Unexpected row %q", lines[1])
	}
}
