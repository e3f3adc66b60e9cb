package snapshot

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"curriculum-kit/internal/domain"
)

func sampleMaterials() Materials {
	cs := "Acme moves billing to Go"
	return Materials{
		CurriculumID: "c1",
		Slides: []domain.Slide{
			{Title: "M1", Bullets: []string{"b1", "b2"}, SpeakerNotes: "say hi"},
		},
		TeachingNotes: []domain.TeachingNote{
			{ModuleTitle: "M1", Content: "c", Examples: []string{"e1"}, CaseStudy: &cs},
			{ModuleTitle: "M2", Content: "d", Examples: []string{}},
		},
	}
}

func TestMaterialsRoundTrip(t *testing.T) {
	want := sampleMaterials()
	for _, f := range []Format{JSON, JSONBrotli, YAML} {
		path := filepath.Join(t.TempDir(), "materials"+f.Extension())
		if err := SaveMaterialsFile(path, want); err != nil {
			t.Fatalf("SaveMaterialsFile(%s) error = %v", f, err)
		}
		got, err := LoadMaterialsFile(path)
		if err != nil {
			t.Fatalf("LoadMaterialsFile(%s) error = %v", f, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%s: expected %+v, got %+v", f, want, got)
		}
	}
}

func TestMaterialsRoundTripNilLists(t *testing.T) {
	want := Materials{
		CurriculumID:  "c1",
		Slides:        []domain.Slide{{Title: "M1", Bullets: nil}},
		TeachingNotes: nil,
	}
	for _, f := range []Format{JSON, YAML} {
		var buf bytes.Buffer
		if err := EncodeMaterials(&buf, want, f); err != nil {
			t.Fatalf("EncodeMaterials(%s) error = %v", f, err)
		}
		got, err := DecodeMaterials(&buf, f)
		if err != nil {
			t.Fatalf("DecodeMaterials(%s) error = %v", f, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%s: expected %#v, got %#v", f, want, got)
		}
	}
}

func TestMaterialsCaseStudyOmitted(t *testing.T) {
	var buf bytes.Buffer
	m := Materials{CurriculumID: "c1", Slides: []domain.Slide{}, TeachingNotes: []domain.TeachingNote{
		{ModuleTitle: "M1", Content: "c", Examples: []string{}},
	}}
	if err := EncodeMaterials(&buf, m, JSON); err != nil {
		t.Fatalf("EncodeMaterials() error = %v", err)
	}
	if strings.Contains(buf.String(), "caseStudy") {
		t.Errorf("Expected caseStudy to be omitted, got %s", buf.String())
	}
}

func TestDecodeMaterialsStrict(t *testing.T) {
	_, err := DecodeMaterials(strings.NewReader(`{"curriculumId":"c1","slides":[],"teachingNotes":[],"x":1}`), JSON)
	if err == nil {
		t.Error("Expected unknown field to be rejected")
	}
}
