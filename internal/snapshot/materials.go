package snapshot

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"curriculum-kit/internal/domain"
)

// Materials carries the slides and teaching notes generated for one curriculum.
// They reference modules by title only; see package outline.
type Materials struct {
	CurriculumID  string                `json:"curriculumId" yaml:"curriculumId"`
	Slides        []domain.Slide        `json:"slides" yaml:"slides"`
	TeachingNotes []domain.TeachingNote `json:"teachingNotes" yaml:"teachingNotes"`
}

func EncodeMaterials(w io.Writer, m Materials, f Format) error {
	return encodeInto(w, f, m)
}

func DecodeMaterials(r io.Reader, f Format) (Materials, error) {
	var m Materials
	if err := decodeInto(r, f, &m); err != nil {
		return Materials{}, err
	}
	return m, nil
}

func SaveMaterialsFile(path string, m Materials) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := EncodeMaterials(&buf, m, f); err != nil {
		return err
	}
	if err := writeFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("snapshot: write %s: %w", path, err)
	}
	return nil
}

func LoadMaterialsFile(path string) (Materials, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return Materials{}, err
	}
	fh, err := os.Open(path)
	if err != nil {
		return Materials{}, fmt.Errorf("snapshot: open %s: %w", path, err)
	}
	defer fh.Close()
	return DecodeMaterials(fh, f)
}
