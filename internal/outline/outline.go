// Package outline groups slides and teaching notes under the modules they describe.
//
// Slides and notes carry only a module title. Association is by trimmed, case-sensitive
// title equality; every section is also tagged with the module's ModuleKey so callers can
// hold on to a reference that survives a rename.
package outline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"curriculum-kit/internal/domain"
)

var (
	// ErrAmbiguousTitle means two modules of one curriculum share a title.
	ErrAmbiguousTitle = errors.New("outline: ambiguous module title")
	ErrUnknownModule  = errors.New("outline: unknown module")
)

type Section struct {
	Key    uuid.UUID
	Index  int
	Module domain.Module
	Slides []domain.Slide
	Notes  []domain.TeachingNote
}

// Orphans are slides and notes whose title matches no module.
type Orphans struct {
	Slides []domain.Slide
	Notes  []domain.TeachingNote
}

func (o Orphans) Empty() bool {
	return len(o.Slides) == 0 && len(o.Notes) == 0
}

type Outline struct {
	CurriculumID string
	Sections     []Section
	Orphans      Orphans
}

// Section returns the section with the given key.
func (o Outline) Section(key uuid.UUID) (Section, bool) {
	for _, s := range o.Sections {
		if s.Key == key {
			return s, true
		}
	}
	return Section{}, false
}

// Attach builds the outline of c. Input order is kept inside every section.
func Attach(c domain.Curriculum, slides []domain.Slide, notes []domain.TeachingNote) (Outline, error) {
	index, err := titleIndex(c)
	if err != nil {
		return Outline{}, err
	}

	out := Outline{
		CurriculumID: c.ID,
		Sections:     make([]Section, len(c.Modules)),
	}
	for i, m := range c.Modules {
		out.Sections[i] = Section{
			Key:    domain.ModuleKey(c.ID, i),
			Index:  i,
			Module: m,
			Slides: []domain.Slide{},
			Notes:  []domain.TeachingNote{},
		}
	}

	for _, s := range slides {
		i, ok := index[key(s.Title)]
		if !ok {
			out.Orphans.Slides = append(out.Orphans.Slides, s)
			continue
		}
		out.Sections[i].Slides = append(out.Sections[i].Slides, s)
	}
	for _, n := range notes {
		i, ok := index[key(n.ModuleTitle)]
		if !ok {
			out.Orphans.Notes = append(out.Orphans.Notes, n)
			continue
		}
		out.Sections[i].Notes = append(out.Sections[i].Notes, n)
	}

	return out, nil
}

// RenameModule retitles a module and rewrites every slide and note that pointed at it,
// so the title association is not broken by the rename. Slices are updated in place.
func RenameModule(c *domain.Curriculum, slides []domain.Slide, notes []domain.TeachingNote, from, to string) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("outline: rename %q: empty title", from)
	}
	index, err := titleIndex(*c)
	if err != nil {
		return err
	}
	i, ok := index[key(from)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownModule, from)
	}
	if j, clash := index[key(to)]; clash && j != i {
		return fmt.Errorf("%w: %q", ErrAmbiguousTitle, to)
	}

	c.Modules[i].Title = to
	for k := range slides {
		if key(slides[k].Title) == key(from) {
			slides[k].Title = to
		}
	}
	for k := range notes {
		if key(notes[k].ModuleTitle) == key(from) {
			notes[k].ModuleTitle = to
		}
	}
	return nil
}

func titleIndex(c domain.Curriculum) (map[string]int, error) {
	index := make(map[string]int, len(c.Modules))
	for i, m := range c.Modules {
		k := key(m.Title)
		if _, dup := index[k]; dup {
			return nil, fmt.Errorf("%w: %q in curriculum %s", ErrAmbiguousTitle, m.Title, c.ID)
		}
		index[k] = i
	}
	return index, nil
}

func key(title string) string {
	return strings.TrimSpace(title)
}
