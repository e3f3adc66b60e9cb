package export

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"curriculum-kit/internal/domain"
)

/*
Catalog feed layout:

<Curriculum_List>
  <Curriculum operation="upsert">
    <curriculum_id>c1</curriculum_id>
    <title>...</title>
    <description>...</description>
    <difficulty>intermediate</difficulty>
    <target_audience>...</target_audience>
    <industry>...</industry>
    <duration>6 weeks</duration>
    <provider>...</provider>
    <author id="u1">A</author>
    <created_ts>2024-01-01</created_ts>
    <quality_score>0.92</quality_score>
    <industry_alignment>0.8</industry_alignment>
    <objectives><item>...</item></objectives>
    <modules>
      <module position="1">
        <title>M1</title>
        <topics><topic>t1</topic></topics>
        <practical_tasks><task>p1</task></practical_tasks>
      </module>
    </modules>
    <outcomes>...</outcomes>
    <assignments>...</assignments>
    <tools><tool>go</tool></tools>
  </Curriculum>
</Curriculum_List>
*/

type xmlCurriculumList struct {
	XMLName     xml.Name        `xml:"Curriculum_List"`
	Curriculums []xmlCurriculum `xml:"Curriculum"`
}

type xmlCurriculum struct {
	Operation string `xml:"operation,attr,omitempty"`

	ID          string `xml:"curriculum_id"`
	Title       string `xml:"title"`
	Description string `xml:"description,omitempty"`

	Difficulty     string `xml:"difficulty"`
	TargetAudience string `xml:"target_audience,omitempty"`
	Industry       string `xml:"industry,omitempty"`
	Duration       string `xml:"duration,omitempty"`
	Provider       string `xml:"provider,omitempty"`

	Author    *xmlAuthor `xml:"author,omitempty"`
	CreatedTS string     `xml:"created_ts,omitempty"`

	QualityScore      string `xml:"quality_score"`
	IndustryAlignment string `xml:"industry_alignment"`

	Objectives  *xmlList    `xml:"objectives,omitempty"`
	Modules     *xmlModules `xml:"modules,omitempty"`
	Outcomes    *xmlList    `xml:"outcomes,omitempty"`
	Assignments *xmlList    `xml:"assignments,omitempty"`
	Tools       *xmlTools   `xml:"tools,omitempty"`
}

type xmlAuthor struct {
	ID   string `xml:"id,attr"`
	Name string `xml:",chardata"`
}

type xmlList struct {
	Items []string `xml:"item"`
}

type xmlTools struct {
	Tools []string `xml:"tool"`
}

type xmlModules struct {
	Modules []xmlModule `xml:"module"`
}

type xmlModule struct {
	Position       int        `xml:"position,attr"`
	Title          string     `xml:"title"`
	Topics         *xmlTopics `xml:"topics,omitempty"`
	PracticalTasks *xmlTasks  `xml:"practical_tasks,omitempty"`
}

type xmlTopics struct {
	Topics []string `xml:"topic"`
}

type xmlTasks struct {
	Tasks []string `xml:"task"`
}

type XMLConfig struct {
	// If Operation is set, it is written as Curriculum @operation="...".
	Operation string
	// Provider is copied into every <provider>.
	Provider string
}

// WriteCurriculumXMLFile writes the catalog feed to outPath.
func WriteCurriculumXMLFile(outPath string, sc domain.SavedContent, cfg XMLConfig) error {
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("export: create xml: %w", err)
	}
	if err := WriteCurriculumXML(f, sc, cfg); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: write xml: %w", err)
	}
	return nil
}

func WriteCurriculumXML(w io.Writer, sc domain.SavedContent, cfg XMLConfig) error {
	users := make(map[string]domain.User, len(sc.Users))
	for _, u := range sc.Users {
		users[u.ID] = u
	}

	out := xmlCurriculumList{
		Curriculums: make([]xmlCurriculum, 0, len(sc.Curriculums)),
	}
	for _, c := range sc.Curriculums {
		row := xmlCurriculum{
			Operation:   strings.TrimSpace(cfg.Operation),
			ID:          strings.TrimSpace(c.ID),
			Title:       strings.TrimSpace(c.Title),
			Description: strings.TrimSpace(c.Description),

			Difficulty:     strings.ToLower(string(c.SkillLevel)),
			TargetAudience: strings.TrimSpace(c.TargetAudience),
			Industry:       strings.TrimSpace(c.Industry),
			Duration:       strings.TrimSpace(c.Duration),
			Provider:       strings.TrimSpace(cfg.Provider),

			CreatedTS: strings.TrimSpace(c.CreatedAt),

			QualityScore:      floatToString(c.QualityScore),
			IndustryAlignment: floatToString(c.IndustryAlignment),
		}

		if u, ok := users[c.UserID]; ok {
			row.Author = &xmlAuthor{ID: u.ID, Name: strings.TrimSpace(u.Name)}
		}
		if items := compactStrings(c.Objectives); len(items) > 0 {
			row.Objectives = &xmlList{Items: items}
		}
		if items := compactStrings(c.Outcomes); len(items) > 0 {
			row.Outcomes = &xmlList{Items: items}
		}
		if items := compactStrings(c.Assignments); len(items) > 0 {
			row.Assignments = &xmlList{Items: items}
		}
		if items := compactStrings(c.Tools); len(items) > 0 {
			row.Tools = &xmlTools{Tools: items}
		}

		if len(c.Modules) > 0 {
			mods := &xmlModules{Modules: make([]xmlModule, 0, len(c.Modules))}
			for i, m := range c.Modules {
				xm := xmlModule{Position: i + 1, Title: strings.TrimSpace(m.Title)}
				if topics := compactStrings(m.Topics); len(topics) > 0 {
					xm.Topics = &xmlTopics{Topics: topics}
				}
				if tasks := compactStrings(m.PracticalTasks); len(tasks) > 0 {
					xm.PracticalTasks = &xmlTasks{Tasks: tasks}
				}
				mods.Modules = append(mods.Modules, xm)
			}
			row.Modules = mods
		}

		out.Curriculums = append(out.Curriculums, row)
	}

	b, err := xml.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("export: marshal xml: %w", err)
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("export: write xml: %w", err)
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("export: write xml: %w", err)
	}
	return nil
}

// compactStrings trims, drops blanks and duplicates, keeps first-seen order.
func compactStrings(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]bool{}
	for _, s := range in {
		v := strings.TrimSpace(s)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
