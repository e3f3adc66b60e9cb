package main

import (
	"context"
	"flag"
	"fmt"
	stdlog "log"
	"os"
	"time"

	"curriculum-kit/internal/config"
	"curriculum-kit/internal/domain"
	"curriculum-kit/internal/logger"
	"curriculum-kit/internal/outline"
	"curriculum-kit/internal/report"
	"curriculum-kit/internal/snapshot"
	"curriculum-kit/internal/validate"
)

func main() {
	cfg := config.Load()

	var (
		inPath        = flag.String("in", "", "snapshot to validate (.json, .json.br, .yaml)")
		materialsPath = flag.String("materials", "", "optional slides/teaching notes file to check against the snapshot")
		skipRefs      = flag.Bool("skip-refs", false, "do not require curriculum userIds to resolve")
		workers       = flag.Int("workers", cfg.Workers, "parallel validation workers")
		summary       = flag.Bool("summary", false, "log a content summary")
	)
	flag.Parse()

	log, err := logger.New(logger.OptionsFromConfig(cfg))
	if err != nil {
		stdlog.Fatal(err)
	}
	defer log.Sync()

	if *inPath == "" {
		log.Fatal("missing -in")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	start := time.Now()
	sc, err := snapshot.LoadFile(*inPath)
	if err != nil {
		log.Fatal("load snapshot failed", "path", *inPath, "error", err)
	}

	rep, err := validate.SavedContent(ctx, sc, validate.Options{Workers: *workers, SkipReferences: *skipRefs})
	if err != nil {
		log.Fatal("validation aborted", "error", err)
	}
	problems := rep.Count()
	logProblems(log, rep.Err())

	if *summary {
		log.Info("summary", "content", report.Summarize(sc))
	}

	if *materialsPath != "" {
		m, err := snapshot.LoadMaterialsFile(*materialsPath)
		if err != nil {
			log.Fatal("load materials failed", "path", *materialsPath, "error", err)
		}
		out, errs := checkMaterials(sc, m)
		for _, e := range errs {
			logProblems(log, e)
		}
		problems += len(errs)
		if out != nil {
			for _, s := range out.Sections {
				log.Debug("section", "module", s.Module.Title, "key", s.Key.String(), "slides", len(s.Slides), "notes", len(s.Notes))
			}
		}
	}

	log.Info("validation finished",
		"path", *inPath,
		"users", len(sc.Users),
		"curriculums", len(sc.Curriculums),
		"problems", problems,
		"elapsed", time.Since(start).String(),
	)
	if problems > 0 {
		log.Sync()
		os.Exit(1)
	}
}

// logProblems logs one line per field error, or the raw error when it carries none.
func logProblems(log *logger.Logger, err error) {
	if err == nil {
		return
	}
	fes := validate.FieldErrors(err)
	if len(fes) == 0 {
		log.Error("invalid", "error", err)
		return
	}
	for _, fe := range fes {
		log.Error("invalid field", "entity", fe.Entity, "id", fe.ID, "field", fe.Field, "error", fe.Err)
	}
}

// checkMaterials validates every slide and note, then attaches them to the
// curriculum named by m.CurriculumID. Orphans are reported as problems.
func checkMaterials(sc domain.SavedContent, m snapshot.Materials) (*outline.Outline, []error) {
	var errs []error
	for i, s := range m.Slides {
		if err := validate.Slide(s); err != nil {
			errs = append(errs, fmt.Errorf("slides[%d]: %w", i, err))
		}
	}
	for i, n := range m.TeachingNotes {
		if err := validate.TeachingNote(n); err != nil {
			errs = append(errs, fmt.Errorf("teachingNotes[%d]: %w", i, err))
		}
	}

	c, ok := sc.CurriculumByID(m.CurriculumID)
	if !ok {
		return nil, append(errs, fmt.Errorf("materials: %w: curriculum %q", validate.ErrDanglingReference, m.CurriculumID))
	}

	out, err := outline.Attach(c, m.Slides, m.TeachingNotes)
	if err != nil {
		return nil, append(errs, err)
	}
	for _, s := range out.Orphans.Slides {
		errs = append(errs, fmt.Errorf("slide %q: %w", s.Title, outline.ErrUnknownModule))
	}
	for _, n := range out.Orphans.Notes {
		errs = append(errs, fmt.Errorf("teaching note %q: %w", n.ModuleTitle, outline.ErrUnknownModule))
	}
	return &out, errs
}
