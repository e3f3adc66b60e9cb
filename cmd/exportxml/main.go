package main

import (
	"context"
	"flag"
	stdlog "log"
	"path/filepath"
	"strings"
	"time"

	"curriculum-kit/internal/config"
	"curriculum-kit/internal/domain"
	"curriculum-kit/internal/export"
	"curriculum-kit/internal/logger"
	"curriculum-kit/internal/sftpclient"
	"curriculum-kit/internal/snapshot"
)

func main() {
	var (
		inPath   = flag.String("in", "", "snapshot to export (.json, .json.br, .yaml)")
		outPath  = flag.String("out", "out/curriculum_feed.xml", "output xml path")
		upload   = flag.Bool("upload", false, "upload to SFTP after generating the file")
		op       = flag.String("operation", "upsert", "Curriculum @operation attribute value (empty to omit)")
		provider = flag.String("provider", "", "value written to every <provider>")
		levels   = flag.String("levels", "", "only export these skill levels (comma-separated, any casing)")
	)
	flag.Parse()

	cfg := config.Load()

	log, err := logger.New(logger.OptionsFromConfig(cfg))
	if err != nil {
		stdlog.Fatal(err)
	}
	defer log.Sync()

	start := time.Now()
	defer func() {
		log.Info("job finished", "elapsed", time.Since(start).String())
	}()

	if *inPath == "" {
		log.Fatal("missing -in")
	}

	rootCtx, cancel := context.WithTimeout(context.Background(), time.Hour)
	defer cancel()

	allowed, err := parseLevels(*levels)
	if err != nil {
		log.Fatal("bad -levels", "error", err)
	}

	sc, err := snapshot.LoadFile(*inPath)
	if err != nil {
		log.Fatal("load snapshot failed", "path", *inPath, "error", err)
	}
	filtered := filterByLevel(sc, allowed)

	xmlCfg := export.XMLConfig{Operation: *op, Provider: *provider}
	if err := export.WriteCurriculumXMLFile(*outPath, filtered, xmlCfg); err != nil {
		log.Fatal("write xml failed", "path", *outPath, "error", err)
	}
	log.Info("wrote curriculum feed",
		"path", *outPath,
		"curriculums", len(filtered.Curriculums),
		"skipped", len(sc.Curriculums)-len(filtered.Curriculums),
	)

	if *upload {
		upCfg := sftpclient.FromConfig(cfg)
		remoteName := filepath.Base(*outPath)

		upCtx, upCancel := context.WithTimeout(rootCtx, 5*time.Minute)
		defer upCancel()

		if err := sftpclient.UploadFile(upCtx, upCfg, *outPath, remoteName); err != nil {
			log.Fatal("sftp upload failed", "error", err)
		}
		log.Info("uploaded", "addr", upCfg.Addr(), "dir", upCfg.RemoteDir, "file", remoteName)
	}
}

// parseLevels turns "beginner, Advanced" into a set. Empty input means no filter (nil).
func parseLevels(s string) (map[domain.SkillLevel]bool, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	out := map[domain.SkillLevel]bool{}
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		l, err := domain.ParseSkillLevel(part)
		if err != nil {
			return nil, err
		}
		out[l] = true
	}
	return out, nil
}

// filterByLevel keeps curriculums whose level is allowed. Users are kept as is.
func filterByLevel(sc domain.SavedContent, allowed map[domain.SkillLevel]bool) domain.SavedContent {
	if allowed == nil {
		return sc
	}
	out := domain.SavedContent{Users: sc.Users, Curriculums: make([]domain.Curriculum, 0, len(sc.Curriculums))}
	for _, c := range sc.Curriculums {
		if allowed[c.SkillLevel] {
			out.Curriculums = append(out.Curriculums, c)
		}
	}
	return out
}
