package main

import (
	"context"
	"flag"
	stdlog "log"
	"os"
	"path/filepath"
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
		inPath     = flag.String("in", "", "snapshot to export (.json, .json.br, .yaml)")
		outPath    = flag.String("out", "out/CURRICULUM-MAIN_ALL.csv", "output csv path")
		uploadSFTP = flag.Bool("sftp", false, "upload the generated CSV via SFTP")
	)
	flag.Parse()

	cfg := config.Load()

	log, err := logger.New(logger.OptionsFromConfig(cfg))
	if err != nil {
		stdlog.Fatal(err)
	}
	defer log.Sync()

	if *inPath == "" {
		log.Fatal("missing -in")
	}

	rootCtx, rootCancel := context.WithTimeout(context.Background(), time.Hour)
	defer rootCancel()

	sc, err := snapshot.LoadFile(*inPath)
	if err != nil {
		log.Fatal("load snapshot failed", "path", *inPath, "error", err)
	}

	if ids := missingAuthors(sc); len(ids) > 0 {
		log.Warn("curriculums without a resolvable author", "count", len(ids), "curriculum_ids", ids)
	}

	if err := writeCSV(*outPath, sc); err != nil {
		log.Fatal("write csv failed", "path", *outPath, "error", err)
	}
	log.Info("wrote curriculums", "path", *outPath, "count", len(sc.Curriculums))

	if *uploadSFTP {
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

func writeCSV(path string, sc domain.SavedContent) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteCurriculumCSV(f, sc); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// missingAuthors lists curriculum ids whose userId matches no user, in snapshot order.
func missingAuthors(sc domain.SavedContent) []string {
	var out []string
	for _, c := range sc.Curriculums {
		if _, ok := sc.UserByID(c.UserID); !ok {
			out = append(out, c.ID)
		}
	}
	return out
}
