package main

import (
	"encoding/json"
	"flag"
	"io"
	stdlog "log"
	"os"

	"curriculum-kit/internal/config"
	"curriculum-kit/internal/logger"
	"curriculum-kit/internal/reconcile"
	"curriculum-kit/internal/snapshot"
)

func main() {
	var (
		oldPath   = flag.String("old", "", "previous snapshot")
		newPath   = flag.String("new", "", "current snapshot")
		patchPath = flag.String("patch", "", "optional: write created/updated records of -new to this snapshot path")
		exitCode  = flag.Bool("exit-code", false, "exit with status 1 when the snapshots differ")
	)
	flag.Parse()

	cfg := config.Load()
	log, err := logger.New(logger.OptionsFromConfig(cfg))
	if err != nil {
		stdlog.Fatal(err)
	}
	defer log.Sync()

	if *oldPath == "" || *newPath == "" {
		log.Fatal("missing -old or -new")
	}

	prev, err := snapshot.LoadFile(*oldPath)
	if err != nil {
		log.Fatal("load snapshot failed", "path", *oldPath, "error", err)
	}
	next, err := snapshot.LoadFile(*newPath)
	if err != nil {
		log.Fatal("load snapshot failed", "path", *newPath, "error", err)
	}

	ch := reconcile.Diff(prev, next)
	if err := writeChanges(os.Stdout, ch); err != nil {
		log.Fatal("print changes failed", "error", err)
	}

	if *patchPath != "" {
		patch := reconcile.Select(next, ch)
		if err := snapshot.SaveFile(*patchPath, patch); err != nil {
			log.Fatal("write patch failed", "path", *patchPath, "error", err)
		}
		log.Info("wrote patch", "path", *patchPath, "users", len(patch.Users), "curriculums", len(patch.Curriculums))
	}

	if *exitCode && !ch.Empty() {
		log.Sync()
		os.Exit(1)
	}
}

func writeChanges(w io.Writer, ch reconcile.Changes) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ch)
}
