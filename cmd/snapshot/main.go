package main

import (
	"context"
	"flag"
	stdlog "log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"curriculum-kit/internal/config"
	"curriculum-kit/internal/domain"
	"curriculum-kit/internal/httpx"
	"curriculum-kit/internal/logger"
	"curriculum-kit/internal/sftpclient"
	"curriculum-kit/internal/snapshot"
	"curriculum-kit/internal/validate"
)

func main() {
	cfg := config.Load()

	var (
		inPath    = flag.String("in", "", "local snapshot to read (.json, .json.br, .yaml)")
		url       = flag.String("url", cfg.SnapshotURL, "remote snapshot to fetch when -in is empty")
		outPath   = flag.String("out", "", "output path; empty saves into the data dir store")
		name      = flag.String("name", "", "store file name (default saved-content-<utc timestamp>.<format>)")
		format    = flag.String("format", "json", "store format when -out is empty: json | json.br | yaml")
		normalize = flag.Bool("normalize", false, "replace null lists with empty ones before writing")
		check     = flag.Bool("validate", true, "refuse to write a snapshot that fails validation")
		list      = flag.Bool("list", false, "list snapshots in the data dir store and exit")
		upload    = flag.Bool("sftp", false, "upload the written file via SFTP")
	)
	flag.Parse()

	log, err := logger.New(logger.OptionsFromConfig(cfg))
	if err != nil {
		stdlog.Fatal(err)
	}
	defer log.Sync()

	rootCtx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	store, err := snapshot.NewStore(cfg.DataDir)
	if err != nil {
		log.Fatal("open store failed", "dir", cfg.DataDir, "error", err)
	}

	if *list {
		names, err := store.List()
		if err != nil {
			log.Fatal("list failed", "error", err)
		}
		for _, n := range names {
			log.Info("snapshot", "name", n)
		}
		log.Info("listed snapshots", "dir", store.Dir(), "count", len(names))
		return
	}

	var sc domain.SavedContent
	switch {
	case *inPath != "":
		sc, err = snapshot.LoadFile(*inPath)
		if err != nil {
			log.Fatal("load snapshot failed", "path", *inPath, "error", err)
		}
	case *url != "":
		var f snapshot.Format
		sc, f, err = fetch(rootCtx, cfg, log, *url)
		if err != nil {
			log.Fatal("fetch snapshot failed", "url", *url, "error", err)
		}
		log.Info("fetched snapshot", "url", *url, "format", string(f))
	default:
		log.Fatal("missing -in or -url")
	}

	if *normalize {
		sc = sc.Normalize()
	}

	if *check {
		rep, err := validate.SavedContent(rootCtx, sc, validate.Options{Workers: cfg.Workers})
		if err != nil {
			log.Fatal("validation aborted", "error", err)
		}
		if !rep.OK() {
			log.Fatal("snapshot is invalid", "problems", rep.Count(), "error", rep.Err())
		}
	}

	target := *outPath
	if target == "" {
		f, err := snapshot.ParseFormat(*format)
		if err != nil {
			log.Fatal("bad -format", "error", err)
		}
		n := storeName(*name, f, time.Now())
		if err := store.Save(n, sc); err != nil {
			log.Fatal("save failed", "name", n, "error", err)
		}
		target, _ = store.Path(n)
	} else if err := snapshot.SaveFile(target, sc); err != nil {
		log.Fatal("save failed", "path", target, "error", err)
	}

	log.Info("wrote snapshot",
		"path", target,
		"users", len(sc.Users),
		"curriculums", len(sc.Curriculums),
	)

	if *upload {
		upCfg := sftpclient.FromConfig(cfg)
		remoteName := filepath.Base(target)

		upCtx, upCancel := context.WithTimeout(rootCtx, 5*time.Minute)
		defer upCancel()

		if err := sftpclient.UploadFile(upCtx, upCfg, target, remoteName); err != nil {
			log.Fatal("sftp upload failed", "error", err)
		}
		log.Info("uploaded", "addr", upCfg.Addr(), "dir", upCfg.RemoteDir, "file", remoteName)
	}
}

func fetch(ctx context.Context, cfg config.Config, log *logger.Logger, url string) (domain.SavedContent, snapshot.Format, error) {
	client := &http.Client{Timeout: cfg.HTTPTimeout}

	header := http.Header{}
	if tok := strings.TrimSpace(cfg.SnapshotToken); tok != "" {
		header.Set("Authorization", "Bearer "+tok)
	}

	rc := httpx.DefaultRetryConfig()
	rc.OnRetry = func(attempt int, err error, wait time.Duration) {
		log.Warn("retrying fetch", "attempt", attempt, "wait", wait.String(), "error", err)
	}
	return httpx.FetchSnapshot(ctx, client, url, header, rc)
}

// storeName returns name with the format's extension, or a timestamped default.
func storeName(name string, f snapshot.Format, now time.Time) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "saved-content-" + now.UTC().Format("20060102T150405Z")
	}
	if ff, err := snapshot.FormatFromPath(name); err == nil && ff == f {
		return name
	}
	return name + f.Extension()
}
