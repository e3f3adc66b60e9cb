package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"time"

	"curriculum-kit/internal/config"
	"curriculum-kit/internal/domain"
	"curriculum-kit/internal/logger"
	"curriculum-kit/internal/reconcile"
	"curriculum-kit/internal/report"
	"curriculum-kit/internal/snapshot"
	"curriculum-kit/internal/store"
	"curriculum-kit/internal/validate"
)

func main() {
	cfg := config.Load()

	var (
		mode    = flag.String("mode", "plan", "plan | import | export | user")
		inPath  = flag.String("in", "", "snapshot to import or plan against")
		outPath = flag.String("out", "", "snapshot path for -mode export")
		dsn     = flag.String("dsn", cfg.DBDSN, "sqlite database path")
		mirror  = flag.Bool("mirror", false, "import replaces the whole database instead of applying the diff")
		prune   = flag.Bool("prune", false, "import also deletes curriculums missing from the snapshot")
		userID  = flag.String("user", "", "user id for -mode user")
	)
	flag.Parse()

	log, err := logger.New(logger.OptionsFromConfig(cfg))
	if err != nil {
		stdlog.Fatal(err)
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	db, err := store.Open(*dsn, cfg.LogDebug)
	if err != nil {
		log.Fatal("open database failed", "dsn", *dsn, "error", err)
	}
	repo := store.NewCurriculumRepo(db, log)

	switch *mode {
	case "plan":
		next := mustLoad(log, *inPath)
		current, err := repo.LoadContent(ctx)
		if err != nil {
			log.Fatal("load database failed", "error", err)
		}
		if err := printJSON(os.Stdout, reconcile.Diff(current, next)); err != nil {
			log.Fatal("print plan failed", "error", err)
		}

	case "import":
		next := mustLoad(log, *inPath)
		rep, err := validate.SavedContent(ctx, next, validate.Options{Workers: cfg.Workers})
		if err != nil {
			log.Fatal("validation aborted", "error", err)
		}
		if !rep.OK() {
			log.Fatal("refusing to import an invalid snapshot", "problems", rep.Count(), "error", rep.Err())
		}
		ch, err := importContent(ctx, repo, next, *mirror, *prune)
		if err != nil {
			log.Fatal("import failed", "error", err)
		}
		log.Info("import finished",
			"mirror", *mirror,
			"users_created", len(ch.Users.Created),
			"users_updated", len(ch.Users.Updated),
			"curriculums_created", len(ch.Curriculums.Created),
			"curriculums_updated", len(ch.Curriculums.Updated),
			"curriculums_deleted", len(ch.Curriculums.Deleted),
		)

	case "export":
		if *outPath == "" {
			log.Fatal("missing -out")
		}
		sc, err := repo.LoadContent(ctx)
		if err != nil {
			log.Fatal("load database failed", "error", err)
		}
		if err := snapshot.SaveFile(*outPath, sc); err != nil {
			log.Fatal("save snapshot failed", "path", *outPath, "error", err)
		}
		log.Info("exported", "path", *outPath, "users", len(sc.Users), "curriculums", len(sc.Curriculums))

	case "user":
		if *userID == "" {
			log.Fatal("missing -user")
		}
		list, err := repo.CurriculumsByUser(ctx, *userID)
		if err != nil {
			log.Fatal("query failed", "error", err)
		}
		if err := printJSON(os.Stdout, report.PickEach(list, "id", "title", "skillLevel", "createdAt")); err != nil {
			log.Fatal("print failed", "error", err)
		}

	default:
		log.Fatal("unknown -mode", "mode", *mode)
	}
}

func mustLoad(log *logger.Logger, path string) domain.SavedContent {
	if path == "" {
		log.Fatal("missing -in")
	}
	sc, err := snapshot.LoadFile(path)
	if err != nil {
		log.Fatal("load snapshot failed", "path", path, "error", err)
	}
	return sc
}

// importContent brings the database in line with next. Without mirror every record of
// next is upserted (stored records keep their place, new ones go last) and deletions
// happen only with prune. Mirror rewrites the order to follow next.
func importContent(ctx context.Context, repo store.CurriculumRepo, next domain.SavedContent, mirror, prune bool) (reconcile.Changes, error) {
	current, err := repo.LoadContent(ctx)
	if err != nil {
		return reconcile.Changes{}, err
	}
	ch := reconcile.Diff(current, next)

	if mirror {
		return ch, repo.ReplaceContent(ctx, next)
	}

	if ch.Empty() {
		return ch, nil
	}
	if err := repo.SaveContent(ctx, next); err != nil {
		return ch, err
	}
	if !prune {
		ch.Curriculums.Deleted = []string{}
		return ch, nil
	}
	for _, id := range ch.Curriculums.Deleted {
		if err := repo.DeleteCurriculum(ctx, id); err != nil && !errors.Is(err, store.ErrNotFound) {
			return ch, fmt.Errorf("prune %s: %w", id, err)
		}
	}
	return ch, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
