package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"curriculum-kit/internal/domain"
	"curriculum-kit/internal/logger"
)

var ErrNotFound = errors.New("store: not found")

// Open opens (or creates) a sqlite database and migrates the schema.
// Foreign keys are switched on through the DSN unless the caller set them.
// The go-sqlite3 driver applies DSN options to every pooled connection; a
// one-off PRAGMA would only reach the connection that ran it.
func Open(dsn string, debug bool) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("store: dsn is required")
	}
	if !strings.Contains(dsn, "_foreign_keys") && !strings.Contains(dsn, "_fk") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_foreign_keys=on"
	}

	level := gormlogger.Silent
	if debug {
		level = gormlogger.Info
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(level)})
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&userRow{}, &curriculumRow{}, &moduleRow{}); err != nil {
		return fmt.Errorf("store: migrate: %w", err)
	}
	return nil
}

type CurriculumRepo interface {
	// SaveContent upserts every user and curriculum of sc in one transaction.
	// Stored records keep their position; new ones are appended.
	// Modules of a saved curriculum are replaced, not merged.
	SaveContent(ctx context.Context, sc domain.SavedContent) error
	// ReplaceContent makes the database an exact mirror of sc.
	ReplaceContent(ctx context.Context, sc domain.SavedContent) error
	LoadContent(ctx context.Context) (domain.SavedContent, error)
	CurriculumsByUser(ctx context.Context, userID string) ([]domain.Curriculum, error)
	GetCurriculum(ctx context.Context, id string) (domain.Curriculum, error)
	DeleteCurriculum(ctx context.Context, id string) error
}

type curriculumRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCurriculumRepo(db *gorm.DB, baseLog *logger.Logger) CurriculumRepo {
	return &curriculumRepo{db: db, log: baseLog.With("repo", "CurriculumRepo")}
}

func (r *curriculumRepo) SaveContent(ctx context.Context, sc domain.SavedContent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveAll(tx, sc)
	})
}

func (r *curriculumRepo) ReplaceContent(ctx context.Context, sc domain.SavedContent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&moduleRow{}, &curriculumRow{}, &userRow{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("store: clear: %w", err)
			}
		}
		return saveAll(tx, sc)
	})
}

func saveAll(tx *gorm.DB, sc domain.SavedContent) error {
	if len(sc.Users) > 0 {
		ids := make([]string, 0, len(sc.Users))
		for _, u := range sc.Users {
			ids = append(ids, u.ID)
		}
		pos, err := assignPositions(tx, &userRow{}, ids)
		if err != nil {
			return fmt.Errorf("store: save users: %w", err)
		}
		rows := make([]userRow, 0, len(sc.Users))
		for i, u := range sc.Users {
			rows = append(rows, toUserRow(u, pos[i]))
		}
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rows).Error; err != nil {
			return fmt.Errorf("store: save users: %w", err)
		}
	}

	if len(sc.Curriculums) == 0 {
		return nil
	}

	ids := make([]string, 0, len(sc.Curriculums))
	for _, c := range sc.Curriculums {
		ids = append(ids, c.ID)
	}
	pos, err := assignPositions(tx, &curriculumRow{}, ids)
	if err != nil {
		return fmt.Errorf("store: save curriculums: %w", err)
	}
	rows := make([]curriculumRow, 0, len(sc.Curriculums))
	var mods []moduleRow
	for i, c := range sc.Curriculums {
		rows = append(rows, toCurriculumRow(c, pos[i]))
		mods = append(mods, toModuleRows(c)...)
	}

	if err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{UpdateAll: true}).Create(&rows).Error; err != nil {
		return fmt.Errorf("store: save curriculums: %w", err)
	}
	if err := tx.Where("curriculum_id IN ?", ids).Delete(&moduleRow{}).Error; err != nil {
		return fmt.Errorf("store: clear modules: %w", err)
	}
	if len(mods) > 0 {
		if err := tx.Create(&mods).Error; err != nil {
			return fmt.Errorf("store: save modules: %w", err)
		}
	}
	return nil
}

const positionChunk = 500

// assignPositions returns the position for each id. Stored rows keep theirs,
// new ids are appended after the current last row in input order.
func assignPositions(tx *gorm.DB, model any, ids []string) ([]int, error) {
	known := make(map[string]int, len(ids))
	for start := 0; start < len(ids); start += positionChunk {
		end := min(start+positionChunk, len(ids))
		var found []struct {
			ID       string
			Position int
		}
		if err := tx.Model(model).Select("id, position").Where("id IN ?", ids[start:end]).Scan(&found).Error; err != nil {
			return nil, fmt.Errorf("read positions: %w", err)
		}
		for _, f := range found {
			known[f.ID] = f.Position
		}
	}

	var last int
	if err := tx.Model(model).Select("COALESCE(MAX(position), -1)").Row().Scan(&last); err != nil {
		return nil, fmt.Errorf("read last position: %w", err)
	}

	out := make([]int, len(ids))
	for i, id := range ids {
		p, ok := known[id]
		if !ok {
			last++
			p = last
			known[id] = p
		}
		out[i] = p
	}
	return out, nil
}

func (r *curriculumRepo) LoadContent(ctx context.Context) (domain.SavedContent, error) {
	var users []userRow
	if err := r.db.WithContext(ctx).Order("position, id").Find(&users).Error; err != nil {
		return domain.SavedContent{}, fmt.Errorf("store: load users: %w", err)
	}

	var rows []curriculumRow
	if err := r.withModules(ctx).Order("position, id").Find(&rows).Error; err != nil {
		return domain.SavedContent{}, fmt.Errorf("store: load curriculums: %w", err)
	}

	out := domain.SavedContent{
		Users:       make([]domain.User, 0, len(users)),
		Curriculums: make([]domain.Curriculum, 0, len(rows)),
	}
	for _, u := range users {
		out.Users = append(out.Users, u.toDomain())
	}
	for _, c := range rows {
		out.Curriculums = append(out.Curriculums, c.toDomain())
	}

	r.log.Debug("loaded content", "users", len(out.Users), "curriculums", len(out.Curriculums))
	return out, nil
}

func (r *curriculumRepo) CurriculumsByUser(ctx context.Context, userID string) ([]domain.Curriculum, error) {
	var rows []curriculumRow
	if err := r.withModules(ctx).
		Where("user_id = ?", userID).
		Order("position, id").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("store: curriculums by user: %w", err)
	}
	out := make([]domain.Curriculum, 0, len(rows))
	for _, c := range rows {
		out = append(out, c.toDomain())
	}
	return out, nil
}

func (r *curriculumRepo) GetCurriculum(ctx context.Context, id string) (domain.Curriculum, error) {
	var row curriculumRow
	err := r.withModules(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Curriculum{}, fmt.Errorf("%w: curriculum %s", ErrNotFound, id)
	}
	if err != nil {
		return domain.Curriculum{}, fmt.Errorf("store: get curriculum: %w", err)
	}
	return row.toDomain(), nil
}

func (r *curriculumRepo) DeleteCurriculum(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("curriculum_id = ?", id).Delete(&moduleRow{}).Error; err != nil {
			return fmt.Errorf("store: delete modules: %w", err)
		}
		res := tx.Where("id = ?", id).Delete(&curriculumRow{})
		if res.Error != nil {
			return fmt.Errorf("store: delete curriculum: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: curriculum %s", ErrNotFound, id)
		}
		r.log.Info("deleted curriculum", "curriculum_id", id)
		return nil
	})
}

func (r *curriculumRepo) withModules(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Modules", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}
