package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/phraseflash/internal/logger"
	"github.com/vytor/phraseflash/internal/models"
	"github.com/vytor/phraseflash/internal/repository"
)

type languageRepository struct {
	db *sql.DB
}

// NewLanguageRepository creates a new LanguageRepository implementation
func NewLanguageRepository(db *sql.DB) repository.LanguageRepository {
	return &languageRepository{db: db}
}

// Get returns the language or nil when it does not exist or was deleted.
func (r *languageRepository) Get(ctx context.Context, id int64) (*models.Language, error) {
	log := logger.FromContext(ctx).WithPrefix("language_repo")

	var l models.Language
	err := r.db.QueryRowContext(ctx, `
SELECT id, code, name, deleted_at FROM languages WHERE id = ? AND deleted_at IS NULL
`, id).Scan(&l.ID, &l.Code, &l.Name, &l.DeletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("language not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get language: %v", err)
		return nil, err
	}
	return &l, nil
}

func (r *languageRepository) Insert(ctx context.Context, l models.Language) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("language_repo")
	log.Debug("inserting language: code=%s", l.Code)

	res, err := r.db.ExecContext(ctx, `INSERT INTO languages (code, name, deleted_at) VALUES (?, ?, ?)`,
		l.Code, l.Name, utcPtr(l.DeletedAt))
	if err != nil {
		log.Error("failed to insert language: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}
