package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vytor/phraseflash/internal/logger"
	"github.com/vytor/phraseflash/internal/models"
	"github.com/vytor/phraseflash/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository implementation
func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user: id=%d", id)

	var u models.User
	err := r.db.QueryRowContext(ctx, `
SELECT id, username, timezone, practice_include_existing, practice_start_date, created_at
FROM users
WHERE id = ?
`, id).Scan(&u.ID, &u.Username, &u.Timezone, &u.PracticeIncludeExisting, &u.PracticeStartDate, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("user not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Insert(ctx context.Context, u models.User) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("inserting user: username=%s", u.Username)

	if u.Timezone == "" {
		u.Timezone = "UTC"
	}
	createdAt, err := utc("created_at", u.CreatedAt)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `
INSERT INTO users (username, timezone, practice_include_existing, practice_start_date, created_at)
VALUES (?, ?, ?, ?, ?)
`, u.Username, u.Timezone, u.PracticeIncludeExisting, utcPtr(u.PracticeStartDate), createdAt)
	if err != nil {
		log.Error("failed to insert user: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *userRepository) SetPracticeStartDate(ctx context.Context, id int64, t time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("setting practice start date: id=%d", id)

	_, err := r.db.ExecContext(ctx, `UPDATE users SET practice_start_date = ? WHERE id = ? AND practice_start_date IS NULL`, t.UTC(), id)
	if err != nil {
		log.Error("failed to set practice start date: %v", err)
	}
	return err
}
