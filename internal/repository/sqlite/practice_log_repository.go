package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/phraseflash/internal/logger"
	"github.com/vytor/phraseflash/internal/models"
	"github.com/vytor/phraseflash/internal/repository"
)

type practiceLogRepository struct {
	db *sql.DB
}

// NewPracticeLogRepository creates a new PracticeLogRepository implementation
func NewPracticeLogRepository(db *sql.DB) repository.PracticeLogRepository {
	return &practiceLogRepository{db: db}
}

func correctLogs(languageID int64, since *time.Time) squirrel.SelectBuilder {
	q := sqlBuilder.Select().
		From("practice_logs pl").
		Join("phrases p ON p.id = pl.phrase_id").
		Where(squirrel.Eq{"pl.correct": true, "p.language_id": languageID})
	if since != nil {
		q = q.Where(squirrel.GtOrEq{"pl.practice_date": since.UTC()})
	}
	return q
}

func (r *practiceLogRepository) CountCorrect(ctx context.Context, userID, languageID int64, since *time.Time) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("practice_log_repo")

	query, args, err := correctLogs(languageID, since).
		Column("COUNT(pl.id)").
		Where(squirrel.Eq{"pl.user_id": userID}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Error("failed to count correct answers: %v", err)
		return 0, err
	}
	return count, nil
}

// CorrectCountsByUser returns per-user correct answer counts for the
// language, highest first.
func (r *practiceLogRepository) CorrectCountsByUser(ctx context.Context, languageID int64, since *time.Time) ([]models.UserCount, error) {
	log := logger.FromContext(ctx).WithPrefix("practice_log_repo")

	query, args, err := correctLogs(languageID, since).
		Columns("pl.user_id", "COUNT(pl.id) AS cnt").
		GroupBy("pl.user_id").
		OrderBy("cnt DESC", "pl.user_id ASC").
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query correct counts: %v", err)
		return nil, err
	}
	defer rows.Close()

	var counts []models.UserCount
	for rows.Next() {
		var c models.UserCount
		if err := rows.Scan(&c.UserID, &c.Count); err != nil {
			log.Error("failed to scan count row: %v", err)
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (r *practiceLogRepository) ListForPhrase(ctx context.Context, phraseID int64, limit int) ([]models.PracticeLog, error) {
	log := logger.FromContext(ctx).WithPrefix("practice_log_repo")

	if limit <= 0 {
		limit = 50
	}
	query, args, err := sqlBuilder.
		Select("id", "phrase_id", "user_id", "correct", "similarity", "COALESCE(transcript, '')", "practice_date").
		From("practice_logs").
		Where(squirrel.Eq{"phrase_id": phraseID}).
		OrderBy("practice_date DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list practice logs: %v", err)
		return nil, err
	}
	defer rows.Close()

	var logs []models.PracticeLog
	for rows.Next() {
		var l models.PracticeLog
		if err := rows.Scan(&l.ID, &l.PhraseID, &l.UserID, &l.Correct, &l.Similarity, &l.Transcript, &l.PracticeDate); err != nil {
			log.Error("failed to scan practice log row: %v", err)
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
