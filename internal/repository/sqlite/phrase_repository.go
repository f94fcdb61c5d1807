package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/phraseflash/internal/logger"
	"github.com/vytor/phraseflash/internal/models"
	"github.com/vytor/phraseflash/internal/repository"
)

var phraseColumns = []string{
	"p.id", "p.user_id", "p.language_id", "l.code", "p.original", "p.translation", "p.speech_id",
	"p.practice_correct_count", "p.practice_incorrect_count", "p.last_practice_date",
	"p.created_at", "p.deleted_at",
}

type phraseRepository struct {
	db *sql.DB
}

// NewPhraseRepository creates a new PhraseRepository implementation
func NewPhraseRepository(db *sql.DB) repository.PhraseRepository {
	return &phraseRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPhrase(row rowScanner) (models.Phrase, error) {
	var p models.Phrase
	err := row.Scan(&p.ID, &p.UserID, &p.LanguageID, &p.LanguageCode, &p.Original, &p.Translation, &p.SpeechID,
		&p.CorrectCount, &p.IncorrectCount, &p.LastPracticeDate, &p.CreatedAt, &p.DeletedAt)
	return p, err
}

// Get returns a live (not deleted) phrase, or nil when there is none.
func (r *phraseRepository) Get(ctx context.Context, id int64) (*models.Phrase, error) {
	log := logger.FromContext(ctx).WithPrefix("phrase_repo")
	log.Debug("getting phrase: id=%d", id)

	query, args, err := sqlBuilder.Select(phraseColumns...).
		From("phrases p").
		Join("languages l ON l.id = p.language_id").
		Where(squirrel.Eq{"p.id": id, "p.deleted_at": nil}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	p, err := scanPhrase(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("phrase not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get phrase: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *phraseRepository) Insert(ctx context.Context, p models.Phrase) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("phrase_repo")
	log.Debug("inserting phrase: user_id=%d, language_id=%d", p.UserID, p.LanguageID)

	createdAt, err := utc("created_at", p.CreatedAt)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `
INSERT INTO phrases (user_id, language_id, original, translation, speech_id,
                     practice_correct_count, practice_incorrect_count, last_practice_date, created_at, deleted_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, p.UserID, p.LanguageID, p.Original, p.Translation, p.SpeechID,
		p.CorrectCount, p.IncorrectCount, utcPtr(p.LastPracticeDate), createdAt, utcPtr(p.DeletedAt))
	if err != nil {
		log.Error("failed to insert phrase: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get phrase id: %v", err)
		return 0, err
	}
	log.Debug("phrase inserted: id=%d", id)
	return id, nil
}

func (r *phraseRepository) ListForPractice(ctx context.Context, f models.PracticeFilter) ([]models.Phrase, error) {
	log := logger.FromContext(ctx).WithPrefix("phrase_repo")
	log.Debug("listing practice phrases: user_id=%d, language_id=%d, mode=%s", f.UserID, f.LanguageID, f.Mode)

	query := sqlBuilder.Select(phraseColumns...).
		From("phrases p").
		Join("languages l ON l.id = p.language_id").
		Where(squirrel.Eq{
			"p.user_id":     f.UserID,
			"p.language_id": f.LanguageID,
			"p.deleted_at":  nil,
		})

	if f.ExcludeSpeech {
		query = query.Where(squirrel.Eq{"p.speech_id": nil})
	}
	if f.CreatedAfter != nil {
		query = query.Where(squirrel.GtOrEq{"p.created_at": f.CreatedAfter.UTC()})
	}
	switch f.Mode {
	case models.PracticeModeNormal:
		query = query.Where(squirrel.Lt{"p.practice_correct_count": f.MasteryCount})
	case models.PracticeModeReview:
		query = query.Where(squirrel.GtOrEq{"p.practice_correct_count": f.MasteryCount})
	}
	query = query.OrderBy("p.created_at ASC", "p.id ASC")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list phrases: %v", err)
		return nil, err
	}
	defer rows.Close()

	var phrases []models.Phrase
	for rows.Next() {
		p, err := scanPhrase(rows)
		if err != nil {
			log.Error("failed to scan phrase row: %v", err)
			return nil, err
		}
		phrases = append(phrases, p)
	}
	log.Debug("found %d candidate phrases", len(phrases))
	return phrases, rows.Err()
}

func (r *phraseRepository) RecordPractice(ctx context.Context, phraseID int64, prev, next models.PracticeState, entry models.PracticeLog) error {
	log := logger.FromContext(ctx).WithPrefix("phrase_repo")
	log.Debug("recording practice: phrase_id=%d, correct=%t, correct_count=%d->%d, incorrect_count=%d->%d",
		phraseID, entry.Correct, prev.CorrectCount, next.CorrectCount, prev.IncorrectCount, next.IncorrectCount)

	practiceDate, err := utc("practice_date", entry.PracticeDate)
	if err != nil {
		return err
	}

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
UPDATE phrases
SET practice_correct_count = ?, practice_incorrect_count = ?, last_practice_date = ?
WHERE id = ? AND deleted_at IS NULL
  AND practice_correct_count = ? AND practice_incorrect_count = ?
  AND last_practice_date IS ?
`, next.CorrectCount, next.IncorrectCount, utcPtr(next.LastPracticeDate),
			phraseID, prev.CorrectCount, prev.IncorrectCount, utcPtr(prev.LastPracticeDate))
		if err != nil {
			return fmt.Errorf("update phrase %d: %w", phraseID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			log.Warn("practice state for phrase %d changed concurrently", phraseID)
			return repository.ErrStaleState
		}

		_, err = tx.ExecContext(ctx, `
INSERT INTO practice_logs (phrase_id, user_id, correct, similarity, transcript, practice_date)
VALUES (?, ?, ?, ?, ?, ?)
`, phraseID, entry.UserID, entry.Correct, entry.Similarity, entry.Transcript, practiceDate)
		if err != nil {
			return fmt.Errorf("insert practice log: %w", err)
		}
		return nil
	})
}
