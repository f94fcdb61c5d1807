package repository

import (
	"context"
	"errors"
	"time"

	"github.com/vytor/phraseflash/internal/models"
)

// ErrStaleState is returned by PhraseRepository.RecordPractice when the
// stored counters no longer match the snapshot the caller computed from.
var ErrStaleState = errors.New("practice state changed concurrently")

// UserRepository handles user data access
type UserRepository interface {
	Get(ctx context.Context, id int64) (*models.User, error)
	Insert(ctx context.Context, user models.User) (int64, error)
	SetPracticeStartDate(ctx context.Context, id int64, t time.Time) error
}

// LanguageRepository handles language data access
type LanguageRepository interface {
	Get(ctx context.Context, id int64) (*models.Language, error)
	Insert(ctx context.Context, language models.Language) (int64, error)
}

// PhraseRepository handles phrase data access
type PhraseRepository interface {
	Get(ctx context.Context, id int64) (*models.Phrase, error)
	Insert(ctx context.Context, phrase models.Phrase) (int64, error)
	ListForPractice(ctx context.Context, filter models.PracticeFilter) ([]models.Phrase, error)
	// RecordPractice stores next as the phrase's practice state and appends
	// entry to the practice log in one transaction, provided the stored
	// state still equals prev.
	RecordPractice(ctx context.Context, phraseID int64, prev, next models.PracticeState, entry models.PracticeLog) error
}

// PracticeLogRepository handles practice log queries
type PracticeLogRepository interface {
	CountCorrect(ctx context.Context, userID, languageID int64, since *time.Time) (int, error)
	CorrectCountsByUser(ctx context.Context, languageID int64, since *time.Time) ([]models.UserCount, error)
	ListForPhrase(ctx context.Context, phraseID int64, limit int) ([]models.PracticeLog, error)
}
