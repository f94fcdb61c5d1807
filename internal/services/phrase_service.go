package services

import (
	"context"
	"strings"
	"time"

	"github.com/vytor/phraseflash/internal/errors"
	"github.com/vytor/phraseflash/internal/logger"
	"github.com/vytor/phraseflash/internal/models"
	"github.com/vytor/phraseflash/internal/practice"
	"github.com/vytor/phraseflash/internal/repository"
)

// PhraseService handles phrase-related business logic
type PhraseService interface {
	CreatePhrase(ctx context.Context, userID, languageID int64, original, translation string) (*models.Phrase, error)
	GetPracticeHistory(ctx context.Context, userID, phraseID int64, limit int) ([]models.PracticeLog, error)
}

type phraseService struct {
	languageRepo repository.LanguageRepository
	phraseRepo   repository.PhraseRepository
	logRepo      repository.PracticeLogRepository
}

// NewPhraseService creates a new PhraseService
func NewPhraseService(languageRepo repository.LanguageRepository, phraseRepo repository.PhraseRepository, logRepo repository.PracticeLogRepository) PhraseService {
	return &phraseService{languageRepo: languageRepo, phraseRepo: phraseRepo, logRepo: logRepo}
}

func (s *phraseService) CreatePhrase(ctx context.Context, userID, languageID int64, original, translation string) (*models.Phrase, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating phrase: user_id=%d, language_id=%d", userID, languageID)

	original = strings.TrimSpace(original)
	if original == "" {
		return nil, errors.NewValidationError("original", "cannot be empty")
	}
	if !practice.WithinLimit(original) {
		return nil, errors.NewValidationError("original", tooLongMessage)
	}

	language, err := s.languageRepo.Get(ctx, languageID)
	if err != nil {
		log.Error("failed to get language: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if language == nil {
		return nil, errors.NewNotFoundError("language", languageID)
	}

	id, err := s.phraseRepo.Insert(ctx, models.Phrase{
		UserID:      userID,
		LanguageID:  languageID,
		Original:    original,
		Translation: strings.TrimSpace(translation),
		CreatedAt:   time.Now(),
	})
	if err != nil {
		log.Error("failed to insert phrase: %v", err)
		return nil, errors.NewInternalError(err)
	}

	phrase, err := s.phraseRepo.Get(ctx, id)
	if err != nil || phrase == nil {
		log.Error("failed to reload phrase %d: %v", id, err)
		return nil, errors.NewInternalError(err)
	}
	return phrase, nil
}

func (s *phraseService) GetPracticeHistory(ctx context.Context, userID, phraseID int64, limit int) ([]models.PracticeLog, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting practice history: phrase_id=%d", phraseID)

	phrase, err := s.phraseRepo.Get(ctx, phraseID)
	if err != nil {
		log.Error("failed to get phrase: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if phrase == nil {
		return nil, errors.NewNotFoundError("phrase", phraseID)
	}
	if phrase.UserID != userID {
		return nil, errors.NewForbiddenError("phrase", phraseID)
	}

	logs, err := s.logRepo.ListForPhrase(ctx, phraseID, limit)
	if err != nil {
		log.Error("failed to list practice logs: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return logs, nil
}
