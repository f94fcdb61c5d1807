package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/vytor/phraseflash/internal/errors"
	"github.com/vytor/phraseflash/internal/logger"
	"github.com/vytor/phraseflash/internal/models"
	"github.com/vytor/phraseflash/internal/practice"
	"github.com/vytor/phraseflash/internal/repository"
	"github.com/vytor/phraseflash/internal/timezone"
)

var tooLongMessage = fmt.Sprintf("cannot exceed %d characters", practice.MaxTextRunes)

// PracticeService handles practice sessions and answer submission
type PracticeService interface {
	ListPracticePhrases(ctx context.Context, userID int64, query models.PracticeQuery) (*models.PracticeSession, error)
	SubmitAnswer(ctx context.Context, userID int64, req models.AnswerRequest) (*models.AnswerResult, error)
	Compare(ctx context.Context, req models.CompareRequest) (models.CompareResult, error)
}

type practiceService struct {
	userRepo     repository.UserRepository
	languageRepo repository.LanguageRepository
	phraseRepo   repository.PhraseRepository
	engine       *practice.Engine
	cfg          PracticeConfig
}

// NewPracticeService creates a new PracticeService
func NewPracticeService(
	userRepo repository.UserRepository,
	languageRepo repository.LanguageRepository,
	phraseRepo repository.PhraseRepository,
	engine *practice.Engine,
	cfg PracticeConfig,
) PracticeService {
	if engine == nil {
		engine = practice.NewEngine()
	}
	return &practiceService{
		userRepo:     userRepo,
		languageRepo: languageRepo,
		phraseRepo:   phraseRepo,
		engine:       engine,
		cfg:          cfg.withDefaults(),
	}
}

func (s *practiceService) location(u *models.User) *time.Location {
	if u == nil || u.Timezone == "" {
		return timezone.Load(s.cfg.DefaultTimezone)
	}
	return timezone.Load(u.Timezone)
}

func (s *practiceService) loadUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", userID)
	}
	return user, nil
}

func (s *practiceService) ListPracticePhrases(ctx context.Context, userID int64, q models.PracticeQuery) (*models.PracticeSession, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing practice phrases: user_id=%d, language_id=%d, mode=%s", userID, q.LanguageID, q.Mode)

	if q.LanguageID <= 0 {
		return nil, errors.NewValidationError("languageId", "is required")
	}
	if !q.Mode.Valid() {
		return nil, errors.NewValidationError("mode", `must be "normal" or "review"`)
	}
	if q.QuestionCount != nil && *q.QuestionCount < 0 {
		return nil, errors.NewValidationError("questionCount", "cannot be negative")
	}

	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.cfg.Now()
	if user.PracticeStartDate == nil {
		log.Info("starting practice for user %d", userID)
		if err := s.userRepo.SetPracticeStartDate(ctx, userID, now); err != nil {
			log.Error("failed to set practice start date: %v", err)
			return nil, errors.NewInternalError(err)
		}
		user.PracticeStartDate = &now
	}

	language, err := s.languageRepo.Get(ctx, q.LanguageID)
	if err != nil {
		log.Error("failed to get language: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if language == nil {
		return nil, errors.NewNotFoundError("language", q.LanguageID)
	}

	filter := models.PracticeFilter{
		UserID:        userID,
		LanguageID:    q.LanguageID,
		Mode:          q.Mode,
		MasteryCount:  practice.MasteryCount,
		ExcludeSpeech: true,
	}
	if !user.PracticeIncludeExisting {
		filter.CreatedAfter = user.PracticeStartDate
	}

	phrases, err := s.phraseRepo.ListForPractice(ctx, filter)
	if err != nil {
		log.Error("failed to list practice phrases: %v", err)
		return nil, errors.NewInternalError(err)
	}

	localDate := timezone.DateFunc(s.location(user))
	today := localDate(now)
	remaining := lo.Filter(phrases, func(p models.Phrase, _ int) bool {
		return p.LastPracticeDate == nil || localDate(*p.LastPracticeDate) != today
	})

	limit := s.cfg.SessionSize
	if q.QuestionCount != nil {
		limit = *q.QuestionCount
	}
	selected := remaining
	if limit > 0 && limit < len(remaining) {
		selected = remaining[:limit]
	}

	log.Debug("practice session: %d of %d remaining phrases", len(selected), len(remaining))
	return &models.PracticeSession{
		Phrases: lo.Map(selected, func(p models.Phrase, _ int) models.PracticePhrase {
			return models.PracticePhrase{
				ID:                   p.ID,
				Original:             p.Original,
				Translation:          p.Translation,
				PracticeCorrectCount: p.CorrectCount,
				CreatedAt:            p.CreatedAt,
			}
		}),
		TotalCount: len(remaining),
	}, nil
}

func (s *practiceService) SubmitAnswer(ctx context.Context, userID int64, req models.AnswerRequest) (*models.AnswerResult, error) {
	log := logger.FromContext(ctx).WithFields(map[string]any{"phrase_id": req.PhraseID, "user_id": userID})
	log.Debug("submitting answer")

	if req.PhraseID <= 0 {
		return nil, errors.NewValidationError("phraseId", "is required")
	}
	if req.Transcript == nil {
		return nil, errors.NewValidationError("transcript", "is required")
	}
	if !practice.WithinLimit(*req.Transcript) {
		return nil, errors.NewValidationError("transcript", tooLongMessage)
	}
	if !req.Mode.Valid() {
		return nil, errors.NewValidationError("mode", `must be "normal" or "review"`)
	}

	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	localDate := timezone.DateFunc(s.location(user))

	for attempt := 1; ; attempt++ {
		phrase, err := s.phraseRepo.Get(ctx, req.PhraseID)
		if err != nil {
			log.Error("failed to get phrase: %v", err)
			return nil, errors.NewInternalError(err)
		}
		if phrase == nil {
			return nil, errors.NewNotFoundError("phrase", req.PhraseID)
		}
		if phrase.UserID != userID {
			log.Warn("phrase belongs to user %d", phrase.UserID)
			return nil, errors.NewForbiddenError("phrase", req.PhraseID)
		}

		now := s.cfg.Now()
		outcome, next := s.engine.Submit(phrase.PracticeState, *req.Transcript, phrase.Original, phrase.LanguageCode, now, localDate)

		err = s.phraseRepo.RecordPractice(ctx, phrase.ID, phrase.PracticeState, next, models.PracticeLog{
			PhraseID:     phrase.ID,
			UserID:       userID,
			Correct:      outcome.Correct,
			Similarity:   outcome.Similarity,
			Transcript:   *req.Transcript,
			PracticeDate: now,
		})
		if err == nil {
			log.Info("answer recorded: correct=%t, similarity=%.3f, correct_count=%d", outcome.Correct, outcome.Similarity, outcome.NewCorrectCount)
			return &models.AnswerResult{PracticeOutcome: outcome, ExpectedText: phrase.Original}, nil
		}
		if !stderrors.Is(err, repository.ErrStaleState) {
			log.Error("failed to record practice: %v", err)
			return nil, errors.NewInternalError(err)
		}
		if attempt >= s.cfg.MaxRetries {
			log.Warn("giving up after %d concurrent updates", attempt)
			return nil, errors.NewConflictError("phrase was updated concurrently, please retry", err)
		}
		log.Debug("stale practice state, retrying (attempt %d)", attempt)
	}
}

func (s *practiceService) Compare(ctx context.Context, req models.CompareRequest) (models.CompareResult, error) {
	logger.FromContext(ctx).Debug("comparing attempt: lang=%s", req.Lang)
	if !practice.WithinLimit(req.Attempt) {
		return models.CompareResult{}, errors.NewValidationError("attempt", tooLongMessage)
	}
	if !practice.WithinLimit(req.Reference) {
		return models.CompareResult{}, errors.NewValidationError("reference", tooLongMessage)
	}
	return s.engine.Compare(req.Attempt, req.Reference, req.Lang), nil
}
