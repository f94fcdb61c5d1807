package services

import (
	"context"

	"github.com/samber/lo"
	"github.com/vytor/phraseflash/internal/errors"
	"github.com/vytor/phraseflash/internal/logger"
	"github.com/vytor/phraseflash/internal/models"
	"github.com/vytor/phraseflash/internal/repository"
	"github.com/vytor/phraseflash/internal/timezone"
)

// StatsService handles practice statistics
type StatsService interface {
	GetPracticeStats(ctx context.Context, userID, languageID int64) (*models.PracticeStats, error)
}

type statsService struct {
	userRepo repository.UserRepository
	logRepo  repository.PracticeLogRepository
	cfg      PracticeConfig
}

// NewStatsService creates a new StatsService
func NewStatsService(userRepo repository.UserRepository, logRepo repository.PracticeLogRepository, cfg PracticeConfig) StatsService {
	return &statsService{userRepo: userRepo, logRepo: logRepo, cfg: cfg.withDefaults()}
}

func (s *statsService) GetPracticeStats(ctx context.Context, userID, languageID int64) (*models.PracticeStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting practice stats: user_id=%d, language_id=%d", userID, languageID)

	if languageID <= 0 {
		return nil, errors.NewValidationError("languageId", "is required")
	}

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	tz := s.cfg.DefaultTimezone
	if user != nil && user.Timezone != "" {
		tz = user.Timezone
	}
	loc := timezone.Load(tz)

	now := s.cfg.Now()
	todayStart := timezone.StartOfDay(timezone.LocalDate(now, loc), loc)
	weekStart := timezone.WeekStartUTC(now)

	var stats models.PracticeStats
	if stats.DailyCorrectCount, err = s.logRepo.CountCorrect(ctx, userID, languageID, &todayStart); err != nil {
		log.Error("failed to count daily correct answers: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if stats.TotalCorrectCount, err = s.logRepo.CountCorrect(ctx, userID, languageID, nil); err != nil {
		log.Error("failed to count total correct answers: %v", err)
		return nil, errors.NewInternalError(err)
	}

	weekly, err := s.logRepo.CorrectCountsByUser(ctx, languageID, &weekStart)
	if err != nil {
		log.Error("failed to get weekly ranking: %v", err)
		return nil, errors.NewInternalError(err)
	}
	stats.WeeklyRank = Rank(weekly, userID)

	total, err := s.logRepo.CorrectCountsByUser(ctx, languageID, nil)
	if err != nil {
		log.Error("failed to get total ranking: %v", err)
		return nil, errors.NewInternalError(err)
	}
	stats.TotalRank = Rank(total, userID)

	return &stats, nil
}

// Rank returns the competition rank of userID in counts: one more than the
// number of users with strictly more correct answers. Users missing from
// counts rank after everyone listed.
func Rank(counts []models.UserCount, userID int64) int {
	mine, _, ok := lo.FindIndexOf(counts, func(c models.UserCount) bool {
		return c.UserID == userID
	})
	if !ok {
		return len(counts) + 1
	}
	return 1 + lo.CountBy(counts, func(c models.UserCount) bool {
		return c.Count > mine.Count
	})
}

