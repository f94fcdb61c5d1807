package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/phraseflash/internal/models"
)

// MockPracticeLogRepository is a mock implementation of repository.PracticeLogRepository
type MockPracticeLogRepository struct {
	mock.Mock
}

func (m *MockPracticeLogRepository) CountCorrect(ctx context.Context, userID, languageID int64, since *time.Time) (int, error) {
	args := m.Called(ctx, userID, languageID, since)
	return args.Int(0), args.Error(1)
}

func (m *MockPracticeLogRepository) CorrectCountsByUser(ctx context.Context, languageID int64, since *time.Time) ([]models.UserCount, error) {
	args := m.Called(ctx, languageID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserCount), args.Error(1)
}

func (m *MockPracticeLogRepository) ListForPhrase(ctx context.Context, phraseID int64, limit int) ([]models.PracticeLog, error) {
	args := m.Called(ctx, phraseID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PracticeLog), args.Error(1)
}
