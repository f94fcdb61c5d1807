package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/phraseflash/internal/models"
)

// MockPhraseRepository is a mock implementation of repository.PhraseRepository
type MockPhraseRepository struct {
	mock.Mock
}

func (m *MockPhraseRepository) Get(ctx context.Context, id int64) (*models.Phrase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Phrase), args.Error(1)
}

func (m *MockPhraseRepository) Insert(ctx context.Context, phrase models.Phrase) (int64, error) {
	args := m.Called(ctx, phrase)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPhraseRepository) ListForPractice(ctx context.Context, filter models.PracticeFilter) ([]models.Phrase, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Phrase), args.Error(1)
}

func (m *MockPhraseRepository) RecordPractice(ctx context.Context, phraseID int64, prev, next models.PracticeState, entry models.PracticeLog) error {
	args := m.Called(ctx, phraseID, prev, next, entry)
	return args.Error(0)
}
