package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/phraseflash/internal/models"
)

// MockLanguageRepository is a mock implementation of repository.LanguageRepository
type MockLanguageRepository struct {
	mock.Mock
}

func (m *MockLanguageRepository) Get(ctx context.Context, id int64) (*models.Language, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Language), args.Error(1)
}

func (m *MockLanguageRepository) Insert(ctx context.Context, language models.Language) (int64, error) {
	args := m.Called(ctx, language)
	return args.Get(0).(int64), args.Error(1)
}
