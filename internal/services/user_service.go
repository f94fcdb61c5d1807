package services

import (
	"context"
	"strings"
	"time"

	"github.com/vytor/phraseflash/internal/errors"
	"github.com/vytor/phraseflash/internal/logger"
	"github.com/vytor/phraseflash/internal/models"
	"github.com/vytor/phraseflash/internal/repository"
	"github.com/vytor/phraseflash/internal/timezone"
)

// UserService handles users and the languages they practice
type UserService interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	CreateUser(ctx context.Context, username, tz string, includeExisting bool) (*models.User, error)
	CreateLanguage(ctx context.Context, code, name string) (*models.Language, error)
}

type userService struct {
	userRepo     repository.UserRepository
	languageRepo repository.LanguageRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, languageRepo repository.LanguageRepository) UserService {
	return &userService{userRepo: userRepo, languageRepo: languageRepo}
}

func (s *userService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting user: id=%d", id)

	user, err := s.userRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", id)
	}
	return user, nil
}

func (s *userService) CreateUser(ctx context.Context, username, tz string, includeExisting bool) (*models.User, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating user: username=%s, timezone=%s", username, tz)

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.NewValidationError("username", "cannot be empty")
	}
	if tz == "" {
		tz = "UTC"
	}
	if loc := timezone.Load(tz); loc.String() != tz {
		return nil, errors.NewValidationError("timezone", "unknown timezone "+tz)
	}

	user := models.User{Username: username, Timezone: tz, PracticeIncludeExisting: includeExisting, CreatedAt: time.Now()}
	id, err := s.userRepo.Insert(ctx, user)
	if err != nil {
		log.Error("failed to create user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return s.GetUser(ctx, id)
}

func (s *userService) CreateLanguage(ctx context.Context, code, name string) (*models.Language, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating language: code=%s", code)

	code = strings.TrimSpace(code)
	if code == "" {
		return nil, errors.NewValidationError("code", "cannot be empty")
	}
	if name == "" {
		name = code
	}

	id, err := s.languageRepo.Insert(ctx, models.Language{Code: code, Name: name})
	if err != nil {
		log.Error("failed to create language: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return &models.Language{ID: id, Code: code, Name: name}, nil
}
