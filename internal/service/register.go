package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/msomdec/user-registry/internal/domain"
)

var _ ApplicationService[UserData, bool] = (*RegisterUserService)(nil)

// UserData is the input to RegisterUserService.
type UserData struct {
	Email    string
	Username string
}

// RegisterUserService registers new users, turning the repository's
// duplicate-email panic into a returned domain.ErrUserAlreadyExists.
type RegisterUserService struct {
	users  domain.UserRepository
	logger *slog.Logger

	// mu makes check-then-save atomic for callers sharing this service.
	mu sync.Mutex
}

// NewRegisterUserService creates a RegisterUserService. A nil logger uses
// slog.Default.
func NewRegisterUserService(users domain.UserRepository, logger *slog.Logger) *RegisterUserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RegisterUserService{users: users, logger: logger}
}

// Execute stores a new user built from data. It reports true on success and
// domain.ErrUserAlreadyExists when the email is taken.
func (s *RegisterUserService) Execute(ctx context.Context, data UserData) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.users.FindByEmail(ctx, data.Email)
	if err == nil {
		s.logger.InfoContext(ctx, "registration rejected", "email", data.Email, "reason", domain.ErrUserAlreadyExists)
		return false, domain.ErrUserAlreadyExists
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return false, fmt.Errorf("find user: %w", err)
	}

	if err := s.users.Save(ctx, domain.NewUser(data.Email, data.Username)); err != nil {
		return false, fmt.Errorf("save user: %w", err)
	}
	s.logger.DebugContext(ctx, "user registered", "email", data.Email, "username", data.Username)
	return true, nil
}
