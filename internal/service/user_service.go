package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cinelog/cinelog/internal/domain"
	"github.com/cinelog/cinelog/internal/repository"
)

// UserService handles account registration and login.
type UserService struct {
	userRepo repository.UserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

// RegisterInput contains the data needed to register an account.
type RegisterInput struct {
	Username string
	Password string

	// ConfirmPassword is optional; when non-empty it must match Password.
	ConfirmPassword string
}

// Register creates a new account.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.Username == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrMissingField)
	}
	if input.ConfirmPassword != "" && input.ConfirmPassword != input.Password {
		return nil, domain.ErrPasswordMismatch
	}

	user := domain.NewUser(input.Username, input.Password)

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("username", input.Username).Msg("failed to create user")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Str("username", user.Username).Msg("user registered")
	return user, nil
}

// Authenticate verifies credentials and returns the matched user.
// Both fields are compared verbatim; the password comparison is
// plaintext by design of the system being replaced.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Don't expose whether the username exists.
			s.logger.Debug().Str("username", username).Msg("unknown username at login")
			return nil, domain.ErrInvalidCredentials
		}
		s.logger.Error().Err(err).Str("username", username).Msg("failed to load user")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if user.Password != password {
		s.logger.Debug().Str("username", username).Msg("wrong password at login")
		return nil, domain.ErrInvalidCredentials
	}

	s.logger.Info().Str("username", username).Msg("user authenticated")
	return user, nil
}
