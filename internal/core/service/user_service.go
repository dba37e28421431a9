package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/shortnote/note-system/internal/core/domain"
	"github.com/shortnote/note-system/internal/core/ports"
)

// UserService implements the user directory: registration and login checks.
type UserService struct {
	repo   ports.UserRepository
	creds  *Credentials
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, creds *Credentials, logger zerolog.Logger) *UserService {
	if creds == nil {
		creds = NewCredentials()
	}
	return &UserService{repo: repo, creds: creds, logger: logger}
}

// Register creates a new account. The existence check before the insert is
// racy under concurrent registration of the same id; the unique index on the
// users collection makes the losing insert fail with ErrUserExists as well.
func (s *UserService) Register(ctx context.Context, id, name, password string) (*domain.User, error) {
	if _, err := s.repo.FindByID(ctx, id); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.creds.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           id,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Msg("user registered")
	return user, nil
}

// Authenticate checks id and password. Unknown ids and wrong passwords fail
// with distinct errors so callers can show distinct messages.
func (s *UserService) Authenticate(ctx context.Context, id, password string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.creds.Verify(password, user.PasswordHash) {
		return nil, domain.ErrWrongPassword
	}

	return user, nil
}

func (s *UserService) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}
