package ports

import (
	"context"

	"github.com/shortnote/note-system/internal/core/domain"
)

// UserService is the user directory: registration and credential checks.
type UserService interface {
	Register(ctx context.Context, id, name, password string) (*domain.User, error)
	Authenticate(ctx context.Context, id, password string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
