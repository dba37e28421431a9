package ports

import (
	"context"

	"github.com/shortnote/note-system/internal/core/domain"
)

// NoteRepository defines the persistence interface for notes.
type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Note, error)
	ListByRecipient(ctx context.Context, userID string) ([]domain.Note, error)
	ListBySender(ctx context.Context, userID string) ([]domain.Note, error)
}
