package ports

import (
	"context"

	"github.com/shortnote/note-system/internal/core/domain"
)

// NoteService sends and reads notes on behalf of an authenticated user.
type NoteService interface {
	Send(ctx context.Context, sender domain.SessionUser, recipientID, title, content string) (*domain.Note, error)
	ListBox(ctx context.Context, userID string, box domain.Box) ([]domain.Note, error)
	Get(ctx context.Context, requesterID, noteID string) (*domain.Note, error)
}
