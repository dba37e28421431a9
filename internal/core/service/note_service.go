package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/shortnote/note-system/internal/core/domain"
	"github.com/shortnote/note-system/internal/core/ports"
)

// NoteService sends and reads notes. All operations act on behalf of an
// already-authenticated user; authorization beyond note-party membership is
// out of scope.
type NoteService struct {
	notes  ports.NoteRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewNoteService(notes ports.NoteRepository, users ports.UserRepository, logger zerolog.Logger) *NoteService {
	return &NoteService{notes: notes, users: users, logger: logger}
}

// Send resolves the recipient and persists a note carrying {id,name}
// snapshots of both parties. Nothing is written when the recipient does not
// exist.
func (s *NoteService) Send(ctx context.Context, sender domain.SessionUser, recipientID, title, content string) (*domain.Note, error) {
	recipient, err := s.users.FindByID(ctx, recipientID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrRecipientNotFound
		}
		return nil, err
	}

	note := &domain.Note{
		To:        recipient.Ref(),
		Sender:    sender,
		Title:     title,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	id, err := s.notes.Create(ctx, note)
	if err != nil {
		s.logger.Error().Err(err).Str("sender", sender.ID).Msg("failed to create note")
		return nil, err
	}
	note.ID = id

	s.logger.Info().Str("note_id", id).Str("sender", sender.ID).Str("to", recipient.ID).Msg("note sent")
	return note, nil
}

// ListBox returns the notes of one mailbox. Inbox lists notes received by
// userID, outbox lists notes sent by userID. Order is insertion order.
func (s *NoteService) ListBox(ctx context.Context, userID string, box domain.Box) ([]domain.Note, error) {
	switch box {
	case domain.BoxInbox:
		return s.notes.ListByRecipient(ctx, userID)
	case domain.BoxOutbox:
		return s.notes.ListBySender(ctx, userID)
	}
	return nil, domain.ErrInvalidBox
}

// Get fetches a single note and enforces that the requester is a party to it.
func (s *NoteService) Get(ctx context.Context, requesterID, noteID string) (*domain.Note, error) {
	note, err := s.notes.FindByID(ctx, noteID)
	if err != nil {
		return nil, err
	}

	if !note.VisibleTo(requesterID) {
		return nil, domain.ErrNoteForbidden
	}

	return note, nil
}
