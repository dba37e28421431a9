package domain

import (
	"errors"
	"time"
)

// Box selects which side of a user's mail a listing shows.
type Box string

const (
	BoxInbox  Box = "inbox"
	BoxOutbox Box = "outbox"
)

var ErrNoteNotFound = errors.New("note not found")
var ErrNoteForbidden = errors.New("note access forbidden")
var ErrRecipientNotFound = errors.New("recipient not found")
var ErrInvalidBox = errors.New("invalid box")

// ParseBox validates a box name taken from a URL path segment.
func ParseBox(s string) (Box, error) {
	switch Box(s) {
	case BoxInbox, BoxOutbox:
		return Box(s), nil
	}
	return "", ErrInvalidBox
}

// Note is an immutable message between two users. Sender and recipient are
// snapshotted at send time; later changes to the user records do not touch
// existing notes.
type Note struct {
	ID        string      `json:"id"`
	To        SessionUser `json:"to"`
	Sender    SessionUser `json:"sender"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
}

// VisibleTo reports whether userID is a party to the note.
func (n *Note) VisibleTo(userID string) bool {
	return n.To.ID == userID || n.Sender.ID == userID
}
