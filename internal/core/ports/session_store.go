package ports

import (
	"context"
	"time"

	"github.com/shortnote/note-system/internal/core/domain"
)

// SessionStore persists session payloads keyed by an opaque token. Expiry is
// owned by the store (TTL); Get on an expired or unknown token returns
// domain.ErrSessionNotFound.
type SessionStore interface {
	Save(ctx context.Context, token string, user domain.SessionUser, ttl time.Duration) error
	Get(ctx context.Context, token string) (domain.SessionUser, error)
	Delete(ctx context.Context, token string) error
}
