package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shortnote/note-system/internal/core/domain"
)

// SessionStore keeps session payloads in Redis.
// Key format: session:<token>, value is the JSON-encoded session user.
// Expiry is delegated to the key TTL.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Save records the session payload under token with the given TTL.
func (s *SessionStore) Save(ctx context.Context, token string, user domain.SessionUser, ttl time.Duration) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.client.Set(ctx, s.key(token), payload, ttl).Err()
}

// Get returns the session payload for token, or domain.ErrSessionNotFound
// when the token is unknown or expired.
func (s *SessionStore) Get(ctx context.Context, token string) (domain.SessionUser, error) {
	var user domain.SessionUser

	payload, err := s.client.Get(ctx, s.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return user, domain.ErrSessionNotFound
		}
		return user, fmt.Errorf("session lookup: %w", err)
	}

	if err := json.Unmarshal(payload, &user); err != nil {
		return user, fmt.Errorf("decode session: %w", err)
	}
	return user, nil
}

// Delete removes the session for token. Deleting an unknown token is a no-op.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.key(token)).Err()
}

func (s *SessionStore) key(token string) string {
	return "session:" + token
}
