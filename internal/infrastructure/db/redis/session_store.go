package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/campuscore/admin-portal/internal/core/domain"
)

const defaultSessionTTL = 12 * time.Hour

// SessionStore keeps sessions as JSON payloads under session:<uuid> with a
// TTL. Expiry is enforced by Redis; a missing key reads as no session.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
// If ttl <= 0, defaultSessionTTL is used.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Create(ctx context.Context, userID string, role domain.Role) (*domain.Session, error) {
	now := time.Now().UTC()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Role:      role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.write(ctx, session, s.ttl); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("session get: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("session decode: %w", err)
	}
	return &session, nil
}

// Regenerate copies the payload to a fresh identifier with the remaining
// lifetime and deletes the old key, so the pre-regeneration identifier can
// no longer name the session.
func (s *SessionStore) Regenerate(ctx context.Context, id string) (*domain.Session, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	old := session.ID
	session.ID = uuid.NewString()

	remaining := time.Until(session.ExpiresAt)
	if remaining <= 0 {
		remaining = time.Second
	}
	if err := s.write(ctx, session, remaining); err != nil {
		return nil, err
	}
	if err := s.client.Del(ctx, s.key(old)).Err(); err != nil {
		return nil, fmt.Errorf("session delete old: %w", err)
	}
	return session, nil
}

// Delete removes the session. Unknown identifiers are a no-op.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

func (s *SessionStore) write(ctx context.Context, session *domain.Session, ttl time.Duration) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	if err := s.client.Set(ctx, s.key(session.ID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("session set: %w", err)
	}
	return nil
}

func (s *SessionStore) key(id string) string {
	return "session:" + id
}
