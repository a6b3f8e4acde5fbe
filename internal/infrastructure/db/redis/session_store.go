package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/majiflow/billing-gateway/internal/core/domain"
)

// Hash fields within a session key. Token and user projection live in the
// same hash so they share one lifetime and are removed together.
const (
	fieldToken = "token"
	fieldUser  = "current_user"
)

// SessionStore persists sessions as Redis hashes with a TTL bound to the
// token expiry. Implements ports.SessionStore.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore wraps the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Save writes both session fields and the expiry in one pipeline.
func (s *SessionStore) Save(ctx context.Context, sessionID string, session *domain.Session, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("session save: non-positive ttl %s", ttl)
	}

	rawUser, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("session save: encode user: %w", err)
	}

	key := s.key(sessionID)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, fieldToken, session.Token, fieldUser, rawUser)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

// Find loads the session or reports domain.ErrSessionNotFound. A hash missing
// either field counts as absent: the pair is only ever written together, so a
// half-present session is treated the same as none.
func (s *SessionStore) Find(ctx context.Context, sessionID string) (*domain.Session, error) {
	fields, err := s.client.HGetAll(ctx, s.key(sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("session find: %w", err)
	}

	token, okToken := fields[fieldToken]
	rawUser, okUser := fields[fieldUser]
	if !okToken || !okUser {
		return nil, domain.ErrSessionNotFound
	}

	var user domain.Identity
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		return nil, fmt.Errorf("session find: decode user: %w", err)
	}

	return &domain.Session{Token: token, User: &user}, nil
}

// Delete removes the session. Absent sessions are a no-op.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

func (s *SessionStore) key(sessionID string) string {
	return "session:" + sessionID
}
