package ports

import (
	"context"
	"time"

	"github.com/majiflow/billing-gateway/internal/core/domain"
)

// SessionStore persists sessions keyed by opaque session id. The token and
// the user projection are stored and removed as a unit; a store never holds
// one without the other.
type SessionStore interface {
	// Save writes the session with the given lifetime. ttl <= 0 is invalid.
	Save(ctx context.Context, sessionID string, session *domain.Session, ttl time.Duration) error
	// Find returns the stored session or domain.ErrSessionNotFound.
	Find(ctx context.Context, sessionID string) (*domain.Session, error)
	// Delete removes the session. Deleting an absent session is a no-op.
	Delete(ctx context.Context, sessionID string) error
}
