package ports

import (
	"context"

	"github.com/majiflow/billing-gateway/internal/core/domain"
)

// SessionService owns the session lifecycle: Anonymous → (login success) →
// Authenticated → (logout | expiry observed) → Anonymous. Login is atomic
// from the caller's perspective; on any failure the session stays Anonymous.
type SessionService interface {
	// Login authenticates against the backend and persists a fresh session.
	// Errors follow the domain taxonomy; nothing is persisted on failure.
	Login(ctx context.Context, username, password string) (sessionID string, session *domain.Session, err error)

	// Logout discards the session. Idempotent: logging out an unknown or
	// already-cleared session succeeds.
	Logout(ctx context.Context, sessionID string) error

	// Current rehydrates the session and re-checks token expiry. An expired
	// or malformed token triggers a silent logout and domain.ErrNotAuthenticated.
	Current(ctx context.Context, sessionID string) (*domain.Session, error)

	// TokenValid reports whether the token carries an exp claim in the
	// future. Absent or malformed tokens yield false, never an error.
	TokenValid(token string) bool
}
