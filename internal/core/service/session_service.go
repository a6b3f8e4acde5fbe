package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/majiflow/billing-gateway/internal/core/domain"
	"github.com/majiflow/billing-gateway/internal/core/ports"
)

// SessionService is the single source of truth for who is logged in. It is
// the only writer of the session store; everything else reads sessions
// through it.
type SessionService struct {
	backend ports.BackendClient
	store   ports.SessionStore
	logger  zerolog.Logger

	// now is swappable for expiry tests.
	now func() time.Time
}

func NewSessionService(backend ports.BackendClient, store ports.SessionStore, logger zerolog.Logger) *SessionService {
	return &SessionService{
		backend: backend,
		store:   store,
		logger:  logger,
		now:     time.Now,
	}
}

// Login authenticates against the billing backend and persists the resulting
// session. The identity merges the token's claims (subject id, expiry) with
// the response body (username, role, email); the role is normalised to its
// canonical value here so no later comparison needs to handle case or the
// customer alias. On any failure nothing is persisted and the session stays
// Anonymous.
func (s *SessionService) Login(ctx context.Context, username, password string) (string, *domain.Session, error) {
	result, err := s.backend.Login(ctx, username, password)
	if err != nil {
		return "", nil, err
	}

	exp, err := tokenExpiry(result.Token)
	if err != nil {
		s.logger.Warn().Err(err).Str("username", result.Username).Msg("backend issued unreadable token")
		return "", nil, domain.ErrSessionInconsistent
	}
	ttl := exp.Sub(s.now())
	if ttl <= 0 {
		return "", nil, domain.ErrSessionInconsistent
	}

	role, _ := domain.NormalizeRole(result.Role)
	session := &domain.Session{
		Token: result.Token,
		User: &domain.Identity{
			ID:       tokenSubject(result.Token),
			Username: result.Username,
			Role:     role,
			RawRole:  result.Role,
			Email:    result.Email,
		},
	}

	sessionID := uuid.NewString()
	if err := s.store.Save(ctx, sessionID, session, ttl); err != nil {
		return "", nil, err
	}

	s.logger.Info().
		Str("username", result.Username).
		Str("role", string(role)).
		Time("expires_at", exp).
		Msg("session created")

	return sessionID, session, nil
}

// Logout discards the session. Safe to call when already logged out.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.store.Delete(ctx, sessionID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return err
	}
	return nil
}

// Current rehydrates the session and lazily re-checks the token expiry. An
// expired or unreadable token results in a silent logout (store cleared, no
// navigation decided here) and ErrNotAuthenticated.
func (s *SessionService) Current(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	session, err := s.store.Find(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrNotAuthenticated
		}
		return nil, err
	}

	if !s.tokenValidAt(session.Token, s.now()) {
		_ = s.store.Delete(ctx, sessionID)
		s.logger.Debug().Msg("expired session cleared on read")
		return nil, domain.ErrNotAuthenticated
	}

	if session.User == nil {
		// Token is live but the projection is gone: the two are only ever
		// written together, so this session cannot be trusted.
		_ = s.store.Delete(ctx, sessionID)
		return nil, domain.ErrSessionInconsistent
	}

	return session, nil
}

// TokenValid reports whether the token's exp claim is in the future. Never
// errors: malformed or absent input reads as unauthenticated.
func (s *SessionService) TokenValid(token string) bool {
	return s.tokenValidAt(token, s.now())
}

func (s *SessionService) tokenValidAt(token string, at time.Time) bool {
	if token == "" {
		return false
	}
	exp, err := tokenExpiry(token)
	if err != nil {
		return false
	}
	return at.Before(exp)
}
