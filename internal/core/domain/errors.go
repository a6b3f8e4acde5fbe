package domain

import "errors"

// Closed error taxonomy for the gateway. Backend HTTP status codes are
// translated into these exactly once, at the backend client edge; nothing
// above that layer inspects status codes or response shapes.
var (
	// ErrInvalidCredentials covers a 401 from the backend: bad username or
	// password at login, or a rejected bearer token on a later call.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrForbidden covers a 403 from the backend.
	ErrForbidden = errors.New("access forbidden")

	// ErrBackendUnavailable covers network failures and any other backend
	// status. User-facing copy is a generic retry-later message.
	ErrBackendUnavailable = errors.New("billing backend unavailable")

	// ErrNotAuthenticated means there is no live session: no stored session,
	// an expired token, or a token that fails to parse.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrSessionInconsistent means the session is authenticated but its user
	// data cannot be trusted (unrecognised role, missing projection). Fatal
	// for the session: the holder must be logged out.
	ErrSessionInconsistent = errors.New("session inconsistent")

	// ErrSessionNotFound is the store-level miss sentinel.
	ErrSessionNotFound = errors.New("session not found")
)
