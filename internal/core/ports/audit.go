package ports

import (
	"context"
	"time"
)

// Audit event types.
const (
	AuditLoginSuccess = "login_success"
	AuditLoginFailure = "login_failure"
	AuditGuardDenied  = "guard_denied"
	AuditForcedLogout = "forced_logout"
)

// AuditEvent is one security-relevant occurrence worth keeping a trail of.
type AuditEvent struct {
	Type     string    `bson:"type"`
	Username string    `bson:"username,omitempty"`
	Role     string    `bson:"role,omitempty"`
	Path     string    `bson:"path,omitempty"`
	Detail   string    `bson:"detail,omitempty"`
	At       time.Time `bson:"at"`
}

// AuditRecorder accepts events off the request path. Implementations are
// best-effort: recording must never block or fail a request.
type AuditRecorder interface {
	Record(event AuditEvent)
}

// AuditRepository persists audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event AuditEvent) error
}
