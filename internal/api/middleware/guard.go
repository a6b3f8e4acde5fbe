package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/majiflow/billing-gateway/internal/api/metrics"
	"github.com/majiflow/billing-gateway/internal/core/domain"
	"github.com/majiflow/billing-gateway/internal/core/ports"
)

// Context keys set by the guard for downstream handlers.
const (
	ContextKeySession   = "session"
	ContextKeySessionID = "session_id"
)

// Guard gates protected routes. It consults the session service for
// authentication and role state and resolves every request to exactly one of:
// pass-through, redirect to login, redirect to the caller's own dashboard, or
// forced logout. It never returns an error to Echo.
type Guard struct {
	sessions ports.SessionService
	audit    ports.AuditRecorder
	log      zerolog.Logger
	devMode  bool
}

// NewGuard builds a Guard. devMode enables per-request access logging, which
// stays off in production.
func NewGuard(sessions ports.SessionService, audit ports.AuditRecorder, log zerolog.Logger, devMode bool) *Guard {
	return &Guard{sessions: sessions, audit: audit, log: log, devMode: devMode}
}

// Require returns middleware enforcing authentication, and membership in the
// given roles when any are listed. No roles means authenticated-only.
//
// An authenticated caller with the wrong role is redirected to their own
// dashboard rather than an error page, so misrouted users land somewhere
// useful. A caller whose stored role is unrecognised has an inconsistent
// session and is force-logged-out.
func (g *Guard) Require(roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID := SessionID(c)
			session, err := g.sessions.Current(c.Request().Context(), sessionID)
			if err != nil {
				metrics.GuardDecisionsTotal.WithLabelValues("redirect_login").Inc()
				return g.redirectToLogin(c)
			}

			user := session.User
			if user.Role == domain.RoleUnknown {
				_ = g.sessions.Logout(c.Request().Context(), sessionID)
				ClearSessionCookie(c)
				g.audit.Record(ports.AuditEvent{
					Type:     ports.AuditForcedLogout,
					Username: user.Username,
					Role:     user.RawRole,
					Path:     c.Request().URL.Path,
					Detail:   "unrecognised role",
				})
				metrics.GuardDecisionsTotal.WithLabelValues("forced_logout").Inc()
				return c.Redirect(http.StatusFound, "/login")
			}

			c.Set(ContextKeySession, session)
			c.Set(ContextKeySessionID, sessionID)

			if len(roles) == 0 || user.HasAnyRole(roles...) {
				if g.devMode {
					g.log.Debug().
						Str("username", user.Username).
						Str("role", string(user.Role)).
						Str("path", c.Request().URL.Path).
						Msg("guard allow")
				}
				metrics.GuardDecisionsTotal.WithLabelValues("allow").Inc()
				return next(c)
			}

			g.audit.Record(ports.AuditEvent{
				Type:     ports.AuditGuardDenied,
				Username: user.Username,
				Role:     string(user.Role),
				Path:     c.Request().URL.Path,
			})
			metrics.GuardDecisionsTotal.WithLabelValues("redirect_dashboard").Inc()
			return c.Redirect(http.StatusFound, user.Role.DashboardRoute())
		}
	}
}

// redirectToLogin preserves the originally requested path so login can send
// the user back afterwards.
func (g *Guard) redirectToLogin(c echo.Context) error {
	target := "/login"
	if path := c.Request().URL.Path; path != "" && path != "/login" {
		target += "?redirect=" + url.QueryEscape(path)
	}
	return c.Redirect(http.StatusFound, target)
}
