package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/majiflow/billing-gateway/internal/core/domain"
	"github.com/majiflow/billing-gateway/internal/core/ports"
)

type stubSessions struct {
	session *domain.Session
	err     error
	logouts []string
}

func (s *stubSessions) Login(context.Context, string, string) (string, *domain.Session, error) {
	return "", nil, domain.ErrBackendUnavailable
}

func (s *stubSessions) Logout(_ context.Context, sessionID string) error {
	s.logouts = append(s.logouts, sessionID)
	return nil
}

func (s *stubSessions) Current(context.Context, string) (*domain.Session, error) {
	return s.session, s.err
}

func (s *stubSessions) TokenValid(string) bool {
	return s.err == nil
}

type recordingAudit struct {
	events []ports.AuditEvent
}

func (r *recordingAudit) Record(event ports.AuditEvent) {
	r.events = append(r.events, event)
}

func guardRequest(t *testing.T, g *Guard, path string, roles ...domain.Role) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "sid-1"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(path)

	reached := false
	handler := g.Require(roles...)(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("guard must never return an error, got %v", err)
	}
	return rec, reached
}

func sessionFor(role domain.Role, rawRole string) *domain.Session {
	return &domain.Session{
		Token: "tok",
		User:  &domain.Identity{ID: "u1", Username: "alice", Role: role, RawRole: rawRole},
	}
}

func TestGuard_Unauthenticated_RedirectsToLoginWithPath(t *testing.T) {
	sessions := &stubSessions{err: domain.ErrNotAuthenticated}
	g := NewGuard(sessions, &recordingAudit{}, zerolog.Nop(), false)

	rec, reached := guardRequest(t, g, "/dashboard/admin", domain.RoleAdmin)
	if reached {
		t.Fatalf("handler must not run")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?redirect=%2Fdashboard%2Fadmin" {
		t.Fatalf("unexpected redirect target: %s", loc)
	}
}

func TestGuard_AuthenticatedOnly_Allows(t *testing.T) {
	sessions := &stubSessions{session: sessionFor(domain.RoleClient, "client")}
	g := NewGuard(sessions, &recordingAudit{}, zerolog.Nop(), false)

	rec, reached := guardRequest(t, g, "/dashboard")
	if !reached {
		t.Fatalf("expected handler to run")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGuard_RoleMember_Allows(t *testing.T) {
	sessions := &stubSessions{session: sessionFor(domain.RoleAdmin, "ADMIN")}
	g := NewGuard(sessions, &recordingAudit{}, zerolog.Nop(), true)

	_, reached := guardRequest(t, g, "/dashboard/admin", domain.RoleAdmin)
	if !reached {
		t.Fatalf("expected admin to pass the admin guard")
	}
}

func TestGuard_WrongRole_RedirectsToOwnDashboard(t *testing.T) {
	sessions := &stubSessions{session: sessionFor(domain.RoleMeterReader, "MeterReader")}
	audit := &recordingAudit{}
	g := NewGuard(sessions, audit, zerolog.Nop(), false)

	rec, reached := guardRequest(t, g, "/dashboard/admin", domain.RoleAdmin)
	if reached {
		t.Fatalf("handler must not run")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	// Authenticated users are never bounced to /login.
	if loc := rec.Header().Get("Location"); loc != "/dashboard/meter-reader" {
		t.Fatalf("expected redirect to own dashboard, got %s", loc)
	}
	if len(audit.events) != 1 || audit.events[0].Type != ports.AuditGuardDenied {
		t.Fatalf("expected one guard_denied audit event, got %+v", audit.events)
	}
}

func TestGuard_UnknownRole_ForcesLogout(t *testing.T) {
	sessions := &stubSessions{session: sessionFor(domain.RoleUnknown, "superuser")}
	audit := &recordingAudit{}
	g := NewGuard(sessions, audit, zerolog.Nop(), false)

	rec, reached := guardRequest(t, g, "/dashboard/admin", domain.RoleAdmin)
	if reached {
		t.Fatalf("handler must not run")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %s", loc)
	}
	if len(sessions.logouts) != 1 {
		t.Fatalf("expected a forced logout, got %v", sessions.logouts)
	}
	if len(audit.events) != 1 || audit.events[0].Type != ports.AuditForcedLogout {
		t.Fatalf("expected one forced_logout audit event, got %+v", audit.events)
	}
}

func TestGuard_InjectsSessionIntoContext(t *testing.T) {
	session := sessionFor(domain.RoleClient, "client")
	sessions := &stubSessions{session: session}
	g := NewGuard(sessions, &recordingAudit{}, zerolog.Nop(), false)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/dashboard/client", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "sid-1"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := g.Require(domain.RoleClient)(func(c echo.Context) error {
		got, _ := c.Get(ContextKeySession).(*domain.Session)
		if got != session {
			t.Fatalf("expected session in context")
		}
		if sid, _ := c.Get(ContextKeySessionID).(string); sid != "sid-1" {
			t.Fatalf("expected session id in context, got %q", sid)
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
