package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/majiflow/billing-gateway/internal/api/middleware"
	"github.com/majiflow/billing-gateway/internal/core/domain"
	"github.com/majiflow/billing-gateway/internal/core/ports"
)

type stubSessions struct {
	loginFn func(ctx context.Context, username, password string) (string, *domain.Session, error)
	logouts []string
}

func (s *stubSessions) Login(ctx context.Context, username, password string) (string, *domain.Session, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubSessions) Logout(_ context.Context, sessionID string) error {
	s.logouts = append(s.logouts, sessionID)
	return nil
}

func (s *stubSessions) Current(context.Context, string) (*domain.Session, error) {
	return nil, domain.ErrNotAuthenticated
}

func (s *stubSessions) TokenValid(string) bool { return false }

type nopAudit struct{}

func (nopAudit) Record(ports.AuditEvent) {}

func newLoginContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestLogin_SetsCookieAndReturnsIdentity(t *testing.T) {
	sessions := &stubSessions{
		loginFn: func(_ context.Context, username, password string) (string, *domain.Session, error) {
			if username != "alice" || password != "s3cret" {
				t.Fatalf("unexpected credentials: %s %s", username, password)
			}
			return "sid-1", &domain.Session{
				Token: "tok",
				User:  &domain.Identity{ID: "u1", Username: "alice", Role: domain.RoleAdmin},
			}, nil
		},
	}
	h := NewAuthHandler(sessions, nopAudit{})

	c, rec := newLoginContext(t, `{"username":"alice","password":"s3cret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login handler: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "tok" {
		t.Fatalf("expected token in response, got %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["username"] != "alice" || user["role"] != "admin" {
		t.Fatalf("unexpected user payload: %+v", user)
	}

	cookie := findCookie(rec, middleware.SessionCookie)
	if cookie == nil || cookie.Value != "sid-1" {
		t.Fatalf("expected session cookie, got %+v", cookie)
	}
	if !cookie.HttpOnly {
		t.Fatalf("session cookie must be http-only")
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	sessions := &stubSessions{
		loginFn: func(context.Context, string, string) (string, *domain.Session, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(sessions, nopAudit{})

	c, rec := newLoginContext(t, `{"username":"alice","password":"wrong"}`)
	err := h.Login(c)
	if err == nil {
		t.Fatalf("expected error")
	}

	// The error handler owns status mapping; the handler passes the domain
	// error through untouched.
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if findCookie(rec, middleware.SessionCookie) != nil {
		t.Fatalf("failed login must not set a session cookie")
	}
}

func TestLogin_MissingFields(t *testing.T) {
	sessions := &stubSessions{
		loginFn: func(context.Context, string, string) (string, *domain.Session, error) {
			t.Fatalf("service must not be called")
			return "", nil, nil
		},
	}
	h := NewAuthHandler(sessions, nopAudit{})

	c, _ := newLoginContext(t, `{"username":"alice"}`)
	err := h.Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestLogout_ClearsCookieAndIsIdempotent(t *testing.T) {
	sessions := &stubSessions{
		loginFn: func(context.Context, string, string) (string, *domain.Session, error) {
			return "", nil, domain.ErrBackendUnavailable
		},
	}
	h := NewAuthHandler(sessions, nopAudit{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "sid-1"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got := sessions.logouts; len(got) != 1 || got[0] != "sid-1" {
		t.Fatalf("expected logout for sid-1, got %v", got)
	}

	cookie := findCookie(rec, middleware.SessionCookie)
	if cookie == nil || cookie.MaxAge != -1 {
		t.Fatalf("expected expired session cookie, got %+v", cookie)
	}

	// Logging out without any session is still a success.
	req2 := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec2 := httptest.NewRecorder()
	if err := h.Logout(e.NewContext(req2, rec2)); err != nil {
		t.Fatalf("anonymous logout: %v", err)
	}
	if rec2.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec2.Code)
	}
}

func TestMe_ReturnsSessionUser(t *testing.T) {
	h := NewAuthHandler(&stubSessions{}, nopAudit{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeySession, &domain.Session{
		Token: "tok",
		User:  &domain.Identity{Username: "alice", Role: domain.RoleClient},
	})

	if err := h.Me(c); err != nil {
		t.Fatalf("me: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var user map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if user["username"] != "alice" {
		t.Fatalf("unexpected payload: %+v", user)
	}
}

func TestMe_WithoutGuardContext(t *testing.T) {
	h := NewAuthHandler(&stubSessions{}, nopAudit{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	err := h.Me(e.NewContext(req, rec))

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
