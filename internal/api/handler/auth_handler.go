package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/majiflow/billing-gateway/internal/api/metrics"
	"github.com/majiflow/billing-gateway/internal/api/middleware"
	"github.com/majiflow/billing-gateway/internal/core/domain"
	"github.com/majiflow/billing-gateway/internal/core/ports"
)

type AuthHandler struct {
	sessions ports.SessionService
	audit    ports.AuditRecorder
}

func NewAuthHandler(sessions ports.SessionService, audit ports.AuditRecorder) *AuthHandler {
	return &AuthHandler{sessions: sessions, audit: audit}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string           `json:"token"`
	User  *domain.Identity `json:"user"`
}

// Login authenticates against the billing backend and opens a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sessionID, session, err := h.sessions.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		h.audit.Record(ports.AuditEvent{
			Type:     ports.AuditLoginFailure,
			Username: req.Username,
			Detail:   loginFailureDetail(err),
		})
		metrics.LoginsTotal.WithLabelValues(loginFailureDetail(err)).Inc()
		return err
	}

	h.audit.Record(ports.AuditEvent{
		Type:     ports.AuditLoginSuccess,
		Username: session.User.Username,
		Role:     string(session.User.Role),
	})
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	middleware.SetSessionCookie(c, sessionID)
	return c.JSON(http.StatusOK, loginResponse{Token: session.Token, User: session.User})
}

// Logout closes the session. Idempotent: logging out while already logged
// out succeeds.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sessionID := middleware.SessionID(c)
	if err := h.sessions.Logout(c.Request().Context(), sessionID); err != nil {
		return err
	}
	middleware.ClearSessionCookie(c)
	return c.NoContent(http.StatusNoContent)
}

// Me returns the current identity. Guarded, no role requirement.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.Identity
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, session.User)
}

// LoginPrompt answers GET /login, the guard's redirect target. It echoes the
// preserved path so the front-end can return the user after authentication.
func (h *AuthHandler) LoginPrompt(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message":  "authentication required",
		"redirect": c.QueryParam("redirect"),
	})
}

func loginFailureDetail(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	default:
		return "error"
	}
}
