package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/majiflow/billing-gateway/internal/api/middleware"
	"github.com/majiflow/billing-gateway/internal/core/domain"
)

// ctxSession extracts the session injected by the guard and fast-fails when a
// handler is somehow reached without it. Presence of a non-nil user proves
// the guard ran and the session passed its checks.
func ctxSession(c echo.Context) (*domain.Session, error) {
	session, _ := c.Get(middleware.ContextKeySession).(*domain.Session)
	if session == nil || session.User == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return session, nil
}
