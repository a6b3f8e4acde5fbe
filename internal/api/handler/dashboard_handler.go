package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/majiflow/billing-gateway/internal/api/middleware"
	"github.com/majiflow/billing-gateway/internal/cache"
	"github.com/majiflow/billing-gateway/internal/core/domain"
	"github.com/majiflow/billing-gateway/internal/core/ports"
)

// DashboardHandler serves the role-specific dashboard data, memoising
// backend reads through the request cache.
type DashboardHandler struct {
	backend  ports.BackendClient
	cache    *cache.Cache
	sessions ports.SessionService
}

func NewDashboardHandler(backend ports.BackendClient, c *cache.Cache, sessions ports.SessionService) *DashboardHandler {
	return &DashboardHandler{backend: backend, cache: c, sessions: sessions}
}

// Generic answers /dashboard, the fallback landing for any authenticated
// user; it simply points at the caller's own dashboard.
func (h *DashboardHandler) Generic(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{
		"dashboard": session.User.Role.DashboardRoute(),
	})
}

// Admin serves the admin billing summary.
//
// @Summary      Admin dashboard
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  ports.BillingSummary
// @Router       /dashboard/admin [get]
func (h *DashboardHandler) Admin(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	summary, err := h.cache.Get(c.Request().Context(), "billing:summary", func(ctx context.Context) (any, error) {
		return h.backend.BillingSummary(ctx, session.Token)
	})
	if err != nil {
		return h.backendErr(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

// MeterReader serves the current tariff sheet used when capturing readings.
//
// @Summary      Meter reader dashboard
// @Tags         dashboard
// @Produce      json
// @Success      200  {array}  ports.Tariff
// @Router       /dashboard/meter-reader [get]
func (h *DashboardHandler) MeterReader(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	tariffs, err := h.cache.Get(c.Request().Context(), "tariffs", func(ctx context.Context) (any, error) {
		return h.backend.Tariffs(ctx, session.Token)
	})
	if err != nil {
		return h.backendErr(c, err)
	}
	return c.JSON(http.StatusOK, tariffs)
}

// Client serves the caller's own bills, cached per client id.
//
// @Summary      Client dashboard
// @Tags         dashboard
// @Produce      json
// @Success      200  {array}  ports.Bill
// @Router       /dashboard/client [get]
func (h *DashboardHandler) Client(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	user := session.User
	bills, err := h.cache.Get(c.Request().Context(), billsCacheKey(user.ID), func(ctx context.Context) (any, error) {
		return h.backend.ClientBills(ctx, session.Token, user.ID)
	})
	if err != nil {
		return h.backendErr(c, err)
	}
	return c.JSON(http.StatusOK, bills)
}

// backendErr handles a failed backend read. A 401 on an authenticated call
// means the backend no longer honours the token, so the session is closed
// before the error surfaces.
func (h *DashboardHandler) backendErr(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrInvalidCredentials) {
		_ = h.sessions.Logout(c.Request().Context(), middleware.SessionID(c))
		middleware.ClearSessionCookie(c)
		return domain.ErrNotAuthenticated
	}
	return err
}

func billsCacheKey(clientID string) string {
	return "bills:" + clientID
}
