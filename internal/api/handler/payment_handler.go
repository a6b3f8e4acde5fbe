package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/majiflow/billing-gateway/internal/api/middleware"
	"github.com/majiflow/billing-gateway/internal/cache"
	"github.com/majiflow/billing-gateway/internal/core/domain"
	"github.com/majiflow/billing-gateway/internal/core/ports"
)

// PaymentHandler triggers the mobile-money payment flow. The backend owns
// the actual gateway integration; this handler only forwards the trigger and
// invalidates the caller's cached bills so the next dashboard read reflects
// the pending payment.
type PaymentHandler struct {
	backend  ports.BackendClient
	cache    *cache.Cache
	sessions ports.SessionService
}

func NewPaymentHandler(backend ports.BackendClient, c *cache.Cache, sessions ports.SessionService) *PaymentHandler {
	return &PaymentHandler{backend: backend, cache: c, sessions: sessions}
}

type stkPushRequest struct {
	BillID      string  `json:"bill_id" validate:"required"`
	PhoneNumber string  `json:"phone_number" validate:"required,e164"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
}

// STKPush asks the backend to send a payment prompt to the payer's phone.
//
// @Summary      Trigger STK push payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      stkPushRequest  true  "Payment details"
// @Success      202   {object}  ports.STKPushResult
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /payments/stk-push [post]
func (h *PaymentHandler) STKPush(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req stkPushRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.backend.InitiateSTKPush(c.Request().Context(), session.Token, ports.STKPushRequest{
		BillID:      req.BillID,
		PhoneNumber: req.PhoneNumber,
		Amount:      req.Amount,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			_ = h.sessions.Logout(c.Request().Context(), middleware.SessionID(c))
			middleware.ClearSessionCookie(c)
			return domain.ErrNotAuthenticated
		}
		return err
	}

	// The bill list just changed server-side; drop the stale copy.
	h.cache.Remove(billsCacheKey(session.User.ID))

	return c.JSON(http.StatusAccepted, result)
}
