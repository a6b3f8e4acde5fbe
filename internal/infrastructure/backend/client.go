// Package backend is the HTTP client for the remote billing backend. All
// business logic, persistence, and payment processing live there; this
// client only shuttles requests and translates failures into the domain
// error taxonomy exactly once, at this edge.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/majiflow/billing-gateway/internal/api/metrics"
	"github.com/majiflow/billing-gateway/internal/core/domain"
	"github.com/majiflow/billing-gateway/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Client talks to the billing backend over HTTP. It implements
// ports.BackendClient.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// New builds a Client for the given base URL. A default timeout is applied
// when none is provided.
func New(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token and profile fields.
func (c *Client) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	var result ports.LoginResult
	err := c.do(ctx, "login", http.MethodPost, "/auth/login", "", loginPayload{Username: username, Password: password}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// BillingSummary fetches the aggregate numbers for the admin dashboard.
func (c *Client) BillingSummary(ctx context.Context, token string) (*ports.BillingSummary, error) {
	var summary ports.BillingSummary
	if err := c.do(ctx, "billing_summary", http.MethodGet, "/billing/summary", token, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Tariffs fetches the current rate sheet.
func (c *Client) Tariffs(ctx context.Context, token string) ([]ports.Tariff, error) {
	var tariffs []ports.Tariff
	if err := c.do(ctx, "tariffs", http.MethodGet, "/tariffs", token, nil, &tariffs); err != nil {
		return nil, err
	}
	return tariffs, nil
}

// ClientBills fetches the bills for one client account.
func (c *Client) ClientBills(ctx context.Context, token, clientID string) ([]ports.Bill, error) {
	var bills []ports.Bill
	path := "/clients/" + clientID + "/bills"
	if err := c.do(ctx, "client_bills", http.MethodGet, path, token, nil, &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

// InitiateSTKPush asks the backend to start a mobile-money payment prompt.
// Settlement confirmation stays on the backend side.
func (c *Client) InitiateSTKPush(ctx context.Context, token string, req ports.STKPushRequest) (*ports.STKPushResult, error) {
	var result ports.STKPushResult
	if err := c.do(ctx, "stk_push", http.MethodPost, "/payments/stk-push", token, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// do performs one round trip and decodes the response into out. Status codes
// map to the domain taxonomy: 401 → ErrInvalidCredentials, 403 →
// ErrForbidden, any other non-2xx or transport failure → ErrBackendUnavailable.
func (c *Client) do(ctx context.Context, endpoint, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode request: %v", domain.ErrBackendUnavailable, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domain.ErrBackendUnavailable, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.BackendRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(endpoint, "unavailable").Inc()
		c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("backend request failed")
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		metrics.BackendRequestsTotal.WithLabelValues(endpoint, "ok").Inc()
	case resp.StatusCode == http.StatusUnauthorized:
		metrics.BackendRequestsTotal.WithLabelValues(endpoint, "unauthorized").Inc()
		return domain.ErrInvalidCredentials
	case resp.StatusCode == http.StatusForbidden:
		metrics.BackendRequestsTotal.WithLabelValues(endpoint, "forbidden").Inc()
		return domain.ErrForbidden
	default:
		metrics.BackendRequestsTotal.WithLabelValues(endpoint, "unavailable").Inc()
		c.logger.Warn().Int("status", resp.StatusCode).Str("endpoint", endpoint).Msg("unexpected backend status")
		return fmt.Errorf("%w: status %d", domain.ErrBackendUnavailable, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrBackendUnavailable, err)
	}
	return nil
}
