package ports

import "context"

// LoginResult is the backend's answer to a successful credential check.
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Email    string `json:"email,omitempty"`
}

// Bill is a single outstanding or settled bill as reported by the backend.
type Bill struct {
	ID          string  `json:"id"`
	Period      string  `json:"period"`
	UnitsUsed   float64 `json:"units_used"`
	Amount      float64 `json:"amount"`
	Status      string  `json:"status"`
	MeterNumber string  `json:"meter_number,omitempty"`
}

// BillingSummary is the aggregate view shown on the admin dashboard.
type BillingSummary struct {
	TotalClients     int     `json:"total_clients"`
	UnpaidBills      int     `json:"unpaid_bills"`
	RevenueThisMonth float64 `json:"revenue_this_month"`
	PendingReadings  int     `json:"pending_readings"`
}

// Tariff is one row of the current rate sheet.
type Tariff struct {
	Band        string  `json:"band"`
	UpToUnits   float64 `json:"up_to_units"`
	RatePerUnit float64 `json:"rate_per_unit"`
}

// STKPushRequest triggers a mobile-money payment prompt on the payer's phone.
type STKPushRequest struct {
	BillID      string  `json:"bill_id"`
	PhoneNumber string  `json:"phone_number"`
	Amount      float64 `json:"amount"`
}

// STKPushResult reports the backend's acceptance of the push; settlement is
// confirmed asynchronously on the backend side and is not surfaced here.
type STKPushResult struct {
	CheckoutID string `json:"checkout_id"`
	Status     string `json:"status"`
}

// BackendClient is the gateway's view of the remote billing backend. All
// methods translate transport failures into the domain error taxonomy at this
// boundary: 401 → domain.ErrInvalidCredentials, 403 → domain.ErrForbidden,
// anything else → domain.ErrBackendUnavailable.
type BackendClient interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	BillingSummary(ctx context.Context, token string) (*BillingSummary, error)
	Tariffs(ctx context.Context, token string) ([]Tariff, error)
	ClientBills(ctx context.Context, token, clientID string) ([]Bill, error)
	InitiateSTKPush(ctx context.Context, token string, req STKPushRequest) (*STKPushResult, error)
}
