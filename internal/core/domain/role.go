package domain

import "strings"

// Role is the canonical role enumeration. Values arriving from the billing
// backend vary in case, and legacy records use "customer" for the client
// role; NormalizeRole folds all of that into exactly one canonical value per
// role at session creation so downstream comparisons never special-case
// aliases.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleMeterReader Role = "meterreader"
	RoleClient      Role = "client"

	// RoleUnknown marks a role string the gateway does not recognise. A
	// session carrying it is inconsistent and gets force-logged-out by the
	// guard.
	RoleUnknown Role = ""
)

// NormalizeRole maps a raw role string from the backend to its canonical
// Role. The second return reports whether the input was recognised.
func NormalizeRole(raw string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "admin":
		return RoleAdmin, true
	case "meterreader", "meter_reader", "meter-reader":
		return RoleMeterReader, true
	case "client", "customer":
		return RoleClient, true
	}
	return RoleUnknown, false
}

// DashboardRoute returns the landing path for the role. Unrecognised roles
// fall back to the generic dashboard rather than a dead end.
func (r Role) DashboardRoute() string {
	switch r {
	case RoleAdmin:
		return "/dashboard/admin"
	case RoleMeterReader:
		return "/dashboard/meter-reader"
	case RoleClient:
		return "/dashboard/client"
	}
	return "/dashboard"
}
