package domain

// Identity is the projection of the authenticated user kept alongside the
// token. The role is already canonical (see NormalizeRole); RawRole preserves
// the backend's original spelling for display and audit.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	RawRole  string `json:"raw_role,omitempty"`
	Email    string `json:"email,omitempty"`
}

// HasRole reports whether the identity holds the given canonical role.
func (i *Identity) HasRole(role Role) bool {
	return i != nil && i.Role == role
}

// HasAnyRole reports whether the identity holds any of the given roles.
// An empty list never matches.
func (i *Identity) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if i.HasRole(r) {
			return true
		}
	}
	return false
}

// Session pairs the bearer token with the cached user projection. The token
// drives truth: the user half is only a display/routing convenience, and both
// halves are always written and removed together.
type Session struct {
	Token string    `json:"token"`
	User  *Identity `json:"user"`
}

// DashboardRouteFor returns the landing path for an identity, or /login when
// there is no identity at all.
func DashboardRouteFor(user *Identity) string {
	if user == nil {
		return "/login"
	}
	return user.Role.DashboardRoute()
}
