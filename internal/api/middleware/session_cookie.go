package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// SessionCookie is the browser cookie carrying the opaque session id. The
// bearer token itself never leaves the gateway's session store.
const SessionCookie = "bg_session"

// SessionID pulls the session id from the request. The cookie is the primary
// carrier; a bearer-style header with the session id is accepted for
// non-browser API clients.
func SessionID(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return c.Request().Header.Get("X-Session-ID")
}

// SetSessionCookie installs the session id cookie on the response.
func SetSessionCookie(c echo.Context, sessionID string) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session id cookie.
func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
