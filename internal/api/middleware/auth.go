package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/squadbase/player-catalog/internal/core/ports"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "catalog_session"

// Session resolves the caller's identity from either the session cookie or a
// bearer token and injects it into the echo context. Anonymous requests pass
// through unauthenticated; the Require* guards decide what to do with them.
func Session(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if session := resolve(c, auth); session != nil {
				c.Set("username", session.Username)
				c.Set("role", session.Role)
				c.Set("session_token", session.Token)
			}
			return next(c)
		}
	}
}

func resolve(c echo.Context, auth ports.AuthService) *ports.Session {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if session, err := auth.ResolveSession(c.Request().Context(), cookie.Value); err == nil {
			return session
		}
	}

	header := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		if session, err := auth.ResolveBearer(parts[1]); err == nil {
			return session
		}
	}

	return nil
}

// Caller extracts the identity injected by Session. A zero Caller means the
// request is anonymous.
func Caller(c echo.Context) ports.Caller {
	username, _ := c.Get("username").(string)
	role, _ := c.Get("role").(string)
	return ports.Caller{Username: username, Role: role}
}

// RequireAuth rejects anonymous callers. Browser requests are redirected to
// the login page; API clients get a bare 401.
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !Caller(c).IsAuthenticated() {
			if wantsJSON(c) {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			return c.Redirect(http.StatusFound, "/login")
		}
		return next(c)
	}
}

// wantsJSON reports whether the client negotiated a JSON response. Form
// posts and plain browser navigation get redirects instead of status codes.
func wantsJSON(c echo.Context) bool {
	accept := c.Request().Header.Get(echo.HeaderAccept)
	if strings.Contains(accept, echo.MIMEApplicationJSON) {
		return true
	}
	return strings.Contains(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
}
