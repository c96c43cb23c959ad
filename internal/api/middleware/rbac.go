package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/squadbase/player-catalog/internal/core/domain"
)

// RBAC enforces role-based access control. An unauthenticated caller is sent
// to login; an authenticated caller with the wrong role gets 403 — the two
// rejections are deliberately distinct.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller := Caller(c)
			if !caller.IsAuthenticated() {
				if wantsJSON(c) {
					return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
				}
				return c.Redirect(http.StatusFound, "/login")
			}
			if _, ok := allowed[caller.Role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// RequireAdmin gates mutation routes to administrators.
func RequireAdmin() echo.MiddlewareFunc {
	return RBAC(domain.RoleAdmin)
}
