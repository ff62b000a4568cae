package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole enforces role-based access on routes behind Auth.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(RoleKey).(string)
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"message": "forbidden"})
			}
			return next(c)
		}
	}
}
