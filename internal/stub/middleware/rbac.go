package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agrowork/agrowork-cli/internal/core/domain"
)

// RequireRole gates a route to one or more marketplace roles. Replies with
// the contract's {message} error body so the client's error normalization
// applies unchanged.
func RequireRole(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[domain.Role(role)]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"message": "forbidden for this role"})
			}
			return next(c)
		}
	}
}
