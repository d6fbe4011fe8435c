package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/adminsync/portal-api/internal/core/domain"
)

// RequireRole admits identities whose role ranks at least as high as min in
// the role hierarchy. Apply after Auth.
func RequireRole(min domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if !domain.Role(role).AtLeast(min) {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
			return next(c)
		}
	}
}

// AdminOnly admits admins.
func AdminOnly() echo.MiddlewareFunc {
	return RequireRole(domain.RoleAdmin)
}

// EmployeeOrAdmin admits employees and admins.
func EmployeeOrAdmin() echo.MiddlewareFunc {
	return RequireRole(domain.RoleEmployee)
}

// SelfOrAdmin admits the user whose id matches the :id route parameter, and
// any admin. Apply after Auth.
func SelfOrAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _ := c.Get(CtxUserID).(string)
			role, _ := c.Get(CtxRole).(string)
			if userID != "" && userID == c.Param("id") {
				return next(c)
			}
			if domain.Role(role) == domain.RoleAdmin {
				return next(c)
			}
			return echo.NewHTTPError(http.StatusForbidden, "not authorized to access this resource")
		}
	}
}
