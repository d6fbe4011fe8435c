package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/adminsync/portal-api/internal/api/metrics"
	"github.com/adminsync/portal-api/internal/core/domain"
	"github.com/adminsync/portal-api/internal/core/ports"
	"github.com/adminsync/portal-api/internal/core/token"
)

// Context keys set by Auth for downstream handlers and role gates.
const (
	CtxUser   = "user"
	CtxUserID = "user_id"
	CtxRole   = "role"
)

const bearerPrefix = "Bearer "

// Auth authenticates the request: it requires a "Bearer <token>" header,
// verifies the token as an access token, loads the referenced user, and
// attaches the identity (without credential fields) to the request context.
// A user deleted since the token was issued is rejected.
func Auth(tokens *token.Service, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			raw, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok || raw == "" {
				metrics.AuthFailuresTotal.WithLabelValues("malformed_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			userID, err := tokens.Verify(raw, token.KindAccess)
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					metrics.AuthFailuresTotal.WithLabelValues("unknown_user").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "user no longer exists")
				}
				return err
			}

			identity := user.Public()
			c.Set(CtxUser, &identity)
			c.Set(CtxUserID, identity.ID)
			c.Set(CtxRole, string(identity.Role))

			return next(c)
		}
	}
}
