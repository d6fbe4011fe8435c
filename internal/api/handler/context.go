package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/adminsync/portal-api/internal/api/middleware"
	"github.com/adminsync/portal-api/internal/core/domain"
)

// identity extracts the authenticated user injected by the Auth middleware.
// Its presence proves the middleware ran; a handler reached without it is a
// wiring error and fails closed with 401.
func identity(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.CtxUser).(*domain.User)
	if user == nil || user.ID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication identity")
	}
	return user, nil
}
