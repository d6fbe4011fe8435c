package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/adminsync/portal-api/internal/core/domain"
)

func invokeGate(t *testing.T, mw echo.MiddlewareFunc, role domain.Role, userID, paramID string) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if paramID != "" {
		c.SetParamNames("id")
		c.SetParamValues(paramID)
	}
	c.Set(CtxUserID, userID)
	c.Set(CtxRole, string(role))

	return mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)
}

func assertForbidden(t *testing.T, err error) {
	t.Helper()
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", httpErr.Code)
	}
}

func TestAdminOnly(t *testing.T) {
	if err := invokeGate(t, AdminOnly(), domain.RoleAdmin, "user-1", ""); err != nil {
		t.Fatalf("admin should pass: %v", err)
	}
	for _, role := range []domain.Role{domain.RoleEmployee, domain.RoleCustomer, ""} {
		assertForbidden(t, invokeGate(t, AdminOnly(), role, "user-1", ""))
	}
}

func TestEmployeeOrAdmin(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleEmployee} {
		if err := invokeGate(t, EmployeeOrAdmin(), role, "user-1", ""); err != nil {
			t.Fatalf("%s should pass: %v", role, err)
		}
	}
	assertForbidden(t, invokeGate(t, EmployeeOrAdmin(), domain.RoleCustomer, "user-1", ""))
	assertForbidden(t, invokeGate(t, EmployeeOrAdmin(), domain.Role("manager"), "user-1", ""))
}

func TestSelfOrAdmin(t *testing.T) {
	// Owner of the resource passes regardless of role.
	if err := invokeGate(t, SelfOrAdmin(), domain.RoleCustomer, "user-1", "user-1"); err != nil {
		t.Fatalf("self should pass: %v", err)
	}
	// Admins pass for any resource.
	if err := invokeGate(t, SelfOrAdmin(), domain.RoleAdmin, "user-9", "user-1"); err != nil {
		t.Fatalf("admin should pass: %v", err)
	}
	// Everyone else is rejected, including employees.
	assertForbidden(t, invokeGate(t, SelfOrAdmin(), domain.RoleEmployee, "user-9", "user-1"))
	// A missing identity never matches an id.
	assertForbidden(t, invokeGate(t, SelfOrAdmin(), domain.RoleCustomer, "", ""))
}
