package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/adminsync/portal-api/internal/api/middleware"
	"github.com/adminsync/portal-api/internal/core/domain"
	"github.com/adminsync/portal-api/internal/core/ports"
)

type stubAuthService struct {
	loginResult *ports.LoginResult
	loginErr    error

	refreshToken string
	refreshErr   error

	resetToken string
	resetErr   error

	loggedOut        []string
	changedPasswords [][3]string
	resetCalls       [][2]string
}

func (s *stubAuthService) Login(_ context.Context, email, password string) (*ports.LoginResult, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.loginResult, nil
}

func (s *stubAuthService) Logout(_ context.Context, userID string) error {
	s.loggedOut = append(s.loggedOut, userID)
	return nil
}

func (s *stubAuthService) Refresh(_ context.Context, refreshToken string) (string, error) {
	if s.refreshErr != nil {
		return "", s.refreshErr
	}
	return s.refreshToken, nil
}

func (s *stubAuthService) ChangePassword(_ context.Context, userID, currentPassword, newPassword string) error {
	s.changedPasswords = append(s.changedPasswords, [3]string{userID, currentPassword, newPassword})
	return nil
}

func (s *stubAuthService) ForgotPassword(_ context.Context, email string) (string, error) {
	if s.resetErr != nil {
		return "", s.resetErr
	}
	return s.resetToken, nil
}

func (s *stubAuthService) ResetPassword(_ context.Context, resetToken, newPassword string) error {
	if s.resetErr != nil {
		return s.resetErr
	}
	s.resetCalls = append(s.resetCalls, [2]string{resetToken, newPassword})
	return nil
}

var _ ports.AuthService = (*stubAuthService)(nil)

func newJSONContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestAuthHandler_Login_Success(t *testing.T) {
	svc := &stubAuthService{loginResult: &ports.LoginResult{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		User:         domain.User{ID: "user-1", Email: "a@x.com", Role: domain.RoleEmployee},
	}}
	h := NewAuthHandler(svc)

	c, rec := newJSONContext(t, http.MethodPost, "/api/auth/login", `{"email":"a@x.com","password":"secret1"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}

	env := decodeEnvelope(t, rec)
	if env.Status != "success" || env.Code != http.StatusOK {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	data, ok := env.Data.(map[string]any)
	if !ok {
		t.Fatalf("data is not an object: %T", env.Data)
	}
	if data["accessToken"] != "access-token" || data["refreshToken"] != "refresh-token" {
		t.Fatalf("tokens missing from response: %v", data)
	}
	user, ok := data["user"].(map[string]any)
	if !ok {
		t.Fatalf("user missing from response: %v", data)
	}
	if user["email"] != "a@x.com" {
		t.Fatalf("unexpected user payload: %v", user)
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Fatalf("password hash serialized in login response")
	}
}

func TestAuthHandler_Login_ValidationErrors(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	for _, body := range []string{
		`{`,                                      // malformed JSON
		`{}`,                                     // both fields missing
		`{"email":"a@x.com"}`,                    // missing password
		`{"password":"secret1"}`,                 // missing email
		`{"email":"not-an-email","password":"x"}`, // bad email format
	} {
		c, _ := newJSONContext(t, http.MethodPost, "/api/auth/login", body)
		err := h.Login(c)
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("body %q: expected ErrValidation, got %v", body, err)
		}
	}
}

func TestAuthHandler_Login_ServiceError(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{loginErr: domain.ErrInvalidCredentials})

	c, _ := newJSONContext(t, http.MethodPost, "/api/auth/login", `{"email":"a@x.com","password":"wrong12"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	c, rec := newJSONContext(t, http.MethodPost, "/api/auth/logout", "")
	c.Set(middleware.CtxUser, &domain.User{ID: "user-1", Role: domain.RoleEmployee})
	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	if len(svc.loggedOut) != 1 || svc.loggedOut[0] != "user-1" {
		t.Fatalf("logout calls = %v", svc.loggedOut)
	}
	env := decodeEnvelope(t, rec)
	if env.Status != "success" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestAuthHandler_Logout_MissingIdentity(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newJSONContext(t, http.MethodPost, "/api/auth/logout", "")
	err := h.Logout(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for missing identity, got %v", err)
	}
}

func TestAuthHandler_Refresh_Success(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{refreshToken: "new-access"})

	c, rec := newJSONContext(t, http.MethodPost, "/api/auth/refresh-token", `{"refreshToken":"refresh"}`)
	if err := h.Refresh(c); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	env := decodeEnvelope(t, rec)
	data, _ := env.Data.(map[string]any)
	if data["accessToken"] != "new-access" {
		t.Fatalf("unexpected refresh response: %+v", env)
	}
}

func TestAuthHandler_Refresh_Errors(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{refreshErr: domain.ErrInvalidToken})

	c, _ := newJSONContext(t, http.MethodPost, "/api/auth/refresh-token", `{}`)
	if err := h.Refresh(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("empty body: expected ErrValidation, got %v", err)
	}

	c, _ = newJSONContext(t, http.MethodPost, "/api/auth/refresh-token", `{"refreshToken":"bad"}`)
	if err := h.Refresh(c); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	c, _ := newJSONContext(t, http.MethodPut, "/api/auth/change-password",
		`{"currentPassword":"old-one","newPassword":"new-one"}`)
	c.Set(middleware.CtxUser, &domain.User{ID: "user-1", Role: domain.RoleEmployee})
	if err := h.ChangePassword(c); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	want := [3]string{"user-1", "old-one", "new-one"}
	if len(svc.changedPasswords) != 1 || svc.changedPasswords[0] != want {
		t.Fatalf("change password calls = %v", svc.changedPasswords)
	}
}

func TestAuthHandler_ChangePassword_ShortNewPassword(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newJSONContext(t, http.MethodPut, "/api/auth/change-password",
		`{"currentPassword":"old-one","newPassword":"tiny"}`)
	c.Set(middleware.CtxUser, &domain.User{ID: "user-1", Role: domain.RoleEmployee})
	if err := h.ChangePassword(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAuthHandler_ForgotPassword(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{resetToken: "reset-token"})

	c, rec := newJSONContext(t, http.MethodPost, "/api/auth/forgot-password", `{"email":"a@x.com"}`)
	if err := h.ForgotPassword(c); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}

	env := decodeEnvelope(t, rec)
	data, _ := env.Data.(map[string]any)
	if data["resetToken"] != "reset-token" {
		t.Fatalf("unexpected forgot-password response: %+v", env)
	}
}

func TestAuthHandler_ForgotPassword_UnknownEmail(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{resetErr: domain.ErrUserNotFound})

	c, _ := newJSONContext(t, http.MethodPost, "/api/auth/forgot-password", `{"email":"ghost@x.com"}`)
	if err := h.ForgotPassword(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthHandler_ResetPassword(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	c, rec := newJSONContext(t, http.MethodPost, "/api/auth/reset-password",
		`{"resetToken":"reset-token","newPassword":"new-one"}`)
	if err := h.ResetPassword(c); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}

	want := [2]string{"reset-token", "new-one"}
	if len(svc.resetCalls) != 1 || svc.resetCalls[0] != want {
		t.Fatalf("reset calls = %v", svc.resetCalls)
	}
	env := decodeEnvelope(t, rec)
	if env.Status != "success" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestAuthHandler_Profile(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, rec := newJSONContext(t, http.MethodGet, "/api/auth/profile", "")
	c.Set(middleware.CtxUser, &domain.User{ID: "user-1", Email: "a@x.com", Role: domain.RoleAdmin})
	if err := h.Profile(c); err != nil {
		t.Fatalf("Profile: %v", err)
	}

	env := decodeEnvelope(t, rec)
	data, _ := env.Data.(map[string]any)
	if data["id"] != "user-1" || data["role"] != "admin" {
		t.Fatalf("unexpected profile payload: %+v", env)
	}
}
