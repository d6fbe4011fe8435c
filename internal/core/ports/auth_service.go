package ports

import (
	"context"

	"github.com/adminsync/portal-api/internal/core/domain"
)

// LoginResult is returned on successful authentication. User carries no
// credential or session fields.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         domain.User
}

// AuthService defines the authentication flows.
type AuthService interface {
	// Login verifies credentials and starts a session. The same error is
	// returned for an unknown email and a wrong password.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Logout clears the user's session state. Idempotent.
	Logout(ctx context.Context, userID string) error
	// Refresh exchanges a valid, current refresh token for a new access
	// token. The refresh token itself is not rotated.
	Refresh(ctx context.Context, refreshToken string) (string, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	// ForgotPassword issues a reset token, stores it on the user record,
	// and hands it to the notifier.
	ForgotPassword(ctx context.Context, email string) (string, error)
	// ResetPassword consumes a reset token and sets a new password.
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
}
