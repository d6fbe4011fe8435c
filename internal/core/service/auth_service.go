package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/adminsync/portal-api/internal/core/domain"
	"github.com/adminsync/portal-api/internal/core/ports"
	"github.com/adminsync/portal-api/internal/core/token"
	"github.com/adminsync/portal-api/internal/pkg/password"
)

const minPasswordLength = 6

// AuthService implements the authentication flows: login, logout, token
// refresh, and the password lifecycle. Each operation is a single-step
// transaction against one user record.
type AuthService struct {
	users      ports.UserRepository
	tokens     *token.Service
	notifier   ports.Notifier
	log        zerolog.Logger
	bcryptCost int
	now        func() time.Time
}

func NewAuthService(users ports.UserRepository, tokens *token.Service, notifier ports.Notifier, log zerolog.Logger, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		notifier:   notifier,
		log:        log,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

// Login verifies credentials, issues an access/refresh token pair, and
// persists the refresh token as the user's single active session. A login
// overwrites any previously stored refresh token, so a second login
// invalidates the first session's refresh token.
func (s *AuthService) Login(ctx context.Context, email, pwd string) (*ports.LoginResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || pwd == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Same error as a wrong password so callers cannot probe
			// which emails are registered.
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(user.PasswordHash, pwd) {
		return nil, domain.ErrInvalidCredentials
	}

	accessToken, err := s.tokens.IssueAccess(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refreshToken, err := s.tokens.IssueRefresh(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	now := s.now().UTC()
	user.RefreshToken = refreshToken
	user.LastLoginAt = &now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("login successful")

	return &ports.LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.Public(),
	}, nil
}

// Logout clears the stored refresh token. Logging out an already logged-out
// or deleted user succeeds silently.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}
	if user.RefreshToken == "" {
		return nil
	}
	user.RefreshToken = ""
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.log.Info().Str("user_id", userID).Msg("logged out")
	return nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// presented token must exactly match the user's stored refresh token:
// a token from before a logout or a newer login is rejected. The refresh
// token is not rotated here.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", fmt.Errorf("%w: refresh token is required", domain.ErrValidation)
	}

	userID, err := s.tokens.Verify(refreshToken, token.KindRefresh)
	if err != nil {
		return "", domain.ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidToken
		}
		return "", err
	}

	if user.RefreshToken != refreshToken {
		return "", domain.ErrInvalidToken
	}

	accessToken, err := s.tokens.IssueAccess(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}
	return accessToken, nil
}

// ChangePassword verifies the current password and replaces the stored hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return fmt.Errorf("%w: current and new password are required", domain.ErrValidation)
	}
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("%w: new password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !password.Verify(user.PasswordHash, currentPassword) {
		return domain.ErrInvalidCredentials
	}

	hash, err := password.Hash(newPassword, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("persist password: %w", err)
	}

	s.log.Info().Str("user_id", userID).Msg("password changed")
	return nil
}

// ForgotPassword issues a reset token, stores it with its expiry on the user
// record, and hands it to the notifier for delivery. An unknown email
// surfaces as not-found, which reveals whether the address is registered;
// kept to match the portal's existing behaviour.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return "", fmt.Errorf("%w: email is required", domain.ErrValidation)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	resetToken, err := s.tokens.IssueReset(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue reset token: %w", err)
	}

	expiry := s.now().UTC().Add(s.tokens.ResetTTL())
	user.ResetToken = resetToken
	user.ResetTokenExpiry = &expiry
	if err := s.users.Update(ctx, user); err != nil {
		return "", fmt.Errorf("persist reset token: %w", err)
	}

	if err := s.notifier.SendPasswordReset(ctx, user.Email, resetToken); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("reset notification failed")
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset token issued")
	return resetToken, nil
}

// ResetPassword consumes a reset token: it must verify as kind reset, match
// the user's stored single-slot token, and be within its stored expiry.
// On success the password is replaced and the reset fields cleared, so the
// token cannot be used twice.
func (s *AuthService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	if resetToken == "" || newPassword == "" {
		return fmt.Errorf("%w: reset token and new password are required", domain.ErrValidation)
	}
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("%w: new password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}

	userID, err := s.tokens.Verify(resetToken, token.KindReset)
	if err != nil {
		return domain.ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidToken
		}
		return err
	}

	if user.ResetToken != resetToken || !user.HasActiveResetToken(s.now().UTC()) {
		return domain.ErrInvalidToken
	}

	hash, err := password.Hash(newPassword, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash
	user.ResetToken = ""
	user.ResetTokenExpiry = nil
	// A completed reset also ends any active session.
	user.RefreshToken = ""
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("persist password: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset completed")
	return nil
}
