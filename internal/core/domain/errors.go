package domain

import "errors"

// Error taxonomy for the auth subsystem. Services wrap these sentinels with
// context; the HTTP error handler translates them into response envelopes.
var (
	// ErrValidation covers missing or malformed input.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials is returned on login for both an unknown email
	// and a wrong password, so callers cannot tell which one failed.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken covers malformed, expired, revoked, and wrong-kind
	// tokens presented to the auth flows.
	ErrInvalidToken = errors.New("invalid token")

	// ErrForbidden means the caller is authenticated but fails a role or
	// ownership check.
	ErrForbidden = errors.New("access forbidden")

	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already exists")
)
