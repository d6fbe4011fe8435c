package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role is the closed set of roles a user can hold. Authorization decisions
// always go through the rank table below so that every gate agrees on the
// hierarchy.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleCustomer Role = "customer"
)

// roleRank orders roles from least to most privileged. Single source of
// truth consulted by every role gate.
var roleRank = map[Role]int{
	RoleCustomer: 0,
	RoleEmployee: 1,
	RoleAdmin:    2,
}

// ParseRole validates a raw role string against the closed set.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: unknown role %q", ErrValidation, s)
	}
	return r, nil
}

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether the role carries at least the privileges of min.
// Unknown roles rank below every valid role.
func (r Role) AtLeast(min Role) bool {
	rank, ok := roleRank[r]
	if !ok {
		return false
	}
	return rank >= roleRank[min]
}

// User models an account in the portal. PasswordHash and the token fields
// are secrets: they never serialize to JSON and are stripped with Public()
// before leaving the service layer.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	PhoneNumber  string     `json:"phone_number,omitempty"`
	Address      string     `json:"address,omitempty"`

	// RefreshToken is the single currently valid refresh token for this
	// user; empty means no active session.
	RefreshToken     string     `json:"-"`
	ResetToken       string     `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Public returns a copy of the user with all credential and session fields
// cleared.
func (u User) Public() User {
	u.PasswordHash = ""
	u.RefreshToken = ""
	u.ResetToken = ""
	u.ResetTokenExpiry = nil
	return u
}

// HasActiveResetToken reports whether a reset token is present and not yet
// expired at the given instant. An expired reset token is treated as absent.
func (u *User) HasActiveResetToken(now time.Time) bool {
	return u.ResetToken != "" && u.ResetTokenExpiry != nil && u.ResetTokenExpiry.After(now)
}

// NormalizeEmail lowercases and trims an email address so lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
