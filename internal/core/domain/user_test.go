package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"admin", RoleAdmin, false},
		{"employee", RoleEmployee, false},
		{"customer", RoleCustomer, false},
		{"  Admin  ", RoleAdmin, false},
		{"manager", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := ParseRole(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseRole(%q): expected error", tc.in)
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("ParseRole(%q): expected ErrValidation, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseRole(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseRole(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRole_AtLeast(t *testing.T) {
	if !RoleAdmin.AtLeast(RoleEmployee) {
		t.Fatalf("admin should rank at least employee")
	}
	if !RoleAdmin.AtLeast(RoleAdmin) {
		t.Fatalf("admin should rank at least admin")
	}
	if !RoleEmployee.AtLeast(RoleCustomer) {
		t.Fatalf("employee should rank at least customer")
	}
	if RoleEmployee.AtLeast(RoleAdmin) {
		t.Fatalf("employee must not rank at least admin")
	}
	if RoleCustomer.AtLeast(RoleEmployee) {
		t.Fatalf("customer must not rank at least employee")
	}
	if Role("manager").AtLeast(RoleCustomer) {
		t.Fatalf("unknown role must rank below every valid role")
	}
}

func TestUser_Public(t *testing.T) {
	expiry := time.Now().Add(time.Hour)
	u := User{
		ID:               "u1",
		Email:            "a@x.com",
		PasswordHash:     "hash",
		RefreshToken:     "refresh",
		ResetToken:       "reset",
		ResetTokenExpiry: &expiry,
	}

	pub := u.Public()
	if pub.PasswordHash != "" || pub.RefreshToken != "" || pub.ResetToken != "" || pub.ResetTokenExpiry != nil {
		t.Fatalf("Public() leaked credential fields: %+v", pub)
	}
	if pub.ID != "u1" || pub.Email != "a@x.com" {
		t.Fatalf("Public() dropped identity fields: %+v", pub)
	}
	if u.PasswordHash != "hash" {
		t.Fatalf("Public() must not mutate the original")
	}
}

func TestUser_HasActiveResetToken(t *testing.T) {
	now := time.Now().UTC()
	future := now.Add(time.Hour)
	past := now.Add(-time.Minute)

	u := &User{ResetToken: "tok", ResetTokenExpiry: &future}
	if !u.HasActiveResetToken(now) {
		t.Fatalf("token with future expiry should be active")
	}

	u.ResetTokenExpiry = &past
	if u.HasActiveResetToken(now) {
		t.Fatalf("expired token must be treated as absent")
	}

	u = &User{}
	if u.HasActiveResetToken(now) {
		t.Fatalf("missing token must be inactive")
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Alice@Example.COM "); got != "alice@example.com" {
		t.Fatalf("unexpected normalization: %q", got)
	}
}
