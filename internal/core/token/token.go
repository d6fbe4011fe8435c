// Package token issues and verifies the signed, time-bounded tokens used by
// the auth flows. All tokens are HS256 JWTs carrying a kind claim so a token
// issued for one purpose cannot be replayed in another flow.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Kind discriminates the three token purposes.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
	KindReset   Kind = "reset"
)

const (
	defaultAccessTTL  = 7 * 24 * time.Hour
	defaultRefreshTTL = 7 * 24 * time.Hour
	defaultResetTTL   = time.Hour
)

var (
	// ErrExpired marks a well-formed, correctly signed token past its expiry.
	ErrExpired = errors.New("token expired")
	// ErrInvalid marks a malformed or tampered token, or one signed with a
	// different secret.
	ErrInvalid = errors.New("token invalid")
	// ErrWrongKind marks a valid token presented to the wrong flow.
	ErrWrongKind = errors.New("unexpected token kind")
)

// Config carries the signing secret and per-kind lifetimes. It is built once
// at startup and handed to NewService; nothing in this package reads globals.
type Config struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	ResetTTL   time.Duration
}

// Claims is the JWT payload: registered claims plus the kind discriminator.
type Claims struct {
	Kind Kind `json:"kind"`
	jwt.RegisteredClaims
}

// Service signs and verifies tokens.
type Service struct {
	cfg Config
	now func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithNow overrides the clock, primarily for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService builds a Service, applying the default lifetimes for any TTL
// left unset.
func NewService(cfg Config, opts ...Option) *Service {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = defaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = defaultRefreshTTL
	}
	if cfg.ResetTTL <= 0 {
		cfg.ResetTTL = defaultResetTTL
	}
	s := &Service{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IssueAccess signs a short-lived access token for userID.
func (s *Service) IssueAccess(userID string) (string, error) {
	return s.issue(userID, KindAccess, s.cfg.AccessTTL)
}

// IssueRefresh signs a refresh token for userID.
func (s *Service) IssueRefresh(userID string) (string, error) {
	return s.issue(userID, KindRefresh, s.cfg.RefreshTTL)
}

// IssueReset signs a single-purpose password-reset token for userID.
func (s *Service) IssueReset(userID string) (string, error) {
	return s.issue(userID, KindReset, s.cfg.ResetTTL)
}

// ResetTTL exposes the reset-token lifetime so callers can persist a
// matching expiry alongside the token.
func (s *Service) ResetTTL() time.Duration {
	return s.cfg.ResetTTL
}

func (s *Service) issue(userID string, kind Kind, ttl time.Duration) (string, error) {
	now := s.now().UTC()
	claims := Claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.cfg.Secret))
}

// Verify checks signature, expiry, and kind, returning the subject user id.
// Expiry failures surface as ErrExpired; every other verification failure is
// ErrInvalid, except a kind mismatch which is ErrWrongKind.
func (s *Service) Verify(tokenString string, kind Kind) (string, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.cfg.Secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpired
		}
		return "", ErrInvalid
	}
	if !tkn.Valid || claims.Subject == "" {
		return "", ErrInvalid
	}
	if claims.Kind != kind {
		return "", ErrWrongKind
	}
	return claims.Subject, nil
}
