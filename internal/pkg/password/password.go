// Package password wraps bcrypt for credential hashing. Plaintext passwords
// are never logged or returned.
package password

import "golang.org/x/crypto/bcrypt"

// Hash derives a one-way hash of plain using the given bcrypt cost. A cost
// outside bcrypt's valid range falls back to the library default, which
// verifies in roughly 100ms on commodity hardware.
func Hash(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plain matches the stored hash.
func Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
