// Package auth implements credential verification and role-gated access
// control: bcrypt password hashing, the password and token authentication
// strategies, and the role guard.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a salted bcrypt digest from the plaintext.
// The plaintext is never logged and never returned alongside errors.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("password hashing error: %w", err)
	}
	return string(h), nil
}

// CheckPassword reports whether the plaintext matches the digest.
// Malformed digests verify as false rather than failing.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
