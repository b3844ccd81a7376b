// Package shared provides utility functions for working with
// random strings and secure memory wiping.
package shared

import (
	"crypto/rand"
	"encoding/base64"
)

// MakeRandBase64String generates an opaque random string from size bytes of
// cryptographically secure entropy, encoded with standard base64. Session
// token values are produced this way.
//
// It returns an error if the random number generator fails.
func MakeRandBase64String(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// This is useful for removing sensitive data such as passwords from memory
// after use.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
