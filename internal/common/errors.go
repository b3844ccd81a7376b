// Package common defines shared constants and sentinel errors used across
// the LabPlatform API. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("duplicate email")

	// Authentication errors.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")

	// Authorization errors.
	ErrUnauthorized = errors.New("unauthorized")

	// Account lifecycle errors.
	ErrEmailTaken      = errors.New("email already taken")
	ErrAdminAlreadySet = errors.New("administrator already set")

	// Generic/internal flow control.
	ErrInternal = errors.New("internal error")
)
