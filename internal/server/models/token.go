package models

import "time"

// SessionSource records which flow issued a session token.
type SessionSource string

const (
	SourceSignup SessionSource = "signup"
	SourceLogin  SessionSource = "login"
)

// Token is an opaque bearer session credential. Value carries at least
// 16 bytes of entropy, base64 encoded. Tokens are owned by their user and
// are removed with it.
type Token struct {
	ID        string
	UserID    string
	Value     string
	Source    SessionSource
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token is past its expiry at instant now.
func (t *Token) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
