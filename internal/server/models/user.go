// Package models holds the server-side domain records persisted in Postgres.
package models

import "time"

// UserRole is a closed enum of account roles. Persisted as text.
type UserRole string

const (
	RoleConsumer UserRole = "consumer"
	RoleAdmin    UserRole = "admin"
)

// IsValid reports whether r is one of the known roles.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleConsumer, RoleAdmin:
		return true
	default:
		return false
	}
}

// User is the stored account record. PasswordHash never leaves the server;
// transport layers expose PublicUser instead.
type User struct {
	ID             string
	FirstName      string
	LastName       string
	Email          string
	Role           UserRole
	AccountEnabled bool
	UseBiometrics  bool
	ProfilePicture *string
	PasswordHash   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PublicUser is the wire-safe projection of a User.
type PublicUser struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	Role           UserRole  `json:"role"`
	AccountEnabled bool      `json:"accountEnabled"`
	UseBiometrics  bool      `json:"useBiometrics"`
	ProfilePicture *string   `json:"profilePicture,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// AsPublic strips the credential material from the record.
func (u *User) AsPublic() *PublicUser {
	return &PublicUser{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		Role:           u.Role,
		AccountEnabled: u.AccountEnabled,
		UseBiometrics:  u.UseBiometrics,
		ProfilePicture: u.ProfilePicture,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
