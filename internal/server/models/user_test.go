package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserRoleIsValid(t *testing.T) {
	assert.True(t, RoleConsumer.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.False(t, UserRole("owner").IsValid())
	assert.False(t, UserRole("").IsValid())
}

func TestUserAsPublic(t *testing.T) {
	pic := "avatars/2026/9/1/abc"
	u := &User{
		ID:             "u1",
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Email:          "ada@x.com",
		Role:           RoleConsumer,
		AccountEnabled: true,
		UseBiometrics:  true,
		ProfilePicture: &pic,
		PasswordHash:   "$2a$10$secret",
	}

	p := u.AsPublic()
	assert.Equal(t, u.ID, p.ID)
	assert.Equal(t, u.Email, p.Email)
	assert.Equal(t, u.Role, p.Role)
	assert.Equal(t, &pic, p.ProfilePicture)
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()
	tok := &Token{ExpiresAt: now.Add(time.Hour)}
	assert.False(t, tok.Expired(now))
	assert.True(t, tok.Expired(now.Add(2*time.Hour)))
}
