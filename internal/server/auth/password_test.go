package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	digest, err := HashPassword("12345678")
	require.NoError(t, err)
	assert.NotContains(t, digest, "12345678")

	assert.True(t, CheckPassword("12345678", digest))
	assert.False(t, CheckPassword("wrong-password", digest))
}

func TestCheckPassword_MalformedDigest(t *testing.T) {
	assert.False(t, CheckPassword("12345678", "not-a-bcrypt-digest"))
	assert.False(t, CheckPassword("12345678", ""))
}

func TestHashPassword_TooLong(t *testing.T) {
	// bcrypt rejects inputs above 72 bytes
	_, err := HashPassword(strings.Repeat("a", 80))
	assert.Error(t, err)
}
