package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret", 4)
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, VerifyPassword(hash, "s3cret"))
	assert.False(t, VerifyPassword(hash, "wrong"))
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	h1, err := HashPassword("same", 4)
	require.NoError(t, err)
	h2, err := HashPassword("same", 4)
	require.NoError(t, err)

	// bcrypt embeds a fresh salt per call; both still verify.
	assert.NotEqual(t, h1, h2)
	assert.True(t, VerifyPassword(h1, "same"))
	assert.True(t, VerifyPassword(h2, "same"))
}

func TestVerifyPassword_GarbageHash(t *testing.T) {
	// A malformed hash must report false, never panic or error out.
	assert.False(t, VerifyPassword("not-a-bcrypt-hash", "anything"))
}
