package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseToken(t *testing.T, raw, secret string) jwt.MapClaims {
	t.Helper()
	tok, err := jwt.Parse(raw, func(tok *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)
	claims, ok := tok.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

func TestNewSessionToken_Claims(t *testing.T) {
	tok, err := NewSessionToken("topsecret", 42, "a@x.com", "admin")
	require.NoError(t, err)

	claims := parseToken(t, tok.Token, "topsecret")
	assert.Equal(t, float64(42), claims["id"])
	assert.Equal(t, "a@x.com", claims["email"])
	assert.Equal(t, "admin", claims["role"])
}

func TestNewSessionToken_OneHourTTL(t *testing.T) {
	before := time.Now().UTC()
	tok, err := NewSessionToken("topsecret", 1, "a@x.com", "user")
	require.NoError(t, err)

	assert.WithinDuration(t, before.Add(SessionTTL), tok.Exp, 2*time.Second)

	claims := parseToken(t, tok.Token, "topsecret")
	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	assert.WithinDuration(t, tok.Exp, time.Unix(int64(exp), 0), time.Second)
}

func TestNewSessionToken_WrongSecretRejected(t *testing.T) {
	tok, err := NewSessionToken("topsecret", 1, "a@x.com", "user")
	require.NoError(t, err)

	_, err = jwt.Parse(tok.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	assert.Error(t, err)
}
