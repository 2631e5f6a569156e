package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is the fixed lifetime of a session token from issuance.
const SessionTTL = time.Hour

// SessionToken is a signed JWT asserting a caller's identity and role,
// together with its expiry. Clients carry it either in the httpOnly "token"
// cookie or in the Authorization header.
type SessionToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewSessionToken builds and signs an HS256 JWT embedding the user's id,
// email and role. Authorization decisions re-fetch the live user row, so the
// role claim is informational rather than authoritative.
func NewSessionToken(secret string, userID uint64, email, role string) (SessionToken, error) {
	now := time.Now().UTC()
	exp := now.Add(SessionTTL)
	claims := jwt.MapClaims{
		"id":    userID,
		"email": email,
		"role":  role,
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}
