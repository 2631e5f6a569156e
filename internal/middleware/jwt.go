// Package middleware contains reusable HTTP middleware: session token
// verification, role gating, response caching and rate limiting.
package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// TokenCookie is the name of the httpOnly cookie carrying the session token.
const TokenCookie = "token"

// JWTAuth returns an Echo middleware that validates a session token and
// injects the id, email and role claims into the request context. The token
// is read from the "token" cookie or, failing that, from a Bearer
// Authorization header. The provided secret must match the one used at
// issuance. Handlers access the caller via c.Get("user_id"), c.Get("email")
// and c.Get("role").
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFromRequest(c)
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "No token provided"})
			}

			// Parse with the configured secret and pin the algorithm to
			// HMAC; tokens signed any other way are rejected.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			// Malformed, expired and bad-signature tokens are deliberately
			// not distinguished here.
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Failed to authenticate token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Failed to authenticate token"})
			}

			id, ok := claims["id"].(float64)
			if !ok || id <= 0 {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Failed to authenticate token"})
			}

			c.Set("user_id", uint64(id))
			if email, ok := claims["email"].(string); ok {
				c.Set("email", email)
			}
			if role, ok := claims["role"].(string); ok {
				c.Set("role", role)
			}
			return next(c)
		}
	}
}

// tokenFromRequest prefers the session cookie and falls back to the
// Authorization header.
func tokenFromRequest(c echo.Context) string {
	if ck, err := c.Cookie(TokenCookie); err == nil && ck.Value != "" {
		return ck.Value
	}
	auth := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
