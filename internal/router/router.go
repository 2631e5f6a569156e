// Package router wires HTTP routes to handlers and their middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/handler"
	"github.com/iliyamo/event-ticketing/internal/middleware"
)

// RegisterRoutes registers routes that need no dependencies beyond Echo
// itself. Currently that is only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers registration, login, logout and the token-protected
// profile endpoint. The jwtSecret must match the one used at token issuance.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	e.POST("/register", a.Register)
	e.POST("/login", a.Login)
	e.POST("/logout", a.Logout)
	e.GET("/profile", a.Profile, middleware.JWTAuth(jwtSecret))
}

// RegisterEvents registers the public browse endpoints (rate limited and
// cached when Redis is available) and the admin-gated creation endpoint.
// createEvent verifies the token with the configured secret and requires the
// admin role before the handler runs; on success the invalidate middleware
// drops the cached listing so the new event shows up immediately.
func RegisterEvents(e *echo.Echo, h *handler.EventHandler, jwtSecret string, limit, cache, invalidate echo.MiddlewareFunc) {
	e.GET("/events", h.ListEvents, limit, cache)
	e.GET("/event/:id", h.GetEvent, limit, cache)
	e.POST("/createEvent", h.CreateEvent, middleware.JWTAuth(jwtSecret), middleware.RequireRole("admin"), invalidate)
}
