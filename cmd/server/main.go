package main

import (
	"context"
	"log"
	"time"

	_ "github.com/joho/godotenv/autoload" // Autoload .env file.
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/config"
	"github.com/iliyamo/event-ticketing/internal/database"
	"github.com/iliyamo/event-ticketing/internal/handler"
	"github.com/iliyamo/event-ticketing/internal/middleware"
	"github.com/iliyamo/event-ticketing/internal/queue"
	"github.com/iliyamo/event-ticketing/internal/repository"
	"github.com/iliyamo/event-ticketing/internal/router"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	// Migrations and the admin bootstrap run before the listener starts.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if err := database.EnsureAdmin(ctx, db, cfg.AdminEmail, cfg.AdminPassword, cfg.BcryptCost); err != nil {
		log.Fatalf("admin bootstrap: %v", err)
	}

	// Redis is optional; without it caching and rate limiting are disabled.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}
	cacheCfg := config.LoadCacheConfig()
	limit := middleware.NewRateLimiter(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewResponseCache(cacheCfg, rdb)
	invalidate := middleware.NewCacheInvalidator(cacheCfg, rdb, "/events")

	// The consumer keeps its own reconnect loop; the server runs fine
	// without a broker.
	go queue.StartEventConsumer()

	users := repository.NewUserRepo(db)
	events := repository.NewEventRepo(db)

	e := echo.New()
	e.Static("/uploads", cfg.UploadDir)
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users), cfg.JWTSecret)
	router.RegisterEvents(e, handler.NewEventHandler(cfg, events, users), cfg.JWTSecret, limit, cache, invalidate)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
