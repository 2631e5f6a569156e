package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/event-ticketing/internal/config"
)

// cachedResponse is the payload stored in Redis for a cache hit: enough to
// replay the response byte-for-byte.
type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// captureWriter tees the response body while forwarding it to the client,
// bounded by limit so oversized bodies are never cached.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	size   int
	limit  int
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.size += len(b)
	if cw.limit <= 0 || cw.size <= cw.limit {
		cw.buf.Write(b)
	}
	return cw.ResponseWriter.Write(b)
}

// NewResponseCache returns a middleware that serves successful GET responses
// for public event reads from Redis. Entries expire after cfg.TTL, which
// bounds how stale a listing can get after an admin creates an event. With
// caching disabled or no Redis client, it is a pass-through.
func NewResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}

			ctx := c.Request().Context()
			key := cacheKey(cfg.Prefix, c)

			if bs, err := rdb.Get(ctx, key).Bytes(); err == nil {
				var cached cachedResponse
				if json.Unmarshal(bs, &cached) == nil && cached.Status != 0 {
					if cached.ContentType != "" {
						c.Response().Header().Set(echo.HeaderContentType, cached.ContentType)
					}
					c.Response().Header().Set("X-Cache", "HIT")
					c.Response().WriteHeader(cached.Status)
					_, _ = c.Response().Write(cached.Body)
					return nil
				}
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: cfg.MaxBodyBytes}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}

			// Only cache 200s that fit the size limit.
			if cw.status == http.StatusOK && (cfg.MaxBodyBytes <= 0 || cw.size <= cfg.MaxBodyBytes) {
				payload, err := json.Marshal(cachedResponse{
					Status:      cw.status,
					ContentType: c.Response().Header().Get(echo.HeaderContentType),
					Body:        cw.buf.Bytes(),
				})
				if err == nil {
					_ = rdb.SetEx(context.Background(), key, payload, ttl).Err()
				}
			}
			return nil
		}
	}
}

// NewCacheInvalidator returns a middleware that drops the cached responses
// for the given request paths once the wrapped handler succeeds. Applied to
// event creation it makes a fresh listing visible immediately instead of
// after the cache TTL. With caching disabled or no Redis client, it is a
// pass-through.
func NewCacheInvalidator(cfg config.CacheConfig, rdb *redis.Client, paths ...string) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil || len(paths) == 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	keys := make([]string, len(paths))
	for i, p := range paths {
		keys[i] = cacheKeyFor(cfg.Prefix, p, "")
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := next(c); err != nil {
				return err
			}
			if st := c.Response().Status; st >= 200 && st < 300 {
				_ = rdb.Del(context.Background(), keys...).Err()
			}
			return nil
		}
	}
}

// cacheKey hashes the request path plus query under the configured prefix so
// distinct event ids and query strings get distinct entries.
func cacheKey(prefix string, c echo.Context) string {
	return cacheKeyFor(prefix, c.Request().URL.Path, c.Request().URL.RawQuery)
}

func cacheKeyFor(prefix, path, query string) string {
	sum := sha1.Sum([]byte(path + "?" + query))
	return fmt.Sprintf("%s:%x", prefix, sum[:])
}
