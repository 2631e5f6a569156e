package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-ticketing/internal/config"
)

func testCacheConfig() config.CacheConfig {
	return config.CacheConfig{
		Enabled:      true,
		TTL:          30 * time.Second,
		Prefix:       "cache",
		MaxBodyBytes: 1 << 20,
	}
}

func TestResponseCache_NoRedisIsPassThrough(t *testing.T) {
	e := echo.New()
	e.GET("/events", func(c echo.Context) error {
		return c.String(http.StatusOK, "live")
	}, NewResponseCache(testCacheConfig(), nil))

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "live", w.Body.String())
	assert.Empty(t, w.Header().Get("X-Cache"))
}

func TestResponseCache_ServesHitWithoutHandler(t *testing.T) {
	rdb, mock := redismock.NewClientMock()

	payload, err := json.Marshal(cachedResponse{
		Status:      http.StatusOK,
		ContentType: "application/json",
		Body:        []byte(`[{"id":1}]`),
	})
	require.NoError(t, err)
	mock.ExpectGet(cacheKeyFor("cache", "/events", "")).SetVal(string(payload))

	handlerRan := false
	e := echo.New()
	e.GET("/events", func(c echo.Context) error {
		handlerRan = true
		return c.String(http.StatusOK, "live")
	}, NewResponseCache(testCacheConfig(), rdb))

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, handlerRan)
	assert.Equal(t, `[{"id":1}]`, w.Body.String())
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResponseCache_MissFallsThrough(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet(cacheKeyFor("cache", "/events", "")).RedisNil()

	e := echo.New()
	e.GET("/events", func(c echo.Context) error {
		return c.String(http.StatusOK, "live")
	}, NewResponseCache(testCacheConfig(), rdb))

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events", nil))

	// The store write is best effort; only the read path is asserted here.
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "live", w.Body.String())
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheInvalidator_DropsListingOnSuccess(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectDel(cacheKeyFor("cache", "/events", "")).SetVal(1)

	e := echo.New()
	e.POST("/createEvent", func(c echo.Context) error {
		return c.JSON(http.StatusCreated, echo.Map{"id": 1})
	}, NewCacheInvalidator(testCacheConfig(), rdb, "/events"))

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/createEvent", nil))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheInvalidator_KeepsCacheOnFailure(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	// No Del expected: a rejected create must not touch the cache.

	e := echo.New()
	e.POST("/createEvent", func(c echo.Context) error {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing required fields"})
	}, NewCacheInvalidator(testCacheConfig(), rdb, "/events"))

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/createEvent", nil))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
