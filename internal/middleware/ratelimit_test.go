package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/educonnect-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterAllowAndRefill(t *testing.T) {
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		ok, err := rl.Allow(ctx, "10.0.0.1")
		assert.NoError(t, err)
		assert.True(t, ok)
	}
	ok, _ := rl.Allow(ctx, "10.0.0.1")
	assert.False(t, ok, "bucket should be empty")

	ok, _ = rl.Allow(ctx, "10.0.0.2")
	assert.True(t, ok, "other clients have their own bucket")

	now = now.Add(time.Minute)
	ok, _ = rl.Allow(ctx, "10.0.0.1")
	assert.True(t, ok, "bucket refills after the interval")
}

type stubLimiter struct {
	ok  bool
	err error
}

func (s stubLimiter) Allow(context.Context, string) (bool, error) {
	return s.ok, s.err
}

func serveWithLimiter(l Limiter) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/send", RateLimit(l, zerolog.Nop()), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/send", nil))
	return rec
}

func TestRateLimitMiddleware(t *testing.T) {
	assert.Equal(t, http.StatusNoContent, serveWithLimiter(stubLimiter{ok: true}).Code)

	rec := serveWithLimiter(stubLimiter{ok: false})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "RATE_LIMIT_EXCEEDED")

	assert.Equal(t, http.StatusNoContent, serveWithLimiter(stubLimiter{err: errors.New("redis down")}).Code)
}

func TestRedisRateLimiterFixedWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	now := time.Date(2024, 3, 10, 8, 0, 10, 0, time.UTC)
	l := NewRedisRateLimiter(rdb, 2, time.Minute)
	l.now = func() time.Time { return now }

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok, "third request in the window is rejected")

	ok, err = l.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, ok, "other clients count separately")

	slot := now.UnixNano() / int64(time.Minute)
	key := config.CacheKey.DispatchRateKey("10.0.0.1", slot)
	count, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "3", count)
	assert.Equal(t, time.Minute, mr.TTL(key))

	now = now.Add(time.Minute)
	ok, err = l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok, "next window starts a fresh count")
}

func TestRedisRateLimiterUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer rdb.Close()
	mr.Close()

	l := NewRedisRateLimiter(rdb, 2, time.Minute)
	ok, err := l.Allow(context.Background(), "10.0.0.1")
	assert.Error(t, err)
	assert.False(t, ok)
}
