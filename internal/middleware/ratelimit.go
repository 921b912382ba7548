package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/educonnect-backend/internal/config"
	"github.com/stemsi/educonnect-backend/internal/response"
)

// Limiter decides whether a client may perform one more request.
type Limiter interface {
	Allow(ctx context.Context, client string) (bool, error)
}

// RateLimiter implements a simple per-client token bucket rate limiter.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     int           // Tokens per interval
	interval time.Duration // Refill interval
	now      func() time.Time
}

type visitor struct {
	tokens   int
	lastSeen time.Time
}

// NewRateLimiter creates a RateLimiter (e.g., 10 requests per minute).
func NewRateLimiter(rate int, interval time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		interval: interval,
		now:      time.Now,
	}

	// Cleanup stale visitors every minute.
	go func() {
		for range time.Tick(time.Minute) {
			rl.cleanup()
		}
	}()

	return rl
}

// Allow consumes one token for client.
func (rl *RateLimiter) Allow(_ context.Context, client string) (bool, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, exists := rl.visitors[client]
	if !exists {
		v = &visitor{tokens: rl.rate, lastSeen: now}
		rl.visitors[client] = v
	}

	// Refill tokens based on elapsed time.
	elapsed := now.Sub(v.lastSeen)
	refill := int(elapsed/rl.interval) * rl.rate
	if refill > 0 {
		v.tokens += refill
		if v.tokens > rl.rate {
			v.tokens = rl.rate
		}
		v.lastSeen = now
	}

	if v.tokens <= 0 {
		return false, nil
	}

	v.tokens--
	return true, nil
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, v := range rl.visitors {
		if rl.now().Sub(v.lastSeen) > 3*time.Minute {
			delete(rl.visitors, ip)
		}
	}
}

// RedisRateLimiter counts requests per client in fixed windows shared by
// every instance pointing at the same Redis.
type RedisRateLimiter struct {
	rdb    *redis.Client
	rate   int
	window time.Duration
	now    func() time.Time
}

// NewRedisRateLimiter creates a RedisRateLimiter allowing rate requests per window.
func NewRedisRateLimiter(rdb *redis.Client, rate int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{rdb: rdb, rate: rate, window: window, now: time.Now}
}

// Allow increments the client's counter for the current window.
func (l *RedisRateLimiter) Allow(ctx context.Context, client string) (bool, error) {
	slot := l.now().UnixNano() / int64(l.window)
	key := config.CacheKey.DispatchRateKey(client, slot)

	var incr *redis.IntCmd
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, l.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("count request: %w", err)
	}

	return incr.Val() <= int64(l.rate), nil
}

// RateLimit returns a Gin middleware that rate-limits requests by client IP.
// Limiter errors let the request through.
func RateLimit(l Limiter, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Warn().Err(err).Str("client", c.ClientIP()).Msg("Rate limiter unavailable")
			c.Next()
			return
		}
		if !ok {
			response.AbortFail(c, http.StatusTooManyRequests, response.ErrRateLimitExceeded)
			return
		}
		c.Next()
	}
}
