package middlewarex

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/hlog"
)

// Counter increments a windowed counter, creating it with ttl on first use.
type Counter interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

type redisCounter struct {
	rdb redis.Cmdable
}

// NewRedisCounter returns a Counter backed by INCR + EXPIRE.
func NewRedisCounter(rdb redis.Cmdable) Counter {
	return redisCounter{rdb: rdb}
}

func (c redisCounter) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	pipe := c.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// RateLimiter is a fixed-window limiter keyed by client IP. Counters live in
// Redis so every API instance shares the same budget.
type RateLimiter struct {
	counter Counter
	limit   int
	window  time.Duration
	now     func() time.Time
}

func NewRateLimiter(counter Counter, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{counter: counter, limit: limit, window: window, now: time.Now}
}

// Allow counts one request for key and reports whether it fits the current
// window. When it does not, retryAfter is the time left in the window.
func (l *RateLimiter) Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error) {
	now := l.now()
	start := now.Truncate(l.window)
	n, err := l.counter.Incr(ctx, fmt.Sprintf("ratelimit:%s:%d", key, start.Unix()), l.window)
	if err != nil {
		return true, 0, err
	}
	if n > int64(l.limit) {
		return false, start.Add(l.window).Sub(now), nil
	}
	return true, 0, nil
}

// Middleware rejects requests over the limit with 429. Counter failures let
// the request through.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, retry, err := l.Allow(r.Context(), clientIP(r))
		if err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("rate limiter unavailable")
		}
		if !ok {
			secs := int(retry.Round(time.Second) / time.Second)
			w.Header().Set("Retry-After", strconv.Itoa(max(secs, 1)))
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
