package middleware

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"finhub/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// RateLimiter applies a fixed-window rate limit backed by Redis, keyed by
// client IP. When Redis misbehaves the limiter fails open: dropping valid
// traffic over a cache hiccup is the wrong trade for this service.
type RateLimiter struct {
	cache  *redis.Client
	limit  int
	window time.Duration
	logger logger.Logger
}

// NewRateLimiter constructs a RateLimiter with the given limit and window.
func NewRateLimiter(cache *redis.Client, limit int, window time.Duration, log logger.Logger) *RateLimiter {
	return &RateLimiter{
		cache:  cache,
		limit:  limit,
		window: window,
		logger: log,
	}
}

// Limit enforces the rate limit. A nil Redis client disables limiting.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.cache == nil {
			next.ServeHTTP(w, r)
			return
		}

		ip := r.RemoteAddr
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			ip = host
		}
		key := fmt.Sprintf("ratelimit:%s", ip)

		count, err := rl.cache.Incr(r.Context(), key).Result()
		if err != nil {
			rl.logger.Warn("Rate limiter unavailable, failing open", map[string]interface{}{
				"error": err.Error(),
			})
			next.ServeHTTP(w, r)
			return
		}

		if count == 1 {
			if err := rl.cache.Expire(r.Context(), key, rl.window).Err(); err != nil {
				rl.logger.Warn("Failed to set rate limit window", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}

		if count > int64(rl.limit) {
			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", rl.limit))
			w.Header().Set("X-RateLimit-Remaining", "0")
			jsonError(w, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}

		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", rl.limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", rl.limit-int(count)))

		next.ServeHTTP(w, r)
	})
}
