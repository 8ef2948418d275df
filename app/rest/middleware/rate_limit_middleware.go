package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const visitorIdleTimeout = 10 * time.Minute

// RateLimiter limits requests per client IP, with tighter budgets on the
// authentication endpoints that hit the identity provider.
type RateLimiter struct {
	visitors map[string]*visitor
	mutex    sync.Mutex
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a rate limiter and starts its cleanup loop
func NewRateLimiter() *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
	}

	go rl.cleanupVisitors()
	return rl
}

// RateLimit returns the echo middleware enforcing per-IP limits
func (rl *RateLimiter) RateLimit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			path := c.Request().URL.Path

			var limit rate.Limit
			var burst int

			switch {
			case strings.Contains(path, "/auth/callback"):
				// code exchange hits the provider; keep it tight
				limit = rate.Every(time.Second)
				burst = 10
			case strings.Contains(path, "/auth/refresh"):
				limit = rate.Every(time.Second)
				burst = 10
			case strings.Contains(path, "/auth/identify-tenant"):
				limit = rate.Every(500 * time.Millisecond)
				burst = 20
			default:
				limit = rate.Every(100 * time.Millisecond)
				burst = 50
			}

			if !rl.allow(ip+path, limit, burst) {
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"error": "rate limit exceeded",
					"code":  "RATE_LIMIT_EXCEEDED",
				})
			}

			return next(c)
		}
	}
}

func (rl *RateLimiter) allow(key string, limit rate.Limit, burst int) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	v, exists := rl.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(limit, burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = time.Now()

	return v.limiter.Allow()
}

func (rl *RateLimiter) cleanupVisitors() {
	for {
		time.Sleep(time.Minute)

		rl.mutex.Lock()
		for key, v := range rl.visitors {
			if time.Since(v.lastSeen) > visitorIdleTimeout {
				delete(rl.visitors, key)
			}
		}
		rl.mutex.Unlock()
	}
}
