// file: internal/server/middleware/ratelimit.go
// version: 1.0.0
// guid: 4b169256-a0d5-4880-8920-beb8f5db6691

package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/acikyardim/yardim-paneli/internal/metrics"
)

type windowEntry struct {
	count     int
	resetTime time.Time
}

// WindowLimiter is a fixed-window in-memory rate limiter keyed by client.
// Expired windows are replaced lazily on access; Sweep clears the rest.
type WindowLimiter struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	max     int
	window  time.Duration
	now     func() time.Time
}

// Decision is the outcome of one rate-limit check.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	Reset     time.Time
}

// NewWindowLimiter builds a limiter allowing max requests per window.
// max <= 0 disables limiting; every check is allowed.
func NewWindowLimiter(max int, window time.Duration) *WindowLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &WindowLimiter{
		entries: make(map[string]*windowEntry),
		max:     max,
		window:  window,
		now:     time.Now,
	}
}

// Check counts one request for key and reports whether it is allowed.
func (l *WindowLimiter) Check(key string) Decision {
	if l.max <= 0 {
		return Decision{Allowed: true}
	}

	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[key]
	if !ok || now.After(entry.resetTime) {
		entry = &windowEntry{resetTime: now.Add(l.window)}
		l.entries[key] = entry
	}

	if entry.count >= l.max {
		return Decision{Allowed: false, Limit: l.max, Remaining: 0, Reset: entry.resetTime}
	}

	entry.count++
	return Decision{
		Allowed:   true,
		Limit:     l.max,
		Remaining: l.max - entry.count,
		Reset:     entry.resetTime,
	}
}

// Sweep removes every expired window and returns how many were dropped.
func (l *WindowLimiter) Sweep() int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, entry := range l.entries {
		if now.After(entry.resetTime) {
			delete(l.entries, key)
			removed++
		}
	}
	return removed
}

// Middleware enforces the limit per client IP and sets X-RateLimit headers
// on every response that was counted.
func (l *WindowLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if key == "" {
			key = "unknown"
		}

		decision := l.Check(key)
		if decision.Limit > 0 {
			c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
			c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
			c.Header("X-RateLimit-Reset", strconv.FormatInt(decision.Reset.Unix(), 10))
		}

		if !decision.Allowed {
			retryAfter := int(time.Until(decision.Reset).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			metrics.IncRateLimited()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded",
				"code":  "RATE_LIMIT_EXCEEDED",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
