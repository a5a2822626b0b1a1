package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"vigil/config"

	"github.com/gin-gonic/gin"
)

// RateLimiter enforces a sliding-window request cap per caller. Guard devices
// report locations continuously, so the window must tolerate a steady sample
// cadence while still stopping a runaway client.
type RateLimiter struct {
	mu     sync.Mutex
	seen   map[string][]time.Time
	limit  int
	window time.Duration
}

func NewRateLimiter(cfg *config.RateLimitConfig) *RateLimiter {
	l := &RateLimiter{
		seen:   make(map[string][]time.Time),
		limit:  cfg.Requests,
		window: cfg.Window,
	}
	go l.sweep()
	return l
}

// Allow records one request for key and reports whether it fits the window.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()
	cutoff := now.Add(-l.window)
	times := l.seen[key]
	// timestamps are appended in order, so expired ones form a prefix
	i := 0
	for i < len(times) && !times[i].After(cutoff) {
		i++
	}
	times = times[i:]
	if len(times) >= l.limit {
		l.seen[key] = times
		return false
	}
	l.seen[key] = append(times, now)
	return true
}

// sweep drops idle keys so the map does not grow with every caller ever seen.
func (l *RateLimiter) sweep() {
	for range time.Tick(l.window) {
		l.mu.Lock()
		cutoff := time.Now().Add(-l.window)
		for key, times := range l.seen {
			if len(times) == 0 || !times[len(times)-1].After(cutoff) {
				delete(l.seen, key)
			}
		}
		l.mu.Unlock()
	}
}

// RateLimit throttles by authenticated user when the request carries claims,
// falling back to client IP for anonymous endpoints like login. Per-user keys
// keep one guard's sample stream from eating a colleague's budget behind a
// shared NAT.
func RateLimit(l *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if id := GetUserID(c); id != 0 {
			key = "user:" + strconv.FormatUint(uint64(id), 10)
		}
		if !l.Allow(key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
