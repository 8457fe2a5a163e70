// Package middleware provides HTTP middleware functions.
package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/kyiku/captcha-engine/internal/response"
	"github.com/labstack/echo/v4"
)

// RateLimiter tracks generation requests per client IP in fixed windows.
type RateLimiter struct {
	requests map[string]*requestInfo
	mu       sync.Mutex
	limit    int           // max requests per window
	window   time.Duration // time window
	done     chan struct{}
	stopOnce sync.Once
}

type requestInfo struct {
	count     int
	resetTime time.Time
}

// NewRateLimiter creates a new RateLimiter and starts its cleanup loop.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		requests: make(map[string]*requestInfo),
		limit:    limit,
		window:   window,
		done:     make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// Stop ends the cleanup loop.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

// cleanup periodically removes expired entries.
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for ip, info := range rl.requests {
				if now.After(info.resetTime) {
					delete(rl.requests, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// allow records a request from ip. It returns whether the request may
// proceed, how many requests remain in the window and when it resets.
func (rl *RateLimiter) allow(ip string) (bool, int, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	info, exists := rl.requests[ip]

	if !exists || now.After(info.resetTime) {
		info = &requestInfo{resetTime: now.Add(rl.window)}
		rl.requests[ip] = info
	}

	if info.count >= rl.limit {
		return false, 0, info.resetTime
	}

	info.count++
	return true, rl.limit - info.count, info.resetTime
}

// Middleware returns an echo middleware backed by this limiter.
// Every response carries X-RateLimit-Limit and X-RateLimit-Remaining;
// rejected requests also get Retry-After in seconds.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, remaining, reset := rl.allow(c.RealIP())

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(rl.limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if !allowed {
				retry := int(time.Until(reset).Seconds()) + 1
				h.Set("Retry-After", strconv.Itoa(retry))
				return response.Error(c, http.StatusTooManyRequests,
					"リクエストが多すぎます。しばらく待ってから再試行してください。")
			}

			return next(c)
		}
	}
}
