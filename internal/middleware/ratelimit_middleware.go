package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/velora/storefront_api/internal/utils"
)

// Rate limiter for cart-add requests: storefronts attract scripted traffic
// and the cart service is not ours to overload.
type CartRateLimiter struct {
	mu       sync.Mutex
	attempts map[string]*attemptInfo
	limit    int
	window   time.Duration
}

type attemptInfo struct {
	count   int
	firstAt time.Time
}

// NewCartRateLimiter allows limit cart adds per window for each client IP.
func NewCartRateLimiter(limit int, window time.Duration) *CartRateLimiter {
	rl := &CartRateLimiter{
		attempts: make(map[string]*attemptInfo),
		limit:    limit,
		window:   window,
	}
	go rl.cleanup()
	return rl
}

// Allow checks if IP can make another attempt within the current window.
func (r *CartRateLimiter) Allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	info, exists := r.attempts[ip]
	if !exists {
		r.attempts[ip] = &attemptInfo{count: 1, firstAt: now}
		return true
	}

	// Reset if window expired
	if now.Sub(info.firstAt) > r.window {
		r.attempts[ip] = &attemptInfo{count: 1, firstAt: now}
		return true
	}

	if info.count >= r.limit {
		return false
	}
	info.count++
	return true
}

// Handle returns the gin middleware enforcing the limit.
func (r *CartRateLimiter) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !r.Allow(c.ClientIP()) {
			utils.Error(c, 429, "RATE_LIMITED", "Too many cart requests, slow down")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (r *CartRateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	for range ticker.C {
		r.mu.Lock()
		now := time.Now()
		for ip, info := range r.attempts {
			if now.Sub(info.firstAt) > r.window {
				delete(r.attempts, ip)
			}
		}
		r.mu.Unlock()
	}
}
