// SPDX-License-Identifier: MIT
package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// TokenBucket implements a token bucket rate limiter
type TokenBucket struct {
	tokens   int
	capacity int
	refillAt time.Time
	interval time.Duration
	mu       sync.Mutex
}

// RateLimiter manages token buckets per client IP
type RateLimiter struct {
	mu       sync.RWMutex
	buckets  map[string]*TokenBucket
	capacity int
	interval time.Duration
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a new rate limiter allowing capacity requests per
// interval for each client.
func NewRateLimiter(capacity int, interval time.Duration) *RateLimiter {
	limiter := &RateLimiter{
		buckets:  make(map[string]*TokenBucket),
		capacity: capacity,
		interval: interval,
		now:      time.Now,
		stop:     make(chan struct{}),
	}

	go limiter.cleanup(5 * time.Minute)

	return limiter
}

// Stop ends the cleanup goroutine.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// Capacity returns the number of requests allowed per interval.
func (rl *RateLimiter) Capacity() int {
	return rl.capacity
}

// cleanup removes buckets idle for two cleanup periods
func (rl *RateLimiter) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.prune(2 * every)
		}
	}
}

func (rl *RateLimiter) prune(idle time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := rl.now()
	for ip, bucket := range rl.buckets {
		bucket.mu.Lock()
		if now.Sub(bucket.refillAt) > idle {
			delete(rl.buckets, ip)
		}
		bucket.mu.Unlock()
	}
}

// Allow checks if a request should be allowed
func (rl *RateLimiter) Allow(ip string) (bool, int) {
	rl.mu.RLock()
	bucket, exists := rl.buckets[ip]
	rl.mu.RUnlock()

	if !exists {
		rl.mu.Lock()
		// Another request may have created it meanwhile
		if bucket, exists = rl.buckets[ip]; !exists {
			bucket = &TokenBucket{
				tokens:   rl.capacity,
				capacity: rl.capacity,
				refillAt: rl.now().Add(rl.interval),
				interval: rl.interval,
			}
			rl.buckets[ip] = bucket
		}
		rl.mu.Unlock()
	}

	bucket.mu.Lock()
	defer bucket.mu.Unlock()

	// Refill tokens if interval has passed
	now := rl.now()
	if now.After(bucket.refillAt) {
		bucket.tokens = bucket.capacity
		bucket.refillAt = now.Add(bucket.interval)
	}

	if bucket.tokens > 0 {
		bucket.tokens--
		return true, bucket.tokens
	}

	return false, 0
}

// ErrRateLimited is the reason given to clients over their generation
// budget.
var ErrRateLimited = errors.New("too many generation requests, try again later")

// RateLimitMiddleware limits the listed paths; every other path passes.
// With no paths, every request is limited. Rejected requests get a JSON 429.
func RateLimitMiddleware(limiter *RateLimiter, paths ...string) gin.HandlerFunc {
	return RateLimitWithHandler(limiter, func(c *gin.Context) {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error": "Too many generation requests, try again later",
		})
	}, paths...)
}

// RateLimitWithHandler limits like RateLimitMiddleware but hands rejected
// requests to onLimit, which writes the response. The chain is aborted
// afterwards.
func RateLimitWithHandler(limiter *RateLimiter, onLimit gin.HandlerFunc, paths ...string) gin.HandlerFunc {
	pathMap := make(map[string]bool)
	for _, path := range paths {
		pathMap[path] = true
	}

	return func(c *gin.Context) {
		if len(pathMap) > 0 && !pathMap[c.Request.URL.Path] {
			c.Next()
			return
		}

		allowed, remaining := limiter.Allow(c.ClientIP())

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", limiter.capacity))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

		if !allowed {
			c.Header("Retry-After", fmt.Sprintf("%d", int(limiter.interval.Seconds())))
			onLimit(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
