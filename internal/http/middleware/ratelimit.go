// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements an in-memory token-bucket rate limiter with one
// bucket per identity (user or client IP). The search routes are guarded by a
// stricter limiter because every cache miss costs an external lookup.
//
// The limiter is process-local; idle buckets are evicted opportunistically.
package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// KeyFunc selects the identity a request is limited under.
type KeyFunc func(*gin.Context) string

// KeyByUserOrIP keys by the authenticated user ("user:<id>") and falls back
// to the client IP ("ip:<addr>").
func KeyByUserOrIP() KeyFunc {
	return func(c *gin.Context) string {
		if s := c.GetString(UserIDKey); s != "" {
			return "user:" + s
		}
		return "ip:" + c.ClientIP()
	}
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter enforces rps/burst per key. Safe for concurrent use.
type RateLimiter struct {
	rps   rate.Limit
	burst int
	keyFn KeyFunc
	ttl   time.Duration
	now   func() time.Time

	mu       sync.Mutex
	buckets  map[string]*bucket
	lookups  uint64
	gcEveryN uint64
}

// NewRateLimiter returns a limiter allowing rps requests per second with the
// given burst (coerced to at least 1) per key. A nil keyFn keys by user or IP.
func NewRateLimiter(rps float64, burst int, keyFn KeyFunc) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	if keyFn == nil {
		keyFn = KeyByUserOrIP()
	}
	return &RateLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		keyFn:    keyFn,
		ttl:      10 * time.Minute,
		now:      time.Now,
		buckets:  make(map[string]*bucket),
		gcEveryN: 5000,
	}
}

// Len returns the number of live buckets.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.buckets)
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Evict before touching key so a stale bucket for key is replaced too.
	rl.lookups++
	if rl.lookups >= rl.gcEveryN {
		for k, b := range rl.buckets {
			if now.Sub(b.lastSeen) >= rl.ttl {
				delete(rl.buckets, k)
			}
		}
		rl.lookups = 0
	}

	if b, ok := rl.buckets[key]; ok {
		b.lastSeen = now
		return b.limiter
	}
	lim := rate.NewLimiter(rl.rps, rl.burst)
	rl.buckets[key] = &bucket{limiter: lim, lastSeen: now}
	return lim
}

// Handler rejects requests over the limit with 429 and a Retry-After header
// holding the whole seconds until a token is available.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		lim := rl.limiter(rl.keyFn(c))

		res := lim.Reserve()
		if res.OK() && res.Delay() == 0 {
			c.Next()
			return
		}
		// A zero rate grants reservations that never mature.
		retry := 1
		if res.OK() {
			if d := res.Delay(); d != rate.InfDuration {
				retry = int(math.Ceil(d.Seconds()))
			}
			res.Cancel()
		}

		c.Header("Retry-After", strconv.Itoa(max(retry, 1)))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"request_id": c.GetString(requestIDKey),
			"code":       "rate_limited",
			"message":    "rate limit exceeded",
		})
	}
}
