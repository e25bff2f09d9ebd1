package middleware

import (
	"sync"
	"time"

	"sk-barangay-service/internal/error/code"
	"sk-barangay-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// TokenBucket is a simple token bucket limiter
type TokenBucket struct {
	rate       float64 // tokens refilled per second
	capacity   int
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

// NewTokenBucket creates a full bucket
func NewTokenBucket(rate float64, capacity int) *TokenBucket {
	return &TokenBucket{
		rate:       rate,
		capacity:   capacity,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

// Allow takes one token if available
func (tb *TokenBucket) Allow() bool {
	return tb.allowAt(time.Now())
}

func (tb *TokenBucket) allowAt(now time.Time) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	elapsed := now.Sub(tb.lastRefill).Seconds()
	tb.lastRefill = now

	tb.tokens += elapsed * tb.rate
	if tb.tokens > float64(tb.capacity) {
		tb.tokens = float64(tb.capacity)
	}

	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

func (tb *TokenBucket) idleSince(t time.Time) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.lastRefill.Before(t)
}

// RateLimiterConfig configures RateLimiter
type RateLimiterConfig struct {
	Rate       float64                   // requests per second
	Burst      int                       // bucket capacity
	ExpiryTime time.Duration             // idle buckets older than this are dropped
	KeyFunc    func(*gin.Context) string // defaults to the client IP
}

// DefaultRateLimiterConfig allows 1 request per second with bursts of 5 per IP
var DefaultRateLimiterConfig = RateLimiterConfig{
	Rate:       1,
	Burst:      5,
	ExpiryTime: time.Hour,
}

// limiterSet holds one bucket per key and sweeps idle ones lazily
type limiterSet struct {
	cfg       RateLimiterConfig
	mu        sync.Mutex
	buckets   map[string]*TokenBucket
	lastSweep time.Time
}

func (s *limiterSet) get(key string) *TokenBucket {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if s.cfg.ExpiryTime > 0 && now.Sub(s.lastSweep) > s.cfg.ExpiryTime {
		cutoff := now.Add(-s.cfg.ExpiryTime)
		for k, b := range s.buckets {
			if b.idleSince(cutoff) {
				delete(s.buckets, k)
			}
		}
		s.lastSweep = now
	}

	b, ok := s.buckets[key]
	if !ok {
		b = NewTokenBucket(s.cfg.Rate, s.cfg.Burst)
		s.buckets[key] = b
	}
	return b
}

// RateLimiter rejects requests above the configured rate with 429
func RateLimiter(config ...RateLimiterConfig) gin.HandlerFunc {
	cfg := DefaultRateLimiterConfig
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Rate <= 0 {
		cfg.Rate = DefaultRateLimiterConfig.Rate
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultRateLimiterConfig.Burst
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}

	set := &limiterSet{cfg: cfg, buckets: make(map[string]*TokenBucket), lastSweep: time.Now()}
	return func(c *gin.Context) {
		if !set.get(cfg.KeyFunc(c)).Allow() {
			response.Fail(c, code.ErrTooManyRequests)
			c.Abort()
			return
		}
		c.Next()
	}
}

// IPRateLimiter limits per client IP
func IPRateLimiter(rate float64, burst int) gin.HandlerFunc {
	return RateLimiter(RateLimiterConfig{Rate: rate, Burst: burst, ExpiryTime: time.Hour})
}

// CombinedRateLimiter limits per client IP and route
func CombinedRateLimiter(rate float64, burst int) gin.HandlerFunc {
	return RateLimiter(RateLimiterConfig{
		Rate:       rate,
		Burst:      burst,
		ExpiryTime: time.Hour,
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP() + ":" + c.FullPath()
		},
	})
}
