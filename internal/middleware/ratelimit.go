package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RateLimiterConfig tunes a token-bucket limiter. Each key gets its own
// bucket; KeyFunc decides what a key is (client IP unless overridden).
type RateLimiterConfig struct {
	// RequestsPerSecond is the steady-state refill rate per key.
	RequestsPerSecond float64

	// BurstSize caps how many requests a key can spend at once.
	BurstSize int

	// CleanupInterval controls how often idle buckets are evicted.
	CleanupInterval time.Duration

	// KeyFunc maps a request to its rate-limit key.
	KeyFunc func(r *http.Request) string
}

// DefaultRateLimiterConfig suits general browsing traffic.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerSecond: 10,
		BurstSize:         20,
		CleanupInterval:   time.Minute,
		KeyFunc:           ClientIP,
	}
}

// StrictRateLimiterConfig is for credential and payment endpoints, where
// a handful of attempts per client is plenty.
func StrictRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerSecond: 1,
		BurstSize:         5,
		CleanupInterval:   time.Minute,
		KeyFunc:           ClientIP,
	}
}

type bucket struct {
	mu       sync.Mutex
	tokens   float64
	lastSeen time.Time
}

// take refills the bucket for the elapsed time, then spends one token if
// one is available.
func (b *bucket) take(rate float64, burst int, now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tokens += now.Sub(b.lastSeen).Seconds() * rate
	if max := float64(burst); b.tokens > max {
		b.tokens = max
	}
	b.lastSeen = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// RateLimiter holds per-key token buckets in memory. It is sized for a
// single process; a multi-instance deployment would need a shared store.
type RateLimiter struct {
	config  RateLimiterConfig
	mu      sync.RWMutex
	buckets map[string]*bucket
	stop    chan struct{}
}

func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.KeyFunc == nil {
		config.KeyFunc = ClientIP
	}

	rl := &RateLimiter{
		config:  config,
		buckets: make(map[string]*bucket),
		stop:    make(chan struct{}),
	}
	go rl.sweep()
	return rl
}

// Allow reports whether the request identified by key may proceed.
func (rl *RateLimiter) Allow(key string) bool {
	now := time.Now()

	rl.mu.Lock()
	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(rl.config.BurstSize), lastSeen: now}
		rl.buckets[key] = b
	}
	rl.mu.Unlock()

	return b.take(rl.config.RequestsPerSecond, rl.config.BurstSize, now)
}

// sweep evicts buckets that have been idle for a full cleanup interval.
// A full, idle bucket carries no state worth keeping.
func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			rl.mu.Lock()
			for key, b := range rl.buckets {
				b.mu.Lock()
				idle := b.tokens >= float64(rl.config.BurstSize) &&
					now.Sub(b.lastSeen) > rl.config.CleanupInterval
				b.mu.Unlock()
				if idle {
					delete(rl.buckets, key)
				}
			}
			rl.mu.Unlock()
		case <-rl.stop:
			return
		}
	}
}

// Stop terminates the eviction goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

// Middleware rejects over-limit requests with 429 and a Retry-After hint.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(rl.config.KeyFunc(r)) {
			w.Header().Set("Retry-After", "1")
			respondTooManyRequests(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimit builds a limiter and returns its middleware in one step, for
// route registrations that never need to stop the limiter.
func RateLimit(config RateLimiterConfig) func(http.Handler) http.Handler {
	return NewRateLimiter(config).Middleware
}

// ClientIP resolves the originating client address, honoring the proxy
// headers set by the load balancer in front of the app.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// First entry in the list is the original client.
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
