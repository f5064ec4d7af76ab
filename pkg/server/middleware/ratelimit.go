// Package middleware holds small chi-compatible HTTP middleware that isn't
// specific to the navigation API surface.
package middleware

import (
	"net/http"
	"sync"
	"time"
)

// bucket is a per-client token bucket: capacity tokens refilled at
// refillRate tokens/second, checked lazily on each request.
type bucket struct {
	tokens     float64
	lastRefill time.Time
}

const (
	capacity   = 20.0
	refillRate = 5.0 // tokens per second
)

var (
	mu      sync.Mutex
	buckets = map[string]*bucket{}
)

// Limit throttles requests per remote address using an in-memory token
// bucket. There is no pack dependency that provides chi-aware rate
// limiting, so this stays on the standard library.
func Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.RemoteAddr

		mu.Lock()
		b, ok := buckets[key]
		now := time.Now()
		if !ok {
			b = &bucket{tokens: capacity, lastRefill: now}
			buckets[key] = b
		} else {
			elapsed := now.Sub(b.lastRefill).Seconds()
			b.tokens = min(capacity, b.tokens+elapsed*refillRate)
			b.lastRefill = now
		}

		allowed := b.tokens >= 1
		if allowed {
			b.tokens--
		}
		mu.Unlock()

		if !allowed {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
