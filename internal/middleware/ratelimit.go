// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/seyhanart/galeri-go/internal/util"
)

// maxLimiterEntries caps the per-IP limiter map; when exceeded the map
// is cleared wholesale rather than evicted entry by entry.
const maxLimiterEntries = 10000

// limiterCache is a generic rate limiter cache with double-check locking.
type limiterCache[K comparable] struct {
	limiters map[K]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
}

// newLimiterCache creates a new limiter cache.
func newLimiterCache[K comparable](rps float64, burst int) *limiterCache[K] {
	return &limiterCache[K]{
		limiters: make(map[K]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
	}
}

// get returns the rate limiter for a specific key, creating one if needed.
func (lc *limiterCache[K]) get(key K) *rate.Limiter {
	lc.mu.RLock()
	limiter, exists := lc.limiters[key]
	lc.mu.RUnlock()

	if exists {
		return limiter
	}

	lc.mu.Lock()
	defer lc.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists = lc.limiters[key]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(lc.rate, lc.burst)
	lc.limiters[key] = limiter
	return limiter
}

// clearIfExceeds clears all entries if the cache exceeds maxSize.
func (lc *limiterCache[K]) clearIfExceeds(maxSize int) bool {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	if len(lc.limiters) > maxSize {
		lc.limiters = make(map[K]*rate.Limiter)
		return true
	}
	return false
}

// LoginLimiter rate limits login attempts per client IP to slow down
// password guessing against the shared gate password.
type LoginLimiter struct {
	cache *limiterCache[string]
}

// NewLoginLimiter creates a limiter allowing rps requests per second
// with the given burst per IP.
func NewLoginLimiter(rps float64, burst int) *LoginLimiter {
	if rps <= 0 {
		rps = 0.5
	}
	if burst <= 0 {
		burst = 5
	}
	return &LoginLimiter{cache: newLimiterCache[string](rps, burst)}
}

// Allow reports whether another attempt from this IP is permitted.
func (l *LoginLimiter) Allow(ip string) bool {
	l.cache.clearIfExceeds(maxLimiterEntries)
	return l.cache.get(ip).Allow()
}

// Middleware wraps a login handler with the per-IP limit.
func (l *LoginLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(util.RealIP(r)) {
			WriteAPIError(w, http.StatusTooManyRequests, "rate_limit_exceeded", "Too many login attempts. Please slow down.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
