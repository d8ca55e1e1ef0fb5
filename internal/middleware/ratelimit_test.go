// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoginLimiter_Allow(t *testing.T) {
	l := NewLoginLimiter(1, 3)

	for i := 0; i < 3; i++ {
		if !l.Allow("203.0.113.1") {
			t.Fatalf("attempt %d within burst rejected", i+1)
		}
	}
	if l.Allow("203.0.113.1") {
		t.Error("attempt over burst allowed")
	}

	// A different IP has its own bucket.
	if !l.Allow("203.0.113.2") {
		t.Error("fresh IP rejected")
	}
}

func TestLoginLimiter_Middleware(t *testing.T) {
	l := NewLoginLimiter(1, 1)
	handler := l.Middleware(okHandler())

	r := httptest.NewRequest("POST", "/api/login", nil)
	r.Header.Set("X-Real-IP", "203.0.113.9")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)
	if rec.Code != http.StatusOK {
		t.Fatalf("first attempt status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, r)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second attempt status = %d", rec.Code)
	}
}

func TestLimiterCache_ClearIfExceeds(t *testing.T) {
	cache := newLimiterCache[string](1, 1)
	cache.get("a")
	cache.get("b")

	if cache.clearIfExceeds(5) {
		t.Error("cleared below threshold")
	}
	if !cache.clearIfExceeds(1) {
		t.Error("not cleared above threshold")
	}
	if len(cache.limiters) != 0 {
		t.Error("map not reset")
	}
}
