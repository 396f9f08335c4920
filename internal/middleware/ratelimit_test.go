// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRateLimitBurst(t *testing.T) {
	// 60/min yields a burst of 15 immediate requests per client.
	handler := RateLimit(60)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	allowed, limited := 0, 0
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/nav/config", nil)
		req.RemoteAddr = "198.51.100.7:1000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		switch rec.Code {
		case http.StatusOK:
			allowed++
		case http.StatusTooManyRequests:
			limited++
		default:
			t.Fatalf("unexpected status %d", rec.Code)
		}
	}
	if allowed != 15 || limited != 5 {
		t.Errorf("allowed = %d, limited = %d, want 15/5", allowed, limited)
	}
}

func TestRateLimitPerClient(t *testing.T) {
	handler := RateLimit(60)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Exhaust the first client's burst.
	for i := 0; i < 15; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "198.51.100.1:1000"
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	// A different client is unaffected.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.2:1000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("second client status = %d, want 200", rec.Code)
	}
}

func TestRateLimitErrorBody(t *testing.T) {
	handler := RateLimit(60)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	var rec *httptest.ResponseRecorder
	for i := 0; i < 16; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "198.51.100.3:1000"
		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}

	var apiErr APIError
	if err := json.Unmarshal(rec.Body.Bytes(), &apiErr); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if apiErr.Error.Code != "rate_limit_exceeded" {
		t.Errorf("error code = %q", apiErr.Error.Code)
	}
}

func TestLimiterCacheClear(t *testing.T) {
	lc := newLimiterCache[string](1, 1)
	lc.get("a")
	lc.get("b")

	if lc.clearIfExceeds(5) {
		t.Error("cache cleared below the threshold")
	}
	if !lc.clearIfExceeds(1) {
		t.Error("cache not cleared above the threshold")
	}
	if len(lc.limiters) != 0 {
		t.Errorf("limiters after clear = %d", len(lc.limiters))
	}
}
