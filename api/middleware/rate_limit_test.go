package middleware

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/verto-labs/verto-inventory/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestFixedWindowLimiterCountsPerKey(t *testing.T) {
	limiter := newFixedWindowLimiter(time.Minute)

	if got := limiter.incr("a"); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if got := limiter.incr("a"); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	if got := limiter.incr("b"); got != 1 {
		t.Fatalf("keys must be counted independently, got %d", got)
	}
}

func TestFixedWindowLimiterResetsAfterWindow(t *testing.T) {
	limiter := newFixedWindowLimiter(time.Minute)
	now := time.Now()
	limiter.now = func() time.Time { return now }

	limiter.incr("a")
	limiter.incr("a")

	now = now.Add(time.Minute + time.Second)
	if got := limiter.incr("a"); got != 1 {
		t.Fatalf("expected fresh window to reset the count, got %d", got)
	}
}

func TestFixedWindowLimiterPrunesExpiredCounters(t *testing.T) {
	limiter := newFixedWindowLimiter(time.Minute)
	now := time.Now()
	limiter.now = func() time.Time { return now }

	for i := 0; i < 1000; i++ {
		limiter.incr(fmt.Sprintf("global:198.51.100.%d", i))
	}

	now = now.Add(time.Hour)
	limiter.incr("global:203.0.113.9")

	limiter.mu.Lock()
	resident := len(limiter.counters)
	limiter.mu.Unlock()
	if resident != 1 {
		t.Fatalf("expected expired counters to be reclaimed, %d resident", resident)
	}
}

func TestFixedWindowLimiterPruneKeepsLiveCounters(t *testing.T) {
	limiter := newFixedWindowLimiter(time.Minute)
	now := time.Now()
	limiter.now = func() time.Time { return now }

	limiter.incr("a")
	now = now.Add(40 * time.Second)
	limiter.incr("b")

	// 80s in: "a" has expired, "b" is 40s into its window.
	now = now.Add(40 * time.Second)
	limiter.incr("c")

	limiter.mu.Lock()
	_, aResident := limiter.counters["a"]
	resident := len(limiter.counters)
	limiter.mu.Unlock()
	if aResident || resident != 2 {
		t.Fatalf("expected only live counters to survive the prune, %d resident", resident)
	}
	if got := limiter.incr("b"); got != 2 {
		t.Fatalf("a live counter must keep its count across a prune, got %d", got)
	}
}

func TestRateLimitBlocksOverBudget(t *testing.T) {
	policy := NewRateLimitPolicy("auth", time.Minute, 2)
	handler := RateLimit(policy, testLogger())(okHandler())

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d should pass, got %d", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 over budget, got %d", rec.Code)
	}
}

func TestRateLimitKeysByClientIP(t *testing.T) {
	policy := NewRateLimitPolicy("auth", time.Minute, 1)
	handler := RateLimit(policy, testLogger())(okHandler())

	first := httptest.NewRequest(http.MethodPost, "/login", nil)
	first.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected first ip to pass, got %d", rec.Code)
	}

	second := httptest.NewRequest(http.MethodPost, "/login", nil)
	second.RemoteAddr = "10.0.0.2:1234"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, second)
	if rec.Code != http.StatusOK {
		t.Fatalf("a different ip must have its own budget, got %d", rec.Code)
	}
}

func TestRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	handler := RateLimit(NewRateLimitPolicy("off", 0, 0), testLogger())(okHandler())

	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("disabled policy must never block, got %d", rec.Code)
		}
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.9:4321"
	if got := clientIP(req); got != "10.0.0.9" {
		t.Fatalf("expected remote addr host, got %q", got)
	}

	req.Header.Set("X-Real-IP", "203.0.113.7")
	if got := clientIP(req); got != "203.0.113.7" {
		t.Fatalf("expected X-Real-IP to win over remote addr, got %q", got)
	}

	req.Header.Set("X-Forwarded-For", "198.51.100.4, 203.0.113.7")
	if got := clientIP(req); got != "198.51.100.4" {
		t.Fatalf("expected first forwarded hop, got %q", got)
	}
}
