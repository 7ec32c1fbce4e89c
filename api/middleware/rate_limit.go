package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/verto-labs/verto-inventory/api/responses"
	pkgerrors "github.com/verto-labs/verto-inventory/pkg/errors"
	"github.com/verto-labs/verto-inventory/pkg/logger"
)

// RateLimitPolicy defines the fixed-window throttling parameters for a
// traffic surface.
type RateLimitPolicy struct {
	name   string
	window time.Duration
	limit  int
}

// NewRateLimitPolicy builds a policy with the supplied window and per-IP limit.
func NewRateLimitPolicy(name string, window time.Duration, limit int) RateLimitPolicy {
	return RateLimitPolicy{
		name:   strings.ToLower(strings.TrimSpace(name)),
		window: window,
		limit:  limit,
	}
}

func (p RateLimitPolicy) enabled() bool {
	return p.window > 0 && p.limit > 0
}

func (p RateLimitPolicy) normalizedName() string {
	if p.name == "" {
		return "global"
	}
	return p.name
}

type windowCounter struct {
	windowStart time.Time
	count       int
}

// fixedWindowLimiter counts requests per key inside the current window. The
// counter map is process-local, matching the cache's locality model. Counters
// for elapsed windows are pruned at most once per window, keeping the map
// bounded by the number of clients active in the last window.
type fixedWindowLimiter struct {
	mu        sync.Mutex
	counters  map[string]*windowCounter
	window    time.Duration
	lastPrune time.Time
	now       func() time.Time
}

func newFixedWindowLimiter(window time.Duration) *fixedWindowLimiter {
	return &fixedWindowLimiter{
		counters: make(map[string]*windowCounter),
		window:   window,
		now:      time.Now,
	}
}

func (l *fixedWindowLimiter) incr(key string) int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastPrune) >= l.window {
		l.prune(now)
	}

	counter, ok := l.counters[key]
	if !ok || now.Sub(counter.windowStart) >= l.window {
		counter = &windowCounter{windowStart: now}
		l.counters[key] = counter
	}
	counter.count++
	return counter.count
}

// prune drops counters whose window has elapsed. Callers hold l.mu.
func (l *fixedWindowLimiter) prune(now time.Time) {
	for key, counter := range l.counters {
		if now.Sub(counter.windowStart) >= l.window {
			delete(l.counters, key)
		}
	}
	l.lastPrune = now
}

// RateLimit enforces a fixed-window per-IP request budget and answers over
// budget requests with 429.
func RateLimit(policy RateLimitPolicy, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() {
			return next
		}

		limiter := newFixedWindowLimiter(policy.window)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			count := limiter.incr(policy.normalizedName() + ":" + ip)
			if count > policy.limit {
				if logg != nil {
					logCtx := logg.WithFields(r.Context(), map[string]any{
						"policy":         policy.normalizedName(),
						"ip":             ip,
						"attempts":       count,
						"limit":          policy.limit,
						"window_seconds": int(policy.window.Seconds()),
					})
					logg.Warn(logCtx, "rate_limit.blocked")
				}
				responses.WriteError(r.Context(), nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "Too many requests, please try again later"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
