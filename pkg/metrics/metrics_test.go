package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHTTPMetricsObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest("GET", "/api/v1/products", "200", 25*time.Millisecond)
	m.ObserveRequest("GET", "/api/v1/products", "200", 30*time.Millisecond)
	m.ObserveRequest("GET", "", "500", time.Millisecond)

	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/v1/products", "200")); got != 2 {
		t.Fatalf("expected 2 requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "unknown", "500")); got != 1 {
		t.Fatalf("empty routes must be recorded as unknown, got %v", got)
	}
}

func TestHTTPMetricsNilSafe(t *testing.T) {
	var m *HTTPMetrics
	m.ObserveRequest("GET", "/", "200", time.Millisecond)

	unregistered := NewHTTPMetrics(nil)
	unregistered.ObserveRequest("GET", "/", "200", time.Millisecond)
}

func TestCacheMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCacheMetrics(reg)

	m.IncHit()
	m.IncHit()
	m.IncMiss()
	m.IncEviction()
	m.SetKeyCount(42)

	if got := testutil.ToFloat64(m.hits); got != 2 {
		t.Fatalf("expected 2 hits, got %v", got)
	}
	if got := testutil.ToFloat64(m.misses); got != 1 {
		t.Fatalf("expected 1 miss, got %v", got)
	}
	if got := testutil.ToFloat64(m.evictions); got != 1 {
		t.Fatalf("expected 1 eviction, got %v", got)
	}
	if got := testutil.ToFloat64(m.keys); got != 42 {
		t.Fatalf("expected key gauge 42, got %v", got)
	}
}

func TestCacheMetricsNilSafe(t *testing.T) {
	var m *CacheMetrics
	m.IncHit()
	m.IncMiss()
	m.IncEviction()
	m.SetKeyCount(0)

	unregistered := NewCacheMetrics(nil)
	unregistered.IncHit()
	unregistered.SetKeyCount(1)
}
