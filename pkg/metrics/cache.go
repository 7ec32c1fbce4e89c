package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CacheMetrics tracks hit/miss/eviction counts for the in-process cache.
type CacheMetrics struct {
	hits      prometheus.Counter
	misses    prometheus.Counter
	evictions prometheus.Counter
	keys      prometheus.Gauge
}

// NewCacheMetrics registers the cache metrics on the provided registerer.
func NewCacheMetrics(reg prometheus.Registerer) *CacheMetrics {
	if reg == nil {
		return &CacheMetrics{}
	}
	hits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Cache lookups that returned a live entry.",
	})
	misses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Cache lookups that found nothing or an expired entry.",
	})
	evictions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_evictions_total",
		Help: "Entries removed to stay under the key bound.",
	})
	keys := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cache_keys",
		Help: "Current number of keys held by the cache.",
	})
	reg.MustRegister(hits, misses, evictions, keys)
	return &CacheMetrics{
		hits:      hits,
		misses:    misses,
		evictions: evictions,
		keys:      keys,
	}
}

// IncHit increments the hit counter.
func (c *CacheMetrics) IncHit() {
	if c == nil || c.hits == nil {
		return
	}
	c.hits.Inc()
}

// IncMiss increments the miss counter.
func (c *CacheMetrics) IncMiss() {
	if c == nil || c.misses == nil {
		return
	}
	c.misses.Inc()
}

// IncEviction increments the eviction counter.
func (c *CacheMetrics) IncEviction() {
	if c == nil || c.evictions == nil {
		return
	}
	c.evictions.Inc()
}

// SetKeyCount records the current key count.
func (c *CacheMetrics) SetKeyCount(n int) {
	if c == nil || c.keys == nil {
		return
	}
	c.keys.Set(float64(n))
}
