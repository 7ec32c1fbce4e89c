// Package cache implements the process-local key/value store backing the
// read paths. Entries carry a per-key TTL, lookups never return expired
// values, and writes beyond the configured key bound evict the oldest entry.
package cache

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/verto-labs/verto-inventory/pkg/config"
	"github.com/verto-labs/verto-inventory/pkg/metrics"
)

type entry struct {
	value     any
	expiresAt time.Time
	storedAt  time.Time
}

// Cache is a TTL map safe for concurrent use. A background janitor sweeps
// expired entries; lookups also drop expired entries lazily so correctness
// never depends on the sweep.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry

	defaultTTL    time.Duration
	sweepInterval time.Duration
	maxKeys       int

	hits      uint64
	misses    uint64
	evictions uint64

	metrics *metrics.CacheMetrics

	stopOnce sync.Once
	stop     chan struct{}

	now func() time.Time
}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
	Evictions uint64 `json:"evictions"`
	Keys      int    `json:"keys"`
}

// New builds a cache from configuration. The janitor is not started; call
// StartJanitor once the owning process is ready to run background work.
func New(cfg config.CacheConfig, m *metrics.CacheMetrics) *Cache {
	defaultTTL := cfg.DefaultTTL
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	sweep := cfg.SweepInterval
	if sweep <= 0 {
		sweep = time.Minute
	}
	maxKeys := cfg.MaxKeys
	if maxKeys <= 0 {
		maxKeys = 1000
	}

	return &Cache{
		entries:       make(map[string]entry),
		defaultTTL:    defaultTTL,
		sweepInterval: sweep,
		maxKeys:       maxKeys,
		metrics:       m,
		stop:          make(chan struct{}),
		now:           time.Now,
	}
}

// Set stores value under key with the default TTL.
func (c *Cache) Set(key string, value any) {
	c.SetTTL(key, value, c.defaultTTL)
}

// SetTTL stores value under key, expiring after ttl. A non-positive ttl falls
// back to the default window.
func (c *Cache) SetTTL(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	now := c.now()

	c.mu.Lock()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxKeys {
		c.evictOldestLocked()
	}
	c.entries[key] = entry{
		value:     value,
		expiresAt: now.Add(ttl),
		storedAt:  now,
	}
	keys := len(c.entries)
	c.mu.Unlock()

	c.metrics.SetKeyCount(keys)
}

// Get returns the live value for key, or false when absent or expired.
func (c *Cache) Get(key string) (any, bool) {
	now := c.now()

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && now.Before(e.expiresAt) {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		c.metrics.IncHit()
		return e.value, true
	}

	c.mu.Lock()
	c.misses++
	if ok {
		// expired; drop it eagerly rather than waiting for the janitor
		if current, still := c.entries[key]; still && !now.Before(current.expiresAt) {
			delete(c.entries, key)
		}
	}
	keys := len(c.entries)
	c.mu.Unlock()

	c.metrics.IncMiss()
	c.metrics.SetKeyCount(keys)
	return nil, false
}

// GetMulti returns the live values for the requested keys. Absent or expired
// keys are simply missing from the result.
func (c *Cache) GetMulti(keys []string) map[string]any {
	result := make(map[string]any, len(keys))
	for _, key := range keys {
		if value, ok := c.Get(key); ok {
			result[key] = value
		}
	}
	return result
}

// SetMulti stores every pair with the same TTL.
func (c *Cache) SetMulti(values map[string]any, ttl time.Duration) {
	for key, value := range values {
		c.SetTTL(key, value, ttl)
	}
}

// Delete removes key and reports whether it was present.
func (c *Cache) Delete(key string) bool {
	c.mu.Lock()
	_, ok := c.entries[key]
	delete(c.entries, key)
	keys := len(c.entries)
	c.mu.Unlock()

	c.metrics.SetKeyCount(keys)
	return ok
}

// ClearByPattern removes every key whose text contains substring and returns
// how many were removed. Matching is plain containment, which lets one call
// cover every page/limit combination sharing a namespace.
func (c *Cache) ClearByPattern(substring string) int {
	if substring == "" {
		return 0
	}

	c.mu.Lock()
	removed := 0
	for key := range c.entries {
		if strings.Contains(key, substring) {
			delete(c.entries, key)
			removed++
		}
	}
	keys := len(c.entries)
	c.mu.Unlock()

	c.metrics.SetKeyCount(keys)
	return removed
}

// Has reports whether key holds a live entry without counting a hit or miss.
func (c *Cache) Has(key string) bool {
	now := c.now()
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	return ok && now.Before(e.expiresAt)
}

// Keys returns the live keys in sorted order.
func (c *Cache) Keys() []string {
	now := c.now()

	c.mu.RLock()
	keys := make([]string, 0, len(c.entries))
	for key, e := range c.entries {
		if now.Before(e.expiresAt) {
			keys = append(keys, key)
		}
	}
	c.mu.RUnlock()

	sort.Strings(keys)
	return keys
}

// Len returns the number of resident entries, expired ones included until
// swept.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Flush drops every entry.
func (c *Cache) Flush() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()

	c.metrics.SetKeyCount(0)
}

// Stats snapshots the hit/miss/eviction counters and resident key count.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Keys:      len(c.entries),
	}
}

// StartJanitor launches the background sweep loop. Call Stop to end it.
func (c *Cache) StartJanitor() {
	go func() {
		ticker := time.NewTicker(c.sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.sweep()
			case <-c.stop:
				return
			}
		}
	}()
}

// Stop terminates the janitor. Safe to call more than once.
func (c *Cache) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *Cache) sweep() {
	now := c.now()

	c.mu.Lock()
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
		}
	}
	keys := len(c.entries)
	c.mu.Unlock()

	c.metrics.SetKeyCount(keys)
}

// evictOldestLocked removes the entry with the earliest store time. Caller
// holds the write lock.
func (c *Cache) evictOldestLocked() {
	var oldestKey string
	var oldestAt time.Time
	first := true
	for key, e := range c.entries {
		if first || e.storedAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = e.storedAt
			first = false
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
		c.evictions++
		c.metrics.IncEviction()
	}
}
