package api

import (
	"sync"
	"time"

	"github.com/plateseries/matriculas/internal/series"
)

// DefaultTTL is how long a cached table stays fresh.
const DefaultTTL = 6 * time.Hour

// Cache holds the last aggregated table with a TTL.
// Safe for concurrent use.
type Cache struct {
	mu       sync.RWMutex
	records  []series.Record
	cachedAt time.Time
	ttl      time.Duration
}

// NewCache creates an empty cache with the given TTL.
// A non-positive TTL falls back to DefaultTTL.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{ttl: ttl}
}

// Get returns the cached records and true while the entry is fresh.
// Returns nil and false if nothing was stored or the entry expired.
func (c *Cache) Get() ([]series.Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.cachedAt.IsZero() || time.Since(c.cachedAt) > c.ttl {
		return nil, false
	}

	records := make([]series.Record, len(c.records))
	copy(records, c.records)
	return records, true
}

// Set stores a new table and restarts the TTL clock.
func (c *Cache) Set(records []series.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records = make([]series.Record, len(records))
	copy(c.records, records)
	c.cachedAt = time.Now()
}

// Age returns how long ago the entry was stored, and false when the cache
// has never been filled.
func (c *Cache) Age() (time.Duration, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.cachedAt.IsZero() {
		return 0, false
	}
	return time.Since(c.cachedAt), true
}

// Size returns the number of cached records.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}
