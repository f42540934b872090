package collector

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/inferenceops/endpoint-metrics/internal/metrictable"
)

// defaultCacheTTL is used when the configured TTL is not positive.
const defaultCacheTTL = 30 * time.Second

type cacheEntry struct {
	table    *metrictable.Table
	storedAt time.Time
}

// TableCache provides thread-safe caching of merged metric tables keyed by
// the full query parameters. It prevents re-issuing a dozen CloudWatch
// calls when the same endpoint window is requested repeatedly.
//
// Note: expired entries are not removed from memory automatically but are
// considered invalid on Get(). Call Cleanup() periodically if memory usage
// is a concern.
type TableCache struct {
	entries map[string]cacheEntry
	mu      sync.RWMutex // protects entries
	ttl     time.Duration
}

// NewTableCache creates a cache with the given TTL. TTL must be positive;
// if <= 0, defaults to 30 seconds.
func NewTableCache(ttl time.Duration, log *zap.Logger) *TableCache {
	if ttl <= 0 {
		log.Warn("invalid cache TTL provided, using default",
			zap.Duration("provided", ttl),
			zap.Duration("default", defaultCacheTTL))
		ttl = defaultCacheTTL
	}
	return &TableCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

// cacheKey generates a unique key for one query window.
func (c *TableCache) cacheKey(p Params) string {
	return fmt.Sprintf("%s|%s|%d|%d|%d",
		p.EndpointName, p.VariantName,
		p.StartTime.UTC().Unix(), p.EndTime.UTC().Unix(), p.PeriodSeconds)
}

// Get retrieves the cached table for the given parameters if present and
// not expired. The returned table is a copy, safe to mutate.
func (c *TableCache) Get(p Params) (*metrictable.Table, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[c.cacheKey(p)]
	if !exists {
		return nil, false
	}
	if time.Since(entry.storedAt) > c.ttl {
		return nil, false
	}
	return entry.table.Clone(), true
}

// Set stores a merged table for the given parameters. Nil tables are not
// cached; a nil result means failure, not an empty window.
func (c *TableCache) Set(p Params, t *metrictable.Table) {
	if t == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[c.cacheKey(p)] = cacheEntry{
		table:    t.Clone(),
		storedAt: time.Now(),
	}
}

// Invalidate removes the entry for the given parameters, forcing a
// backend round-trip on the next request.
func (c *TableCache) Invalidate(p Params) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, c.cacheKey(p))
}

// Clear removes all cached tables.
func (c *TableCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]cacheEntry)
}

// Size returns the current number of cached tables.
func (c *TableCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Cleanup removes expired entries and returns how many were removed.
func (c *TableCache) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	now := time.Now()
	for key, entry := range c.entries {
		if now.Sub(entry.storedAt) > c.ttl {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}
