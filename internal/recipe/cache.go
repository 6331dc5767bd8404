package recipe

import (
	"fmt"
	"sync"
	"time"
)

// CacheKey builds the result-cache key for a (url, restriction) pair.
func CacheKey(url, restriction string) string {
	return fmt.Sprintf("recipe_%s_restriction_%s", url, restriction)
}

type cacheEntry struct {
	value     any
	expiresAt time.Time
}

// ResultCache is a process-local TTL cache for parse results. Expired
// entries are dropped lazily on access; writes overwrite in place. Safe for
// concurrent use.
type ResultCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewResultCache creates an empty ResultCache.
func NewResultCache() *ResultCache {
	return &ResultCache{entries: make(map[string]cacheEntry)}
}

// Get returns the cached value for key, or false when absent or expired.
func (c *ResultCache) Get(key string) (any, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return entry.value, true
}

// Set stores value under key for the given time-to-live.
func (c *ResultCache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{value: value, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}
