// Package cache provides a small in-process TTL cache used to memoize
// external provider calls.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// TTL is a thread-safe map of keys to values that expire after a duration.
// Staleness up to the TTL window is expected; the cache exists purely to
// reduce call volume against external APIs.
type TTL struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

// New creates an empty cache.
func New() *TTL {
	return &TTL{data: make(map[string]entry), now: time.Now}
}

// Get returns the cached value for key, or false if absent or expired.
// Expired entries are removed on access.
func (c *TTL) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.data[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		// re-check under the write lock
		if e2, ok2 := c.data[key]; ok2 && c.now().After(e2.expiresAt) {
			delete(c.data, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Set stores value under key for ttl.
func (c *TTL) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	c.data[key] = entry{value: value, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}
