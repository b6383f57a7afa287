package cache

import (
	"sync"
	"time"

	"github.com/3b3zeem/le-souk-offers-service/internal/pkg/clock"
)

// TTLCache is a small in-memory cache with per-entry expiry, used to keep
// offer responses cheap between catalog refreshes. Safe for concurrent use.
type TTLCache struct {
	mu      sync.RWMutex
	clk     clock.Clock
	ttl     time.Duration
	entries map[string]entry
}

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// New creates a TTLCache whose entries live for ttl.
func New(ttl time.Duration, clk clock.Clock) *TTLCache {
	return &TTLCache{
		clk:     clk,
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

// Get returns the cached value for key, or false when absent or expired.
func (c *TTLCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.clk.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with the cache's TTL.
func (c *TTLCache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{
		value:     value,
		expiresAt: c.clk.Now().Add(c.ttl),
	}
}

// Delete removes a key. Deleting an absent key is a no-op.
func (c *TTLCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Purge removes every entry.
func (c *TTLCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}
