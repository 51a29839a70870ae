// Package cache provides a small in-process TTL cache used by the author
// directory. The clock is injectable so expiry can be tested without sleeping.
package cache

import (
	"sync"
	"time"
)

// Clock returns the current time. Swapped for a fake in tests.
type Clock func() time.Time

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// TTLCache is a process-wide cache with a fixed time-to-live per entry.
// Values written elsewhere are invisible to readers until Set or Invalidate
// is called, or the TTL expires.
type TTLCache struct {
	mutex sync.RWMutex
	ttl   time.Duration
	now   Clock
	items map[string]entry
}

// New creates a TTLCache with the given TTL, using the wall clock.
func New(ttl time.Duration) *TTLCache {
	return NewWithClock(ttl, time.Now)
}

// NewWithClock creates a TTLCache with an explicit clock.
func NewWithClock(ttl time.Duration, now Clock) *TTLCache {
	return &TTLCache{
		ttl:   ttl,
		now:   now,
		items: make(map[string]entry),
	}
}

// Get returns the cached value for key and whether it was present and unexpired.
func (c *TTLCache) Get(key string) (interface{}, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, ok := c.items[key]
	if !ok || c.now().After(item.expiresAt) {
		return nil, false
	}
	return item.value, true
}

// Set stores value under key, resetting its TTL.
func (c *TTLCache) Set(key string, value interface{}) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items[key] = entry{
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	}
}

// Invalidate drops key from the cache. Writers call this so readers do not
// wait out the TTL to observe their writes.
func (c *TTLCache) Invalidate(key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.items, key)
}
