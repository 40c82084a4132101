// Package cache provides a small in-memory TTL counter map used by the
// in-process login throttle. Entries expire a fixed window after their
// first increment; a crude eviction keeps the map bounded.
package cache

import (
	"sync"
	"time"
)

type CounterCache struct {
	counters map[string]*counterEntry
	mu       sync.Mutex
	ttl      time.Duration
	maxSize  int
}

type counterEntry struct {
	count     int
	createdAt time.Time
}

func NewCounterCache(ttl time.Duration, maxSize int) *CounterCache {
	if ttl == 0 {
		ttl = 15 * time.Minute
	}
	if maxSize == 0 {
		maxSize = 10000
	}

	return &CounterCache{
		counters: make(map[string]*counterEntry),
		ttl:      ttl,
		maxSize:  maxSize,
	}
}

// Get returns the current count for key, treating expired entries as zero.
func (c *CounterCache) Get(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.counters[key]
	if !exists {
		return 0
	}
	if time.Since(entry.createdAt) > c.ttl {
		delete(c.counters, key)
		return 0
	}
	return entry.count
}

// Increment bumps the counter for key and returns the new count. The
// window is anchored at the first increment (fixed window, not sliding).
func (c *CounterCache) Increment(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.counters[key]
	if exists && time.Since(entry.createdAt) <= c.ttl {
		entry.count++
		return entry.count
	}

	// Simple eviction if full
	if len(c.counters) >= c.maxSize {
		for k := range c.counters {
			delete(c.counters, k)
			break
		}
	}

	c.counters[key] = &counterEntry{count: 1, createdAt: time.Now()}
	return 1
}

// Delete clears the counter for key.
func (c *CounterCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.counters, key)
}

// Size returns the number of live entries, counting expired ones that have
// not been touched since.
func (c *CounterCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.counters)
}
