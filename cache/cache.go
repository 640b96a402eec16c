// backend/cache/cache.go
package cache

import (
	"sync"
	"time"
)

type entry[T any] struct {
	value  T
	expiry time.Time
}

// Cache is a TTL-bounded in-memory cache. It is injected into the
// fetch layers instead of living as package state so tests can run the
// pipeline without a live network.
type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]
}

func New[T any]() *Cache[T] {
	return &Cache[T]{entries: make(map[string]entry[T])}
}

// Get returns the cached value for key, or false if the key is absent
// or its entry has expired. Expired entries are evicted on access.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	if time.Now().After(e.expiry) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		var zero T
		return zero, false
	}
	return e.value, true
}

// Set stores value under key for the given ttl.
func (c *Cache[T]) Set(key string, value T, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry[T]{value: value, expiry: time.Now().Add(ttl)}
	c.mu.Unlock()
}

// Len reports the number of stored entries, including any not yet
// evicted expired ones.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
