package utils

import (
	"sync"
	"time"
)

type cacheEntry[T any] struct {
	value    T
	cachedAt time.Time
}

// TTLCache is a keyed in-process cache whose entries expire after a fixed
// duration.
type TTLCache[T any] struct {
	ttl     time.Duration
	mutex   sync.RWMutex
	entries map[string]cacheEntry[T]
}

// NewTTLCache initializes an empty cache with the given entry lifetime.
func NewTTLCache[T any](ttl time.Duration) *TTLCache[T] {
	return &TTLCache[T]{
		ttl:     ttl,
		entries: make(map[string]cacheEntry[T]),
	}
}

// Set stores a value under key, resetting its expiration.
func (c *TTLCache[T]) Set(key string, value T) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = cacheEntry[T]{value: value, cachedAt: time.Now()}
}

// Get retrieves the value for key if it is present and not expired.
func (c *TTLCache[T]) Get(key string) (T, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, ok := c.entries[key]
	if !ok || time.Since(entry.cachedAt) > c.ttl {
		var zero T
		return zero, false
	}
	return entry.value, true
}

// Clear drops every cached entry.
func (c *TTLCache[T]) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]cacheEntry[T])
}
