// Package cache provides a typed TTL cache on top of patrickmn/go-cache.
// In production this could be swapped for Redis behind the same port.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// InMemory is a thread-safe in-memory cache with TTL. The zero value is not
// usable; construct with New.
type InMemory[T any] struct {
	store *gocache.Cache
}

// New creates an in-memory cache whose entries expire after ttl. Expired
// entries are purged in the background at the same interval.
func New[T any](ttl time.Duration) *InMemory[T] {
	return &InMemory[T]{store: gocache.New(ttl, ttl)}
}

// Get retrieves a value from the cache. Returns false if not found, expired,
// or stored under a different type.
func (c *InMemory[T]) Get(key string) (T, bool) {
	v, ok := c.store.Get(key)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, false
	}
	return t, true
}

// Set stores a value in the cache with the configured TTL.
func (c *InMemory[T]) Set(key string, value T) {
	c.store.SetDefault(key, value)
}

// Delete removes a value from the cache.
func (c *InMemory[T]) Delete(key string) {
	c.store.Delete(key)
}
