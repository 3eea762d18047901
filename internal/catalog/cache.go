package catalog

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// cachedEntry wraps a value with version metadata for cache invalidation
type cachedEntry[V any] struct {
	Version  string
	Value    V
	CachedAt time.Time
}

// refCache is an in-memory LRU for reference data with time-based
// expiration and version-based invalidation.
type refCache[K comparable, V any] struct {
	lru *expirable.LRU[K, *cachedEntry[V]]
}

// newRefCache creates a cache holding at most size entries for ttl each
func newRefCache[K comparable, V any](size int, ttl time.Duration) *refCache[K, V] {
	return &refCache[K, V]{
		lru: expirable.NewLRU[K, *cachedEntry[V]](size, nil, ttl),
	}
}

// Get returns (value, true) only if the entry is present, unexpired and of the
// current schema version. Mismatched versions are dropped.
func (c *refCache[K, V]) Get(key K) (V, bool) {
	var zero V
	entry, found := c.lru.Get(key)
	if !found {
		return zero, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(key)
		return zero, false
	}
	return entry.Value, true
}

// Set stores a value with the current schema version
func (c *refCache[K, V]) Set(key K, value V) {
	c.lru.Add(key, &cachedEntry[V]{
		Version:  CacheSchemaVersion,
		Value:    value,
		CachedAt: time.Now(),
	})
}

// Invalidate removes one key
func (c *refCache[K, V]) Invalidate(key K) {
	c.lru.Remove(key)
}

// Clear removes all entries
func (c *refCache[K, V]) Clear() {
	c.lru.Purge()
}
