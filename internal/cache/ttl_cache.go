package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTL is an in-memory cache with a single time-to-live for all entries.
// The price sweep uses it so a sweep over many watches of one product asks
// the oracle once per TTL window.
type TTL[K comparable, V any] struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[K]entry[V]
}

// NewTTL constructs a cache whose entries expire after ttl. A non-positive
// ttl disables caching entirely: every Get misses.
func NewTTL[K comparable, V any](ttl time.Duration) *TTL[K, V] {
	return &TTL[K, V]{
		ttl:   ttl,
		items: make(map[K]entry[V]),
	}
}

// Get returns the cached value if present and fresh.
func (c *TTL[K, V]) Get(key K) (V, bool) {
	var zero V
	if c.ttl <= 0 {
		return zero, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[key]
	if !ok {
		return zero, false
	}
	if time.Now().After(item.expiresAt) {
		delete(c.items, key)
		return zero, false
	}
	return item.value, true
}

// Put stores a value, replacing any previous entry for the key.
func (c *TTL[K, V]) Put(key K, value V) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.items[key] = entry[V]{value: value, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// Evict drops a single entry.
func (c *TTL[K, V]) Evict(key K) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}
