package cache

import (
	"fmt"

	"github.com/elastic/go-freelru"
)

// Cache is an LRU of recently looked-up key/value pairs sitting in front of a
// tree. Keys are reduced to a 64-bit hash; the full key is kept in the entry
// so a hash collision reads as a miss instead of a wrong value.
//
// Not thread-safe.
type Cache[K any, V any] struct {
	lru     *freelru.LRU[uint64, entry[K, V]]
	hash    func(K) uint64
	compare func(a, b K) int

	// Stats
	hits      uint64
	misses    uint64
	evictions uint64
}

// entry represents a cached key/value pair
type entry[K any, V any] struct {
	key K
	val V
}

const (
	MinCacheSize = 16
)

// New creates a cache holding up to size entries
func New[K any, V any](size int, hash func(K) uint64, compare func(a, b K) int) (*Cache[K, V], error) {
	size = max(size, MinCacheSize)

	lru, err := freelru.New[uint64, entry[K, V]](uint32(size), fold)
	if err != nil {
		return nil, fmt.Errorf("lookup cache: %w", err)
	}

	return &Cache[K, V]{
		lru:     lru,
		hash:    hash,
		compare: compare,
	}, nil
}

// fold reduces a 64-bit key hash to the bucket hash freelru expects
func fold(h uint64) uint32 {
	return uint32(h) ^ uint32(h>>32)
}

// Get retrieves the cached value for key.
// Returns (value, true) on cache hit, (zero, false) on miss.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	e, ok := c.lru.Get(c.hash(key))
	if !ok || c.compare(e.key, key) != 0 {
		c.misses++
		var zero V
		return zero, false
	}

	c.hits++
	return e.val, true
}

// Put adds a pair to the cache, replacing any entry with the same hash.
func (c *Cache[K, V]) Put(key K, val V) {
	if c.lru.Add(c.hash(key), entry[K, V]{key: key, val: val}) {
		c.evictions++
	}
}

// Update refreshes the value of key only if key is already cached
func (c *Cache[K, V]) Update(key K, val V) {
	h := c.hash(key)
	e, ok := c.lru.Peek(h)
	if !ok || c.compare(e.key, key) != 0 {
		return
	}
	c.lru.Add(h, entry[K, V]{key: key, val: val})
}

// Delete removes key from the cache.
func (c *Cache[K, V]) Delete(key K) {
	h := c.hash(key)
	e, ok := c.lru.Peek(h)
	if !ok || c.compare(e.key, key) != 0 {
		return
	}
	c.lru.Remove(h)
}

// Purge empties the cache, keeping its statistics
func (c *Cache[K, V]) Purge() {
	c.lru.Purge()
}

// Size returns current number of cached entries
func (c *Cache[K, V]) Size() int {
	return c.lru.Len()
}

type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Stats returns cache statistics
func (c *Cache[K, V]) Stats() Stats {
	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}

// ClearStats resets the cache's positive incrementing statistics
func (c *Cache[K, V]) ClearStats() {
	c.hits = 0
	c.misses = 0
	c.evictions = 0
}
