// Package sharded provides a generic, concurrency-safe sharded LRU cache.
//
// It backs the shared glyph-position store (glyph.Store), which is read and
// written by many tile workers running on different goroutines and needs
// lookups that don't block the whole store behind a single mutex. No other
// package in this module uses it.
package sharded

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
)

// Default configuration constants.
const (
	// DefaultShardCount is the number of shards for reduced lock contention.
	// Must be a power of 2 for fast modulo via bitwise AND.
	DefaultShardCount = 16

	// DefaultCapacity is the default maximum entries per shard.
	DefaultCapacity = 256

	shardMask = DefaultShardCount - 1
)

// Hasher computes a hash for a key, used for shard selection.
type Hasher[K any] func(K) uint64

// StringHasher computes the FNV-1a hash of a string key.
func StringHasher(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s)) // fnv.Write never returns an error
	return h.Sum64()
}

// Uint64Hasher returns the key itself as the hash (identity hash).
// Suitable for keys that are already well-distributed integers, such as a
// packed (FontID, GlyphID) pair.
func Uint64Hasher(u uint64) uint64 {
	return u
}

// Cache is a thread-safe, sharded LRU cache.
//
// Cache is safe for concurrent use.
type Cache[K comparable, V any] struct {
	shards   [DefaultShardCount]*shard[K, V]
	hasher   Hasher[K]
	capacity int // per-shard capacity

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type shard[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]*entry[K, V]
	lru     *lruList[K]
}

type entry[K comparable, V any] struct {
	value V
	node  *lruNode[K]
}

// Stats reports cache access statistics.
type Stats struct {
	Len           int
	Capacity      int
	TotalCapacity int
	Hits          uint64
	Misses        uint64
	HitRate       float64
	Evictions     uint64
}

// New creates a sharded cache with the given per-shard capacity.
// If capacity <= 0, DefaultCapacity is used.
func New[K comparable, V any](capacity int, hasher Hasher[K]) *Cache[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	c := &Cache[K, V]{hasher: hasher, capacity: capacity}
	for i := range c.shards {
		c.shards[i] = &shard[K, V]{
			entries: make(map[K]*entry[K, V]),
			lru:     newLRUList[K](),
		}
	}
	return c
}

func (c *Cache[K, V]) getShard(key K) *shard[K, V] {
	return c.shards[c.hasher(key)&shardMask]
}

// Get retrieves a cached value by key.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	sh := c.getShard(key)

	sh.mu.RLock()
	_, exists := sh.entries[key]
	sh.mu.RUnlock()
	if !exists {
		c.misses.Add(1)
		var zero V
		return zero, false
	}

	sh.mu.Lock()
	e, ok := sh.entries[key]
	if !ok {
		sh.mu.Unlock()
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	sh.lru.MoveToFront(e.node)
	value := e.value
	sh.mu.Unlock()

	c.hits.Add(1)
	return value, true
}

// Set stores a value, evicting the oldest entry in its shard if full.
func (c *Cache[K, V]) Set(key K, value V) {
	sh := c.getShard(key)

	sh.mu.Lock()
	defer sh.mu.Unlock()

	if existing, ok := sh.entries[key]; ok {
		existing.value = value
		sh.lru.MoveToFront(existing.node)
		return
	}

	for sh.lru.Len() >= c.capacity {
		oldest, ok := sh.lru.RemoveOldest()
		if !ok {
			break
		}
		delete(sh.entries, oldest)
		c.evictions.Add(1)
	}

	node := sh.lru.PushFront(key)
	sh.entries[key] = &entry[K, V]{value: value, node: node}
}

// GetOrCreate returns a cached value, computing and storing it via create
// if absent. create runs with the shard lock held, so it must be fast and
// must not call back into the same Cache.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) V {
	sh := c.getShard(key)

	sh.mu.Lock()
	defer sh.mu.Unlock()

	if e, ok := sh.entries[key]; ok {
		sh.lru.MoveToFront(e.node)
		c.hits.Add(1)
		return e.value
	}
	c.misses.Add(1)

	value := create()

	for sh.lru.Len() >= c.capacity {
		oldest, ok := sh.lru.RemoveOldest()
		if !ok {
			break
		}
		delete(sh.entries, oldest)
		c.evictions.Add(1)
	}

	node := sh.lru.PushFront(key)
	sh.entries[key] = &entry[K, V]{value: value, node: node}
	return value
}

// Delete removes an entry, reporting whether it was present.
func (c *Cache[K, V]) Delete(key K) bool {
	sh := c.getShard(key)

	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, ok := sh.entries[key]
	if !ok {
		return false
	}
	sh.lru.Remove(e.node)
	delete(sh.entries, key)
	return true
}

// Clear removes all entries.
func (c *Cache[K, V]) Clear() {
	for _, sh := range c.shards {
		sh.mu.Lock()
		sh.entries = make(map[K]*entry[K, V])
		sh.lru.Clear()
		sh.mu.Unlock()
	}
}

// Len returns the total number of entries across all shards.
func (c *Cache[K, V]) Len() int {
	total := 0
	for _, sh := range c.shards {
		sh.mu.RLock()
		total += len(sh.entries)
		sh.mu.RUnlock()
	}
	return total
}

// Capacity returns the per-shard capacity.
func (c *Cache[K, V]) Capacity() int { return c.capacity }

// TotalCapacity returns the total capacity across all shards.
func (c *Cache[K, V]) TotalCapacity() int { return c.capacity * DefaultShardCount }

// Stats returns current cache statistics. Len() is computed fresh;
// the counters are atomic and mostly lock-free.
func (c *Cache[K, V]) Stats() Stats {
	hits := c.hits.Load()
	misses := c.misses.Load()
	evictions := c.evictions.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return Stats{
		Len:           c.Len(),
		Capacity:      c.capacity,
		TotalCapacity: c.capacity * DefaultShardCount,
		Hits:          hits,
		Misses:        misses,
		HitRate:       hitRate,
		Evictions:     evictions,
	}
}

// ResetStats resets the hit/miss/eviction counters to zero.
func (c *Cache[K, V]) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}
