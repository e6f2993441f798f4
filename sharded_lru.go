package lru

import (
	"hash/maphash"
	"sync"

	"github.com/jchoker/lru/simplelru"
)

const defaultShardCount = 256

type shard[V comparable] struct {
	mu  sync.Mutex
	lru *simplelru.LRU[string, V]
}

// ShardedCache is a thread-safe fixed size LRU cache that spreads string
// keys over independently locked shards to reduce contention.
type ShardedCache[V comparable] struct {
	templateHash maphash.Hash
	shards       []shard[V]
	size         int
}

// NewSharded creates a sharded LRU of the given total size.
func NewSharded[V comparable](size, shardCount int) (*ShardedCache[V], error) {
	return NewShardedWithEvict[V](size, shardCount, nil)
}

// NewShardedWithEvict constructs a fixed size sharded cache with the given
// eviction callback.
//
// The total size is rounded down to a multiple of the shard count so every
// shard holds the same number of entries.
func NewShardedWithEvict[V comparable](size, shardCount int, onEvicted func(key string, value V)) (*ShardedCache[V], error) {
	if shardCount <= 0 {
		shardCount = defaultShardCount
	}
	if size < shardCount {
		size = shardCount
	}
	perShardSize := size / shardCount
	size = perShardSize * shardCount
	c := &ShardedCache[V]{
		shards: make([]shard[V], shardCount),
		size:   size,
	}
	c.templateHash.SetSeed(maphash.MakeSeed())
	for i := 0; i < shardCount; i++ {
		lru, err := simplelru.NewLRU[string, V](perShardSize, onEvicted)
		if err != nil {
			return nil, err
		}
		c.shards[i].lru = lru
	}
	return c, nil
}

// Purge is used to completely clear the cache.
func (c *ShardedCache[V]) Purge() {
	for i := 0; i < len(c.shards); i++ {
		shard := &c.shards[i]
		shard.mu.Lock()
		shard.lru.Purge()
		shard.mu.Unlock()
	}
}

func (c *ShardedCache[V]) getShard(key string) *shard[V] {
	hash := c.templateHash
	hash.WriteString(key)
	shardId := hash.Sum64() % uint64(len(c.shards))
	return &c.shards[shardId]
}

// Put adds a value to the cache. Returns true if an eviction occurred.
func (c *ShardedCache[V]) Put(key string, value V) (evicted bool) {
	shard := c.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	return shard.lru.Put(key, value)
}

// Get looks up a key's value from the cache, marking it most recently used
// within its shard.
func (c *ShardedCache[V]) Get(key string) (value V, err error) {
	shard := c.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	return shard.lru.Get(key)
}

// Contains checks if a key is in the cache, without updating the
// recent-ness or deleting it for being stale.
func (c *ShardedCache[V]) Contains(key string) bool {
	shard := c.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	return shard.lru.Contains(key)
}

// Peek returns the key value (or undefined if not found) without updating
// the "recently used"-ness of the key.
func (c *ShardedCache[V]) Peek(key string) (value V, ok bool) {
	shard := c.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	return shard.lru.Peek(key)
}

// ContainsOrPut checks if a key is in the cache without updating the
// recent-ness, and if not, adds the value.
// Returns whether found and whether an eviction occurred.
func (c *ShardedCache[V]) ContainsOrPut(key string, value V) (ok, evicted bool) {
	shard := c.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	if shard.lru.Contains(key) {
		return true, false
	}
	evicted = shard.lru.Put(key, value)
	return false, evicted
}

// PeekOrPut checks if a key is in the cache without updating the
// recent-ness, and if not, adds the value.
// Returns whether found and whether an eviction occurred.
func (c *ShardedCache[V]) PeekOrPut(key string, value V) (previous V, ok, evicted bool) {
	shard := c.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	previous, ok = shard.lru.Peek(key)
	if ok {
		return previous, true, false
	}

	evicted = shard.lru.Put(key, value)
	return previous, false, evicted
}

// Remove removes the provided key from the cache.
func (c *ShardedCache[V]) Remove(key string) (present bool) {
	shard := c.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	return shard.lru.Remove(key)
}

// we don't support growing a sharded cache

// Len returns the number of items in the cache.
func (c *ShardedCache[V]) Len() int {
	size := 0
	for i := 0; i < len(c.shards); i++ {
		shard := &c.shards[i]
		shard.mu.Lock()
		size += shard.lru.Len()
		shard.mu.Unlock()
	}
	return size
}

// Cap returns the total capacity across all shards.
func (c *ShardedCache[V]) Cap() int {
	return c.size
}
