// Package lru provides fixed-capacity LRU caches built around the exact
// recency engine in simplelru. The engine itself is single-threaded; the
// types in this package wrap it with the locking that concurrent callers
// need.
package lru

import (
	"sync"

	"github.com/jchoker/lru/simplelru"
)

// DefaultCapacity is the size used by NewDefault.
const DefaultCapacity = 128

// Cache is a thread-safe fixed size LRU cache.
type Cache[K comparable, V comparable] struct {
	lru  *simplelru.LRU[K, V]
	lock sync.RWMutex
}

// New creates an LRU of the given size.
func New[K comparable, V comparable](size int) (*Cache[K, V], error) {
	return NewWithEvict[K, V](size, nil)
}

// NewDefault creates an LRU of DefaultCapacity.
func NewDefault[K comparable, V comparable]() *Cache[K, V] {
	c, err := New[K, V](DefaultCapacity)
	if err != nil {
		panic(err)
	}
	return c
}

// NewWithEvict constructs a fixed size cache with the given eviction
// callback.
func NewWithEvict[K comparable, V comparable](size int, onEvicted func(key K, value V)) (*Cache[K, V], error) {
	lru, err := simplelru.NewLRU[K, V](size, simplelru.EvictCallback[K, V](onEvicted))
	if err != nil {
		return nil, err
	}
	c := &Cache[K, V]{
		lru: lru,
	}
	return c, nil
}

// Purge is used to completely clear the cache.
func (c *Cache[K, V]) Purge() {
	c.lock.Lock()
	c.lru.Purge()
	c.lock.Unlock()
}

// Put adds a value to the cache. Returns true if an eviction occurred.
func (c *Cache[K, V]) Put(key K, value V) (evicted bool) {
	c.lock.Lock()
	evicted = c.lru.Put(key, value)
	c.lock.Unlock()
	return evicted
}

// Get looks up a key's value from the cache, marking it most recently used.
func (c *Cache[K, V]) Get(key K) (value V, err error) {
	c.lock.Lock()
	value, err = c.lru.Get(key)
	c.lock.Unlock()
	return value, err
}

// Contains checks if a key is in the cache, without updating the
// recent-ness or deleting it for being stale.
func (c *Cache[K, V]) Contains(key K) bool {
	c.lock.RLock()
	containKey := c.lru.Contains(key)
	c.lock.RUnlock()
	return containKey
}

// Peek returns the key value (or undefined if not found) without updating
// the "recently used"-ness of the key.
func (c *Cache[K, V]) Peek(key K) (value V, ok bool) {
	c.lock.RLock()
	value, ok = c.lru.Peek(key)
	c.lock.RUnlock()
	return value, ok
}

// ContainsOrPut checks if a key is in the cache without updating the
// recent-ness, and if not, adds the value.
// Returns whether found and whether an eviction occurred.
func (c *Cache[K, V]) ContainsOrPut(key K, value V) (ok, evicted bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.lru.Contains(key) {
		return true, false
	}
	evicted = c.lru.Put(key, value)
	return false, evicted
}

// PeekOrPut checks if a key is in the cache without updating the
// recent-ness, and if not, adds the value.
// Returns whether found and whether an eviction occurred.
func (c *Cache[K, V]) PeekOrPut(key K, value V) (previous V, ok, evicted bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	previous, ok = c.lru.Peek(key)
	if ok {
		return previous, true, false
	}

	evicted = c.lru.Put(key, value)
	return previous, false, evicted
}

// Remove removes the provided key from the cache.
func (c *Cache[K, V]) Remove(key K) (present bool) {
	c.lock.Lock()
	present = c.lru.Remove(key)
	c.lock.Unlock()
	return
}

// RemoveOldest removes and returns the least recently used entry.
func (c *Cache[K, V]) RemoveOldest() (key K, value V, ok bool) {
	c.lock.Lock()
	key, value, ok = c.lru.RemoveOldest()
	c.lock.Unlock()
	return
}

// Grow raises the capacity; the new size must strictly exceed the current
// one.
func (c *Cache[K, V]) Grow(size int) error {
	c.lock.Lock()
	err := c.lru.Grow(size)
	c.lock.Unlock()
	return err
}

// Newest returns the key of the most recently used entry without updating
// its recent-ness.
func (c *Cache[K, V]) Newest() (K, error) {
	c.lock.RLock()
	key, err := c.lru.Newest()
	c.lock.RUnlock()
	return key, err
}

// Oldest returns the key of the least recently used entry without updating
// its recent-ness.
func (c *Cache[K, V]) Oldest() (K, error) {
	c.lock.RLock()
	key, err := c.lru.Oldest()
	c.lock.RUnlock()
	return key, err
}

// Keys returns the keys in the cache, from most to least recently used.
func (c *Cache[K, V]) Keys() []K {
	c.lock.RLock()
	keys := c.lru.Keys()
	c.lock.RUnlock()
	return keys
}

// Len returns the number of items in the cache.
func (c *Cache[K, V]) Len() int {
	c.lock.RLock()
	length := c.lru.Len()
	c.lock.RUnlock()
	return length
}

// Cap returns the capacity of the cache.
func (c *Cache[K, V]) Cap() int {
	c.lock.RLock()
	size := c.lru.Cap()
	c.lock.RUnlock()
	return size
}

// IsEmpty reports whether the cache holds no items.
func (c *Cache[K, V]) IsEmpty() bool {
	c.lock.RLock()
	empty := c.lru.IsEmpty()
	c.lock.RUnlock()
	return empty
}

// IsFull reports whether the cache is at capacity.
func (c *Cache[K, V]) IsFull() bool {
	c.lock.RLock()
	full := c.lru.IsFull()
	c.lock.RUnlock()
	return full
}
