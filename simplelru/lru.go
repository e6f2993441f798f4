package simplelru

import (
	"errors"
	"fmt"
)

// ErrInvalidCapacity reports a non-positive construction size, or a Grow
// target that does not exceed the current capacity.
var ErrInvalidCapacity = errors.New("invalid capacity")

// ErrKeyNotFound reports a Get on an absent key. Match it with errors.Is;
// the concrete error is a KeyNotFoundError carrying the key.
var ErrKeyNotFound = errors.New("key not found")

// ErrEmptyCache reports Newest or Oldest called on an empty cache.
var ErrEmptyCache = errors.New("cache is empty")

// KeyNotFoundError is the error returned by Get for a missing key.
type KeyNotFoundError[K comparable] struct {
	Key K
}

func (e *KeyNotFoundError[K]) Error() string {
	return fmt.Sprintf("key not found: %v", e.Key)
}

func (e *KeyNotFoundError[K]) Is(target error) bool {
	return target == ErrKeyNotFound
}

// EvictCallback is used to get a callback when a cache entry is evicted
type EvictCallback[K comparable, V comparable] func(key K, value V)

// LRU implements a non-thread safe fixed size LRU cache
type LRU[K comparable, V comparable] struct {
	size    int
	items   map[K]*entry[K, V]
	head    *entry[K, V] // sentinel; head.next is the most recently used entry
	tail    *entry[K, V] // sentinel; tail.prev is the least recently used entry
	onEvict EvictCallback[K, V]
}

// entry is a node of the recency list. The two sentinels are entries too:
// they carry no key or value and never appear in the index.
type entry[K comparable, V comparable] struct {
	key   K
	value V
	prev  *entry[K, V]
	next  *entry[K, V]
}

// NewLRU constructs an LRU of the given size
func NewLRU[K comparable, V comparable](size int, onEvict EvictCallback[K, V]) (*LRU[K, V], error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size %d is not positive", ErrInvalidCapacity, size)
	}
	c := &LRU[K, V]{
		size:    size,
		items:   make(map[K]*entry[K, V], size),
		head:    &entry[K, V]{},
		tail:    &entry[K, V]{},
		onEvict: onEvict,
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c, nil
}

// Put adds a value to the cache. Returns true if an eviction occurred.
//
// An existing key keeps its entry: the stored value is overwritten only when
// it differs, and the entry becomes the most recently used either way.
func (c *LRU[K, V]) Put(key K, value V) (evicted bool) {
	if e, ok := c.items[key]; ok {
		if e.value != value {
			e.value = value
		}
		c.moveToFront(e)
		return false
	}

	if len(c.items) == c.size {
		c.removeOldest()
		evicted = true
	}

	e := &entry[K, V]{key: key, value: value}
	c.items[key] = e
	c.pushFront(e)
	return evicted
}

// Get looks up a key's value from the cache, marking it most recently used.
// A miss fails with a KeyNotFoundError and leaves the cache untouched.
func (c *LRU[K, V]) Get(key K) (value V, err error) {
	e, ok := c.items[key]
	if !ok {
		return value, &KeyNotFoundError[K]{Key: key}
	}
	c.moveToFront(e)
	return e.value, nil
}

// Contains checks if a key is in the cache, without updating the recent-ness.
func (c *LRU[K, V]) Contains(key K) (ok bool) {
	_, ok = c.items[key]
	return ok
}

// Peek returns the key value (or undefined if not found) without updating
// the "recently used"-ness of the key.
func (c *LRU[K, V]) Peek(key K) (value V, ok bool) {
	if e, ok := c.items[key]; ok {
		return e.value, true
	}
	return value, false
}

// Remove removes the provided key from the cache, returning if the
// key was contained.
func (c *LRU[K, V]) Remove(key K) (present bool) {
	if e, ok := c.items[key]; ok {
		c.removeElement(e)
		return true
	}
	return false
}

// RemoveOldest removes and returns the least recently used entry.
func (c *LRU[K, V]) RemoveOldest() (key K, value V, ok bool) {
	if len(c.items) == 0 {
		return key, value, false
	}
	e := c.tail.prev
	c.removeElement(e)
	return e.key, e.value, true
}

// Purge is used to completely clear the cache.
func (c *LRU[K, V]) Purge() {
	for k, e := range c.items {
		if c.onEvict != nil {
			c.onEvict(k, e.value)
		}
	}
	c.items = make(map[K]*entry[K, V], c.size)
	c.head.next = c.tail
	c.tail.prev = c.head
}

// Len returns the number of items in the cache.
func (c *LRU[K, V]) Len() int {
	return len(c.items)
}

// Cap returns the number of items the cache holds before evicting.
func (c *LRU[K, V]) Cap() int {
	return c.size
}

// IsEmpty reports whether the cache holds no items.
func (c *LRU[K, V]) IsEmpty() bool {
	return len(c.items) == 0
}

// IsFull reports whether the cache is at capacity.
func (c *LRU[K, V]) IsFull() bool {
	return len(c.items) == c.size
}

// Grow raises the capacity. The new size must strictly exceed the current
// one; the cache never shrinks. No entries move and the index is not
// rehashed: growth is a metadata update only.
func (c *LRU[K, V]) Grow(size int) error {
	if size <= c.size {
		return fmt.Errorf("%w: size %d does not exceed current %d", ErrInvalidCapacity, size, c.size)
	}
	c.size = size
	return nil
}

// Newest returns the key of the most recently used entry, without updating
// its recent-ness. Fails with ErrEmptyCache on an empty cache.
func (c *LRU[K, V]) Newest() (key K, err error) {
	if len(c.items) == 0 {
		return key, ErrEmptyCache
	}
	return c.head.next.key, nil
}

// Oldest returns the key of the least recently used entry, without updating
// its recent-ness. Fails with ErrEmptyCache on an empty cache.
func (c *LRU[K, V]) Oldest() (key K, err error) {
	if len(c.items) == 0 {
		return key, ErrEmptyCache
	}
	return c.tail.prev.key, nil
}

// Keys returns the keys in the cache, from most to least recently used.
func (c *LRU[K, V]) Keys() []K {
	keys := make([]K, 0, len(c.items))
	for e := c.head.next; e != c.tail; e = e.next {
		keys = append(keys, e.key)
	}
	return keys
}

// removeOldest removes the least recently used entry from the cache.
// Only called when the cache is not empty.
func (c *LRU[K, V]) removeOldest() {
	c.removeElement(c.tail.prev)
}

// removeElement drops an entry from both the index and the recency list.
func (c *LRU[K, V]) removeElement(e *entry[K, V]) {
	delete(c.items, e.key)
	c.unlink(e)
	if c.onEvict != nil {
		c.onEvict(e.key, e.value)
	}
}

// unlink splices an entry out of the recency list. The index is untouched.
func (c *LRU[K, V]) unlink(e *entry[K, V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
}

// pushFront links an entry directly behind the head sentinel, making it the
// most recently used. The index is untouched.
func (c *LRU[K, V]) pushFront(e *entry[K, V]) {
	e.prev = c.head
	e.next = c.head.next
	c.head.next.prev = e
	c.head.next = e
}

func (c *LRU[K, V]) moveToFront(e *entry[K, V]) {
	c.unlink(e)
	c.pushFront(e)
}
