// Package simplelru provides a simple LRU implementation based on a map
// index and a sentinel-bounded doubly linked recency list.
package simplelru

// LRUCache is the interface for simple LRU cache.
type LRUCache[K comparable, V comparable] interface {
	// Adds a value to the cache, returns true if an eviction occurred and
	// updates the "recently used"-ness of the key.
	Put(key K, value V) bool

	// Returns key's value from the cache and
	// updates the "recently used"-ness of the key.
	Get(key K) (value V, err error)

	// Checks if a key exists in cache without updating the recent-ness.
	Contains(key K) (ok bool)

	// Returns key's value without updating the "recently used"-ness of the key.
	Peek(key K) (value V, ok bool)

	// Removes a key from the cache.
	Remove(key K) bool

	// Removes the oldest entry from cache.
	RemoveOldest() (K, V, bool)

	// Returns the key of the most recently used entry.
	Newest() (K, error)

	// Returns the key of the least recently used entry.
	Oldest() (K, error)

	// Returns a slice of the keys in the cache, from newest to oldest.
	Keys() []K

	// Returns the number of items in the cache.
	Len() int

	// Returns the capacity of the cache.
	Cap() int

	// Reports whether the cache holds no items.
	IsEmpty() bool

	// Reports whether the cache is at capacity.
	IsFull() bool

	// Raises the capacity; the cache never shrinks.
	Grow(size int) error

	// Clears all cache entries.
	Purge()
}
