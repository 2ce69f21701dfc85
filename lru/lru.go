// Package lru implements a fixed-capacity cache that evicts the least
// recently used entry when full. It is not safe for concurrent use; wrap
// it in a mutex or use the synclru package when sharing across goroutines.
package lru

import "errors"

// ErrNegativeCapacity is returned by New when capacity is below zero.
var ErrNegativeCapacity = errors.New("lru: negative capacity")

// node is an element of the recency list, which runs from least recently
// used (front) to most recently used (back).
type node[K comparable, V any] struct {
	key        K
	value      V
	prev, next *node[K, V]
}

// Cache is a bounded key-value store with LRU eviction. A capacity of zero
// is legal: every Set is discarded and every Get misses.
type Cache[K comparable, V any] struct {
	capacity int
	items    map[K]*node[K, V]
	front    *node[K, V] // least recently used
	back     *node[K, V] // most recently used
}

// New returns an empty cache holding at most capacity entries.
func New[K comparable, V any](capacity int) (*Cache[K, V], error) {
	if capacity < 0 {
		return nil, ErrNegativeCapacity
	}
	return &Cache[K, V]{
		capacity: capacity,
		items:    make(map[K]*node[K, V], capacity),
	}, nil
}

// Get returns the value stored for key and marks key as most recently
// used. The boolean is false when key is not present; a miss has no side
// effects.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	n, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.moveToBack(n)
	return n.value, true
}

// Set inserts key or replaces its value, marking it most recently used.
// Inserting a new key into a full cache first evicts the least recently
// used entry. Updating an existing key never evicts.
func (c *Cache[K, V]) Set(key K, value V) {
	if n, ok := c.items[key]; ok {
		n.value = value
		c.moveToBack(n)
		return
	}
	if c.capacity == 0 {
		return
	}
	if len(c.items) >= c.capacity {
		c.evict()
	}
	n := &node[K, V]{key: key, value: value}
	c.items[key] = n
	c.pushBack(n)
}

// Peek returns the value for key without updating its recency.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	if n, ok := c.items[key]; ok {
		return n.value, true
	}
	var zero V
	return zero, false
}

// Contains reports whether key is present, without updating its recency.
func (c *Cache[K, V]) Contains(key K) bool {
	_, ok := c.items[key]
	return ok
}

// Keys returns the cached keys ordered from least to most recently used.
func (c *Cache[K, V]) Keys() []K {
	keys := make([]K, 0, len(c.items))
	for n := c.front; n != nil; n = n.next {
		keys = append(keys, n.key)
	}
	return keys
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	return len(c.items)
}

// Cap returns the capacity the cache was created with.
func (c *Cache[K, V]) Cap() int {
	return c.capacity
}

func (c *Cache[K, V]) evict() {
	n := c.front
	if n == nil {
		return
	}
	c.unlink(n)
	delete(c.items, n.key)
}

func (c *Cache[K, V]) moveToBack(n *node[K, V]) {
	if c.back == n {
		return
	}
	c.unlink(n)
	c.pushBack(n)
}

func (c *Cache[K, V]) pushBack(n *node[K, V]) {
	n.prev = c.back
	n.next = nil
	if c.back != nil {
		c.back.next = n
	} else {
		c.front = n
	}
	c.back = n
}

func (c *Cache[K, V]) unlink(n *node[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		c.front = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		c.back = n.prev
	}
	n.prev, n.next = nil, nil
}
