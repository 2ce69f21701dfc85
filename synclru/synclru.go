// Package synclru implements a fixed-capacity least-recently-used cache that
// is safe for concurrent use. Value lookups are lock-free; a single mutex
// serializes writes and recency bookkeeping.
package synclru

import (
	"errors"
	"sync"
)

// ErrNegativeCapacity is returned by New when capacity is below zero.
var ErrNegativeCapacity = errors.New("synclru: negative capacity")

type node[K comparable] struct {
	key        K
	prev, next *node[K]
}

// Cache is a thread-safe LRU cache. Values live in a sync.Map so Get and Peek
// read without blocking; the recency list and its index are guarded by one
// mutex, held only for pointer surgery and never across user code.
//
// Sets are serialized by the mutex, so of two Sets of the same key ordered by
// a happens-before edge, the later one wins. A concurrent lock-free read may
// return a value that a racing Set is about to replace; it was the current
// value at some instant during the call.
type Cache[K comparable, V any] struct {
	capacity int
	values   sync.Map // K -> V

	mu    sync.Mutex
	index map[K]*node[K]
	front *node[K] // least recently used
	back  *node[K] // most recently used
}

// New returns an empty cache holding at most capacity entries. A capacity of
// zero is legal and yields a cache that stores nothing.
func New[K comparable, V any](capacity int) (*Cache[K, V], error) {
	if capacity < 0 {
		return nil, ErrNegativeCapacity
	}
	return &Cache[K, V]{
		capacity: capacity,
		index:    make(map[K]*node[K], capacity),
	}, nil
}

// Get returns the value stored for key and whether it was present, marking the
// entry most recently used. The value lookup itself does not take the lock.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	v, ok := c.values.Load(key)
	if !ok {
		var zero V
		return zero, false
	}

	c.mu.Lock()
	// The entry may have been evicted between the load and here; the value
	// we already read still counts as a hit under the relaxed read contract.
	if n, ok := c.index[key]; ok {
		c.moveToBack(n)
	}
	c.mu.Unlock()

	// A nil interface value stored by the caller loads back as untyped nil;
	// the comma-ok form maps it to V's zero value.
	val, _ := v.(V)
	return val, true
}

// Set stores value under key and marks it most recently used, evicting the
// least recently used entry if a new key would exceed capacity.
func (c *Cache[K, V]) Set(key K, value V) {
	if c.capacity == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.index[key]; ok {
		c.values.Store(key, value)
		c.moveToBack(n)
		return
	}
	if len(c.index) >= c.capacity {
		victim := c.front
		c.unlink(victim)
		delete(c.index, victim.key)
		c.values.Delete(victim.key)
	}
	n := &node[K]{key: key}
	c.index[key] = n
	c.pushBack(n)
	c.values.Store(key, value)
}

// Peek returns the value stored for key without refreshing its recency. It
// never takes the lock.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	v, ok := c.values.Load(key)
	if !ok {
		var zero V
		return zero, false
	}
	val, _ := v.(V)
	return val, true
}

// Contains reports whether key is cached without refreshing its recency.
func (c *Cache[K, V]) Contains(key K) bool {
	_, ok := c.values.Load(key)
	return ok
}

// Len returns the exact number of cached entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.index)
}

// Cap returns the maximum number of entries the cache holds.
func (c *Cache[K, V]) Cap() int {
	return c.capacity
}

// Purge drops every entry and resets the recency list.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.index {
		c.values.Delete(key)
	}
	c.index = make(map[K]*node[K], c.capacity)
	c.front = nil
	c.back = nil
}

func (c *Cache[K, V]) moveToBack(n *node[K]) {
	if n == c.back {
		return
	}
	c.unlink(n)
	c.pushBack(n)
}

func (c *Cache[K, V]) pushBack(n *node[K]) {
	n.prev = c.back
	n.next = nil
	if c.back != nil {
		c.back.next = n
	} else {
		c.front = n
	}
	c.back = n
}

func (c *Cache[K, V]) unlink(n *node[K]) {
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
