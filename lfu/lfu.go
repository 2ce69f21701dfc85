// Package lfu implements a fixed-capacity cache that evicts the least
// frequently used entry when full, breaking frequency ties by evicting the
// least recently used entry among them. It is not safe for concurrent use.
package lfu

import "errors"

// ErrNegativeCapacity is returned by New when capacity is below zero.
var ErrNegativeCapacity = errors.New("lfu: negative capacity")

type node[K comparable, V any] struct {
	key        K
	value      V
	freq       int
	prev, next *node[K, V]
}

// bucket holds every entry sharing one access frequency, in recency order.
type bucket[K comparable, V any] struct {
	front *node[K, V] // least recently used at this frequency
	back  *node[K, V] // most recently used at this frequency
}

// Cache is a least-frequently-used cache. Each entry carries an access count;
// Get and Set on an existing key both increment it. When the cache is full, a
// new key displaces the entry with the lowest count, oldest first on ties.
type Cache[K comparable, V any] struct {
	capacity int
	items    map[K]*node[K, V]
	buckets  map[int]*bucket[K, V]
	minFreq  int
}

// New returns an empty cache holding at most capacity entries. A capacity of
// zero is legal and yields a cache that stores nothing.
func New[K comparable, V any](capacity int) (*Cache[K, V], error) {
	if capacity < 0 {
		return nil, ErrNegativeCapacity
	}
	return &Cache[K, V]{
		capacity: capacity,
		items:    make(map[K]*node[K, V], capacity),
		buckets:  make(map[int]*bucket[K, V]),
	}, nil
}

// Get returns the value stored for key and whether it was present, counting
// the lookup as a use of the entry.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	n, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.touch(n)
	return n.value, true
}

// Set stores value under key. Updating an existing key counts as a use, like
// Get. Inserting a new key into a full cache first evicts the least frequently
// used entry, oldest first among entries tied on frequency.
func (c *Cache[K, V]) Set(key K, value V) {
	if n, ok := c.items[key]; ok {
		n.value = value
		c.touch(n)
		return
	}
	if c.capacity == 0 {
		return
	}
	if len(c.items) >= c.capacity {
		c.evict()
	}
	n := &node[K, V]{key: key, value: value, freq: 1}
	c.items[key] = n
	c.bucketFor(1).pushBack(n)
	c.minFreq = 1
}

// Peek returns the value stored for key without counting a use.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	n, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	return n.value, true
}

// Contains reports whether key is cached without counting a use.
func (c *Cache[K, V]) Contains(key K) bool {
	_, ok := c.items[key]
	return ok
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	return len(c.items)
}

// Cap returns the maximum number of entries the cache holds.
func (c *Cache[K, V]) Cap() int {
	return c.capacity
}

// touch moves n one frequency up, keeping minFreq pointed at the lowest
// non-empty bucket. minFreq only ever advances when the bucket it points at
// drains; insertion resets it to one.
func (c *Cache[K, V]) touch(n *node[K, V]) {
	b := c.buckets[n.freq]
	b.unlink(n)
	if b.empty() {
		delete(c.buckets, n.freq)
		if c.minFreq == n.freq {
			c.minFreq++
		}
	}
	n.freq++
	c.bucketFor(n.freq).pushBack(n)
}

// evict removes the least recently used entry of the minimum-frequency bucket.
// Callers must ensure the cache is non-empty.
func (c *Cache[K, V]) evict() {
	b := c.buckets[c.minFreq]
	victim := b.front
	b.unlink(victim)
	if b.empty() {
		delete(c.buckets, c.minFreq)
	}
	delete(c.items, victim.key)
}

func (c *Cache[K, V]) bucketFor(freq int) *bucket[K, V] {
	b, ok := c.buckets[freq]
	if !ok {
		b = &bucket[K, V]{}
		c.buckets[freq] = b
	}
	return b
}

func (b *bucket[K, V]) empty() bool {
	return b.front == nil
}

func (b *bucket[K, V]) pushBack(n *node[K, V]) {
	n.prev = b.back
	n.next = nil
	if b.back != nil {
		b.back.next = n
	} else {
		b.front = n
	}
	b.back = n
}

func (b *bucket[K, V]) unlink(n *node[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		b.front = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		b.back = n.prev
	}
	n.prev, n.next = nil, nil
}
