package cache

import (
	"sync"

	"github.com/tstromberg/cachelab/lru"
)

type lruCache struct {
	c  *lru.Cache[string, string]
	mu sync.Mutex
}

// NewLRU creates a mutex-wrapped recency cache.
func NewLRU(capacity int) Cache {
	c, _ := lru.New[string, string](capacity)
	return &lruCache{c: c}
}

func (c *lruCache) Get(key string) (string, bool) {
	c.mu.Lock()
	v, ok := c.c.Get(key)
	c.mu.Unlock()
	return v, ok
}

func (c *lruCache) Set(key, value string) {
	c.mu.Lock()
	c.c.Set(key, value)
	c.mu.Unlock()
}

func (*lruCache) Name() string {
	return "lru"
}

func (*lruCache) Close() {}

type lruIntCache struct {
	c  *lru.Cache[int, int]
	mu sync.Mutex
}

// NewLRUInt creates a mutex-wrapped recency cache with int keys.
func NewLRUInt(capacity int) IntCache {
	c, _ := lru.New[int, int](capacity)
	return &lruIntCache{c: c}
}

func (c *lruIntCache) Get(key int) (int, bool) {
	c.mu.Lock()
	v, ok := c.c.Get(key)
	c.mu.Unlock()
	return v, ok
}

func (c *lruIntCache) Set(key, value int) {
	c.mu.Lock()
	c.c.Set(key, value)
	c.mu.Unlock()
}

func (*lruIntCache) Name() string {
	return "lru"
}

func (*lruIntCache) Close() {}
