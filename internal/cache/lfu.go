package cache

import (
	"sync"

	"github.com/tstromberg/cachelab/lfu"
)

type lfuCache struct {
	c  *lfu.Cache[string, string]
	mu sync.Mutex
}

// NewLFU creates a mutex-wrapped frequency cache.
func NewLFU(capacity int) Cache {
	c, _ := lfu.New[string, string](capacity)
	return &lfuCache{c: c}
}

func (c *lfuCache) Get(key string) (string, bool) {
	c.mu.Lock()
	v, ok := c.c.Get(key)
	c.mu.Unlock()
	return v, ok
}

func (c *lfuCache) Set(key, value string) {
	c.mu.Lock()
	c.c.Set(key, value)
	c.mu.Unlock()
}

func (*lfuCache) Name() string {
	return "lfu"
}

func (*lfuCache) Close() {}

type lfuIntCache struct {
	c  *lfu.Cache[int, int]
	mu sync.Mutex
}

// NewLFUInt creates a mutex-wrapped frequency cache with int keys.
func NewLFUInt(capacity int) IntCache {
	c, _ := lfu.New[int, int](capacity)
	return &lfuIntCache{c: c}
}

func (c *lfuIntCache) Get(key int) (int, bool) {
	c.mu.Lock()
	v, ok := c.c.Get(key)
	c.mu.Unlock()
	return v, ok
}

func (c *lfuIntCache) Set(key, value int) {
	c.mu.Lock()
	c.c.Set(key, value)
	c.mu.Unlock()
}

func (*lfuIntCache) Name() string {
	return "lfu"
}

func (*lfuIntCache) Close() {}
