package cache

import "github.com/tstromberg/cachelab/synclru"

type syncLRUCache struct {
	c *synclru.Cache[string, string]
}

// NewSyncLRU creates a concurrent recency cache. It needs no wrapping: the
// implementation is safe for concurrent use.
func NewSyncLRU(capacity int) Cache {
	c, _ := synclru.New[string, string](capacity)
	return &syncLRUCache{c: c}
}

func (c *syncLRUCache) Get(key string) (string, bool) {
	return c.c.Get(key)
}

func (c *syncLRUCache) Set(key, value string) {
	c.c.Set(key, value)
}

func (*syncLRUCache) Name() string {
	return "synclru"
}

func (c *syncLRUCache) Close() {
	c.c.Purge()
}

type syncLRUIntCache struct {
	c *synclru.Cache[int, int]
}

// NewSyncLRUInt creates a concurrent recency cache with int keys.
func NewSyncLRUInt(capacity int) IntCache {
	c, _ := synclru.New[int, int](capacity)
	return &syncLRUIntCache{c: c}
}

func (c *syncLRUIntCache) Get(key int) (int, bool) {
	return c.c.Get(key)
}

func (c *syncLRUIntCache) Set(key, value int) {
	c.c.Set(key, value)
}

func (*syncLRUIntCache) Name() string {
	return "synclru"
}

func (c *syncLRUIntCache) Close() {
	c.c.Purge()
}
