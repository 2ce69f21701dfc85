package cache

import lru "github.com/hashicorp/golang-lru/v2"

type hashicorpCache struct {
	c *lru.Cache[string, string]
}

// NewHashicorp creates a hashicorp/golang-lru cache.
func NewHashicorp(capacity int) Cache {
	c, _ := lru.New[string, string](capacity)
	return &hashicorpCache{c: c}
}

func (c *hashicorpCache) Get(key string) (string, bool) {
	return c.c.Get(key)
}

func (c *hashicorpCache) Set(key, value string) {
	c.c.Add(key, value)
}

func (c *hashicorpCache) Name() string {
	return "hashicorp"
}

func (c *hashicorpCache) Close() {}
