// Package cache provides a unified interface for benchmarking cache implementations.
package cache

// Cache is a minimal interface for cache benchmarking with string keys.
type Cache interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Name() string
	Close()
}

// Factory creates a new cache instance with the given capacity.
type Factory func(capacity int) Cache

// SizedFactory creates a new cache instance with capacity and expected entry size.
// Used for byte-based caches like freecache that need to know entry sizes.
type SizedFactory func(capacity, entrySize int) Cache

// GetOrSetCache is an optional capability: fetch the existing value for key or
// atomically insert the given one. Suites detect it by type assertion and skip
// caches that lack it.
type GetOrSetCache interface {
	Cache
	GetOrSet(key, value string) string
}

// IntCache is a minimal interface for cache benchmarking with int keys.
type IntCache interface {
	Get(key int) (int, bool)
	Set(key, value int)
	Name() string
	Close()
}

// IntFactory creates a new int-keyed cache instance with the given capacity.
type IntFactory func(capacity int) IntCache

// IntGetOrSetCache is the int-keyed mirror of GetOrSetCache.
type IntGetOrSetCache interface {
	IntCache
	GetOrSet(key, value int) int
}
