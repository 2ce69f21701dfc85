package benchmark

import (
	"strconv"
	"testing"

	"github.com/tstromberg/cachelab/internal/cache"
)

// LatencyResult holds single-threaded latency results for a cache. The same
// shape serves string-keyed and int-keyed runs.
type LatencyResult struct {
	Name           string
	GetNsOp        float64 // nanoseconds per Get operation
	SetNsOp        float64 // nanoseconds per Set operation (no eviction)
	SetEvictNsOp   float64 // nanoseconds per Set with eviction (20x keyspace)
	GetAllocs      int64   // allocations per Get
	SetAllocs      int64   // allocations per Set
	SetEvictAllocs int64   // allocations per Set with eviction
}

// GetOrSetLatencyResult holds latency results for caches with atomic GetOrSet.
type GetOrSetLatencyResult struct {
	Name   string
	NsOp   float64
	Allocs int64
}

const latencyCacheSize = 10000

// RunLatency benchmarks single-threaded Get/Set latency for all caches (string keys).
func RunLatency() []LatencyResult {
	// Pre-generate keys once for all benchmarks
	keys := make([]string, latencyCacheSize)
	for i := range latencyCacheSize {
		keys[i] = strconv.Itoa(i)
	}
	evictKeys := make([]string, latencyCacheSize*20)
	for i := range len(evictKeys) {
		evictKeys[i] = strconv.Itoa(i)
	}

	results := make([]LatencyResult, 0, len(cache.All()))
	for _, factory := range cache.All() {
		c := factory(latencyCacheSize)
		name := c.Name()
		c.Close()

		getResult := testing.Benchmark(func(b *testing.B) {
			benchGet(b, factory, keys)
		})
		setResult := testing.Benchmark(func(b *testing.B) {
			benchSet(b, factory, keys)
		})
		setEvictResult := testing.Benchmark(func(b *testing.B) {
			benchSetEvict(b, factory, evictKeys)
		})

		results = append(results, LatencyResult{
			Name:           name,
			GetNsOp:        float64(getResult.NsPerOp()),
			SetNsOp:        float64(setResult.NsPerOp()),
			SetEvictNsOp:   float64(setEvictResult.NsPerOp()),
			GetAllocs:      getResult.AllocsPerOp(),
			SetAllocs:      setResult.AllocsPerOp(),
			SetEvictAllocs: setEvictResult.AllocsPerOp(),
		})
	}

	return results
}

// RunIntLatency benchmarks single-threaded Get/Set latency for int-keyed caches.
func RunIntLatency() []LatencyResult {
	keys := make([]int, latencyCacheSize)
	for i := range latencyCacheSize {
		keys[i] = i
	}
	evictKeys := make([]int, latencyCacheSize*20)
	for i := range len(evictKeys) {
		evictKeys[i] = i
	}

	results := make([]LatencyResult, 0, len(cache.AllInt()))
	for _, factory := range cache.AllInt() {
		c := factory(latencyCacheSize)
		name := c.Name()
		c.Close()

		getResult := testing.Benchmark(func(b *testing.B) {
			benchIntGet(b, factory, keys)
		})
		setResult := testing.Benchmark(func(b *testing.B) {
			benchIntSet(b, factory, keys)
		})
		setEvictResult := testing.Benchmark(func(b *testing.B) {
			benchIntSetEvict(b, factory, evictKeys)
		})

		results = append(results, LatencyResult{
			Name:           name,
			GetNsOp:        float64(getResult.NsPerOp()),
			SetNsOp:        float64(setResult.NsPerOp()),
			SetEvictNsOp:   float64(setEvictResult.NsPerOp()),
			GetAllocs:      getResult.AllocsPerOp(),
			SetAllocs:      setResult.AllocsPerOp(),
			SetEvictAllocs: setEvictResult.AllocsPerOp(),
		})
	}

	return results
}

// RunGetOrSetLatency benchmarks GetOrSet latency for caches that support it.
func RunGetOrSetLatency() []GetOrSetLatencyResult {
	keys := make([]string, latencyCacheSize)
	for i := range latencyCacheSize {
		keys[i] = strconv.Itoa(i)
	}

	var results []GetOrSetLatencyResult
	for _, factory := range cache.All() {
		c := factory(latencyCacheSize)
		name := c.Name()
		_, capable := c.(cache.GetOrSetCache)
		c.Close()
		if !capable {
			continue
		}

		r := testing.Benchmark(func(b *testing.B) {
			benchGetOrSet(b, factory, keys)
		})
		results = append(results, GetOrSetLatencyResult{
			Name:   name,
			NsOp:   float64(r.NsPerOp()),
			Allocs: r.AllocsPerOp(),
		})
	}

	return results
}

// RunIntGetOrSetLatency benchmarks GetOrSet latency for int-keyed caches that support it.
func RunIntGetOrSetLatency() []GetOrSetLatencyResult {
	keys := make([]int, latencyCacheSize)
	for i := range latencyCacheSize {
		keys[i] = i
	}

	var results []GetOrSetLatencyResult
	for _, factory := range cache.AllInt() {
		c := factory(latencyCacheSize)
		name := c.Name()
		_, capable := c.(cache.IntGetOrSetCache)
		c.Close()
		if !capable {
			continue
		}

		r := testing.Benchmark(func(b *testing.B) {
			benchIntGetOrSet(b, factory, keys)
		})
		results = append(results, GetOrSetLatencyResult{
			Name:   name,
			NsOp:   float64(r.NsPerOp()),
			Allocs: r.AllocsPerOp(),
		})
	}

	return results
}

func benchGet(b *testing.B, factory cache.Factory, keys []string) {
	c := factory(latencyCacheSize)
	defer c.Close()

	for _, k := range keys {
		c.Set(k, k)
	}

	b.ResetTimer()
	for i := range b.N {
		c.Get(keys[i%latencyCacheSize])
	}
}

func benchSet(b *testing.B, factory cache.Factory, keys []string) {
	c := factory(latencyCacheSize)
	defer c.Close()

	b.ResetTimer()
	for i := range b.N {
		c.Set(keys[i%latencyCacheSize], keys[i%latencyCacheSize])
	}
}

func benchSetEvict(b *testing.B, factory cache.Factory, keys []string) {
	c := factory(latencyCacheSize)
	defer c.Close()

	keySpace := len(keys)
	b.ResetTimer()
	for i := range b.N {
		c.Set(keys[i%keySpace], keys[i%keySpace])
	}
}

func benchIntGet(b *testing.B, factory cache.IntFactory, keys []int) {
	c := factory(latencyCacheSize)
	defer c.Close()

	for _, k := range keys {
		c.Set(k, k)
	}

	b.ResetTimer()
	for i := range b.N {
		c.Get(keys[i%latencyCacheSize])
	}
}

func benchIntSet(b *testing.B, factory cache.IntFactory, keys []int) {
	c := factory(latencyCacheSize)
	defer c.Close()

	b.ResetTimer()
	for i := range b.N {
		c.Set(keys[i%latencyCacheSize], keys[i%latencyCacheSize])
	}
}

func benchIntSetEvict(b *testing.B, factory cache.IntFactory, keys []int) {
	c := factory(latencyCacheSize)
	defer c.Close()

	keySpace := len(keys)
	b.ResetTimer()
	for i := range b.N {
		c.Set(keys[i%keySpace], keys[i%keySpace])
	}
}

func benchGetOrSet(b *testing.B, factory cache.Factory, keys []string) {
	c := factory(latencyCacheSize)
	defer c.Close()

	gos, ok := c.(cache.GetOrSetCache)
	if !ok {
		b.Skip("cache does not implement GetOrSet")
	}

	// Pre-populate half the keys to exercise both hit and insert paths
	for i := range latencyCacheSize / 2 {
		gos.Set(keys[i], keys[i])
	}

	b.ResetTimer()
	for i := range b.N {
		gos.GetOrSet(keys[i%latencyCacheSize], keys[i%latencyCacheSize])
	}
}

func benchIntGetOrSet(b *testing.B, factory cache.IntFactory, keys []int) {
	c := factory(latencyCacheSize)
	defer c.Close()

	gos, ok := c.(cache.IntGetOrSetCache)
	if !ok {
		b.Skip("cache does not implement GetOrSet")
	}

	for i := range latencyCacheSize / 2 {
		gos.Set(keys[i], keys[i])
	}

	b.ResetTimer()
	for i := range b.N {
		gos.GetOrSet(keys[i%latencyCacheSize], keys[i%latencyCacheSize])
	}
}
