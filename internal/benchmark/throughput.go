package benchmark

import (
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tstromberg/cachelab/internal/cache"
	"github.com/tstromberg/cachelab/internal/workload"
)

// ThroughputResult holds multi-threaded throughput results for a cache.
type ThroughputResult struct {
	Name string
	QPS  map[int]float64 // thread count -> QPS
}

// DefaultThreadCounts are the thread counts to benchmark.
var DefaultThreadCounts = []int{1, 8, 16, 32}

// ThroughputCacheSize is the cache capacity used for throughput runs. The key
// stream is Zipf over the same range, so the workload is hit-heavy and the
// numbers measure operation cost rather than miss handling.
const ThroughputCacheSize = 10000

const (
	throughputWorkloadSize = 1_000_000
	throughputTheta        = 0.99
	benchmarkDuration      = 1 * time.Second
	opsBatchSize           = 1000
)

// RunMixedThroughput benchmarks throughput with a 75% Get / 25% Set mix (string keys).
func RunMixedThroughput(threadCounts []int) []ThroughputResult {
	keys := zipfStringKeys()
	n := len(keys)
	return measureAll(threadCounts, func(c cache.Cache) func(int) {
		return func(i int) {
			key := keys[i%n]
			if i%4 == 0 {
				c.Set(key, key)
			} else {
				c.Get(key)
			}
		}
	})
}

// RunGetThroughput benchmarks pure Get throughput against a warm cache (string keys).
func RunGetThroughput(threadCounts []int) []ThroughputResult {
	keys := zipfStringKeys()
	n := len(keys)
	return measureAll(threadCounts, func(c cache.Cache) func(int) {
		return func(i int) {
			c.Get(keys[i%n])
		}
	})
}

// RunSetThroughput benchmarks pure Set throughput (string keys).
func RunSetThroughput(threadCounts []int) []ThroughputResult {
	keys := zipfStringKeys()
	n := len(keys)
	return measureAll(threadCounts, func(c cache.Cache) func(int) {
		return func(i int) {
			key := keys[i%n]
			c.Set(key, key)
		}
	})
}

// RunIntMixedThroughput benchmarks 75% Get / 25% Set throughput for int-keyed caches.
func RunIntMixedThroughput(threadCounts []int) []ThroughputResult {
	keys := zipfIntKeys()
	n := len(keys)

	results := make([]ThroughputResult, 0, len(cache.AllInt()))
	for _, factory := range cache.AllInt() {
		probe := factory(ThroughputCacheSize)
		name := probe.Name()
		probe.Close()

		qps := make(map[int]float64)
		for _, threads := range threadCounts {
			c := factory(ThroughputCacheSize)
			for i := range ThroughputCacheSize {
				c.Set(i, i)
			}
			qps[threads] = runWorkers(threads, func(i int) {
				key := keys[i%n]
				if i%4 == 0 {
					c.Set(key, key)
				} else {
					c.Get(key)
				}
			})
			c.Close()
		}
		results = append(results, ThroughputResult{Name: name, QPS: qps})
	}
	return results
}

// RunGetOrSetThroughput benchmarks GetOrSet throughput for caches that support it.
func RunGetOrSetThroughput(threadCounts []int) []ThroughputResult {
	keys := zipfStringKeys()
	n := len(keys)

	var results []ThroughputResult
	for _, factory := range cache.All() {
		probe := factory(ThroughputCacheSize)
		name := probe.Name()
		_, capable := probe.(cache.GetOrSetCache)
		probe.Close()
		if !capable {
			continue
		}

		qps := make(map[int]float64)
		for _, threads := range threadCounts {
			c := factory(ThroughputCacheSize)
			gos := c.(cache.GetOrSetCache)
			warm(c)
			qps[threads] = runWorkers(threads, func(i int) {
				key := keys[i%n]
				gos.GetOrSet(key, key)
			})
			c.Close()
		}
		results = append(results, ThroughputResult{Name: name, QPS: qps})
	}
	return results
}

// measureAll runs one timed measurement per cache and thread count. A fresh
// cache is built and warmed for each measurement so earlier runs cannot skew
// later ones.
func measureAll(threadCounts []int, makeOp func(cache.Cache) func(int)) []ThroughputResult {
	results := make([]ThroughputResult, 0, len(cache.All()))
	for _, factory := range cache.All() {
		probe := factory(ThroughputCacheSize)
		name := probe.Name()
		probe.Close()

		qps := make(map[int]float64)
		for _, threads := range threadCounts {
			c := factory(ThroughputCacheSize)
			warm(c)
			qps[threads] = runWorkers(threads, makeOp(c))
			c.Close()
		}
		results = append(results, ThroughputResult{Name: name, QPS: qps})
	}
	return results
}

// runWorkers spins up goroutines calling op with a running sequence number
// until the measurement window closes, then returns operations per second.
// The op counter is batched to keep atomics out of the hot loop.
func runWorkers(threads int, op func(i int)) float64 {
	var ops atomic.Int64
	var stop atomic.Bool
	var wg sync.WaitGroup

	for range threads {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; ; {
				for range opsBatchSize {
					op(i)
					i++
				}
				ops.Add(opsBatchSize)
				if stop.Load() {
					return
				}
			}
		}()
	}

	time.Sleep(benchmarkDuration)
	stop.Store(true)
	wg.Wait()

	return float64(ops.Load()) / benchmarkDuration.Seconds()
}

func warm(c cache.Cache) {
	for i := range ThroughputCacheSize {
		k := strconv.Itoa(i)
		c.Set(k, k)
	}
}

func zipfStringKeys() []string {
	ints := zipfIntKeys()
	keys := make([]string, len(ints))
	for i, k := range ints {
		keys[i] = strconv.Itoa(k)
	}
	return keys
}

func zipfIntKeys() []int {
	return workload.GenerateZipfInt(throughputWorkloadSize, ThroughputCacheSize, throughputTheta, 42)
}
