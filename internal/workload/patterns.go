package workload

import "math/rand/v2"

// GenerateLoopInt generates a sequential scan over keySpace keys that wraps
// around until n keys have been produced. A loop longer than the cache is the
// adversarial pattern for pure recency eviction: every access misses once the
// cache is saturated, while frequency-aware policies retain part of the loop.
func GenerateLoopInt(n, keySpace int) []int {
	keys := make([]int, n)
	for i := range n {
		keys[i] = i % keySpace
	}
	return keys
}

// GenerateUniformInt generates n keys drawn uniformly from [0, keySpace).
// Uniform access has no reusable structure, so hit rate converges to
// cacheSize/keySpace for every policy; it isolates bookkeeping overhead.
func GenerateUniformInt(n, keySpace int, seed uint64) []int {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	keys := make([]int, n)
	for i := range n {
		keys[i] = rng.IntN(keySpace)
	}
	return keys
}
