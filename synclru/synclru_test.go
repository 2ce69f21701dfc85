package synclru

import (
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
)

func TestBasicEvictionOrder(t *testing.T) {
	c, err := New[int, string](3)
	if err != nil {
		t.Fatalf("New(3) returned error: %v", err)
	}

	c.Set(1, "one")
	c.Set(2, "two")
	c.Set(3, "three")
	c.Get(1) // refresh 1

	c.Set(4, "four") // evicts 2, the least recently used

	if _, ok := c.Get(2); ok {
		t.Errorf("key 2 should have been evicted")
	}
	for k, want := range map[int]string{1: "one", 3: "three", 4: "four"} {
		if got, ok := c.Get(k); !ok || got != want {
			t.Errorf("Get(%d) = %q, %v; want %q, true", k, got, ok, want)
		}
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
}

func TestUpdateExistingKey(t *testing.T) {
	c, _ := New[string, int](2)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 3)

	if c.Len() != 2 {
		t.Fatalf("Len() = %d after in-place update, want 2", c.Len())
	}
	if got, ok := c.Get("a"); !ok || got != 3 {
		t.Errorf("Get(a) = %d, %v; want 3, true", got, ok)
	}

	c.Set("c", 4) // evicts b; a was refreshed by the update

	if _, ok := c.Get("b"); ok {
		t.Errorf("key b should have been evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Errorf("key a should still be cached")
	}
}

func TestCapacityZero(t *testing.T) {
	c, err := New[int, int](0)
	if err != nil {
		t.Fatalf("New(0) returned error: %v", err)
	}
	for i := range 10 {
		c.Set(i, i)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after Sets on zero-capacity cache, want 0", c.Len())
	}
	if _, ok := c.Get(3); ok {
		t.Errorf("Get on zero-capacity cache hit")
	}
}

func TestNegativeCapacity(t *testing.T) {
	if _, err := New[int, int](-1); !errors.Is(err, ErrNegativeCapacity) {
		t.Errorf("New(-1) error = %v, want ErrNegativeCapacity", err)
	}
}

func TestNilValueIsNotAMiss(t *testing.T) {
	c, _ := New[int, *string](2)
	c.Set(1, nil)

	got, ok := c.Get(1)
	if !ok {
		t.Fatalf("stored nil value reported as a miss")
	}
	if got != nil {
		t.Errorf("Get(1) = %v, want nil", got)
	}

	// With an interface value type the stored nil comes back out of the map
	// untyped; Get and Peek must still hand it back as a hit.
	ic, _ := New[int, any](2)
	ic.Set(1, nil)
	if v, ok := ic.Get(1); !ok || v != nil {
		t.Errorf("Get(1) = %v, %v on any-valued cache; want nil, true", v, ok)
	}
	if v, ok := ic.Peek(1); !ok || v != nil {
		t.Errorf("Peek(1) = %v, %v on any-valued cache; want nil, true", v, ok)
	}
	if _, ok := ic.Get(2); ok {
		t.Errorf("Get(2) should miss")
	}
}

func TestPeekDoesNotRefresh(t *testing.T) {
	c, _ := New[int, int](2)
	c.Set(1, 1)
	c.Set(2, 2)

	if v, ok := c.Peek(1); !ok || v != 1 {
		t.Fatalf("Peek(1) = %d, %v; want 1, true", v, ok)
	}
	c.Set(3, 3) // 1 is still least recently used despite the Peek

	if _, ok := c.Get(1); ok {
		t.Errorf("key 1 survived eviction after Peek; Peek must not refresh recency")
	}
}

func TestPurge(t *testing.T) {
	c, _ := New[int, string](2)
	c.Set(1, "a")
	c.Set(2, "b")

	c.Purge()

	if c.Len() != 0 {
		t.Fatalf("Len() = %d after Purge, want 0", c.Len())
	}
	if _, ok := c.Get(1); ok {
		t.Errorf("Get(1) hit after Purge")
	}

	// The cache must be fully usable again: recency state from before the
	// Purge must not influence later evictions.
	c.Set(3, "c")
	c.Set(4, "d")
	if c.Len() != 2 {
		t.Fatalf("Len() = %d after refill, want 2", c.Len())
	}
	c.Set(5, "e") // evicts 3

	if _, ok := c.Get(3); ok {
		t.Errorf("key 3 should have been evicted")
	}
	for _, k := range []int{4, 5} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("key %d should still be cached", k)
		}
	}
}

func TestConcurrentMixedOps(t *testing.T) {
	const (
		capacity   = 128
		goroutines = 8
		opsEach    = 20_000
		keyspace   = capacity * 4
	)
	c, _ := New[int, int](capacity)

	var wg sync.WaitGroup
	for g := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rng := rand.New(rand.NewPCG(uint64(g), 42))
			for i := range opsEach {
				key := rng.IntN(keyspace)
				switch rng.IntN(10) {
				case 0, 1, 2:
					// Values always mirror their key so any hit is checkable.
					c.Set(key, key)
				case 3:
					c.Peek(key)
				default:
					if v, ok := c.Get(key); ok && v != key {
						t.Errorf("Get(%d) = %d on op %d, want %d", key, v, i, key)
						return
					}
				}
			}
		}()
	}
	wg.Wait()

	if n := c.Len(); n > capacity {
		t.Errorf("Len() = %d after concurrent churn, capacity is %d", n, capacity)
	}
}

func TestConcurrentSameKeyLastWriteWins(t *testing.T) {
	c, _ := New[string, int](4)

	first := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		c.Set("k", 1)
		close(first)
	}()
	go func() {
		defer wg.Done()
		<-first // orders this Set strictly after the other
		c.Set("k", 2)
	}()
	wg.Wait()

	if got, ok := c.Get("k"); !ok || got != 2 {
		t.Errorf("Get(k) = %d, %v; want 2, true", got, ok)
	}
}

func TestConcurrentPurge(t *testing.T) {
	const capacity = 64
	c, _ := New[int, int](capacity)

	var wg sync.WaitGroup
	for g := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rng := rand.New(rand.NewPCG(uint64(g), 7))
			for i := range 5_000 {
				key := rng.IntN(capacity * 2)
				switch {
				case i%1000 == 999:
					c.Purge()
				case rng.IntN(2) == 0:
					c.Set(key, key)
				default:
					if v, ok := c.Get(key); ok && v != key {
						t.Errorf("Get(%d) = %d, want %d", key, v, key)
						return
					}
				}
			}
		}()
	}
	wg.Wait()

	if n := c.Len(); n > capacity {
		t.Errorf("Len() = %d after purge churn, capacity is %d", n, capacity)
	}
}

func TestConcurrentZeroCapacity(t *testing.T) {
	c, _ := New[int, int](0)

	var wg sync.WaitGroup
	for g := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 1_000 {
				c.Set(g*1_000+i, i)
				c.Get(i)
			}
		}()
	}
	wg.Wait()

	if c.Len() != 0 {
		t.Errorf("Len() = %d on zero-capacity cache, want 0", c.Len())
	}
}

func BenchmarkGetParallel(b *testing.B) {
	const size = 8192
	c, _ := New[int, int](size)
	for i := range size {
		c.Set(i, i)
	}
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			c.Get(i % size)
			i++
		}
	})
}

func BenchmarkSetParallel(b *testing.B) {
	const size = 8192
	c, _ := New[int, int](size)
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			c.Set(i%size, i)
			i++
		}
	})
}

func BenchmarkMixedParallel(b *testing.B) {
	const size = 8192
	c, _ := New[int, int](size)
	for i := range size {
		c.Set(i, i)
	}
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			if i%4 == 0 {
				c.Set(i%(size*2), i)
			} else {
				c.Get(i % (size * 2))
			}
			i++
		}
	})
}
