package lru

import (
	"errors"
	"math/rand/v2"
	"strconv"
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

	for k, want := range map[int]string{1: "one", 2: "two", 3: "three"} {
		if got, ok := c.Get(k); !ok || got != want {
			t.Fatalf("Get(%d) = %q, %v; want %q, true", k, got, ok, want)
		}
	}

	c.Set(4, "four") // evicts 1, the least recently used
	if _, ok := c.Get(1); ok {
		t.Errorf("key 1 should have been evicted")
	}

	c.Get(2)         // refresh 2
	c.Set(5, "five") // evicts 3

	if _, ok := c.Get(3); ok {
		t.Errorf("key 3 should have been evicted")
	}
	for k, want := range map[int]string{2: "two", 4: "four", 5: "five"} {
		if got, ok := c.Get(k); !ok || got != want {
			t.Errorf("Get(%d) = %q, %v; want %q, true", k, got, ok, want)
		}
	}
}

func TestEvictsOldestWithoutGets(t *testing.T) {
	for _, capacity := range []int{1, 2, 5, 17} {
		c, err := New[int, int](capacity)
		if err != nil {
			t.Fatalf("New(%d) returned error: %v", capacity, err)
		}
		for i := range capacity + 1 {
			c.Set(i, i)
		}
		if _, ok := c.Get(0); ok {
			t.Errorf("cap %d: first inserted key survived %d inserts", capacity, capacity+1)
		}
		if c.Len() != capacity {
			t.Errorf("cap %d: Len() = %d, want %d", capacity, c.Len(), capacity)
		}
	}
}

func TestGetRefreshesRecency(t *testing.T) {
	c, _ := New[int, string](3)
	c.Set(1, "a")
	c.Set(2, "b")
	c.Set(3, "c")

	if _, ok := c.Get(1); !ok {
		t.Fatalf("Get(1) missed before eviction")
	}
	c.Set(4, "d") // 2 is now least recently used, not 1

	if _, ok := c.Get(1); !ok {
		t.Errorf("key 1 was evicted despite being refreshed")
	}
	if _, ok := c.Get(2); ok {
		t.Errorf("key 2 should have been evicted")
	}
}

func TestUpdateExistingKey(t *testing.T) {
	c, _ := New[string, int](2)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 3)

	if got, ok := c.Get("a"); !ok || got != 3 {
		t.Errorf("Get(a) = %d, %v; want 3, true", got, ok)
	}
	if got, ok := c.Get("b"); !ok || got != 2 {
		t.Errorf("Get(b) = %d, %v; want 2, true", got, ok)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d after in-place update, want 2", c.Len())
	}
}

func TestUpdateAtCapacityDoesNotEvict(t *testing.T) {
	c, _ := New[int, int](2)
	c.Set(1, 1)
	c.Set(2, 2)
	c.Set(1, 10) // update, not insert

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if got, _ := c.Get(1); got != 10 {
		t.Errorf("Get(1) = %d, want 10", got)
	}
	if got, _ := c.Get(2); got != 2 {
		t.Errorf("Get(2) = %d, want 2", got)
	}
}

func TestRepeatedGetSameKey(t *testing.T) {
	c, _ := New[int, string](3)
	c.Set(1, "one")
	c.Set(2, "two")
	c.Set(3, "three")

	c.Get(1)
	c.Get(1)
	c.Get(1)

	c.Set(4, "four") // evicts 2, the oldest untouched key

	if _, ok := c.Get(2); ok {
		t.Errorf("key 2 should have been evicted")
	}
	for _, k := range []int{1, 3, 4} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("key %d should still be cached", k)
		}
	}
}

func TestCapacityZero(t *testing.T) {
	c, err := New[int, string](0)
	if err != nil {
		t.Fatalf("New(0) returned error: %v", err)
	}
	for i := range 10 {
		c.Set(i, "x")
		if c.Len() != 0 {
			t.Fatalf("Len() = %d after Set on zero-capacity cache, want 0", c.Len())
		}
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
	c, _ := New[int, *string](1)
	c.Set(1, nil)

	got, ok := c.Get(1)
	if !ok {
		t.Fatalf("stored nil value reported as a miss")
	}
	if got != nil {
		t.Errorf("Get(1) = %v, want nil", got)
	}
	if _, ok := c.Get(2); ok {
		t.Errorf("Get(2) should miss")
	}

	// Same with an interface value type, where the stored nil is untyped.
	ic, _ := New[int, any](1)
	ic.Set(1, nil)
	if v, ok := ic.Get(1); !ok || v != nil {
		t.Errorf("Get(1) = %v, %v on any-valued cache; want nil, true", v, ok)
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
	if _, ok := c.Get(2); !ok {
		t.Errorf("key 2 should still be cached")
	}
}

func TestContains(t *testing.T) {
	c, _ := New[string, int](2)
	c.Set("a", 1)

	if !c.Contains("a") {
		t.Errorf("Contains(a) = false, want true")
	}
	if c.Contains("b") {
		t.Errorf("Contains(b) = true, want false")
	}
}

func TestKeysOrder(t *testing.T) {
	c, _ := New[int, int](3)
	c.Set(1, 1)
	c.Set(2, 2)
	c.Set(3, 3)
	c.Get(1) // order is now 2, 3, 1

	got := c.Keys()
	want := []int{2, 3, 1}
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Keys() = %v, want %v", got, want)
		}
	}
}

func TestCapacityInvariantUnderChurn(t *testing.T) {
	const capacity = 8
	c, _ := New[int, int](capacity)
	rng := rand.New(rand.NewPCG(1, 2))

	for i := range 10_000 {
		key := rng.IntN(capacity * 4)
		if rng.IntN(10) < 7 {
			c.Set(key, i)
		} else {
			c.Get(key)
		}
		if c.Len() > capacity {
			t.Fatalf("Len() = %d exceeds capacity %d after op %d", c.Len(), capacity, i)
		}
	}
}

func TestEvictionChurnHoldsAtCapacity(t *testing.T) {
	const capacity = 5000
	c, _ := New[int, string](capacity)
	for i := range capacity * 2 {
		c.Set(i, "value"+strconv.Itoa(i))
	}
	if c.Len() != capacity {
		t.Errorf("Len() = %d after churn, want %d", c.Len(), capacity)
	}
	// The survivors are exactly the most recent half.
	if _, ok := c.Get(capacity - 1); ok {
		t.Errorf("key %d from the first half should have been evicted", capacity-1)
	}
	if _, ok := c.Get(capacity); !ok {
		t.Errorf("key %d from the second half should still be cached", capacity)
	}
}

func BenchmarkGet(b *testing.B) {
	const size = 10000
	c, _ := New[int, int](size)
	for i := range size {
		c.Set(i, i)
	}
	b.ResetTimer()
	for i := range b.N {
		c.Get(i % size)
	}
}

func BenchmarkSet(b *testing.B) {
	const size = 10000
	c, _ := New[int, int](size)
	b.ResetTimer()
	for i := range b.N {
		c.Set(i%size, i)
	}
}

func BenchmarkSetEvict(b *testing.B) {
	const size = 10000
	c, _ := New[int, int](size)
	b.ResetTimer()
	for i := range b.N {
		c.Set(i%(size*20), i)
	}
}
