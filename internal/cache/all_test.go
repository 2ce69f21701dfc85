package cache

import (
	"fmt"
	"sync"
	"testing"
)

func TestAdapterNamesMatchRegistry(t *testing.T) {
	for name, factory := range registry {
		c := factory(128)
		if got := c.Name(); got != name {
			t.Errorf("registry[%q] built a cache named %q", name, got)
		}
		c.Close()
	}
}

func TestIntAdapterNamesMatchRegistry(t *testing.T) {
	for name, factory := range intRegistry {
		c := factory(128)
		if got := c.Name(); got != name {
			t.Errorf("intRegistry[%q] built a cache named %q", name, got)
		}
		c.Close()
	}
}

func TestDefaultOrderResolves(t *testing.T) {
	for _, name := range defaultOrder {
		if _, ok := registry[name]; !ok {
			t.Errorf("defaultOrder entry %q missing from registry", name)
		}
	}
	if len(defaultOrder) != len(registry) {
		t.Errorf("defaultOrder has %d entries, registry has %d", len(defaultOrder), len(registry))
	}
	for _, name := range intOrder {
		if _, ok := intRegistry[name]; !ok {
			t.Errorf("intOrder entry %q missing from intRegistry", name)
		}
	}
}

func TestHomeCachesLeadTheOrder(t *testing.T) {
	want := []string{"lru", "lfu", "synclru"}
	for i, name := range want {
		if defaultOrder[i] != name {
			t.Fatalf("defaultOrder[%d] = %q, want %q", i, defaultOrder[i], name)
		}
		if intOrder[i] != name {
			t.Fatalf("intOrder[%d] = %q, want %q", i, intOrder[i], name)
		}
	}
}

func TestSetFilter(t *testing.T) {
	defer SetFilter(nil)

	SetFilter([]string{"lfu", "hashicorp"})
	names := AllNames()
	if len(names) != 2 || names[0] != "lfu" || names[1] != "hashicorp" {
		t.Errorf("AllNames() = %v, want [lfu hashicorp] in display order", names)
	}
	if got := len(All()); got != 2 {
		t.Errorf("len(All()) = %d with two-name filter, want 2", got)
	}

	SetFilter(nil)
	if got := len(AllNames()); got != len(defaultOrder) {
		t.Errorf("len(AllNames()) = %d after filter reset, want %d", got, len(defaultOrder))
	}
}

func TestAllWithEntrySize(t *testing.T) {
	defer SetFilter(nil)
	SetFilter([]string{"freecache"})

	factories := AllWithEntrySize(100)
	if len(factories) != 1 {
		t.Fatalf("len(AllWithEntrySize) = %d, want 1", len(factories))
	}
	c := factories[0](1000)
	defer c.Close()
	if c.Name() != "freecache" {
		t.Errorf("sized factory built %q, want freecache", c.Name())
	}
}

func TestGetOrSetCapability(t *testing.T) {
	withCapability := map[string]bool{
		"otter": true, "ttlcache": true, "freecache": true,
	}
	for name, factory := range registry {
		c := factory(128)
		_, ok := c.(GetOrSetCache)
		if ok != withCapability[name] {
			t.Errorf("cache %q GetOrSet capability = %v, want %v", name, ok, withCapability[name])
		}
		c.Close()
	}

	intWithCapability := map[string]bool{
		"otter": true, "ttlcache": true,
	}
	for name, factory := range intRegistry {
		c := factory(128)
		_, ok := c.(IntGetOrSetCache)
		if ok != intWithCapability[name] {
			t.Errorf("int cache %q GetOrSet capability = %v, want %v", name, ok, intWithCapability[name])
		}
		c.Close()
	}
}

func TestHomeAdaptersEvictDeterministically(t *testing.T) {
	for _, name := range []string{"lru", "lfu", "synclru"} {
		c := registry[name](3)
		c.Set("a", "1")
		c.Set("b", "2")
		c.Set("c", "3")
		c.Set("d", "4") // all at equal standing; the oldest goes

		if _, ok := c.Get("a"); ok {
			t.Errorf("%s: key a should have been evicted", name)
		}
		for _, k := range []string{"b", "c", "d"} {
			if v, ok := c.Get(k); !ok || v == "" {
				t.Errorf("%s: Get(%s) = %q, %v; want a hit", name, k, v, ok)
			}
		}
		c.Close()
	}
}

func TestMutexWrappedAdaptersConcurrent(t *testing.T) {
	for _, name := range []string{"lru", "lfu"} {
		c := registry[name](64)
		var wg sync.WaitGroup
		for g := range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range 2000 {
					key := fmt.Sprintf("key-%d", (g*2000+i)%256)
					if i%3 == 0 {
						c.Set(key, "v")
					} else {
						c.Get(key)
					}
				}
			}()
		}
		wg.Wait()
		c.Close()
	}
}
