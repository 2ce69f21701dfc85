package workload

import "testing"

func TestZipfDeterministic(t *testing.T) {
	a := GenerateZipfInt(1000, 500, 0.8, 42)
	b := GenerateZipfInt(1000, 500, 0.8, 42)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed diverged at index %d: %d vs %d", i, a[i], b[i])
		}
	}

	c := GenerateZipfInt(1000, 500, 0.8, 43)
	same := 0
	for i := range a {
		if a[i] == c[i] {
			same++
		}
	}
	if same == len(a) {
		t.Errorf("different seeds produced identical sequences")
	}
}

func TestZipfBounds(t *testing.T) {
	const keySpace = 1000
	for _, key := range GenerateZipfInt(100_000, keySpace, 0.99, 7) {
		if key < 0 || key >= keySpace {
			t.Fatalf("key %d outside [0, %d)", key, keySpace)
		}
	}
}

func TestZipfSkew(t *testing.T) {
	const (
		n        = 100_000
		keySpace = 1000
	)
	counts := make(map[int]int)
	for _, key := range GenerateZipfInt(n, keySpace, 0.8, 1) {
		counts[key]++
	}
	// Key 0 is the hottest; it should dwarf a uniform share of n/keySpace.
	uniformShare := n / keySpace
	if counts[0] < 10*uniformShare {
		t.Errorf("hottest key drawn %d times, want at least %d for a skewed distribution",
			counts[0], 10*uniformShare)
	}
	if counts[0] <= counts[keySpace/2] {
		t.Errorf("hottest key (%d draws) not hotter than mid-rank key (%d draws)",
			counts[0], counts[keySpace/2])
	}
}

func TestLoopCycles(t *testing.T) {
	got := GenerateLoopInt(10, 4)
	want := []int{0, 1, 2, 3, 0, 1, 2, 3, 0, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("GenerateLoopInt(10, 4) = %v, want %v", got, want)
		}
	}
}

func TestUniformDeterministic(t *testing.T) {
	a := GenerateUniformInt(1000, 100, 9)
	b := GenerateUniformInt(1000, 100, 9)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed diverged at index %d: %d vs %d", i, a[i], b[i])
		}
	}
}

func TestUniformSpread(t *testing.T) {
	const (
		n        = 100_000
		keySpace = 100
	)
	counts := make(map[int]int)
	for _, key := range GenerateUniformInt(n, keySpace, 3) {
		if key < 0 || key >= keySpace {
			t.Fatalf("key %d outside [0, %d)", key, keySpace)
		}
		counts[key]++
	}
	for key := range keySpace {
		if counts[key] == 0 {
			t.Errorf("key %d never drawn in %d samples", key, n)
		}
		if counts[key] > 3*n/keySpace {
			t.Errorf("key %d drawn %d times, far above the uniform share %d",
				key, counts[key], n/keySpace)
		}
	}
}
