package trace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func writeTrace(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadPlainFile(t *testing.T) {
	path := writeTrace(t, "plain.txt", []byte("alpha\nbeta\n\ngamma\n"))

	ops, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	want := []string{"alpha", "beta", "gamma"}
	if len(ops) != len(want) {
		t.Fatalf("Load() = %v, want %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Fatalf("Load() = %v, want %v", ops, want)
		}
	}
}

func TestLoadZstdFile(t *testing.T) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("create zstd encoder: %v", err)
	}
	compressed := encoder.EncodeAll([]byte("k1\nk2\nk1\nk3\n"), nil)
	if err := encoder.Close(); err != nil {
		t.Fatalf("close zstd encoder: %v", err)
	}
	path := writeTrace(t, "trace.zst", compressed)

	ops, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	want := []string{"k1", "k2", "k1", "k3"}
	if len(ops) != len(want) {
		t.Fatalf("Load() = %v, want %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Fatalf("Load() = %v, want %v", ops, want)
		}
	}
}

func TestLoadMemoizes(t *testing.T) {
	path := writeTrace(t, "memo.txt", []byte("a\nb\n"))

	first, err := Load(path)
	if err != nil {
		t.Fatalf("first Load() returned error: %v", err)
	}

	// Corrupt the file on disk; the memoized parse must still be served.
	if err := os.WriteFile(path, []byte("changed\n"), 0o644); err != nil {
		t.Fatalf("rewrite trace: %v", err)
	}
	second, err := Load(path)
	if err != nil {
		t.Fatalf("second Load() returned error: %v", err)
	}
	if len(second) != len(first) || second[0] != first[0] {
		t.Errorf("second Load() = %v, want memoized %v", second, first)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Errorf("Load() of a missing file returned nil error")
	}
}

func TestLoadEmptyTrace(t *testing.T) {
	path := writeTrace(t, "empty.txt", []byte("\n\n"))
	if _, err := Load(path); err == nil {
		t.Errorf("Load() of an empty trace returned nil error")
	}
}

func TestInfo(t *testing.T) {
	path := writeTrace(t, "info.txt", []byte("x\ny\nx\nz\nx\n"))

	info, err := Info(path)
	if err != nil {
		t.Fatalf("Info() returned error: %v", err)
	}
	if !strings.Contains(info, "info.txt") {
		t.Errorf("Info() = %q, want the file name included", info)
	}
	if !strings.Contains(info, "5 ops") {
		t.Errorf("Info() = %q, want op count 5", info)
	}
	if !strings.Contains(info, "3 unique") {
		t.Errorf("Info() = %q, want unique count 3", info)
	}
}
