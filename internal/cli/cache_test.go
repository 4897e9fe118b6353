package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheClear(t *testing.T) {
	dir := t.TempDir()

	// Populate the cache with sharded entries the way FileCache lays them out
	shard := filepath.Join(dir, "ab")
	if err := os.MkdirAll(shard, 0o755); err != nil {
		t.Fatalf("mkdir shard: %v", err)
	}
	for _, name := range []string{"abcd1234.json", "abff5678.json"} {
		if err := os.WriteFile(filepath.Join(shard, name), []byte("{}"), 0o644); err != nil {
			t.Fatalf("write entry: %v", err)
		}
	}

	if err := execRoot(t, "cache", "clear", "--cache-dir", dir); err != nil {
		t.Fatalf("cache clear failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read cache dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("cache dir should be empty after clear, found %d entries", len(entries))
	}
}

func TestCacheClearMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "never-created")

	if err := execRoot(t, "cache", "clear", "--cache-dir", dir); err != nil {
		t.Errorf("cache clear on a missing dir should succeed, got: %v", err)
	}
}

func TestCachePath(t *testing.T) {
	dir := t.TempDir()

	if err := execRoot(t, "cache", "path", "--cache-dir", dir); err != nil {
		t.Errorf("cache path failed: %v", err)
	}
}
