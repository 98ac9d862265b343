package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/odrlcore/odrlengine/pkg/odrl/policy"
)

const simplePolicyDoc = `{
	"@type": "Set",
	"uid": "http://example.com/policy:loader-test",
	"permission": [{
		"action": "use",
		"target": "http://example.com/asset:1"
	}]
}`

func TestLoadFromFile(t *testing.T) {
	logger := zerolog.New(nil).Level(zerolog.Disabled)
	loader := NewLoader(logger)

	tmpDir := t.TempDir()
	policyFile := filepath.Join(tmpDir, "policy.json")
	if err := os.WriteFile(policyFile, []byte(simplePolicyDoc), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	p, err := loader.loadFromFile(policyFile)
	if err != nil {
		t.Fatalf("loadFromFile returned error: %v", err)
	}
	if p.UID != "http://example.com/policy:loader-test" {
		t.Errorf("UID = %q, want the policy's uid", p.UID)
	}
}

func TestLoadFromFile_IsCached(t *testing.T) {
	logger := zerolog.New(nil).Level(zerolog.Disabled)
	loader := NewLoader(logger)

	tmpDir := t.TempDir()
	policyFile := filepath.Join(tmpDir, "policy.json")
	if err := os.WriteFile(policyFile, []byte(simplePolicyDoc), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	first, err := loader.loadFromFile(policyFile)
	if err != nil {
		t.Fatalf("loadFromFile returned error: %v", err)
	}

	// Overwrite the file on disk; a cached load must still return the
	// original decoded value rather than re-reading.
	if err := os.WriteFile(policyFile, []byte(`{"@type": "Set", "uid": "http://example.com/policy:changed", "permission": [{"action": "use"}]}`), 0644); err != nil {
		t.Fatalf("failed to rewrite test file: %v", err)
	}

	second, err := loader.loadFromFile(policyFile)
	if err != nil {
		t.Fatalf("loadFromFile (cached) returned error: %v", err)
	}
	if second != first {
		t.Fatalf("loadFromFile returned a different *policy.Policy on second call, want the cached pointer")
	}
}

func TestLoadFromFile_InvalidJSON(t *testing.T) {
	logger := zerolog.New(nil).Level(zerolog.Disabled)
	loader := NewLoader(logger)

	tmpDir := t.TempDir()
	policyFile := filepath.Join(tmpDir, "policy.json")
	if err := os.WriteFile(policyFile, []byte("not json"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if _, err := loader.loadFromFile(policyFile); err == nil {
		t.Fatal("expected an error for invalid JSON")
	}
}

func TestLoadFromDirectory(t *testing.T) {
	logger := zerolog.New(nil).Level(zerolog.Disabled)
	loader := NewLoader(logger)

	tmpDir := t.TempDir()
	for _, name := range []string{"p1.json", "p2.json"} {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte(simplePolicyDoc), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	// Non-JSON files must be ignored.
	if err := os.WriteFile(filepath.Join(tmpDir, "README.md"), []byte("# not a policy"), 0644); err != nil {
		t.Fatalf("failed to write README: %v", err)
	}

	policies, err := loader.loadFromDirectory(tmpDir)
	if err != nil {
		t.Fatalf("loadFromDirectory returned error: %v", err)
	}
	if len(policies) != 2 {
		t.Errorf("loadFromDirectory returned %d policies, want 2", len(policies))
	}
}

func TestLoadFromDirectory_Recursive(t *testing.T) {
	logger := zerolog.New(nil).Level(zerolog.Disabled)
	loader := NewLoader(logger)

	tmpDir := t.TempDir()
	subDir := filepath.Join(tmpDir, "sub")
	if err := os.Mkdir(subDir, 0755); err != nil {
		t.Fatalf("failed to create subdirectory: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "p1.json"), []byte(simplePolicyDoc), 0644); err != nil {
		t.Fatalf("failed to write p1.json: %v", err)
	}
	if err := os.WriteFile(filepath.Join(subDir, "p2.json"), []byte(simplePolicyDoc), 0644); err != nil {
		t.Fatalf("failed to write p2.json: %v", err)
	}

	policies, err := loader.loadFromDirectory(tmpDir)
	if err != nil {
		t.Fatalf("loadFromDirectory returned error: %v", err)
	}
	if len(policies) != 2 {
		t.Errorf("loadFromDirectory returned %d policies, want 2 (including subdirectory)", len(policies))
	}
}

func TestLoadFromDirectory_SkipsInvalidFiles(t *testing.T) {
	logger := zerolog.New(nil).Level(zerolog.Disabled)
	loader := NewLoader(logger)

	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "good.json"), []byte(simplePolicyDoc), 0644); err != nil {
		t.Fatalf("failed to write good.json: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "bad.json"), []byte("not json"), 0644); err != nil {
		t.Fatalf("failed to write bad.json: %v", err)
	}

	policies, err := loader.loadFromDirectory(tmpDir)
	if err != nil {
		t.Fatalf("loadFromDirectory returned error: %v", err)
	}
	if len(policies) != 1 {
		t.Errorf("loadFromDirectory returned %d policies, want 1 (bad.json skipped, not fatal)", len(policies))
	}
}

func TestLoadFromPaths(t *testing.T) {
	logger := zerolog.New(nil).Level(zerolog.Disabled)
	loader := NewLoader(logger)

	tmpDir := t.TempDir()
	dir1 := filepath.Join(tmpDir, "dir1")
	if err := os.Mkdir(dir1, 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir1, "p1.json"), []byte(simplePolicyDoc), 0644); err != nil {
		t.Fatalf("failed to write p1.json: %v", err)
	}

	file1 := filepath.Join(tmpDir, "p2.json")
	if err := os.WriteFile(file1, []byte(simplePolicyDoc), 0644); err != nil {
		t.Fatalf("failed to write p2.json: %v", err)
	}

	policies, err := loader.LoadFromPaths([]string{dir1, file1})
	if err != nil {
		t.Fatalf("LoadFromPaths returned error: %v", err)
	}
	if len(policies) != 2 {
		t.Errorf("LoadFromPaths returned %d policies, want 2", len(policies))
	}
}

func TestLoadFromPath_NonExistent(t *testing.T) {
	logger := zerolog.New(nil).Level(zerolog.Disabled)
	loader := NewLoader(logger)

	if _, err := loader.loadFromPath("/nonexistent/path"); err == nil {
		t.Fatal("expected an error for a non-existent path")
	}
}

func TestClearCache(t *testing.T) {
	logger := zerolog.New(nil).Level(zerolog.Disabled)
	loader := NewLoader(logger)

	tmpDir := t.TempDir()
	policyFile := filepath.Join(tmpDir, "policy.json")
	if err := os.WriteFile(policyFile, []byte(simplePolicyDoc), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if _, err := loader.loadFromFile(policyFile); err != nil {
		t.Fatalf("loadFromFile returned error: %v", err)
	}
	if len(loader.cache) != 1 {
		t.Fatalf("cache has %d entries, want 1", len(loader.cache))
	}

	loader.ClearCache()
	if len(loader.cache) != 0 {
		t.Fatalf("cache has %d entries after ClearCache, want 0", len(loader.cache))
	}
}

func TestWatch_ReloadsOnFileChange(t *testing.T) {
	logger := zerolog.New(nil).Level(zerolog.Disabled)
	loader := NewLoader(logger)

	tmpDir := t.TempDir()
	policyFile := filepath.Join(tmpDir, "policy.json")
	if err := os.WriteFile(policyFile, []byte(simplePolicyDoc), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan []*policy.Policy, 4)
	err := loader.Watch(ctx, []string{tmpDir}, func(policies []*policy.Policy) error {
		reloaded <- policies
		return nil
	})
	if err != nil {
		t.Fatalf("Watch returned error: %v", err)
	}
	defer loader.StopWatching()

	if err := os.WriteFile(policyFile, []byte(simplePolicyDoc), 0644); err != nil {
		t.Fatalf("failed to rewrite test file: %v", err)
	}

	select {
	case policies := <-reloaded:
		if len(policies) != 1 {
			t.Errorf("reloaded %d policies, want 1", len(policies))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for watch reload")
	}
}

func TestStopWatching_NoWatcherIsNoop(t *testing.T) {
	logger := zerolog.New(nil).Level(zerolog.Disabled)
	loader := NewLoader(logger)

	if err := loader.StopWatching(); err != nil {
		t.Fatalf("StopWatching() with no active watcher returned error: %v", err)
	}
}

func TestStopWatching_ClosesWatcher(t *testing.T) {
	logger := zerolog.New(nil).Level(zerolog.Disabled)
	loader := NewLoader(logger)

	tmpDir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := loader.Watch(ctx, []string{tmpDir}, func([]*policy.Policy) error { return nil }); err != nil {
		t.Fatalf("Watch returned error: %v", err)
	}
	if err := loader.StopWatching(); err != nil {
		t.Fatalf("StopWatching returned error: %v", err)
	}
}

func TestWatch_DebouncesReload(t *testing.T) {
	logger := zerolog.New(nil).Level(zerolog.Disabled)
	loader := NewLoader(logger)

	tmpDir := t.TempDir()
	policyFile := filepath.Join(tmpDir, "policy.json")
	if err := os.WriteFile(policyFile, []byte(simplePolicyDoc), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloadCount := make(chan int, 8)
	calls := 0
	err := loader.Watch(ctx, []string{tmpDir}, func(policies []*policy.Policy) error {
		calls++
		reloadCount <- calls
		return nil
	})
	if err != nil {
		t.Fatalf("Watch returned error: %v", err)
	}
	defer loader.StopWatching()

	// Two rapid writes within the debounce window should collapse into a
	// single reload.
	if err := os.WriteFile(policyFile, []byte(simplePolicyDoc), 0644); err != nil {
		t.Fatalf("failed to rewrite test file: %v", err)
	}
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(policyFile, []byte(simplePolicyDoc), 0644); err != nil {
		t.Fatalf("failed to rewrite test file: %v", err)
	}

	select {
	case n := <-reloadCount:
		if n != 1 {
			t.Errorf("reload fired %d times for two rapid writes, want 1 (debounced)", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for debounced reload")
	}
}
