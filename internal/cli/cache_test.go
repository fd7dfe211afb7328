package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	custom := filepath.Join(t.TempDir(), "custom-cache")
	t.Setenv("XDG_CACHE_HOME", custom)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(custom, appName); dir != want {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, want)
	}
}

func TestCacheCommands(t *testing.T) {
	tc := newTestCLI(t)

	out, err := tc.run("cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	dir := strings.TrimSpace(out)
	if !strings.HasPrefix(dir, tc.dir) || !strings.HasSuffix(dir, appName) {
		t.Errorf("cache path = %q, want a %s dir under %s", dir, appName, tc.dir)
	}

	out, err = tc.run("cache", "clear")
	if err != nil {
		t.Fatalf("cache clear on empty cache: %v", err)
	}
	if !strings.Contains(out, "Cache is empty") {
		t.Errorf("unexpected output: %s", out)
	}

	in := tc.file("tags.json", testRecordsJSON)
	if _, err := tc.run("render", in, "-f", "html,svg"); err != nil {
		t.Fatalf("render: %v", err)
	}

	// One layout plus one artifact per format.
	out, err = tc.run("cache", "clear")
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(out, "Cleared 3 cached entries") {
		t.Errorf("unexpected output: %s", out)
	}

	out, _ = tc.run("render", in, "-f", "html,svg")
	if !strings.Contains(out, iconFresh) {
		t.Errorf("render after clear should be fresh:\n%s", out)
	}
}
