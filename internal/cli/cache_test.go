package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/matzehuels/bricklayer/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
	if !strings.HasSuffix(dir, "bricklayer") {
		t.Errorf("cacheDir() = %q, should end with 'bricklayer'", dir)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestCountEntries(t *testing.T) {
	dir := t.TempDir()
	if n, err := countEntries(filepath.Join(dir, "missing")); err != nil || n != 0 {
		t.Errorf("countEntries(missing) = %d, %v, want 0, nil", n, err)
	}

	for _, name := range []string{"ab/one", "ab/two", "cd/three"} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if n, err := countEntries(dir); err != nil || n != 3 {
		t.Errorf("countEntries() = %d, %v, want 3, nil", n, err)
	}
}

func TestNewCacheRedisURL(t *testing.T) {
	t.Setenv(redisURLEnv, "not a url")
	c := New(os.Stderr, LogInfo)
	if _, err := c.newCache(t.Context(), false); err == nil {
		t.Error("newCache() accepted a malformed redis URL")
	}
	if _, err := c.newCache(t.Context(), true); err != nil {
		t.Errorf("newCache(noCache) error: %v", err)
	}
}

func TestNewCacheUsesRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Setenv(redisURLEnv, "redis://"+mr.Addr())

	c := New(os.Stderr, LogInfo)
	cc, err := c.newCache(t.Context(), false)
	if err != nil {
		t.Fatalf("newCache() error: %v", err)
	}
	defer cc.Close()
	if _, ok := cc.(*cache.RedisCache); !ok {
		t.Errorf("newCache() = %T, want *cache.RedisCache", cc)
	}

	config := isolate(t, testSpec("stretcher", 650, 250))
	t.Setenv(redisURLEnv, "redis://"+mr.Addr())
	if _, err := runCLI(t, "steps", config); err != nil {
		t.Fatal(err)
	}
	if n := len(mr.Keys()); n != 2 {
		t.Errorf("redis holds %d keys after one run, want 2", n)
	}
}
