package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/layout"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestHashLayout(t *testing.T) {
	l := layout.Result{
		Placements: []layout.Placement{{ImageID: "a.jpg", Rect: layout.Rect{Width: 0.5, Height: 0.4}}},
		TotalWidth: 1,
		RowCount:   1,
	}
	h := HashLayout(l)
	if len(h) != 64 || h != HashLayout(l) {
		t.Fatalf("HashLayout = %q, want a stable 64-char hash", h)
	}

	moved := l
	moved.Placements = []layout.Placement{{ImageID: "a.jpg", Rect: layout.Rect{X: 0.1, Width: 0.5, Height: 0.4}}}
	if HashLayout(moved) == h {
		t.Error("moving a placement should change the hash")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	images := []layout.Image{{ID: "a.jpg", Width: 4, Height: 3}, {ID: "b.jpg", Width: 1, Height: 1}}
	opts := LayoutKeyOpts{Aspect: 1.6, Gap: 0.01, Iterations: 60}

	base := k.LayoutKey(images, opts)
	if base != k.LayoutKey(images, opts) {
		t.Error("LayoutKey should be deterministic")
	}
	if !strings.HasPrefix(base, "layout:") {
		t.Errorf("LayoutKey should be prefixed: %s", base)
	}

	tests := []struct {
		name   string
		images []layout.Image
		opts   LayoutKeyOpts
	}{
		{"aspect", images, LayoutKeyOpts{Aspect: 2, Gap: 0.01, Iterations: 60}},
		{"gap", images, LayoutKeyOpts{Aspect: 1.6, Gap: 0.02, Iterations: 60}},
		{"iterations", images, LayoutKeyOpts{Aspect: 1.6, Gap: 0.01, Iterations: 30}},
		{"image order", []layout.Image{images[1], images[0]}, opts},
		{"image size", []layout.Image{{ID: "a.jpg", Width: 4, Height: 2}, images[1]}, opts},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if k.LayoutKey(tt.images, tt.opts) == base {
				t.Errorf("changing %s should change the key", tt.name)
			}
		})
	}

	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", Width: 1600})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png", Width: 1600})
	if ak1 == ak2 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "v1:")
	opts := LayoutKeyOpts{Aspect: 1}

	key := scoped.LayoutKey(nil, opts)
	if key != "v1:"+inner.LayoutKey(nil, opts) {
		t.Errorf("ScopedKeyer LayoutKey unexpected: %s", key)
	}

	artifact := scoped.ArtifactKey("abc", ArtifactKeyOpts{Format: "json"})
	if !strings.HasPrefix(artifact, "v1:artifact:") {
		t.Errorf("ScopedKeyer ArtifactKey should be prefixed: %s", artifact)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.ArtifactKey("abc", ArtifactKeyOpts{})
	if key != "prefix:"+NewDefaultKeyer().ArtifactKey("abc", ArtifactKeyOpts{}) {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestBackends(t *testing.T) {
	fc, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	backends := []struct {
		name  string
		cache Cache
	}{
		{"file", fc},
		{"memory", NewMemoryCache(0)},
	}

	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			c := b.cache
			defer c.Close()

			if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
				t.Fatalf("Get(missing) = hit %v, err %v", hit, err)
			}

			value := []byte(`{"placements":[]}`)
			if err := c.Set(ctx, "layout:abc", value, time.Hour); err != nil {
				t.Fatalf("Set: %v", err)
			}
			value[0] = 'X'

			got, hit, err := c.Get(ctx, "layout:abc")
			if err != nil || !hit {
				t.Fatalf("Get = hit %v, err %v", hit, err)
			}
			if string(got) != `{"placements":[]}` {
				t.Errorf("Get = %q", got)
			}

			if err := c.Delete(ctx, "layout:abc"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, hit, _ := c.Get(ctx, "layout:abc"); hit {
				t.Error("entry survived Delete")
			}
			if err := c.Delete(ctx, "layout:abc"); err != nil {
				t.Errorf("Delete of missing key: %v", err)
			}
		})
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should be a miss")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	fc := c.(*FileCache)

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fc.path("k"), []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit %v, err %v; want clean miss", hit, err)
	}
	if _, err := os.Stat(fc.path("k")); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	fc := c.(*FileCache)
	if fc.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", fc.Dir(), dir)
	}

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	if err := fc.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("Clear left %d entries", len(entries))
	}
}

func TestNewFileCacheBadDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := NewFileCache(filepath.Join(file, "sub"))
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("NewFileCache error = %v, want INVALID_PATH", err)
	}
}
