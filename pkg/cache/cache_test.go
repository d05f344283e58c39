package cache

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, ok, err := c.Get(ctx, "key")
	if err != nil || !ok {
		t.Fatalf("Get = (%v, %v, %v), want hit", data, ok, err)
	}
	if string(data) != "value" {
		t.Errorf("data = %q, want value", data)
	}
}

func TestFileCacheMiss(t *testing.T) {
	c, _ := NewFileCache(t.TempDir())
	defer c.Close()

	_, ok, err := c.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("miss should not error: %v", err)
	}
	if ok {
		t.Error("want miss for absent key")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	c, _ := NewFileCache(t.TempDir())
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "short", []byte("x"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	_, ok, err := c.Get(ctx, "short")
	if err != nil {
		t.Fatalf("expired Get errored: %v", err)
	}
	if ok {
		t.Error("want miss for expired entry")
	}
}

func TestFileCacheDelete(t *testing.T) {
	c, _ := NewFileCache(t.TempDir())
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, "key", []byte("v"), 0)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "key"); ok {
		t.Error("key survived Delete")
	}

	// Deleting a missing key is fine.
	if err := c.Delete(ctx, "never-set"); err != nil {
		t.Errorf("Delete of missing key errored: %v", err)
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "key"); ok {
		t.Error("null cache returned a hit")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	opts := LayoutKeyOpts{Algorithm: "layered", EdgeRouting: "curved"}
	a := k.LayoutKey("hash1", opts)
	b := k.LayoutKey("hash1", opts)
	if a != b {
		t.Error("identical inputs produced different keys")
	}

	opts.Algorithm = "ranked"
	if k.LayoutKey("hash1", opts) == a {
		t.Error("changed options produced the same key")
	}
	if k.LayoutKey("hash2", LayoutKeyOpts{Algorithm: "layered", EdgeRouting: "curved"}) == a {
		t.Error("changed document hash produced the same key")
	}

	if !strings.HasPrefix(a, "layout:") {
		t.Errorf("layout key %q missing stage prefix", a)
	}
	if !strings.HasPrefix(k.DocumentKey("h"), "doc:") {
		t.Error("document key missing stage prefix")
	}
	if !strings.HasPrefix(k.ArtifactKey("h", ArtifactKeyOpts{Format: "svg"}), "artifact:") {
		t.Error("artifact key missing stage prefix")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "tenant:a:")

	got := scoped.DocumentKey("h")
	if !strings.HasPrefix(got, "tenant:a:") {
		t.Errorf("key %q missing scope prefix", got)
	}
	if strings.TrimPrefix(got, "tenant:a:") != inner.DocumentKey("h") {
		t.Error("scoped key does not wrap the inner key")
	}
}

func TestHash(t *testing.T) {
	h := Hash([]byte("content"))
	if len(h) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(h))
	}
	if h != Hash([]byte("content")) {
		t.Error("hash not deterministic")
	}
	if h == Hash([]byte("other")) {
		t.Error("distinct content hashed equal")
	}
}
