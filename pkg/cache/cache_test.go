package cache

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	// Miss before any Set
	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("Get before Set should miss")
	}

	// Set then Get
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Fatal("Get after Set should hit")
	}
	if string(data) != "value" {
		t.Errorf("Get returned %q, want %q", data, "value")
	}

	// Delete then Get
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("Get after Delete should miss")
	}

	// Delete of missing key is not an error
	if err := c.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	// Already-expired entry is a miss
	if err := c.Set(ctx, "expired", []byte("old"), -time.Second); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	_, hit, err := c.Get(ctx, "expired")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("Expired entry should be a miss")
	}

	// Zero TTL means no expiry
	if err := c.Set(ctx, "forever", []byte("keep"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	_, hit, _ = c.Get(ctx, "forever")
	if !hit {
		t.Error("Zero-TTL entry should not expire")
	}
}

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

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// Same inputs produce the same key
	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", Width: 800, Height: 600})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", Width: 800, Height: 600})
	if ak1 != ak2 {
		t.Error("ArtifactKey should be deterministic")
	}

	// Different options produce different keys
	ak3 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png", Width: 800, Height: 600})
	if ak1 == ak3 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}

	// Different table hashes produce different keys
	ak4 := k.ArtifactKey("hash456", ArtifactKeyOpts{Format: "svg", Width: 800, Height: 600})
	if ak1 == ak4 {
		t.Error("Different table hashes should produce different keys")
	}

	// Config participates in the key
	ak5 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", Width: 800, Height: 600, ConfigHash: "cfg"})
	if ak1 == ak5 {
		t.Error("Different config hashes should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "user:123:")

	key := scoped.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg"})
	if !strings.HasPrefix(key, "user:123:") {
		t.Errorf("ScopedKeyer ArtifactKey should be prefixed: %s", key)
	}
	if key[len("user:123:"):] != inner.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg"}) {
		t.Error("ScopedKeyer should delegate to inner keyer")
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.ArtifactKey("hash", ArtifactKeyOpts{})
	if !strings.HasPrefix(key, "prefix:artifact:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}
