// Package cache provides pluggable caching for rendered chart artifacts.
//
// A Cache stores opaque byte payloads under content-derived keys with a TTL.
// Backends:
//   - FileCache: files under an XDG cache directory, for CLI usage
//   - RedisCache: Redis-backed, for multi-instance server deployments
//   - MongoCache: MongoDB-backed with TTL documents
//   - NullCache: no-op, caching disabled
//
// Keys are produced by a Keyer so that every consumer derives them the same
// way. The pipeline caches rendered artifacts keyed on the input table hash
// plus the render options; chart parsing and layout are recomputed on every
// update and never cached (they are cheap and must reflect the live config).
package cache

import (
	"context"
	"time"
)

// TTLs for cached payloads.
const (
	// TTLArtifact is how long rendered chart artifacts are kept.
	TTLArtifact = 24 * time.Hour
)

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKeyOpts are the render options that participate in artifact keys.
// Two renders with the same table hash and the same options are
// byte-identical, so they may share a cache entry.
type ArtifactKeyOpts struct {
	Format     string
	Width      float64
	Height     float64
	ConfigHash string
}

// Keyer generates cache keys.
type Keyer interface {
	// ArtifactKey generates a key for a rendered chart artifact.
	ArtifactKey(tableHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ArtifactKey generates a key for a rendered chart artifact.
func (k *DefaultKeyer) ArtifactKey(tableHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", tableHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation,
// e.g. per-tenant caching in a shared Redis.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(tableHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(tableHash, opts)
}
