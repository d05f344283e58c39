// Package cache provides pluggable byte caching for the pipeline's
// per-stage results: parsed documents, computed layouts, and rendered
// artifacts. Backends share one interface so the CLI (file), tests
// (null), and server deployments (redis) swap freely.
package cache

import (
	"context"
	"time"
)

// Stage TTLs. Documents parse cheaply and change often; layouts and
// artifacts are derived purely from content hashes, so their entries
// stay valid until the inputs change and can live longer.
const (
	DocumentTTL = 24 * time.Hour
	LayoutTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)

// Cache stores opaque byte values under string keys with per-entry
// expiry. Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was
	// present and unexpired; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
