// Package cache stores rendered EGG artifacts between runs.
//
// Exports are deterministic: the same scene bytes and options always produce
// the same file. The CLI keys each artifact by a hash of both and skips the
// load → export → render work on a hit.
//
// Two backends are provided: [FileCache] for the CLI (one JSON file per key
// under the XDG cache directory) and [NullCache] for --no-cache runs and
// tests.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the stored data and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
