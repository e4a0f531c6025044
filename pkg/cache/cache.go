// Package cache stores rendered artifacts between CLI runs.
//
// Rendering a layout is cheap, but the CLI renders the same snapshot with
// the same options over and over (watch loops, editor integrations). A
// [Cache] keyed by [Keyer.ArtifactKey] lets repeated renders skip the
// renderer entirely.
//
// Two implementations ship: [FileCache] keeps entries as JSON files under a
// directory with optional expiry, and [NullCache] never stores anything.
//
//	c, err := cache.NewFileCache(dir)
//	key := cache.NewDefaultKeyer().ArtifactKey(cache.SnapshotHash(s), cache.ArtifactKeyOpts{Renderer: "bootstrap"})
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    return data
//	}
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the cached value and whether it was found. Expired and
	// unreadable entries count as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every entry.
	Clear(ctx context.Context) error

	Close() error
}
