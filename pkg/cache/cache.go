// Package cache provides pluggable byte caching for pipeline stages.
//
// The [Cache] interface abstracts the storage backend: a file cache for
// CLI usage, Redis for the serve mode, and a null cache when caching is
// disabled. Keys are built by a [Keyer] so every consumer derives them the
// same way; [ScopedKeyer] adds a prefix for per-user isolation.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values with an optional TTL.
//
// Get returns (nil, false, nil) on a miss; expired entries count as
// misses. Implementations are safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// LayoutKeyOpts are the inputs that change a layout result.
type LayoutKeyOpts struct {
	Device string
}

// ArtifactKeyOpts are the inputs that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format string
	Device string
}

// Keyer derives cache keys for the pipeline stages. Centralizing key
// construction keeps the CLI and the serve mode hitting the same entries.
type Keyer interface {
	// TreeKey keys a fetched family document by its source URL or path.
	TreeKey(source string) string

	// LayoutKey keys a layout result by the graph content hash and the
	// layout-affecting options.
	LayoutKey(treeHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact by the layout hash and the
	// render-affecting options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes all key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// TreeKey generates a key for fetched family documents.
func (k *DefaultKeyer) TreeKey(source string) string {
	return hashKey("tree", source)
}

// LayoutKey generates a key for layout results.
func (k *DefaultKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", treeHash, opts)
}

// ArtifactKey generates a key for rendered artifacts.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
