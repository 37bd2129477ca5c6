// Package cache provides layout result caching for the CLI and API.
//
// Layout computation is deterministic, so a (document, options) pair always
// yields the same result; caching by content hash lets repeated runs over an
// unchanged topology skip the force simulation entirely. Two implementations
// are provided: FileCache for local use and NullCache for tests and
// --no-cache runs.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is the default lifetime of cached layout results.
const DefaultTTL = 24 * time.Hour

// Cache is the storage interface used by the pipeline.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl stores without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// LayoutKeyOpts are the option fields that participate in layout cache keys.
// Any option that changes the computed positions must appear here.
type LayoutKeyOpts struct {
	Strategy   string `json:"strategy"`
	Direction  string `json:"direction,omitempty"`
	Iterations int    `json:"iterations,omitempty"`
	Columns    int    `json:"columns,omitempty"`
}

// LayoutKey generates a cache key for a layout computation over the graph
// identified by graphHash.
func LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}
