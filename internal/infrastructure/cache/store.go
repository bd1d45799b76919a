// Package cache provides the key/value stores used to memoize tenant
// resolution. Redis is used when configured; otherwise an in-process store
// keeps entries for a single instance.
package cache

import (
	"context"
	"time"
)

// Store is a byte-oriented cache with per-entry TTL
type Store interface {
	// Get returns the value for key and whether it was present
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key for ttl
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes keys; missing keys are ignored
	Delete(ctx context.Context, keys ...string) error
	// Close releases background resources
	Close() error
}
