// internal/cache/cache.go
package cache

import (
	"context"
	"time"
)

// Cache stores JSON-encoded values under string keys.
type Cache interface {
	// Get unmarshals the cached value into dest. found is false on a miss,
	// in which case dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	Close() error
}
