package cache

import (
	"context"
	"time"
)

// Store is the read-through cache used for rendered summaries. Both the
// Redis and the in-memory implementations satisfy it, so deployments without
// Redis still get caching.
type Store interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Get returns the cached value and whether the key was present
	Get(ctx context.Context, key string) (string, bool, error)
	Delete(ctx context.Context, key string) error
}
