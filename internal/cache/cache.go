package cache

import (
	"context"
	"time"
)

// Cache is the read-through collection cache. Keys are resource names ("orders", "sizes", ...).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}
