package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a key, list element or blocking pop yields nothing.
var ErrNotFound = errors.New("cache: not found")

// Cache defines the Redis operations the job store and queue rely on.
type Cache interface {
	// Key operations
	SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
	ScanKeys(ctx context.Context, pattern string, limit int) ([]string, error)

	// List operations (job queue: push left, pop right)
	LPush(ctx context.Context, key string, values ...interface{}) error
	BRPop(ctx context.Context, timeout time.Duration, key string) (string, error)
	LPos(ctx context.Context, key string, value string) (int64, error)
	LLen(ctx context.Context, key string) (int64, error)

	Ping(ctx context.Context) error
	Close() error
}
