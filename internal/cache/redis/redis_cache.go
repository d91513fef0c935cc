package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	cache "saludos/internal/cache/iface"
	"saludos/internal/logger"

	"github.com/redis/go-redis/v9"
)

const scanBatch = 100

type redisCache struct {
	client *redis.Client
	logger logger.Logger
}

// NewRedisCache connects to the Redis instance described by rawURL
// (redis:// or rediss://). A non-empty token replaces the URL password, which
// is how hosted Redis providers hand out REST-style credentials.
func NewRedisCache(rawURL string, token string, log logger.Logger) (cache.Cache, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if token != "" {
		opts.Password = token
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info("connected to Redis successfully", logger.String("addr", opts.Addr))

	return &redisCache{
		client: client,
		logger: log.With(logger.String("component", "redis_cache")),
	}, nil
}

// SetNX stores a value only if the key does not exist yet
func (r *redisCache) SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		r.logger.Error("failed to setnx key",
			logger.String("key", key),
			logger.Error(err))
		return false, fmt.Errorf("redis setnx failed: %w", err)
	}

	return ok, nil
}

// Get retrieves a value by key
func (r *redisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("key %s: %w", key, cache.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get key",
			logger.String("key", key),
			logger.Error(err))
		return "", fmt.Errorf("redis get failed: %w", err)
	}

	return val, nil
}

// Delete removes a key
func (r *redisCache) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("failed to delete key",
			logger.String("key", key),
			logger.Error(err))
		return fmt.Errorf("redis delete failed: %w", err)
	}

	return nil
}

// ScanKeys walks the keyspace with SCAN and returns up to limit matching keys.
// A limit of 0 or less returns every match.
func (r *redisCache) ScanKeys(ctx context.Context, pattern string, limit int) ([]string, error) {
	var keys []string
	var cursor uint64
	for {
		batch, next, err := r.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			r.logger.Error("failed to scan keys",
				logger.String("pattern", pattern),
				logger.Error(err))
			return nil, fmt.Errorf("redis scan failed: %w", err)
		}

		for _, key := range batch {
			keys = append(keys, key)
			if limit > 0 && len(keys) >= limit {
				return keys, nil
			}
		}

		cursor = next
		if cursor == 0 {
			return keys, nil
		}
	}
}

// LPush prepends values to a list
func (r *redisCache) LPush(ctx context.Context, key string, values ...interface{}) error {
	err := r.client.LPush(ctx, key, values...).Err()
	if err != nil {
		r.logger.Error("failed to lpush",
			logger.String("key", key),
			logger.Error(err))
		return fmt.Errorf("redis lpush failed: %w", err)
	}

	return nil
}

// BRPop blocks up to timeout for the last element of a list
func (r *redisCache) BRPop(ctx context.Context, timeout time.Duration, key string) (string, error) {
	vals, err := r.client.BRPop(ctx, timeout, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", cache.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to brpop",
			logger.String("key", key),
			logger.Error(err))
		return "", fmt.Errorf("redis brpop failed: %w", err)
	}

	// BRPOP replies with [key, value]
	if len(vals) != 2 {
		return "", fmt.Errorf("redis brpop: unexpected reply length %d", len(vals))
	}

	return vals[1], nil
}

// LPos returns the index of value in a list
func (r *redisCache) LPos(ctx context.Context, key string, value string) (int64, error) {
	idx, err := r.client.LPos(ctx, key, value, redis.LPosArgs{}).Result()
	if errors.Is(err, redis.Nil) {
		return -1, cache.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to lpos",
			logger.String("key", key),
			logger.Error(err))
		return -1, fmt.Errorf("redis lpos failed: %w", err)
	}

	return idx, nil
}

// LLen returns the length of a list
func (r *redisCache) LLen(ctx context.Context, key string) (int64, error) {
	length, err := r.client.LLen(ctx, key).Result()
	if err != nil {
		r.logger.Error("failed to llen",
			logger.String("key", key),
			logger.Error(err))
		return 0, fmt.Errorf("redis llen failed: %w", err)
	}

	return length, nil
}

// Ping checks the connection
func (r *redisCache) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (r *redisCache) Close() error {
	return r.client.Close()
}
