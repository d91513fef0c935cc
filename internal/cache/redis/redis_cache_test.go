package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	cache "saludos/internal/cache/iface"
	"saludos/internal/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) (cache.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	log, err := logger.NewZapLoggerForDev()
	require.NoError(t, err)
	c, err := NewRedisCache("redis://"+mr.Addr()+"/0", "", log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestBasicOperations(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	t.Run("SetNX and Get", func(t *testing.T) {
		key := "job:basic1"

		ok, err := c.SetNX(ctx, key, "first", 0)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = c.SetNX(ctx, key, "second", 0)
		require.NoError(t, err)
		assert.False(t, ok)

		result, err := c.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "first", result)
	})

	t.Run("SetNX with TTL", func(t *testing.T) {
		key := "job:basic2"

		ok, err := c.SetNX(ctx, key, "expiring", 2*time.Second)
		require.NoError(t, err)
		assert.True(t, ok)

		mr.FastForward(3 * time.Second)

		_, err = c.Get(ctx, key)
		assert.True(t, errors.Is(err, cache.ErrNotFound))
	})

	t.Run("Delete", func(t *testing.T) {
		key := "job:basic3"

		_, err := c.SetNX(ctx, key, "to-delete", 0)
		require.NoError(t, err)

		require.NoError(t, c.Delete(ctx, key))

		_, err = c.Get(ctx, key)
		assert.Error(t, err)
	})
}

func TestScanKeys(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	for _, k := range []string{"job:a", "job:b", "job:c", "other:x"} {
		require.NoError(t, mr.Set(k, "{}"))
	}

	keys, err := c.ScanKeys(ctx, "job:*", 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"job:a", "job:b", "job:c"}, keys)

	keys, err = c.ScanKeys(ctx, "job:*", 2)
	require.NoError(t, err)
	assert.Len(t, keys, 2)
}

func TestListOperations(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()
	key := "video:queue"

	t.Run("LPush", func(t *testing.T) {
		require.NoError(t, c.LPush(ctx, key, "job1"))
		require.NoError(t, c.LPush(ctx, key, "job2"))
		require.NoError(t, c.LPush(ctx, key, "job3"))
	})

	t.Run("LLen", func(t *testing.T) {
		length, err := c.LLen(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, int64(3), length)
	})

	t.Run("LPos", func(t *testing.T) {
		idx, err := c.LPos(ctx, key, "job1")
		require.NoError(t, err)
		assert.Equal(t, int64(2), idx)

		_, err = c.LPos(ctx, key, "missing")
		assert.True(t, errors.Is(err, cache.ErrNotFound))
	})

	t.Run("BRPop returns oldest first", func(t *testing.T) {
		for _, want := range []string{"job1", "job2", "job3"} {
			got, err := c.BRPop(ctx, time.Second, key)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("BRPop on empty list times out", func(t *testing.T) {
		_, err := c.BRPop(ctx, 100*time.Millisecond, key)
		assert.True(t, errors.Is(err, cache.ErrNotFound))
	})
}

func TestTokenOverridesPassword(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.RequireAuth("s3cret")
	log, err := logger.NewZapLoggerForDev()
	require.NoError(t, err)

	_, err = NewRedisCache("redis://"+mr.Addr(), "", log)
	assert.Error(t, err)

	c, err := NewRedisCache("redis://"+mr.Addr(), "s3cret", log)
	require.NoError(t, err)
	assert.NoError(t, c.Ping(context.Background()))
	_ = c.Close()
}

func TestInvalidURL(t *testing.T) {
	log, err := logger.NewZapLoggerForDev()
	require.NoError(t, err)

	_, err = NewRedisCache("http://not-redis", "", log)
	assert.Error(t, err)
}
