package redis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	rediscache "saludos/internal/cache/redis"
	"saludos/internal/logger"
	queue "saludos/internal/queue/iface"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupQueue(t *testing.T) (*RedisQueue, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	log, err := logger.NewZapLoggerForDev()
	require.NoError(t, err)
	c, err := rediscache.NewRedisCache("redis://"+mr.Addr(), "", log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return NewRedisQueue(c, "", log), mr
}

func TestQueueIsFIFO(t *testing.T) {
	q, _ := setupQueue(t)
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, "A"))
	require.NoError(t, q.Enqueue(ctx, "B"))
	require.NoError(t, q.Enqueue(ctx, "C"))

	for _, want := range []string{"A", "B", "C"} {
		got, err := q.Dequeue(ctx, time.Second)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestQueueMatchesWorkerLayout(t *testing.T) {
	q, mr := setupQueue(t)
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, "first"))
	require.NoError(t, q.Enqueue(ctx, "second"))

	// the worker runs BRPOP video:queue, so the oldest id must sit on the right
	list, err := mr.List("video:queue")
	require.NoError(t, err)
	assert.Equal(t, []string{"second", "first"}, list)

	head, err := mr.Pop("video:queue")
	require.NoError(t, err)
	assert.Equal(t, "first", head)
}

func TestQueueLenAndContains(t *testing.T) {
	q, _ := setupQueue(t)
	ctx := context.Background()

	n, err := q.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, q.Enqueue(ctx, "x"))
	require.NoError(t, q.Enqueue(ctx, "y"))

	n, err = q.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	found, err := q.Contains(ctx, "x")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = q.Contains(ctx, "z")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDequeueEmpty(t *testing.T) {
	q, _ := setupQueue(t)

	_, err := q.Dequeue(context.Background(), time.Second)
	assert.True(t, errors.Is(err, queue.ErrEmpty))
}

func TestConcurrentProducersKeepEveryID(t *testing.T) {
	q, _ := setupQueue(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, q.Enqueue(ctx, "job-"+string(rune('a'+i))))
		}()
	}
	wg.Wait()

	n, err := q.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(20), n)
}
