package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	cache "saludos/internal/cache/iface"
	"saludos/internal/logger"
	queue "saludos/internal/queue/iface"
)

const DefaultQueueName = "video:queue"

// RedisQueue keeps job ids in a Redis list. The render worker pops with
// BRPOP, so the right end is the head and producers LPUSH onto the left.
type RedisQueue struct {
	cache  cache.Cache
	name   string
	logger logger.Logger
}

var (
	_ queue.JobQueue  = (*RedisQueue)(nil)
	_ queue.Inspector = (*RedisQueue)(nil)
)

// NewRedisQueue creates a queue backed by the list at name
func NewRedisQueue(c cache.Cache, name string, log logger.Logger) *RedisQueue {
	if name == "" {
		name = DefaultQueueName
	}
	return &RedisQueue{
		cache:  c,
		name:   name,
		logger: log.With(logger.String("component", "redis_queue"), logger.String("queue", name)),
	}
}

func (q *RedisQueue) Enqueue(ctx context.Context, jobID string) error {
	if err := q.cache.LPush(ctx, q.name, jobID); err != nil {
		return fmt.Errorf("failed to enqueue job %s: %w", jobID, err)
	}

	q.logger.Debug("job enqueued", logger.String("job_id", jobID))
	return nil
}

func (q *RedisQueue) Dequeue(ctx context.Context, wait time.Duration) (string, error) {
	jobID, err := q.cache.BRPop(ctx, wait, q.name)
	if errors.Is(err, cache.ErrNotFound) {
		return "", queue.ErrEmpty
	}
	if err != nil {
		return "", fmt.Errorf("failed to dequeue: %w", err)
	}

	return jobID, nil
}

func (q *RedisQueue) Len(ctx context.Context) (int64, error) {
	n, err := q.cache.LLen(ctx, q.name)
	if err != nil {
		return 0, fmt.Errorf("failed to read queue length: %w", err)
	}
	return n, nil
}

func (q *RedisQueue) Contains(ctx context.Context, jobID string) (bool, error) {
	_, err := q.cache.LPos(ctx, q.name, jobID)
	if errors.Is(err, cache.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up job %s: %w", jobID, err)
	}
	return true, nil
}
