// internal/queue/iface/queue.go
package queue

import (
	"context"
	"errors"
	"time"
)

// ErrEmpty is returned by Dequeue when no id arrived within the wait time
var ErrEmpty = errors.New("queue: empty")

// JobQueue is the FIFO hand-off of job ids to the render worker.
// Enqueue appends at the tail; Dequeue removes from the head.
type JobQueue interface {
	Enqueue(ctx context.Context, jobID string) error
	Dequeue(ctx context.Context, wait time.Duration) (string, error)
	Len(ctx context.Context) (int64, error)
}

// Inspector is implemented by queues that can look up a pending id
// without consuming it
type Inspector interface {
	Contains(ctx context.Context, jobID string) (bool, error)
}
