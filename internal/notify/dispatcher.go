package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"saludos/internal/logger"
)

const DefaultTimeout = 3 * time.Second

// Dispatcher runs notifications off the request path. Each call is bounded
// by its own timeout and survives cancellation of the caller's context.
// Outcomes are only logged.
type Dispatcher struct {
	notifier Notifier
	timeout  time.Duration
	logger   logger.Logger
	wg       sync.WaitGroup
}

// NewDispatcher wraps notifier in a detached, timeout-bounded dispatcher
func NewDispatcher(notifier Notifier, timeout time.Duration, log logger.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Dispatcher{
		notifier: notifier,
		timeout:  timeout,
		logger:   log.With(logger.String("component", "notify_dispatcher")),
	}
}

// JobCreated returns immediately
func (d *Dispatcher) JobCreated(ctx context.Context, jobID string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	log := d.logger.WithContext(ctx).With(logger.String("job_id", jobID))

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				log.Error("notifier panicked", logger.String("panic", fmt.Sprint(r)))
			}
		}()

		start := time.Now()
		if err := d.notifier.NotifyJobCreated(ctx, jobID); err != nil {
			log.Warn("worker notification failed",
				logger.Duration("elapsed", time.Since(start)),
				logger.Error(err))
			return
		}
		log.Debug("worker notified", logger.Duration("elapsed", time.Since(start)))
	}()
}

// Wait blocks until in-flight notifications finish, used on shutdown
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
