package notify

import "context"

// Notifier tells the render worker that a new job is waiting
type Notifier interface {
	NotifyJobCreated(ctx context.Context, jobID string) error
}
