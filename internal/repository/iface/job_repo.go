package repository

import (
	"context"
	"encoding/json"

	"saludos/internal/domain"
)

// JobRepository defines operations for greeting render jobs
type JobRepository interface {
	// Create stores a new job. It fails with repository.ErrJobExists instead of
	// overwriting an existing id.
	Create(ctx context.Context, job *domain.Job) error
	GetByID(ctx context.Context, jobID string) (*domain.Job, error)
	// GetDocument returns the stored job as the worker-facing JSON document,
	// including fields the worker added that Job does not declare.
	GetDocument(ctx context.Context, jobID string) (json.RawMessage, error)
	ListByStatus(ctx context.Context, status domain.JobStatus, limit int) ([]*domain.Job, error)
}
