package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	cache "saludos/internal/cache/iface"
	"saludos/internal/domain"
	"saludos/internal/logger"
	"saludos/internal/repository"
	repositoryIface "saludos/internal/repository/iface"
)

const DefaultKeyPrefix = "job:"

type jobRepository struct {
	cache  cache.Cache
	prefix string
	logger logger.Logger
}

// NewJobRepository stores jobs as JSON documents under <prefix><id>, the
// layout the render worker reads.
func NewJobRepository(c cache.Cache, prefix string, log logger.Logger) repositoryIface.JobRepository {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &jobRepository{
		cache:  c,
		prefix: prefix,
		logger: log.With(logger.String("component", "job_repository"), logger.String("backend", "redis")),
	}
}

func (r *jobRepository) key(jobID string) string {
	return r.prefix + jobID
}

func (r *jobRepository) Create(ctx context.Context, job *domain.Job) error {
	r.logger.Debug("creating job",
		logger.String("job_id", job.ID))

	data, err := json.Marshal(job)
	if err != nil {
		r.logger.Error("failed to marshal job", logger.Error(err))
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	created, err := r.cache.SetNX(ctx, r.key(job.ID), data, 0)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	if !created {
		r.logger.Warn("job id already taken",
			logger.String("job_id", job.ID))
		return fmt.Errorf("%w: job_id=%s", repository.ErrJobExists, job.ID)
	}

	r.logger.Info("job created",
		logger.String("job_id", job.ID))

	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, jobID string) (*domain.Job, error) {
	r.logger.Debug("getting job by ID",
		logger.String("job_id", jobID))

	raw, err := r.cache.Get(ctx, r.key(jobID))
	if errors.Is(err, cache.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", repository.ErrJobNotFound, jobID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	var job domain.Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}

	return &job, nil
}

// GetDocument returns the stored bytes untouched
func (r *jobRepository) GetDocument(ctx context.Context, jobID string) (json.RawMessage, error) {
	raw, err := r.cache.Get(ctx, r.key(jobID))
	if errors.Is(err, cache.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", repository.ErrJobNotFound, jobID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if !json.Valid([]byte(raw)) {
		return nil, fmt.Errorf("stored job %s is not valid JSON", jobID)
	}
	return json.RawMessage(raw), nil
}

// ListByStatus scans the job keyspace. It is meant for periodic sweeps, not
// for request paths.
func (r *jobRepository) ListByStatus(ctx context.Context, status domain.JobStatus, limit int) ([]*domain.Job, error) {
	r.logger.Debug("scanning jobs by status",
		logger.String("status", string(status)),
		logger.Int("limit", limit))

	keys, err := r.cache.ScanKeys(ctx, r.prefix+"*", 0)
	if err != nil {
		return nil, fmt.Errorf("failed to scan jobs: %w", err)
	}

	jobs := make([]*domain.Job, 0)
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		job, err := r.GetByID(ctx, strings.TrimPrefix(key, r.prefix))
		if repository.IsNotFound(err) {
			continue
		}
		if err != nil {
			r.logger.Warn("skipping unreadable job",
				logger.String("key", key),
				logger.Error(err))
			continue
		}
		if job.Status != status {
			continue
		}
		jobs = append(jobs, job)
		if limit > 0 && len(jobs) >= limit {
			break
		}
	}

	r.logger.Debug("jobs retrieved",
		logger.String("status", string(status)),
		logger.Int("count", len(jobs)))

	return jobs, nil
}
