package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"saludos/internal/logger"
	repositoryIface "saludos/internal/repository/iface"
)

// ErrMissingJobID is returned when the caller gave no id
var ErrMissingJobID = errors.New("missing job id")

// StatusService is the read path for job status
type StatusService interface {
	GetJob(ctx context.Context, jobID string) (json.RawMessage, error)
}

type statusService struct {
	jobRepo repositoryIface.JobRepository
	timeout time.Duration
	logger  logger.Logger
}

// NewStatusService creates a status reader over the job store
func NewStatusService(jobRepo repositoryIface.JobRepository, timeout time.Duration, log logger.Logger) StatusService {
	if timeout <= 0 {
		timeout = defaultStoreTimeout
	}
	return &statusService{
		jobRepo: jobRepo,
		timeout: timeout,
		logger:  log.With(logger.String("component", "status_service")),
	}
}

// GetJob returns the stored job document as written, worker fields included.
// Errors wrap ErrMissingJobID or repository.ErrJobNotFound where applicable.
func (s *statusService) GetJob(ctx context.Context, jobID string) (json.RawMessage, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return nil, ErrMissingJobID
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	doc, err := s.jobRepo.GetDocument(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("get job %s: %w", jobID, err)
	}

	s.logger.Debug("job status read",
		logger.String("job_id", jobID),
		logger.Int("size", len(doc)))

	return doc, nil
}
