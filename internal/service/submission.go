package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"saludos/internal/domain"
	"saludos/internal/logger"
	"saludos/internal/moderation"
	queue "saludos/internal/queue/iface"
	"saludos/internal/repository"
	repositoryIface "saludos/internal/repository/iface"
)

// User-facing submission messages
const (
	MessageAccepted = "¡Tu saludo mágico se está generando! Te llegará por email en unos minutos. 🎄✨"
	MessageRejected = "Por favor, corregí los errores en el formulario"
	MessageFailed   = "Hubo un error al procesar tu solicitud. Por favor intentá de nuevo."
)

const (
	defaultStoreTimeout  = 5 * time.Second
	defaultMaxIDAttempts = 3
)

// Outcome is the terminal state of a submission
type Outcome string

const (
	OutcomeAccepted Outcome = "ACCEPTED"
	OutcomeRejected Outcome = "REJECTED"
	OutcomeFailed   Outcome = "FAILED"
)

// SubmissionResult is what the caller sees. JobID is set only when accepted.
type SubmissionResult struct {
	Outcome Outcome
	Message string
	Errors  map[string]string
	JobID   string
}

// Accepted reports whether the job was persisted and enqueued
func (r SubmissionResult) Accepted() bool {
	return r.Outcome == OutcomeAccepted
}

// RequestValidator checks a request field by field
type RequestValidator interface {
	Validate(req domain.GreetingRequest) domain.ValidationErrorSet
}

// ContentModerator moderates named free-text fields
type ContentModerator interface {
	ValidateFields(ctx context.Context, fields map[string]string) moderation.FieldsResult
}

// JobNotifier is told about new jobs after they are enqueued. It must not block.
type JobNotifier interface {
	JobCreated(ctx context.Context, jobID string)
}

// SubmissionService turns a greeting request into a queued render job
type SubmissionService interface {
	Submit(ctx context.Context, req domain.GreetingRequest) SubmissionResult
}

// SubmissionConfig holds submission tuning
type SubmissionConfig struct {
	Variant       domain.FormVariant
	StoreTimeout  time.Duration
	MaxIDAttempts int
}

type submissionService struct {
	validator RequestValidator
	moderator ContentModerator
	jobRepo   repositoryIface.JobRepository
	queue     queue.JobQueue
	notifier  JobNotifier
	config    SubmissionConfig
	logger    logger.Logger
	now       func() time.Time
}

// NewSubmissionService creates the submission orchestrator
func NewSubmissionService(
	validator RequestValidator,
	moderator ContentModerator,
	jobRepo repositoryIface.JobRepository,
	jobQueue queue.JobQueue,
	notifier JobNotifier,
	config SubmissionConfig,
	log logger.Logger,
) SubmissionService {
	if config.StoreTimeout <= 0 {
		config.StoreTimeout = defaultStoreTimeout
	}
	if config.MaxIDAttempts <= 0 {
		config.MaxIDAttempts = defaultMaxIDAttempts
	}
	if config.Variant == "" {
		config.Variant = domain.VariantFull
	}
	return &submissionService{
		validator: validator,
		moderator: moderator,
		jobRepo:   jobRepo,
		queue:     jobQueue,
		notifier:  notifier,
		config:    config,
		logger:    log.With(logger.String("component", "submission_service")),
		now:       time.Now,
	}
}

// Submit runs validate → moderate → persist → enqueue → notify. The store
// write always happens before the enqueue, and a job id is only returned
// once both succeeded.
func (s *submissionService) Submit(ctx context.Context, req domain.GreetingRequest) (result SubmissionResult) {
	log := s.logger.WithContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			log.Error("submission panicked", logger.String("panic", fmt.Sprint(r)))
			result = failed()
		}
	}()

	if errs := s.validator.Validate(req); errs.HasErrors() {
		log.Info("submission rejected by validation", logger.Int("error_count", len(errs)))
		return rejected(errs)
	}

	verdict := s.moderator.ValidateFields(ctx, req.NarrativeFields(s.config.Variant))
	if !verdict.IsValid {
		log.Info("submission rejected by moderation", logger.Any("fields", keys(verdict.Errors)))
		return rejected(verdict.Errors)
	}

	job, err := s.persist(ctx, req)
	if err != nil {
		log.Error("failed to persist job", logger.Error(err))
		return failed()
	}

	if err := s.enqueue(ctx, job.ID); err != nil {
		// The record exists but the worker will never see it.
		log.Error("job persisted but not enqueued",
			logger.String("job_id", job.ID),
			logger.Bool("orphan", true),
			logger.Error(err))
		return failed()
	}

	s.notifier.JobCreated(ctx, job.ID)

	log.Info("submission accepted", logger.String("job_id", job.ID))
	return SubmissionResult{
		Outcome: OutcomeAccepted,
		Message: MessageAccepted,
		JobID:   job.ID,
	}
}

// persist writes a new pending job, drawing a fresh id on collision
func (s *submissionService) persist(ctx context.Context, req domain.GreetingRequest) (*domain.Job, error) {
	var lastErr error
	for attempt := 1; attempt <= s.config.MaxIDAttempts; attempt++ {
		job := domain.NewJob(req, s.now())

		storeCtx, cancel := context.WithTimeout(ctx, s.config.StoreTimeout)
		err := s.jobRepo.Create(storeCtx, job)
		cancel()

		if err == nil {
			return job, nil
		}
		if !errors.Is(err, repository.ErrJobExists) {
			return nil, err
		}

		s.logger.Warn("job id collision, retrying",
			logger.String("job_id", job.ID),
			logger.Int("attempt", attempt))
		lastErr = err
	}

	return nil, fmt.Errorf("no free job id after %d attempts: %w", s.config.MaxIDAttempts, lastErr)
}

func (s *submissionService) enqueue(ctx context.Context, jobID string) error {
	queueCtx, cancel := context.WithTimeout(ctx, s.config.StoreTimeout)
	defer cancel()
	return s.queue.Enqueue(queueCtx, jobID)
}

func rejected(errs map[string]string) SubmissionResult {
	return SubmissionResult{
		Outcome: OutcomeRejected,
		Message: MessageRejected,
		Errors:  errs,
	}
}

func failed() SubmissionResult {
	return SubmissionResult{
		Outcome: OutcomeFailed,
		Message: MessageFailed,
	}
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
