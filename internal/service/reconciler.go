package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	coordinator "saludos/internal/coordinator/iface"
	"saludos/internal/domain"
	"saludos/internal/logger"
	queue "saludos/internal/queue/iface"
	repositoryIface "saludos/internal/repository/iface"

	"github.com/robfig/cron/v3"
)

const (
	DefaultReconcilerLockPath = "/saludos/locks/reconciler"
	defaultReconcilerReport   = "/saludos/reconciler/last_sweep"
)

// ReconcilerConfig holds the sweep schedule and policy
type ReconcilerConfig struct {
	Schedule     string
	Grace        time.Duration
	Requeue      bool
	Batch        int
	NodeID       string
	LockPath     string
	ReportPath   string
	StoreTimeout time.Duration
}

// SweepReport summarises one sweep
type SweepReport struct {
	NodeID     string    `json:"node_id"`
	StartedAt  time.Time `json:"started_at"`
	DurationMs int64     `json:"duration_ms"`
	Scanned    int       `json:"scanned"`
	Stale      int       `json:"stale"`
	Orphans    []string  `json:"orphans"`
	Requeued   int       `json:"requeued"`
	Skipped    bool      `json:"skipped"`
}

// Reconciler finds pending jobs whose id never reached the queue. It runs on
// a cron schedule and only the replica holding the ZooKeeper lock sweeps.
type Reconciler struct {
	jobRepo repositoryIface.JobRepository
	queue   queue.JobQueue
	coord   coordinator.Coordinator
	config  ReconcilerConfig
	logger  logger.Logger
	cron    *cron.Cron
	now     func() time.Time

	mu   sync.RWMutex
	last *SweepReport
}

// NewReconciler creates a new reconciler service
func NewReconciler(
	jobRepo repositoryIface.JobRepository,
	jobQueue queue.JobQueue,
	coord coordinator.Coordinator,
	config ReconcilerConfig,
	log logger.Logger,
) *Reconciler {
	if config.LockPath == "" {
		config.LockPath = DefaultReconcilerLockPath
	}
	if config.ReportPath == "" {
		config.ReportPath = defaultReconcilerReport
	}
	if config.Batch <= 0 {
		config.Batch = 200
	}
	if config.StoreTimeout <= 0 {
		config.StoreTimeout = defaultStoreTimeout
	}
	return &Reconciler{
		jobRepo: jobRepo,
		queue:   jobQueue,
		coord:   coord,
		config:  config,
		logger:  log.With(logger.String("component", "reconciler"), logger.String("node_id", config.NodeID)),
		cron:    cron.New(cron.WithSeconds()),
		now:     time.Now,
	}
}

// Start registers the sweep on the cron schedule
func (r *Reconciler) Start(ctx context.Context) error {
	_, err := r.cron.AddFunc(r.config.Schedule, func() {
		if _, err := r.RunOnce(context.Background()); err != nil {
			r.logger.Error("reconciler sweep failed", logger.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add reconciler cron: %w", err)
	}

	r.cron.Start()

	r.logger.Info("reconciler started",
		logger.String("schedule", r.config.Schedule),
		logger.Duration("grace", r.config.Grace),
		logger.Bool("requeue", r.config.Requeue))

	return nil
}

// Stop waits for a running sweep to finish
func (r *Reconciler) Stop(ctx context.Context) error {
	cronCtx := r.cron.Stop()
	select {
	case <-cronCtx.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LastReport returns the most recent sweep run by this replica, if any
func (r *Reconciler) LastReport() (SweepReport, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.last == nil {
		return SweepReport{}, false
	}
	return *r.last, true
}

// RunOnce takes the lock and sweeps. When another replica holds the lock the
// report comes back with Skipped set and no error.
func (r *Reconciler) RunOnce(ctx context.Context) (SweepReport, error) {
	release, err := r.coord.TryLock(r.config.LockPath, []byte(r.config.NodeID))
	if errors.Is(err, coordinator.ErrLockHeld) {
		r.logger.Debug("reconciler lock held elsewhere, skipping sweep")
		return SweepReport{NodeID: r.config.NodeID, StartedAt: r.now().UTC(), Skipped: true}, nil
	}
	if err != nil {
		return SweepReport{}, fmt.Errorf("failed to take reconciler lock: %w", err)
	}
	defer func() {
		if err := release(); err != nil {
			r.logger.Warn("failed to release reconciler lock", logger.Error(err))
		}
	}()

	report, err := r.Sweep(ctx)
	if err != nil {
		return report, err
	}

	r.mu.Lock()
	r.last = &report
	r.mu.Unlock()

	if data, err := json.Marshal(report); err == nil {
		if err := r.coord.UpdateNode(r.config.ReportPath, data); err != nil {
			r.logger.Warn("failed to publish sweep report", logger.Error(err))
		}
	}

	return report, nil
}

// Sweep inspects up to Batch pending jobs older than Grace
func (r *Reconciler) Sweep(ctx context.Context) (SweepReport, error) {
	start := r.now()
	report := SweepReport{NodeID: r.config.NodeID, StartedAt: start.UTC(), Orphans: []string{}}

	listCtx, cancel := context.WithTimeout(ctx, r.config.StoreTimeout)
	jobs, err := r.jobRepo.ListByStatus(listCtx, domain.JobStatusPending, r.config.Batch)
	cancel()
	if err != nil {
		return report, fmt.Errorf("failed to list pending jobs: %w", err)
	}
	report.Scanned = len(jobs)

	inspector, canInspect := r.queue.(queue.Inspector)
	if !canInspect {
		r.logger.Warn("queue backend cannot be inspected, reporting stale jobs only")
	}

	cutoff := start.Add(-r.config.Grace)
	for _, job := range jobs {
		if job.CreatedAt.After(cutoff) {
			continue
		}
		report.Stale++

		if !canInspect {
			r.logger.Warn("stale pending job",
				logger.String("job_id", job.ID),
				logger.String("created_at", job.CreatedAt.Format(time.RFC3339)))
			continue
		}

		queued, err := r.contains(ctx, inspector, job.ID)
		if err != nil {
			r.logger.Error("failed to look up job in queue",
				logger.String("job_id", job.ID),
				logger.Error(err))
			continue
		}
		if queued {
			continue
		}

		report.Orphans = append(report.Orphans, job.ID)
		r.logger.Warn("orphaned job found",
			logger.String("job_id", job.ID),
			logger.String("created_at", job.CreatedAt.Format(time.RFC3339)),
			logger.Bool("requeue", r.config.Requeue))

		if !r.config.Requeue {
			continue
		}
		// The worker may have popped the id since the list was read.
		orphaned, err := r.stillOrphaned(ctx, inspector, job.ID)
		if err != nil {
			r.logger.Error("failed to recheck orphaned job",
				logger.String("job_id", job.ID),
				logger.Error(err))
			continue
		}
		if !orphaned {
			r.logger.Info("orphaned job picked up before requeue",
				logger.String("job_id", job.ID))
			continue
		}
		if err := r.enqueue(ctx, job.ID); err != nil {
			r.logger.Error("failed to requeue orphaned job",
				logger.String("job_id", job.ID),
				logger.Error(err))
			continue
		}
		report.Requeued++
	}

	report.DurationMs = r.now().Sub(start).Milliseconds()

	r.logger.Info("reconciler sweep complete",
		logger.Int("scanned", report.Scanned),
		logger.Int("stale", report.Stale),
		logger.Int("orphans", len(report.Orphans)),
		logger.Int("requeued", report.Requeued))

	return report, nil
}

func (r *Reconciler) contains(ctx context.Context, inspector queue.Inspector, jobID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.config.StoreTimeout)
	defer cancel()
	return inspector.Contains(ctx, jobID)
}

// stillOrphaned rereads the job and the queue right before a requeue
func (r *Reconciler) stillOrphaned(ctx context.Context, inspector queue.Inspector, jobID string) (bool, error) {
	getCtx, cancel := context.WithTimeout(ctx, r.config.StoreTimeout)
	job, err := r.jobRepo.GetByID(getCtx, jobID)
	cancel()
	if err != nil {
		return false, err
	}
	if job.Status != domain.JobStatusPending {
		return false, nil
	}

	queued, err := r.contains(ctx, inspector, jobID)
	if err != nil {
		return false, err
	}
	return !queued, nil
}

func (r *Reconciler) enqueue(ctx context.Context, jobID string) error {
	ctx, cancel := context.WithTimeout(ctx, r.config.StoreTimeout)
	defer cancel()
	return r.queue.Enqueue(ctx, jobID)
}
