package handler

import (
	"context"
	"time"

	"saludos/commons/error_handler"
	"saludos/commons/handler"
	"saludos/internal/dto"
	"saludos/internal/logger"
	queue "saludos/internal/queue/iface"
	"saludos/internal/service"
)

const queueProbeTimeout = 2 * time.Second

// SweepReporter exposes the reconciler's last sweep
type SweepReporter interface {
	LastReport() (service.SweepReport, bool)
}

type HealthHandler struct {
	logger      logger.Logger
	serviceName string
	queue       queue.JobQueue
	sweeps      SweepReporter
}

// NewHealthHandler builds the health check. sweeps may be nil.
func NewHealthHandler(log logger.Logger, serviceName string, q queue.JobQueue, sweeps SweepReporter) *HealthHandler {
	return &HealthHandler{
		logger:      log.With(logger.String("component", "health_handler")),
		serviceName: serviceName,
		queue:       q,
		sweeps:      sweeps,
	}
}

// HealthService always answers 200; a queue that cannot be reached only
// degrades the status.
func (h *HealthHandler) HealthService(
	ctx context.Context,
	ioutil *handler.RequestIo[dto.HealthCheckRequest],
) (dto.HealthCheckResponse, *error_handler.ErrorCollection) {
	h.logger.Debug("health check requested")

	response := dto.HealthCheckResponse{
		Status:  "healthy",
		Service: h.serviceName,
	}

	if h.queue != nil {
		probeCtx, cancel := context.WithTimeout(ctx, queueProbeTimeout)
		depth, err := h.queue.Len(probeCtx)
		cancel()

		response.Queue = &dto.QueueHealth{Depth: depth}
		if err != nil {
			h.logger.Warn("queue depth probe failed", logger.Error(err))
			response.Status = "degraded"
			response.Queue.Error = "queue unavailable"
		}
	}

	if h.sweeps != nil {
		if report, ok := h.sweeps.LastReport(); ok {
			summary := ToSweepSummary(report)
			response.LastSweep = &summary
		}
	}

	return response, nil
}

// ToSweepSummary maps a reconciler report onto its wire shape
func ToSweepSummary(report service.SweepReport) dto.SweepSummary {
	return dto.SweepSummary{
		NodeID:     report.NodeID,
		StartedAt:  report.StartedAt,
		DurationMs: report.DurationMs,
		Scanned:    report.Scanned,
		Stale:      report.Stale,
		Orphans:    report.Orphans,
		Requeued:   report.Requeued,
		Skipped:    report.Skipped,
	}
}
