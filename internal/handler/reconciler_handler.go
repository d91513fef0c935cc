package handler

import (
	"context"

	"saludos/commons/error_handler"
	"saludos/commons/handler"
	"saludos/internal/dto"
	"saludos/internal/logger"
	"saludos/internal/service"
)

// SweepRunner runs one locked reconciler sweep
type SweepRunner interface {
	RunOnce(ctx context.Context) (service.SweepReport, error)
}

type ReconcilerHandler struct {
	runner SweepRunner
	logger logger.Logger
}

func NewReconcilerHandler(runner SweepRunner, log logger.Logger) *ReconcilerHandler {
	return &ReconcilerHandler{
		runner: runner,
		logger: log.With(logger.String("component", "reconciler_handler")),
	}
}

// RunSweepService triggers a sweep outside the cron schedule
func (h *ReconcilerHandler) RunSweepService(
	ctx context.Context,
	ioutil *handler.RequestIo[dto.RunSweepRequest],
) (dto.SweepSummary, *error_handler.ErrorCollection) {
	report, err := h.runner.RunOnce(ctx)
	if err != nil {
		h.logger.Error("manual sweep failed", logger.Error(err))
		return dto.SweepSummary{}, error_handler.NewErrorCollection().
			AddError(error_handler.CodeServiceUnavailable, "Sweep failed", nil)
	}

	h.logger.Info("manual sweep finished",
		logger.Int("orphans", len(report.Orphans)),
		logger.Bool("skipped", report.Skipped))

	return ToSweepSummary(report), nil
}
