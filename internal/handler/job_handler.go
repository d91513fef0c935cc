package handler

import (
	"context"
	"encoding/json"
	"errors"

	"saludos/commons/error_handler"
	"saludos/commons/handler"
	"saludos/internal/dto"
	"saludos/internal/logger"
	"saludos/internal/repository"
	"saludos/internal/service"
)

type JobHandler struct {
	status service.StatusService
	logger logger.Logger
}

func NewJobHandler(status service.StatusService, log logger.Logger) *JobHandler {
	return &JobHandler{
		status: status,
		logger: log.With(logger.String("component", "job_handler")),
	}
}

// GetStatusService looks a job up by ?videoId=, ?id= or the :id path param
// and answers with the stored document as is
func (h *JobHandler) GetStatusService(
	ctx context.Context,
	ioutil *handler.RequestIo[dto.GetJobStatusRequest],
) (json.RawMessage, *error_handler.ErrorCollection) {
	jobID := ioutil.Param("videoId", "id")

	doc, err := h.status.GetJob(ctx, jobID)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrMissingJobID):
		return nil, error_handler.NewErrorCollection().
			AddError(error_handler.CodeValidationError, "Missing videoId", nil)
	case repository.IsNotFound(err):
		return nil, error_handler.NewErrorCollection().
			AddError(error_handler.CodeNotFound, "Video not found", nil)
	default:
		h.logger.Error("failed to get job status",
			logger.String("job_id", jobID),
			logger.Error(err))
		return nil, error_handler.NewErrorCollection().
			AddError(error_handler.CodeInternalServerError, "Internal server error", nil)
	}

	return doc, nil
}
