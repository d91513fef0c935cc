package handler

import (
	"context"
	"net/url"
	"strings"

	"saludos/commons/error_handler"
	"saludos/commons/handler"
	"saludos/internal/domain"
	"saludos/internal/dto"
	"saludos/internal/logger"
	"saludos/internal/service"
)

type GreetingHandler struct {
	submission      service.SubmissionService
	confirmationURL string
	logger          logger.Logger
}

// NewGreetingHandler creates a new greeting handler. confirmationURL is
// where accepted form posts are redirected.
func NewGreetingHandler(submission service.SubmissionService, confirmationURL string, log logger.Logger) *GreetingHandler {
	return &GreetingHandler{
		submission:      submission,
		confirmationURL: confirmationURL,
		logger:          log.With(logger.String("component", "greeting_handler")),
	}
}

// SubmitService handles JSON submissions
func (h *GreetingHandler) SubmitService(
	ctx context.Context,
	ioutil *handler.RequestIo[dto.SubmitGreetingRequest],
) (dto.SubmitGreetingResponse, *error_handler.ErrorCollection) {
	h.logger.Debug("greeting submission received", logger.String("client_ip", ioutil.ClientIP))

	result := h.submission.Submit(ctx, ioutil.Body)
	return toSubmitResponse(result), toErrorCollection(result)
}

// SubmitFormService handles form posts. Accepted submissions answer with a
// 303 to the confirmation view carrying only the relationship and child name.
func (h *GreetingHandler) SubmitFormService(
	ctx context.Context,
	ioutil *handler.RequestIo[dto.SubmitGreetingRequest],
) (dto.SubmitGreetingFormResponse, *error_handler.ErrorCollection) {
	h.logger.Debug("greeting form received", logger.String("client_ip", ioutil.ClientIP))

	result := h.submission.Submit(ctx, ioutil.Body)
	resp := dto.SubmitGreetingFormResponse{SubmitGreetingResponse: toSubmitResponse(result)}
	if result.Accepted() {
		resp.Location = h.confirmationLocation(ioutil.Body)
	}
	return resp, toErrorCollection(result)
}

func (h *GreetingHandler) confirmationLocation(req domain.GreetingRequest) string {
	query := url.Values{}
	query.Set("parentesco", strings.TrimSpace(req.Relationship))
	query.Set("nombre", strings.TrimSpace(req.ChildName))

	sep := "?"
	if strings.Contains(h.confirmationURL, "?") {
		sep = "&"
	}
	return h.confirmationURL + sep + query.Encode()
}

func toSubmitResponse(result service.SubmissionResult) dto.SubmitGreetingResponse {
	return dto.SubmitGreetingResponse{
		Success: result.Accepted(),
		Message: result.Message,
		Errors:  result.Errors,
		JobID:   result.JobID,
	}
}

func toErrorCollection(result service.SubmissionResult) *error_handler.ErrorCollection {
	switch result.Outcome {
	case service.OutcomeRejected:
		return error_handler.NewErrorCollection().
			AddError(error_handler.CodeValidationError, result.Message, result.Errors)
	case service.OutcomeFailed:
		return error_handler.NewErrorCollection().
			AddError(error_handler.CodeServiceUnavailable, result.Message, nil)
	default:
		return nil
	}
}
