package error_handler

import (
	"net/http"

	"saludos/commons/response"
)

// Common error codes. They double as HTTP statuses.
const (
	CodeValidationError     = 400
	CodeNotFound            = 404
	CodeRequestTooLarge     = 413
	CodeInternalServerError = 500
	CodeServiceUnavailable  = 503
)

// ErrorCollection gathers the errors a service function reports
type ErrorCollection struct {
	errors []response.Errors
}

func NewErrorCollection() *ErrorCollection {
	return &ErrorCollection{
		errors: make([]response.Errors, 0),
	}
}

func (ec *ErrorCollection) AddError(code int, message string, data any) *ErrorCollection {
	ec.errors = append(ec.errors, response.Errors{
		ErrorCode: code,
		Message:   message,
		Data:      data,
	})
	return ec
}

func (ec *ErrorCollection) HasErrors() bool {
	return len(ec.errors) > 0
}

func (ec *ErrorCollection) GetErrors() []response.Errors {
	return ec.errors
}

// GetHTTPStatus answers with the first error code that is a valid HTTP
// error status. Application specific codes fall back to 400.
func (ec *ErrorCollection) GetHTTPStatus() int {
	if !ec.HasErrors() {
		return http.StatusOK
	}

	for _, err := range ec.errors {
		if err.ErrorCode >= 400 && err.ErrorCode < 600 && http.StatusText(err.ErrorCode) != "" {
			return err.ErrorCode
		}
	}

	return http.StatusBadRequest
}

func GetValidationError(message string) response.Errors {
	return newError(CodeValidationError, message)
}

func GetNotFoundError(message string) response.Errors {
	return newError(CodeNotFound, message)
}

func GetInternalServerError(message string) response.Errors {
	return newError(CodeInternalServerError, message)
}

func GetServiceUnavailableError(message string) response.Errors {
	return newError(CodeServiceUnavailable, message)
}

func newError(code int, message string) response.Errors {
	return response.Errors{ErrorCode: code, Message: message}
}
