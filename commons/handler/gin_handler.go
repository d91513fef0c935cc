package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"saludos/commons/error_handler"
	"saludos/commons/response"
	"saludos/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type ServiceFunc[InputDto any, OutputDto any] func(
	ctx context.Context,
	ioutil *RequestIo[InputDto],
) (OutputDto, *error_handler.ErrorCollection)

// Redirector is implemented by outputs that answer a successful call with a
// 303 See Other instead of the JSON envelope. An empty location falls back
// to the envelope.
type Redirector interface {
	RedirectLocation() string
}

func HandleFunc[InputDto any, OutputDto any](
	deps HandlerDependencies,
	serviceFunc ServiceFunc[InputDto, OutputDto],
) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		ioutil := BuildRequestIo[InputDto](c)

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, deps.maxBodyBytes())
		bodyBytes, err := io.ReadAll(c.Request.Body)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			deps.Logger.Warn("request body too large",
				logger.Int64("limit", tooLarge.Limit))
			SendErrorResponse(c, *new(OutputDto), error_handler.NewErrorCollection().
				AddError(error_handler.CodeRequestTooLarge, "Request body too large", nil))
			return
		}
		if err != nil {
			deps.Logger.Error("unable to read request body", logger.Error(err))
			SendErrorResponse(c, *new(OutputDto), error_handler.NewErrorCollection().
				AddError(error_handler.CodeInternalServerError, "Unable to parse request body", nil))
			return
		}

		ioutil.RawBody = bodyBytes

		if len(bodyBytes) > 0 && (c.Request.Method == http.MethodPost || c.Request.Method == http.MethodPut || c.Request.Method == http.MethodPatch) {
			// Restore the body for the binder to read
			c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

			if err := bindBody(c, &ioutil.Body); err != nil {
				deps.Logger.Error("unable to bind request body",
					logger.Error(err),
					logger.String("content_type", c.ContentType()),
					logger.Int("body_size", len(bodyBytes)))
				SendErrorResponse(c, *new(OutputDto), error_handler.NewErrorCollection().
					AddError(error_handler.CodeValidationError, "Invalid request body", nil))
				return
			}
		}

		outputDto, errorCollection := serviceFunc(ctx, ioutil)

		if errorCollection != nil && errorCollection.HasErrors() {
			SendErrorResponse(c, outputDto, errorCollection)
			return
		}

		if redirect, ok := any(outputDto).(Redirector); ok && redirect.RedirectLocation() != "" {
			c.Redirect(http.StatusSeeOther, redirect.RedirectLocation())
			return
		}

		SendSuccessResponse(c, outputDto)
	}
}

// bindBody decodes form posts with the form binder and everything else as JSON
func bindBody(c *gin.Context, obj any) error {
	switch c.ContentType() {
	case binding.MIMEPOSTForm, binding.MIMEMultipartPOSTForm:
		return c.ShouldBindWith(obj, binding.Form)
	default:
		return c.ShouldBindJSON(obj)
	}
}

func SendSuccessResponse[T any](c *gin.Context, data T) {
	c.JSON(http.StatusOK, response.Success(data))
}

func SendErrorResponse[T any](c *gin.Context, data T, errorCollection *error_handler.ErrorCollection) {
	httpStatus := errorCollection.GetHTTPStatus()
	errs := errorCollection.GetErrors()
	if len(errs) == 0 {
		httpStatus = http.StatusInternalServerError
		errs = []response.Errors{error_handler.GetInternalServerError("Internal server error")}
	}

	c.JSON(httpStatus, response.Failure(data, errs...))
}
