package handler

import (
	"strings"

	"saludos/internal/logger"

	"github.com/gin-gonic/gin"
)

type RequestIo[T any] struct {
	Body        T
	RawBody     []byte
	PathParams  map[string]string
	QueryParams map[string]string
	Headers     map[string]string
	ClientIP    string
}

// Param returns the first non-blank value among the named query and path
// params, queries first.
func (r *RequestIo[T]) Param(names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(r.QueryParams[name]); v != "" {
			return v
		}
	}
	for _, name := range names {
		if v := strings.TrimSpace(r.PathParams[name]); v != "" {
			return v
		}
	}
	return ""
}

type HandlerDependencies struct {
	Logger logger.Logger
	// MaxBodyBytes caps how much of a request body is read. Zero means
	// DefaultMaxBodyBytes.
	MaxBodyBytes int64
}

// DefaultMaxBodyBytes is far above any valid greeting form
const DefaultMaxBodyBytes int64 = 64 << 10

func (d HandlerDependencies) maxBodyBytes() int64 {
	if d.MaxBodyBytes > 0 {
		return d.MaxBodyBytes
	}
	return DefaultMaxBodyBytes
}

func BuildRequestIo[T any](c *gin.Context) *RequestIo[T] {
	return &RequestIo[T]{
		PathParams:  extractPathParams(c),
		QueryParams: extractQueryParams(c),
		Headers:     extractHeaders(c),
		ClientIP:    c.ClientIP(),
	}
}

func extractPathParams(c *gin.Context) map[string]string {
	params := make(map[string]string)
	for _, param := range c.Params {
		params[param.Key] = param.Value
	}
	return params
}

func extractQueryParams(c *gin.Context) map[string]string {
	params := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}

func extractHeaders(c *gin.Context) map[string]string {
	headers := make(map[string]string)
	for key, values := range c.Request.Header {
		if len(values) > 0 {
			headers[key] = values[0]
		}
	}
	return headers
}
