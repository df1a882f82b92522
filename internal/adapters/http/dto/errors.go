// Package dto holds HTTP response envelopes and the mapping from domain
// errors to them.
package dto

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quote-jsonl-service/internal/domain"
	"github.com/jsamuelsen/quote-jsonl-service/internal/platform/logging"
)

// ErrorResponse is the standard error envelope for all error responses.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorDetail contains the error information.
type ErrorDetail struct {
	// Code is machine readable, e.g. "SERVICE_UNAVAILABLE".
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes.
const (
	ErrorCodeBadRequest           = "BAD_REQUEST"
	ErrorCodeNotFound             = "NOT_FOUND"
	ErrorCodeNotAcceptable        = "NOT_ACCEPTABLE"
	ErrorCodeUnsupportedMediaType = "UNSUPPORTED_MEDIA_TYPE"
	ErrorCodeInternal             = "INTERNAL_ERROR"
	ErrorCodeUnavailable          = "SERVICE_UNAVAILABLE"
	ErrorCodeTimeout              = "TIMEOUT"
)

// NewErrorResponse creates an error envelope.
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// WithTraceID attaches the trace id.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}

// HTTPStatusFromCode maps error codes to HTTP status codes.
func HTTPStatusFromCode(code string) int {
	switch code {
	case ErrorCodeBadRequest:
		return http.StatusBadRequest
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeNotAcceptable:
		return http.StatusNotAcceptable
	case ErrorCodeUnsupportedMediaType:
		return http.StatusUnsupportedMediaType
	case ErrorCodeUnavailable, ErrorCodeTimeout:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// MapDomainError maps a domain error to a status and envelope. Errors of
// unknown kind get a generic message so internals do not leak.
func MapDomainError(err error) (int, *ErrorResponse) {
	switch {
	case err == nil:
		return http.StatusOK, nil
	case domain.IsUnavailable(err):
		return http.StatusServiceUnavailable, NewErrorResponse(ErrorCodeUnavailable, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, NewErrorResponse(ErrorCodeTimeout, "request timeout exceeded")
	case domain.IsUnsupported(err):
		return http.StatusUnsupportedMediaType, NewErrorResponse(ErrorCodeUnsupportedMediaType, err.Error())
	default:
		return http.StatusInternalServerError, NewErrorResponse(ErrorCodeInternal, "an internal error occurred")
	}
}

// GetTraceID returns the active trace id, or "" when the request is not traced.
func GetTraceID(c *gin.Context) string {
	if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
		return sc.TraceID().String()
	}

	return ""
}

// HandleError writes the envelope for err and aborts the chain. If the
// response has already started, the envelope cannot be sent; the error is
// logged and the connection is cut short instead.
func HandleError(c *gin.Context, err error) {
	status, resp := MapDomainError(err)
	resp.WithTraceID(GetTraceID(c))

	logger := logging.FromContext(c.Request.Context())

	if c.Writer.Written() {
		logger.Error("response aborted after partial write",
			"error", err,
			"bytes", c.Writer.Size(),
		)
		_ = c.Error(err)
		c.Abort()

		return
	}

	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		logger.Error("internal error", "error", err, "trace_id", resp.TraceID)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, resp)
}

// AbortWithCode writes an envelope for an HTTP-layer failure that has no
// domain error behind it, such as a failed content negotiation.
func AbortWithCode(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(HTTPStatusFromCode(code),
		NewErrorResponse(code, message).WithTraceID(GetTraceID(c)))
}
