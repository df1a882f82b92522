package acl

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jsamuelsen/quote-jsonl-service/internal/domain"
)

// maxErrorBody caps how much of an upstream error body is read.
const maxErrorBody = 4 << 10

// ErrorResponse is the error body returned by upstream services. Both the
// nested form {"error":{"code","message"}} and the flat form
// {"statusCode","message"} are understood.
type ErrorResponse struct {
	Error      ErrorDetail `json:"error"`
	StatusCode int         `json:"statusCode,omitempty"`
	Code       string      `json:"code,omitempty"`
	Message    string      `json:"message,omitempty"`
}

// ErrorDetail is the nested error object.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// GetCode returns the error code from either format.
func (e *ErrorResponse) GetCode() string {
	if e.Error.Code != "" {
		return e.Error.Code
	}

	return e.Code
}

// GetMessage returns the error message from either format.
func (e *ErrorResponse) GetMessage() string {
	if e.Error.Message != "" {
		return e.Error.Message
	}

	return e.Message
}

// ParseErrorResponse parses an upstream error body.
// Returns nil if the body is empty, not JSON, or carries no code or message.
func ParseErrorResponse(body io.Reader) *ErrorResponse {
	if body == nil {
		return nil
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(io.LimitReader(body, maxErrorBody)).Decode(&errResp); err != nil {
		return nil
	}

	if errResp.GetCode() == "" && errResp.GetMessage() == "" {
		return nil
	}

	return &errResp
}

// MapHTTPError maps an upstream failure to a domain error.
//
// clientErr is a transport error from clients.Client and takes precedence
// over resp. A 2xx response maps to nil. Every other status, including 4xx,
// means the upstream cannot serve this service and maps to
// domain.UnavailableError; the upstream message, when present, is kept as
// the reason.
func MapHTTPError(resp *http.Response, clientErr error, serviceName, operation string) error {
	if clientErr != nil {
		return domain.NewUnavailableError(serviceName, fmt.Sprintf("%s failed: %v", operation, clientErr))
	}

	if resp == nil {
		return domain.NewUnavailableError(serviceName, "no response received")
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	reason := fmt.Sprintf("%s returned status %d", operation, resp.StatusCode)
	if resp.StatusCode == http.StatusTooManyRequests {
		reason = "rate limit exceeded"
	}

	if errResp := ParseErrorResponse(resp.Body); errResp != nil && errResp.GetMessage() != "" {
		reason = fmt.Sprintf("%s: %s", reason, errResp.GetMessage())
	}

	return domain.NewUnavailableError(serviceName, reason)
}
