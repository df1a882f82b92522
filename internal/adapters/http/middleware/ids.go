// Package middleware provides gin middleware for the quote service.
package middleware

import (
	"context"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/quote-jsonl-service/internal/platform/logging"
)

const (
	HeaderRequestID     = "X-Request-ID"
	HeaderCorrelationID = "X-Correlation-ID"
)

type ctxKey int

const (
	ctxKeyRequestID ctxKey = iota
	ctxKeyCorrelationID
)

// validID bounds inbound ids so a caller cannot inject log lines or
// oversized values. Anything else is replaced with a fresh UUID.
var validID = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,128}$`)

// RequestID reads X-Request-ID or generates one, echoes it on the response
// and stores it in the request context and the request logger.
func RequestID() gin.HandlerFunc {
	return idMiddleware(HeaderRequestID, ctxKeyRequestID, logging.WithRequestID)
}

// CorrelationID is RequestID for X-Correlation-ID, which identifies a whole
// transaction across services rather than a single hop.
func CorrelationID() gin.HandlerFunc {
	return idMiddleware(HeaderCorrelationID, ctxKeyCorrelationID, logging.WithCorrelationID)
}

func idMiddleware(header string, key ctxKey, enrich func(context.Context, string) context.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(header)
		if !validID.MatchString(id) {
			id = uuid.NewString()
		}

		c.Header(header, id)

		ctx := context.WithValue(c.Request.Context(), key, id)
		c.Request = c.Request.WithContext(enrich(ctx, id))

		c.Next()
	}
}

// RequestIDFromContext returns the request id, or "" if none was set.
// The upstream client uses it to forward the id.
func RequestIDFromContext(ctx context.Context) string {
	return idFromContext(ctx, ctxKeyRequestID)
}

// CorrelationIDFromContext returns the correlation id, or "" if none was set.
func CorrelationIDFromContext(ctx context.Context) string {
	return idFromContext(ctx, ctxKeyCorrelationID)
}

// ContextWithRequestID stores a request id outside of a gin request,
// e.g. for background fetches.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, id)
}

// ContextWithCorrelationID stores a correlation id outside of a gin request.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyCorrelationID, id)
}

func idFromContext(ctx context.Context, key ctxKey) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(key).(string)

	return id
}
