package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-jsonl-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-jsonl-service/internal/platform/logging"
)

// Recovery turns a panic into a 500 envelope. If the handler had already
// started writing, the partial response stands and the chain is aborted.
// It must be the first middleware.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			// Let net/http drop the connection without logging a stack.
			if r == http.ErrAbortHandler { //nolint:errorlint // sentinel comparison
				panic(r)
			}

			ctx := c.Request.Context()
			logging.FromContext(ctx).ErrorContext(ctx, "panic recovered",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
				slog.String("method", c.Request.Method),
				slog.String("path", c.Request.URL.Path),
			)

			dto.HandleError(c, fmt.Errorf("panic: %v", r))
		}()

		c.Next()
	}
}
