package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-jsonl-service/internal/adapters/http/dto"
)

// Produces declares the media types a route can write, in order of
// preference. It negotiates against the Accept header before the handler
// runs and rejects the request with 406 when none is acceptable. A missing
// Accept header selects the first offer.
func Produces(offers ...string) gin.HandlerFunc {
	if len(offers) == 0 {
		panic("middleware.Produces: at least one media type is required")
	}

	joined := strings.Join(offers, ", ")

	return func(c *gin.Context) {
		if c.NegotiateFormat(offers...) == "" {
			dto.AbortWithCode(c, dto.ErrorCodeNotAcceptable, "acceptable media types: "+joined)
			return
		}

		c.Next()
	}
}
