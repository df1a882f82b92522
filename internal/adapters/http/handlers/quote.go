package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-jsonl-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-jsonl-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-jsonl-service/internal/app"
	"github.com/jsamuelsen/quote-jsonl-service/internal/domain"
	"github.com/jsamuelsen/quote-jsonl-service/internal/platform/jsonl"
	"github.com/jsamuelsen/quote-jsonl-service/internal/platform/logging"
	"github.com/jsamuelsen/quote-jsonl-service/internal/platform/telemetry"
)

// Quote routes.
const (
	RouteQuoteList = "/quote"
	RouteQuoteEx1  = "/quote/ex1"
	RouteQuoteEx2  = "/quote/ex2"
	RouteQuoteEx3  = "/quote/ex3"
)

// QuoteHandler serves the cached quote list as one JSON envelope and as
// JSON Lines through three different gin write paths. All routes read the
// same list, so they return the same records in the same order.
type QuoteHandler struct {
	service *app.QuoteService
	records *telemetry.RecordCounter
}

// NewQuoteHandler creates a new quote handler. records may be nil.
func NewQuoteHandler(service *app.QuoteService, records *telemetry.RecordCounter) *QuoteHandler {
	return &QuoteHandler{
		service: service,
		records: records,
	}
}

// GetQuoteList handles GET /quote.
// Returns the full upstream envelope, paging metadata included.
//
// @Summary Get the quote list
// @Tags quotes
// @Produce json
// @Success 200 {object} domain.QuoteList
// @Failure 503 {object} dto.ErrorResponse
// @Router /quote [get]
func (h *QuoteHandler) GetQuoteList(c *gin.Context) {
	list, err := h.service.GetList(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// GetQuotesEx1 handles GET /quote/ex1.
// Writes the records straight to the response writer, one line each.
//
// @Summary Quotes as JSON Lines, written directly
// @Tags quotes
// @Produce application/x-jsonlines
// @Success 200 {array} domain.Quote
// @Failure 503 {object} dto.ErrorResponse
// @Router /quote/ex1 [get]
func (h *QuoteHandler) GetQuotesEx1(c *gin.Context) {
	list, err := h.service.GetList(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Header("Content-Type", jsonl.MediaType)
	c.Status(http.StatusOK)

	enc := jsonl.NewEncoder(c.Writer)
	defer func() { h.records.Add(c.Request.Context(), RouteQuoteEx1, enc.Count()) }()

	for i := range list.Results {
		if err := enc.Encode(list.Results[i]); err != nil {
			failStream(c, err)
			return
		}
	}

	c.Writer.WriteHeaderNow()
}

// GetQuotesEx2 handles GET /quote/ex2.
// Hands gin a step function through c.Stream; each step writes and
// flushes one record. The first flush commits the 200 status, so any
// encoding failure here ends in a dropped connection.
//
// @Summary Quotes as JSON Lines, streamed
// @Tags quotes
// @Produce application/x-jsonlines
// @Success 200 {array} domain.Quote
// @Failure 503 {object} dto.ErrorResponse
// @Router /quote/ex2 [get]
func (h *QuoteHandler) GetQuotesEx2(c *gin.Context) {
	list, err := h.service.GetList(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Header("Content-Type", jsonl.MediaType)
	c.Status(http.StatusOK)

	enc := jsonl.NewEncoder(c.Writer)
	defer func() { h.records.Add(c.Request.Context(), RouteQuoteEx2, enc.Count()) }()

	var streamErr error

	clientGone := c.Stream(func(io.Writer) bool {
		if enc.Count() >= len(list.Results) {
			return false
		}

		if streamErr = enc.Encode(list.Results[enc.Count()]); streamErr != nil {
			return false
		}

		return enc.Count() < len(list.Results)
	})

	switch {
	case streamErr != nil:
		failStream(c, streamErr)
	case clientGone:
		logging.FromContext(c.Request.Context()).Info("client went away mid-stream",
			slog.Int("written", enc.Count()),
			slog.Int("total", len(list.Results)),
		)
	default:
		c.Writer.WriteHeaderNow()
	}
}

// GetQuotesEx3 handles GET /quote/ex3.
// The route declares its media type with middleware.Produces, which answers
// 406 before the handler runs; the handler only hands the records to the
// JSON Lines renderer.
//
// @Summary Quotes as JSON Lines, negotiated
// @Tags quotes
// @Produce application/x-jsonlines
// @Success 200 {array} domain.Quote
// @Failure 406 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /quote/ex3 [get]
func (h *QuoteHandler) GetQuotesEx3(c *gin.Context) {
	list, err := h.service.GetList(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	renderJSONL(c, h.records, RouteQuoteEx3, list.Results)
}

// renderJSONL writes values through the JSON Lines renderer and counts
// the records that went out.
func renderJSONL[T any](c *gin.Context, records *telemetry.RecordCounter, route string, values []T) {
	c.Status(http.StatusOK)

	if err := (jsonl.Render[T]{Values: values}).Render(c.Writer); err != nil {
		records.Add(c.Request.Context(), route, writtenBefore(err))
		failStream(c, err)

		return
	}

	records.Add(c.Request.Context(), route, len(values))
}

// writtenBefore returns how many records made it out before err.
func writtenBefore(err error) int {
	var se *domain.SerializationError
	if errors.As(err, &se) {
		return se.Index
	}

	return 0
}

// failStream reports an encoding or write failure. Before the first byte it
// sends the usual error envelope. After that the status line is gone, so
// the connection is dropped to tell the client the body is incomplete.
func failStream(c *gin.Context, err error) {
	if !c.Writer.Written() {
		c.Writer.Header().Del("Content-Type")
		dto.HandleError(c, err)

		return
	}

	dto.HandleError(c, err)
	panic(http.ErrAbortHandler)
}

// RegisterQuoteRoutes registers the quote routes on the given router group.
func (h *QuoteHandler) RegisterQuoteRoutes(rg gin.IRoutes) {
	rg.GET(RouteQuoteList, h.GetQuoteList)
	rg.GET(RouteQuoteEx1, h.GetQuotesEx1)
	rg.GET(RouteQuoteEx2, h.GetQuotesEx2)
	rg.GET(RouteQuoteEx3, middleware.Produces(jsonl.MediaType), h.GetQuotesEx3)
}
