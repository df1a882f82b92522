package benchmark

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-jsonl-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-jsonl-service/internal/app"
	"github.com/jsamuelsen/quote-jsonl-service/internal/domain"
	"github.com/jsamuelsen/quote-jsonl-service/internal/platform/jsonl"
	"github.com/jsamuelsen/quote-jsonl-service/internal/ports"
)

func init() {
	// Release mode keeps gin's debug output out of the measurements.
	gin.SetMode(gin.ReleaseMode)
}

// staticQuotes is a ports.QuoteClient that always returns the same page.
type staticQuotes struct {
	list *domain.QuoteList
}

func (s staticQuotes) ListQuotes(context.Context, int) (*domain.QuoteList, error) {
	return s.list, nil
}

func benchList(n int) *domain.QuoteList {
	list := &domain.QuoteList{Count: n, TotalCount: n, Page: 1, TotalPages: 1}

	for i := range n {
		list.Results = append(list.Results, domain.Quote{
			ID:           "5eb17aadb69dc744b4e70e05",
			Author:       "Ralph Waldo Emerson",
			Content:      "What lies behind us and what lies before us are tiny matters compared to what lies within us.",
			Tags:         []string{"famous-quotes", "wisdom"},
			AuthorSlug:   "ralph-waldo-emerson",
			DateAdded:    domain.NewDate(2020, time.January, 1),
			DateModified: domain.NewDate(2023, time.April, 1+i%28),
		})
	}

	return list
}

// setupQuoteEngine serves a warm cache so only the write path is measured.
func setupQuoteEngine(b *testing.B, n int) *gin.Engine {
	b.Helper()

	service := app.NewQuoteService(app.QuoteServiceConfig{
		QuoteClient: staticQuotes{list: benchList(n)},
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	if _, err := service.GetList(context.Background()); err != nil {
		b.Fatal(err)
	}

	engine := gin.New()
	handlers.NewQuoteHandler(service, nil).RegisterQuoteRoutes(engine)

	return engine
}

// BenchmarkQuoteRoutes compares the envelope with the two recorder-friendly
// JSON Lines write paths. ex2 needs a CloseNotifier and is covered by
// BenchmarkQuoteEx2.
func BenchmarkQuoteRoutes(b *testing.B) {
	for _, route := range []string{handlers.RouteQuoteList, handlers.RouteQuoteEx1, handlers.RouteQuoteEx3} {
		b.Run(route, func(b *testing.B) {
			engine := setupQuoteEngine(b, 10)
			req := httptest.NewRequest(http.MethodGet, route, http.NoBody)

			b.ReportAllocs()

			for b.Loop() {
				engine.ServeHTTP(httptest.NewRecorder(), req)
			}
		})
	}
}

// BenchmarkQuoteEx2 measures the c.Stream path over a loopback connection.
func BenchmarkQuoteEx2(b *testing.B) {
	server := httptest.NewServer(setupQuoteEngine(b, 10))
	defer server.Close()

	b.ReportAllocs()

	for b.Loop() {
		resp, err := http.Get(server.URL + handlers.RouteQuoteEx2) //nolint:noctx // benchmark
		if err != nil {
			b.Fatal(err)
		}

		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}
}

// BenchmarkWriteValues measures the encoder alone for growing batch sizes.
func BenchmarkWriteValues(b *testing.B) {
	for _, n := range []int{1, 10, 150} {
		b.Run(slog.IntValue(n).String(), func(b *testing.B) {
			quotes := benchList(n).Results

			b.ReportAllocs()

			for b.Loop() {
				if err := jsonl.WriteValues(io.Discard, quotes); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkReadinessHandler measures /-/ready with one fast checker.
func BenchmarkReadinessHandler(b *testing.B) {
	registry := ports.NewHealthRegistry()
	if err := registry.Register(okChecker{}); err != nil {
		b.Fatal(err)
	}

	handler := handlers.NewHealthHandler(registry, handlers.NewBuildInfo("1.0.0", "abc123", ""), nil)
	req := httptest.NewRequest(http.MethodGet, "/-/ready", http.NoBody)

	b.ReportAllocs()

	for b.Loop() {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = req
		handler.Readiness(c)
	}
}

type okChecker struct{}

func (okChecker) Name() string                { return "quote-service" }
func (okChecker) Check(context.Context) error { return nil }
