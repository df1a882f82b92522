package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-jsonl-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-jsonl-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-jsonl-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-jsonl-service/internal/platform/config"
	"github.com/jsamuelsen/quote-jsonl-service/internal/platform/telemetry"
)

// probePrefix is the operational route prefix; these requests are not logged.
const probePrefix = "/-/"

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// AppConfig names the service in traces and metrics.
	AppConfig *config.AppConfig

	// HealthHandler serves /-/ routes. Nil skips them.
	HealthHandler *handlers.HealthHandler

	// QuoteHandler serves /quote routes. Nil skips them.
	QuoteHandler *handlers.QuoteHandler

	// Timeout is the deadline for quote routes. Zero disables it.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery: catch panics first
//  2. Request ID: generate or accept X-Request-ID
//  3. Correlation ID: generate or accept X-Correlation-ID
//  4. OpenTelemetry: tracing and server metrics
//  5. Logging: one line per request, probes skipped
//  6. Timeout: quote routes only
//
// Route groups:
//   - /-/ (operational): probes, build info and metrics, no timeout
//   - / (quotes): /quote, /quote/ex1, /quote/ex2, /quote/ex3
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)
	engine.Use(telemetry.Middleware(cfg.AppConfig.Name)...)
	engine.Use(middleware.Logging(probePrefix))

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	if cfg.QuoteHandler != nil {
		quotes := engine.Group("")
		if cfg.Timeout > 0 {
			quotes.Use(middleware.Timeout(cfg.Timeout))
		}

		cfg.QuoteHandler.RegisterQuoteRoutes(quotes)
	}

	engine.NoRoute(func(c *gin.Context) {
		dto.AbortWithCode(c, dto.ErrorCodeNotFound, "route not found")
	})
}

// NewRouterConfig creates a RouterConfig whose quote route timeout comes
// from serverCfg.RequestTimeout.
func NewRouterConfig(
	appCfg *config.AppConfig,
	serverCfg *config.ServerConfig,
	healthHandler *handlers.HealthHandler,
	quoteHandler *handlers.QuoteHandler,
) RouterConfig {
	return RouterConfig{
		AppConfig:     appCfg,
		HealthHandler: healthHandler,
		QuoteHandler:  quoteHandler,
		Timeout:       serverCfg.RequestTimeout,
	}
}
