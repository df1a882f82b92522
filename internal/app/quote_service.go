// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/quote-jsonl-service/internal/domain"
	"github.com/jsamuelsen/quote-jsonl-service/internal/platform/config"
	"github.com/jsamuelsen/quote-jsonl-service/internal/ports"
)

// QuoteService serves the quote list. It depends on the ports.QuoteClient
// interface, not on a concrete adapter.
type QuoteService struct {
	quoteClient ports.QuoteClient
	logger      *slog.Logger
	limit       int
	cache       *QuoteListCache
}

// QuoteServiceConfig contains configuration for the quote service.
type QuoteServiceConfig struct {
	QuoteClient ports.QuoteClient
	Logger      *slog.Logger

	// ListLimit is the page size requested upstream. Defaults to
	// config.DefaultQuoteListLimit.
	ListLimit int

	// Registerer receives the cache metrics. Nil leaves them unregistered.
	Registerer prometheus.Registerer
}

// NewQuoteService creates a new quote service.
// Panics if QuoteClient is nil. Defaults logger to slog.Default() if nil.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.QuoteClient == nil {
		panic("QuoteService: QuoteClient is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	limit := cfg.ListLimit
	if limit <= 0 {
		limit = config.DefaultQuoteListLimit
	}

	return &QuoteService{
		quoteClient: cfg.QuoteClient,
		logger:      logger,
		limit:       limit,
		cache:       NewQuoteListCache(cfg.Registerer),
	}
}

// GetList returns the quote list, loading it from upstream on first use.
// Upstream errors are returned unchanged and leave the cache empty.
func (s *QuoteService) GetList(ctx context.Context) (*domain.QuoteList, error) {
	return s.cache.Get(ctx, s.load)
}

func (s *QuoteService) load(ctx context.Context) (*domain.QuoteList, error) {
	s.logger.InfoContext(ctx, "loading quote list", slog.Int("limit", s.limit))

	list, err := s.quoteClient.ListQuotes(ctx, s.limit)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load quote list", slog.Any("error", err))
		return nil, err
	}

	s.logger.InfoContext(ctx, "loaded quote list",
		slog.Int("count", list.Count),
		slog.Int("total_count", list.TotalCount),
	)

	return list, nil
}
