package acl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jsamuelsen/quote-jsonl-service/internal/adapters/clients"
	"github.com/jsamuelsen/quote-jsonl-service/internal/domain"
	"github.com/jsamuelsen/quote-jsonl-service/internal/platform/logging"
)

const quotesPath = "/quotes"

// QuoteClientConfig contains configuration for the quote client.
type QuoteClientConfig struct {
	// Client is the HTTP client to use. Its base URL points at the quote API.
	Client *clients.Client

	// Logger is the structured logger.
	Logger *slog.Logger
}

// QuoteClient implements ports.QuoteClient and ports.HealthChecker against
// the quotable API.
type QuoteClient struct {
	client *clients.Client
	logger *slog.Logger
}

// NewQuoteClient creates a new quote client adapter.
// Panics if Client is nil. Defaults logger to slog.Default() if nil.
func NewQuoteClient(cfg QuoteClientConfig) *QuoteClient {
	if cfg.Client == nil {
		panic("QuoteClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteClient{
		client: cfg.Client,
		logger: logger,
	}
}

// quotableList is the paged envelope returned by GET /quotes.
// It never leaves this package.
type quotableList struct {
	Count         int             `json:"count"          validate:"gte=0"`
	TotalCount    int             `json:"totalCount"     validate:"gte=0"`
	Page          int             `json:"page"           validate:"gte=0"`
	TotalPages    int             `json:"totalPages"     validate:"gte=0"`
	LastItemIndex *int            `json:"lastItemIndex"`
	Results       []quotableQuote `json:"results"        validate:"required,dive"`
}

// quotableQuote is one upstream record. Every field must be present; an
// empty tags array is allowed but a missing one is not.
type quotableQuote struct {
	ID           string   `json:"_id"          validate:"required"`
	Author       string   `json:"author"       validate:"required"`
	Content      string   `json:"content"      validate:"required"`
	Tags         []string `json:"tags"         validate:"required"`
	AuthorSlug   string   `json:"authorSlug"   validate:"required"`
	DateAdded    string   `json:"dateAdded"    validate:"required,datetime=2006-01-02"`
	DateModified string   `json:"dateModified" validate:"required,datetime=2006-01-02"`
}

// ListQuotes fetches one page of limit quotes.
// Implements ports.QuoteClient.
func (c *QuoteClient) ListQuotes(ctx context.Context, limit int) (*domain.QuoteList, error) {
	const operation = "list quotes"

	logger := logging.FromContext(ctx)
	logger.DebugContext(ctx, "fetching quote list", slog.Int("limit", limit))

	query := url.Values{"limit": {strconv.Itoa(limit)}}

	resp, err := c.client.Get(ctx, quotesPath, query)
	if err != nil {
		return nil, MapHTTPError(nil, err, c.Name(), operation)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		mapped := MapHTTPError(resp, nil, c.Name(), operation)
		c.logger.WarnContext(ctx, "quote API error",
			slog.Int("status_code", resp.StatusCode),
			slog.Any("error", mapped),
		)

		return nil, mapped
	}

	external, err := DecodeResponse[quotableList](resp.Body)
	if err != nil {
		c.logger.WarnContext(ctx, "malformed quote API response", slog.Any("error", err))
		return nil, domain.NewUnavailableError(c.Name(), err.Error())
	}

	list, err := translateList(external)
	if err != nil {
		return nil, domain.NewUnavailableError(c.Name(), err.Error())
	}

	logger.Log(ctx, logging.LevelTrace, "translated external DTO to domain",
		slog.Int("count", list.Count),
		slog.Any("ids", list.IDs()),
	)

	return list, nil
}

func translateList(ext *quotableList) (*domain.QuoteList, error) {
	results, err := TranslateSlice(ext.Results, translateQuote)
	if err != nil {
		return nil, err
	}

	return &domain.QuoteList{
		Count:         ext.Count,
		TotalCount:    ext.TotalCount,
		Page:          ext.Page,
		TotalPages:    ext.TotalPages,
		LastItemIndex: ext.LastItemIndex,
		Results:       results,
	}, nil
}

func translateQuote(ext *quotableQuote) (domain.Quote, error) {
	added, err := domain.ParseDate(ext.DateAdded)
	if err != nil {
		return domain.Quote{}, err
	}

	modified, err := domain.ParseDate(ext.DateModified)
	if err != nil {
		return domain.Quote{}, err
	}

	return domain.Quote{
		ID:           ext.ID,
		Author:       ext.Author,
		Content:      ext.Content,
		Tags:         ext.Tags,
		AuthorSlug:   ext.AuthorSlug,
		DateAdded:    added,
		DateModified: modified,
	}, nil
}

// Name returns the upstream name used in errors and health checks.
// Implements ports.HealthChecker.
func (c *QuoteClient) Name() string {
	return c.client.ServiceName()
}

// Check verifies the quote API answers a one-item listing.
// Implements ports.HealthChecker.
func (c *QuoteClient) Check(ctx context.Context) error {
	resp, err := c.client.Get(ctx, quotesPath, url.Values{"limit": {"1"}})
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("quote API returned status %d", resp.StatusCode)
	}

	return nil
}
