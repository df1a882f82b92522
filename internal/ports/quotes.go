// Package ports defines interfaces for external dependencies.
// The application layer depends on these contracts, never on adapters.
package ports

import (
	"context"

	"github.com/jsamuelsen/quote-jsonl-service/internal/domain"
)

// QuoteClient fetches quotes from the upstream quote API.
type QuoteClient interface {
	// ListQuotes fetches the first page of at most limit quotes.
	// Every failure, including a malformed or partial body, is returned
	// as a domain.UnavailableError.
	ListQuotes(ctx context.Context, limit int) (*domain.QuoteList, error)
}
