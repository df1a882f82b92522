package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/singleflight"

	"github.com/jsamuelsen/quote-jsonl-service/internal/domain"
)

const quoteListKey = "quotes"

// QuoteListCache holds one QuoteList for the life of the process.
//
// The first successful load is kept forever; there is no expiry or refresh.
// Concurrent loads are coalesced so at most one fetch is in flight. A failed
// load stores nothing and the next caller tries again.
type QuoteListCache struct {
	mu    sync.RWMutex
	list  *domain.QuoteList
	group singleflight.Group

	hits   prometheus.Counter
	misses prometheus.Counter
}

// NewQuoteListCache creates an empty cache. Hit and miss counters are
// registered with reg; a nil reg leaves them unregistered.
func NewQuoteListCache(reg prometheus.Registerer) *QuoteListCache {
	factory := promauto.With(reg)

	return &QuoteListCache{
		hits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "quote",
			Name:      "cache_hits_total",
			Help:      "Quote list reads served from the cache.",
		}),
		misses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "quote",
			Name:      "cache_misses_total",
			Help:      "Quote list reads that had to load from upstream.",
		}),
	}
}

// Peek returns the cached list, or nil if nothing has been loaded.
func (c *QuoteListCache) Peek() *domain.QuoteList {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.list
}

// Get returns the cached list, calling load on a miss.
//
// load runs detached from the caller's cancellation because other callers
// may be waiting on the same result; it is expected to carry its own
// timeout. A caller whose ctx ends first stops waiting and gets ctx's error.
func (c *QuoteListCache) Get(ctx context.Context, load func(context.Context) (*domain.QuoteList, error)) (*domain.QuoteList, error) {
	if list := c.Peek(); list != nil {
		c.hits.Inc()
		return list, nil
	}

	c.misses.Inc()

	ch := c.group.DoChan(quoteListKey, func() (any, error) {
		if list := c.Peek(); list != nil {
			return list, nil
		}

		list, err := load(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.list = list
		c.mu.Unlock()

		return list, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for quote list: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}

		return res.Val.(*domain.QuoteList), nil //nolint:forcetypeassert // only *domain.QuoteList is stored
	}
}
