package routing

import (
	"context"
	"log/slog"

	"shipquote/internal/core/domain/model/route"
	"shipquote/internal/core/ports"
)

// QuoteCache remembers quotes by normalised origin and destination.
type QuoteCache interface {
	// Get reports false when there is no usable entry.
	Get(ctx context.Context, origin, destination string) (route.Quote, bool, error)
	Put(ctx context.Context, origin, destination string, q route.Quote) error
}

// CachedProvider serves quotes from a cache and asks the wrapped provider on a miss.
// Cache failures are logged and never fail a quote.
type CachedProvider struct {
	next   ports.RouteProvider
	cache  QuoteCache
	logger *slog.Logger
}

func NewCachedProvider(next ports.RouteProvider, cache QuoteCache, logger *slog.Logger) *CachedProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedProvider{next: next, cache: cache, logger: logger}
}

func (p *CachedProvider) Quote(ctx context.Context, origin, destination string) (route.Quote, error) {
	from, to := normalize(origin), normalize(destination)

	q, ok, err := p.cache.Get(ctx, from, to)
	if err != nil {
		p.logger.WarnContext(ctx, "route cache read failed", "error", err)
	}
	if ok {
		return q, nil
	}

	q, err = p.next.Quote(ctx, origin, destination)
	if err != nil {
		return route.Quote{}, err
	}

	if err = p.cache.Put(ctx, from, to, q); err != nil {
		p.logger.WarnContext(ctx, "route cache write failed", "error", err)
	}
	return q, nil
}
