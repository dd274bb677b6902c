package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/gcandido/finance-sniper-go/internal/domain"
	"github.com/gcandido/finance-sniper-go/internal/infra/observability"
	"github.com/gcandido/finance-sniper-go/internal/port"
)

// fallbackRate is used when the exchange-rate API is unreachable, so an
// import analysis always completes.
var fallbackRate = decimal.NewFromFloat(5.50)

const quoteCacheKey = "usd-brl"

// QuoteService provides the USD→BRL rate to the engine. Quotes are
// cached, concurrent fetches are deduplicated, and upstream failures
// degrade to a fixed fallback rate flagged on the quote.
type QuoteService struct {
	fetcher port.QuoteFetcher
	cache   port.Cache[domain.DollarQuote]
	group   singleflight.Group
	timeout time.Duration
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewQuoteService creates the quote service with all dependencies injected.
func NewQuoteService(
	fetcher port.QuoteFetcher,
	cache port.Cache[domain.DollarQuote],
	timeout time.Duration,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *QuoteService {
	return &QuoteService{
		fetcher: fetcher,
		cache:   cache,
		timeout: timeout,
		metrics: metrics,
		logger:  logger,
	}
}

// GetCurrentRate returns the quote to price with. It never fails: an
// unreachable API yields the fallback rate with Fallback set.
func (s *QuoteService) GetCurrentRate(ctx context.Context) domain.DollarQuote {
	ctx, span := tracer.Start(ctx, "QuoteService.GetCurrentRate")
	defer span.End()

	if q, ok := s.cache.Get(quoteCacheKey); ok {
		s.metrics.IncrCacheHit("quote")
		return q
	}
	s.metrics.IncrCacheMiss("quote")

	// Concurrent misses share a single upstream fetch.
	v, err, _ := s.group.Do(quoteCacheKey, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		return s.fetcher.FetchQuote(fetchCtx)
	})
	if err != nil {
		s.logger.Warn("quote fetch failed, using fallback rate",
			zap.String("fallback_rate", fallbackRate.String()),
			zap.Error(err),
		)
		s.metrics.IncrExternalError("quote")
		s.metrics.IncrQuoteFallback()
		span.SetAttributes(attribute.Bool("quote.fallback", true))
		return domain.DollarQuote{Rate: fallbackRate, AsOf: time.Now(), Fallback: true}
	}

	q := *v.(*domain.DollarQuote)
	s.cache.Set(quoteCacheKey, q)
	span.SetAttributes(attribute.String("quote.rate", q.Rate.String()))
	return q
}
