package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/gcandido/finance-sniper-go/internal/domain"
	"github.com/gcandido/finance-sniper-go/internal/infra/cache"
	"github.com/gcandido/finance-sniper-go/internal/infra/observability"
	"github.com/gcandido/finance-sniper-go/internal/service"
)

// --- Mocks ---

type mockQuoteFetcher struct {
	quote *domain.DollarQuote
	err   error
	calls int
}

func (m *mockQuoteFetcher) FetchQuote(_ context.Context) (*domain.DollarQuote, error) {
	m.calls++
	return m.quote, m.err
}

// --- Tests ---

func TestGetCurrentRate_FetchesAndCaches(t *testing.T) {
	fetcher := &mockQuoteFetcher{
		quote: &domain.DollarQuote{Rate: decimal.RequireFromString("5.1234"), AsOf: time.Now()},
	}
	svc := service.NewQuoteService(
		fetcher,
		cache.New[domain.DollarQuote](10*time.Minute),
		5*time.Second,
		observability.NewMetrics(),
		zap.NewNop(),
	)

	q := svc.GetCurrentRate(context.Background())
	if !q.Rate.Equal(decimal.RequireFromString("5.1234")) {
		t.Errorf("expected rate 5.1234, got %s", q.Rate)
	}
	if q.Fallback {
		t.Error("expected live quote, got fallback")
	}

	// Segunda chamada deve vir do cache, sem novo fetch.
	svc.GetCurrentRate(context.Background())
	if fetcher.calls != 1 {
		t.Errorf("expected 1 upstream fetch, got %d", fetcher.calls)
	}
}

func TestGetCurrentRate_FallbackOnError(t *testing.T) {
	fetcher := &mockQuoteFetcher{err: errors.New("connection refused")}
	svc := service.NewQuoteService(
		fetcher,
		cache.New[domain.DollarQuote](10*time.Minute),
		5*time.Second,
		observability.NewMetrics(),
		zap.NewNop(),
	)

	q := svc.GetCurrentRate(context.Background())
	if !q.Fallback {
		t.Error("expected fallback flag set")
	}
	if !q.Rate.Equal(decimal.RequireFromString("5.5")) {
		t.Errorf("expected fallback rate 5.50, got %s", q.Rate)
	}
}

func TestGetCurrentRate_FallbackIsNotCached(t *testing.T) {
	fetcher := &mockQuoteFetcher{err: errors.New("timeout")}
	svc := service.NewQuoteService(
		fetcher,
		cache.New[domain.DollarQuote](10*time.Minute),
		5*time.Second,
		observability.NewMetrics(),
		zap.NewNop(),
	)

	svc.GetCurrentRate(context.Background())

	// API voltou: a próxima chamada deve buscar de novo, não servir o fallback.
	fetcher.err = nil
	fetcher.quote = &domain.DollarQuote{Rate: decimal.RequireFromString("5.20"), AsOf: time.Now()}

	q := svc.GetCurrentRate(context.Background())
	if q.Fallback {
		t.Error("expected live quote after recovery, got fallback")
	}
	if !q.Rate.Equal(decimal.RequireFromString("5.20")) {
		t.Errorf("expected rate 5.20, got %s", q.Rate)
	}
}
