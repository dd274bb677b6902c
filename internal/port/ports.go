// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"

	"github.com/gcandido/finance-sniper-go/internal/domain"
)

// QuoteFetcher retrieves the current USD→BRL quote from an external
// exchange-rate API.
type QuoteFetcher interface {
	FetchQuote(ctx context.Context) (*domain.DollarQuote, error)
}

// RateProvider hands out the quote the engine should price with. It never
// fails: implementations fall back to a fixed rate when the upstream API
// is unavailable and flag the quote accordingly.
type RateProvider interface {
	GetCurrentRate(ctx context.Context) domain.DollarQuote
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}
