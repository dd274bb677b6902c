package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/gcandido/finance-sniper-go/internal/domain"
	"github.com/gcandido/finance-sniper-go/internal/infra/resilience"
)

var tracer = otel.Tracer("client")

// awesomeQuoteResponse mirrors the AwesomeAPI payload for
// GET /json/last/USD-BRL. Only the bid is used.
type awesomeQuoteResponse struct {
	USDBRL struct {
		Bid        string `json:"bid"`
		Ask        string `json:"ask"`
		CreateDate string `json:"create_date"`
	} `json:"USDBRL"`
}

// QuoteClient fetches the USD→BRL exchange rate from AwesomeAPI.
type QuoteClient struct {
	httpClient *http.Client
	baseURL    string
	cb         *gobreaker.CircuitBreaker
	cfg        resilience.Config
}

// NewQuoteClient creates a new QuoteClient.
func NewQuoteClient(httpClient *http.Client, baseURL string, cb *gobreaker.CircuitBreaker, cfg resilience.Config) *QuoteClient {
	return &QuoteClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		cb:         cb,
		cfg:        cfg,
	}
}

// FetchQuote fetches the current quote with retry, circuit breaker, and tracing.
func (c *QuoteClient) FetchQuote(ctx context.Context) (*domain.DollarQuote, error) {
	ctx, span := tracer.Start(ctx, "QuoteClient.FetchQuote")
	defer span.End()

	var payload awesomeQuoteResponse

	result, err := c.cb.Execute(func() (any, error) {
		innerErr := resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			url := fmt.Sprintf("%s/json/last/USD-BRL", c.baseURL)
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return err
			}

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("quote API returned status %d", resp.StatusCode)
			}

			return json.NewDecoder(resp.Body).Decode(&payload)
		})
		if innerErr != nil {
			return nil, innerErr
		}

		rate, err := decimal.NewFromString(payload.USDBRL.Bid)
		if err != nil {
			return nil, fmt.Errorf("quote API returned malformed bid %q", payload.USDBRL.Bid)
		}
		if !rate.IsPositive() {
			return nil, fmt.Errorf("quote API returned non-positive bid %s", rate)
		}

		return &domain.DollarQuote{Rate: rate, AsOf: time.Now()}, nil
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "quote", Err: err}
	}

	q := result.(*domain.DollarQuote)
	span.SetAttributes(attribute.String("quote.bid", q.Rate.String()))
	return q, nil
}
