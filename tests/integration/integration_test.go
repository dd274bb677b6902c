package integration_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	chatdomain "github.com/gcandido/finance-sniper-go/internal/chat/domain"
	chatinfra "github.com/gcandido/finance-sniper-go/internal/chat/infra"
	chatservice "github.com/gcandido/finance-sniper-go/internal/chat/service"
	"github.com/gcandido/finance-sniper-go/internal/domain"
	"github.com/gcandido/finance-sniper-go/internal/handler"
	"github.com/gcandido/finance-sniper-go/internal/infra/cache"
	"github.com/gcandido/finance-sniper-go/internal/infra/client"
	"github.com/gcandido/finance-sniper-go/internal/infra/observability"
	"github.com/gcandido/finance-sniper-go/internal/infra/resilience"
	"github.com/gcandido/finance-sniper-go/internal/service"
)

// buildRouter wires the full stack against the given external endpoints.
func buildRouter(quoteURL, agentURL string) http.Handler {
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	cb := resilience.NewCircuitBreaker("integration")
	cfg := resilience.Config{MaxRetries: 1, InitialBackoff: 10 * time.Millisecond, MaxConcurrency: 10}
	httpClient := &http.Client{Timeout: 5 * time.Second}

	quoteSvc := service.NewQuoteService(
		client.NewQuoteClient(httpClient, quoteURL, cb, cfg),
		cache.New[domain.DollarQuote](10*time.Minute),
		2*time.Second,
		metrics,
		logger,
	)
	financeSvc := service.NewFinance(quoteSvc, 24, metrics, logger)
	suggestionsSvc := service.NewSuggestions(metrics, logger)

	agentClient := chatinfra.NewChatAgentClient(httpClient, agentURL, cb, cfg)
	chatSvc := chatservice.NewChatService(agentClient, []chatservice.ChatStrategy{
		chatservice.NewQuoteStrategy(quoteSvc, logger),
		chatservice.NewImportStrategy(financeSvc, logger),
	}, logger)

	return handler.NewRouter(financeSvc, suggestionsSvc, chatSvc, metrics, logger)
}

func newQuoteServer(bid string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]map[string]string{
			"USDBRL": {"bid": bid, "ask": bid, "create_date": time.Now().Format("2006-01-02 15:04:05")},
		})
	}))
}

// TestIntegration_ImportAnalysis exercises the full flow: quote API →
// cache → engine → HTTP response.
func TestIntegration_ImportAnalysis(t *testing.T) {
	quoteServer := newQuoteServer("5.00")
	defer quoteServer.Close()

	router := buildRouter(quoteServer.URL, "http://unused")

	body := []byte(`{"price_usd": 40, "shipping_usd": 0, "is_remessa_conforme": true}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/analysis/import", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d. Body: %s", rec.Code, rec.Body.String())
	}

	var b domain.ImportCostBreakdown
	if err := json.NewDecoder(rec.Body).Decode(&b); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	// 40 USD * 5.00 = 200; +20% = 240; +17% ICMS = 280.80
	if b.TotalBRL.StringFixed(2) != "280.80" {
		t.Errorf("expected total 280.80, got %s", b.TotalBRL)
	}
	if b.DollarRate.StringFixed(2) != "5.00" {
		t.Errorf("expected live rate 5.00 from mock API, got %s", b.DollarRate)
	}
}

// TestIntegration_QuoteFallback checks the analysis still completes when
// the quote API is down, flagged with the fallback rate.
func TestIntegration_QuoteFallback(t *testing.T) {
	quoteServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer quoteServer.Close()

	router := buildRouter(quoteServer.URL, "http://unused")

	req := httptest.NewRequest(http.MethodGet, "/v1/quote/usd", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var q domain.DollarQuote
	if err := json.NewDecoder(rec.Body).Decode(&q); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !q.Fallback {
		t.Error("expected fallback flag when quote API is down")
	}
	if q.Rate.StringFixed(2) != "5.50" {
		t.Errorf("expected fallback rate 5.50, got %s", q.Rate)
	}
}

// TestIntegration_QuoteCached verifies the quote API is hit once across
// repeated requests within the TTL.
func TestIntegration_QuoteCached(t *testing.T) {
	hits := 0
	quoteServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]map[string]string{
			"USDBRL": {"bid": "5.10"},
		})
	}))
	defer quoteServer.Close()

	router := buildRouter(quoteServer.URL, "http://unused")

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/v1/quote/usd", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	}

	if hits != 1 {
		t.Errorf("expected 1 upstream hit for 3 requests, got %d", hits)
	}
}

// TestIntegration_ChatAgentFallback routes a general chat question to the
// mocked agent and checks the answer flows back.
func TestIntegration_ChatAgentFallback(t *testing.T) {
	quoteServer := newQuoteServer("5.00")
	defer quoteServer.Close()

	agentServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatdomain.ChatAgentRequest
		json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatdomain.ChatAgentResponse{
			UserID: req.UserID,
			Answer: "Posso ajudar com análises de compra.",
		})
	}))
	defer agentServer.Close()

	router := buildRouter(quoteServer.URL, agentServer.URL)

	body := []byte(`{"query": "bom dia, o que você faz?"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/chat/user-42", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d. Body: %s", rec.Code, rec.Body.String())
	}

	var resp chatdomain.ChatResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Answer != "Posso ajudar com análises de compra." {
		t.Errorf("unexpected answer: %s", resp.Answer)
	}
}

// TestIntegration_ChatImportAnsweredLocally checks the import intent never
// reaches the agent: the engine answers with the current quote.
func TestIntegration_ChatImportAnsweredLocally(t *testing.T) {
	quoteServer := newQuoteServer("5.00")
	defer quoteServer.Close()

	agentHits := 0
	agentServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agentHits++
		json.NewEncoder(w).Encode(chatdomain.ChatAgentResponse{Answer: "should not be called"})
	}))
	defer agentServer.Close()

	router := buildRouter(quoteServer.URL, agentServer.URL)

	body := []byte(`{"query": "quanto custa importar 100 dólares?"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d. Body: %s", rec.Code, rec.Body.String())
	}
	if agentHits != 0 {
		t.Errorf("import questions must be answered locally, agent hit %d times", agentHits)
	}

	var resp chatdomain.ChatResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Intent != "import" {
		t.Errorf("expected intent import, got %s", resp.Intent)
	}
}
