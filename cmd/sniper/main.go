package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gcandido/finance-sniper-go/internal/chat/infra"
	chatservice "github.com/gcandido/finance-sniper-go/internal/chat/service"
	"github.com/gcandido/finance-sniper-go/internal/config"
	"github.com/gcandido/finance-sniper-go/internal/domain"
	"github.com/gcandido/finance-sniper-go/internal/handler"
	"github.com/gcandido/finance-sniper-go/internal/infra/cache"
	"github.com/gcandido/finance-sniper-go/internal/infra/client"
	"github.com/gcandido/finance-sniper-go/internal/infra/observability"
	"github.com/gcandido/finance-sniper-go/internal/infra/resilience"
	"github.com/gcandido/finance-sniper-go/internal/service"

	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("quote_api_url", cfg.QuoteAPIURL),
		zap.String("chat_agent_url", cfg.ChatAgentURL),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("quote_cache_ttl", cfg.QuoteCacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.Int("max_installments", cfg.MaxInstallments),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "finance-sniper")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Cache ---
	quoteCache := cache.New[domain.DollarQuote](cfg.QuoteCacheTTL)

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	cb := resilience.NewCircuitBreaker("external-apis")

	// --- Clients ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	quoteClient := client.NewQuoteClient(httpClient, cfg.QuoteAPIURL, cb, resilienceCfg)
	agentClient := infra.NewChatAgentClient(httpClient, cfg.ChatAgentURL, cb, resilienceCfg)

	// --- Services ---
	quoteSvc := service.NewQuoteService(quoteClient, quoteCache, cfg.QuoteTimeout, metrics, logger)
	financeSvc := service.NewFinance(quoteSvc, cfg.MaxInstallments, metrics, logger)
	suggestionsSvc := service.NewSuggestions(metrics, logger)

	chatSvc := chatservice.NewChatService(agentClient, []chatservice.ChatStrategy{
		chatservice.NewQuoteStrategy(quoteSvc, logger),
		chatservice.NewImportStrategy(financeSvc, logger),
	}, logger)

	// --- Router ---
	router := handler.NewRouter(financeSvc, suggestionsSvc, chatSvc, metrics, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
