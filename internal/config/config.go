package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
// Values are loaded from environment variables with sensible defaults.
type Config struct {
	// Server
	Port     int
	LogLevel string

	// External services
	QuoteAPIURL  string // AwesomeAPI base URL (GET /json/last/USD-BRL)
	ChatAgentURL string // URL do Agent Python para o chat (POST /v1/chat)

	// HTTP client
	HTTPTimeout time.Duration

	// Resilience
	MaxRetries     int
	InitialBackoff time.Duration
	MaxConcurrency int

	// Quote cache
	QuoteCacheTTL time.Duration
	QuoteTimeout  time.Duration

	// Engine
	MaxInstallments int

	// Observability
	OTLPEndpoint string
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		QuoteAPIURL:  getEnv("QUOTE_API_URL", "https://economia.awesomeapi.com.br"),
		ChatAgentURL: getEnv("CHAT_AGENT_URL", "http://localhost:8090"),

		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 10*time.Second),

		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		InitialBackoff: getEnvDuration("INITIAL_BACKOFF", 100*time.Millisecond),
		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 50),

		QuoteCacheTTL: getEnvDuration("QUOTE_CACHE_TTL", 10*time.Minute),
		QuoteTimeout:  getEnvDuration("QUOTE_TIMEOUT", 5*time.Second),

		MaxInstallments: getEnvInt("MAX_INSTALLMENTS", 24),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
