package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"

	"github.com/gcandido/finance-sniper-go/internal/domain"
)

// Metrics holds all Prometheus metrics for the engine.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	externalErrors  *prometheus.CounterVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	analysesTotal   *prometheus.CounterVec
	strategiesTotal *prometheus.CounterVec
	quoteFallbacks  prometheus.Counter
	requestsTotal   *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sniper_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		externalErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sniper_external_errors_total",
				Help: "Total errors from external services.",
			},
			[]string{"service"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sniper_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sniper_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		analysesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sniper_analyses_total",
				Help: "Total analyses run, by kind.",
			},
			[]string{"kind"},
		),
		strategiesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sniper_recommendations_total",
				Help: "Total recommendations issued, by strategy.",
			},
			[]string{"strategy"},
		),
		quoteFallbacks: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "sniper_quote_fallbacks_total",
				Help: "Total times the fixed fallback dollar rate was used.",
			},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sniper_requests_total",
				Help: "Total requests processed.",
			},
			[]string{"status"},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrExternalError increments the external error counter.
func (m *Metrics) IncrExternalError(service string) {
	m.externalErrors.WithLabelValues(service).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// IncrAnalysis counts one analysis run of the given kind
// (capacity, import, payment, smart_choice, affordability...).
func (m *Metrics) IncrAnalysis(kind string) {
	m.analysesTotal.WithLabelValues(kind).Inc()
}

// IncrStrategy counts one issued recommendation by strategy label.
func (m *Metrics) IncrStrategy(strategy string) {
	m.strategiesTotal.WithLabelValues(strategy).Inc()
}

// IncrQuoteFallback counts one use of the fixed fallback dollar rate.
func (m *Metrics) IncrQuoteFallback() {
	m.quoteFallbacks.Inc()
}

// IncrRequest increments the request counter with a status label.
func (m *Metrics) IncrRequest(status string) {
	m.requestsTotal.WithLabelValues(status).Inc()
}

// analysisKinds lists the labels summarised by GetEngineSnapshot.
var analysisKinds = []string{
	"capacity", "import", "import_compare", "payment",
	"smart_choice", "affordability", "plan", "suggest",
}

var strategyLabels = []string{
	string(domain.StrategyCash),
	string(domain.StrategyInstallment),
	string(domain.StrategyInstallmentCaution),
	string(domain.StrategyNotRecommended),
}

// GetEngineSnapshot returns a snapshot of engine-related metrics suitable
// for the GET /v1/metrics/engine endpoint.
func (m *Metrics) GetEngineSnapshot() *domain.EngineMetrics {
	// Gather current values from Prometheus counters.
	// Note: Prometheus counters expose cumulative values.
	totalRequests := getCounterValue(m.requestsTotal, "success") +
		getCounterValue(m.requestsTotal, "error")
	errorCount := getCounterValue(m.requestsTotal, "error")
	cacheHits := getCounterValue(m.cacheHits, "quote")
	cacheMisses := getCounterValue(m.cacheMisses, "quote")
	fallbacks := getPlainCounterValue(m.quoteFallbacks)

	errorRate := float64(0)
	fallbackRate := float64(0)
	cacheHitRate := float64(0)

	if totalRequests > 0 {
		errorRate = errorCount / totalRequests
	}
	if cacheHits+cacheMisses > 0 {
		cacheHitRate = cacheHits / (cacheHits + cacheMisses)
	}
	if quoteLookups := cacheMisses + fallbacks; quoteLookups > 0 {
		fallbackRate = fallbacks / quoteLookups
	}

	byKind := make(map[string]int64, len(analysisKinds))
	for _, kind := range analysisKinds {
		if v := getCounterValue(m.analysesTotal, kind); v > 0 {
			byKind[kind] = int64(v)
		}
	}

	byStrategy := make(map[string]int64, len(strategyLabels))
	for _, s := range strategyLabels {
		if v := getCounterValue(m.strategiesTotal, s); v > 0 {
			byStrategy[s] = int64(v)
		}
	}

	return &domain.EngineMetrics{
		TotalRequests:             int64(totalRequests),
		ErrorRate:                 errorRate,
		CacheHitRate:              cacheHitRate,
		QuoteFallbackRate:         fallbackRate,
		AnalysesByKind:            byKind,
		RecommendationsByStrategy: byStrategy,
		Period:                    "all_time",
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}

func getPlainCounterValue(c prometheus.Counter) float64 {
	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
