package domain

// EngineMetrics is a snapshot of engine activity for the
// GET /v1/metrics/engine endpoint.
type EngineMetrics struct {
	TotalRequests             int64            `json:"total_requests"`
	ErrorRate                 float64          `json:"error_rate"`
	CacheHitRate              float64          `json:"cache_hit_rate"`
	QuoteFallbackRate         float64          `json:"quote_fallback_rate"`
	AnalysesByKind            map[string]int64 `json:"analyses_by_kind"`
	RecommendationsByStrategy map[string]int64 `json:"recommendations_by_strategy"`
	Period                    string           `json:"period"`
}
