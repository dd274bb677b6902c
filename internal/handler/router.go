package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	chathandler "github.com/gcandido/finance-sniper-go/internal/chat/handler"
	chatservice "github.com/gcandido/finance-sniper-go/internal/chat/service"
	"github.com/gcandido/finance-sniper-go/internal/infra/observability"
	"github.com/gcandido/finance-sniper-go/internal/service"
)

var tracer = otel.Tracer("handler")

// NewRouter creates the HTTP router with all routes and middleware.
// Routes follow the API contract expected by the Finance Sniper frontend.
func NewRouter(financeSvc *service.Finance, suggestionsSvc *service.Suggestions, chatSvc *chatservice.ChatService, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler())
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// =============================================
		// 1. 💪 Capacidade de Pagamento
		// POST /v1/capacity
		// =============================================
		r.Post("/capacity", capacityHandler(financeSvc, logger))

		// =============================================
		// 2. 📊 Análises
		// =============================================
		r.Route("/analysis", func(r chi.Router) {
			r.Post("/import", importAnalysisHandler(financeSvc, logger))
			r.Post("/payment", paymentAnalysisHandler(financeSvc, logger))
			r.Post("/smart-choice", smartChoiceHandler(financeSvc, logger))
			r.Post("/affordability", affordabilityHandler(financeSvc, logger))
			r.Post("/installments/plan", installmentPlanHandler(financeSvc, logger))
			r.Post("/installments/suggest", installmentSuggestHandler(financeSvc, logger))
		})

		// =============================================
		// 3. 📋 Projetos
		// POST /v1/projects/suggestions
		// =============================================
		r.Post("/projects/suggestions", projectSuggestionsHandler(suggestionsSvc, logger))

		// =============================================
		// 4. 💵 Cotação
		// GET /v1/quote/usd
		// =============================================
		r.Get("/quote/usd", quoteHandler(financeSvc, logger))

		// =============================================
		// 5. 💬 Chat
		// POST /v1/chat[/{userId}]
		// =============================================
		r.Post("/chat", chathandler.ChatHandler(chatSvc, logger))
		r.Post("/chat/{userId}", chathandler.ChatHandler(chatSvc, logger))

		// =============================================
		// 6. 📈 Métricas do motor
		// GET /v1/metrics/engine
		// =============================================
		r.Get("/metrics/engine", engineMetricsHandler(metrics, logger))
	})

	return r
}

// healthzHandler reports process liveness. O serviço não tem banco —
// se o processo responde, está saudável.
func healthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// readyzHandler reports readiness. A cotação degrada pro fallback
// quando a API externa cai, então o serviço está sempre pronto.
func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// engineMetricsHandler exposes an aggregated snapshot of the decision
// engine counters in JSON, friendlier than the raw /metrics scrape.
func engineMetricsHandler(metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "GET /v1/metrics/engine")
		defer span.End()

		writeJSON(w, http.StatusOK, metrics.GetEngineSnapshot())
	}
}
