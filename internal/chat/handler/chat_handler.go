// Package handler — chat_handler.go implementa o handler das rotas
// POST /v1/chat/{userId} e POST /v1/chat — a entrada do chat.
//
// Request:  {"query": "quanto custa importar 100 dólares?"}
// Response: {"answer": "...", "intent": "import"}
//
// O handler é fino — só faz validação básica e delega pro ChatService.
// Toda a lógica (intent detection, strategy routing, agent call) fica no
// service layer.
//
// NOTA: usamos POST em vez de GET porque proxies reversos (Railway,
// CloudFlare) removem o body de requisições GET, causando erro em produção.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/gcandido/finance-sniper-go/internal/chat/domain"
	"github.com/gcandido/finance-sniper-go/internal/chat/service"
	maindomain "github.com/gcandido/finance-sniper-go/internal/domain"
)

// tracer é o tracer OpenTelemetry para o módulo chat/handler.
var tracer = otel.Tracer("chat/handler")

// ChatHandler retorna o http.HandlerFunc para a rota POST /v1/chat/{userId}.
//
// Rotas:
//
//	POST /v1/chat/ab84533a-...  → usuário identificado
//	POST /v1/chat               → usuário anônimo
func ChatHandler(chatSvc *service.ChatService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/chat")
		defer span.End()

		// userId é opcional — sem ele, a conversa ganha um id anônimo
		// pra correlacionar logs e chamadas ao agent.
		userID := chi.URLParam(r, "userId")
		if userID == "" {
			userID = "anon-" + uuid.NewString()
		}
		span.SetAttributes(attribute.String("user.id", userID))

		var req domain.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: expected {\"query\": \"your message\"}")
			return
		}

		if req.Query == "" {
			writeError(w, http.StatusBadRequest, "query is required")
			return
		}

		resp, err := chatSvc.ProcessMessage(ctx, userID, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// ============================================================
// Helpers — funções utilitárias do chat handler
// ============================================================

// writeJSON serializa data como JSON e escreve na response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError escreve uma resposta de erro padronizada.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// handleServiceError mapeia erros de domínio para HTTP status codes.
func handleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	switch e := err.(type) {
	case *maindomain.ErrExternalService:
		logger.Error("external service error", zap.String("service", e.Service), zap.Error(e.Err))
		writeError(w, http.StatusBadGateway, "external service unavailable: "+e.Service)
	case *maindomain.ErrNotFound:
		writeError(w, http.StatusNotFound, e.Error())
	case *maindomain.ErrValidation:
		writeError(w, http.StatusUnprocessableEntity, e.Error())
	default:
		logger.Error("unexpected error in chat handler", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
