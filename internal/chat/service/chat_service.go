// Package service — chat_service.go implementa o ChatService.
//
// ============================================================
// ARQUITETURA — Strategy Pattern para Routing de Contexto
// ============================================================
//
// O ChatService é o orquestrador central da rota POST /v1/chat.
// Ele recebe a query do usuário, detecta a intenção (intent) e delega
// o processamento para a Strategy correta.
//
// Fluxo completo:
//  1. Handler recebe POST /v1/chat com body {"query": "..."}
//  2. ChatService.ProcessMessage() é chamado
//  3. Detecta a intenção do usuário (cotação? importação? geral?)
//  4. Busca a Strategy correspondente na lista de strategies
//  5. Se não encontra, usa o fallback (que manda pro agent direto)
//  6. Retorna a resposta
//
// Strategies disponíveis:
//   - QuoteStrategy:  responde a cotação do dólar localmente
//   - ImportStrategy: calcula custo de importação localmente
//   - (fallback) Agent Python com o intent como contexto
package service

import (
	"context"
	"regexp"
	"strings"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/gcandido/finance-sniper-go/internal/chat/domain"
	"github.com/gcandido/finance-sniper-go/internal/chat/port"
)

// chatTracer é o tracer OpenTelemetry para o módulo de chat.
var chatTracer = otel.Tracer("chat/service")

// ============================================================
// ChatStrategy — interface que cada contexto implementa
// ============================================================

// ChatStrategy define o contrato de uma estratégia de processamento.
// Cada contexto (cotação, importação, etc.) implementa sua própria strategy.
//
// CanHandle: diz se essa strategy sabe lidar com a intenção detectada
// Handle:    processa a mensagem e retorna a resposta
type ChatStrategy interface {
	// CanHandle retorna true se essa strategy trata a intenção dada.
	// Exemplos de intent: "quote", "import", "payment", "general"
	CanHandle(intent string) bool

	// Handle processa a mensagem do chat dentro do contexto dessa strategy.
	Handle(ctx context.Context, chatCtx *domain.ChatContext) (*domain.ChatResponse, error)
}

// ============================================================
// ChatService — orquestrador com strategy routing
// ============================================================

// ChatService é o serviço principal da rota de chat.
// Ele usa o Strategy Pattern para rotear mensagens para o contexto correto.
type ChatService struct {
	// agentClient é o client HTTP que chama o Agent Python
	agentClient port.ChatAgentCaller

	// strategies registradas. A ordem importa: a primeira strategy
	// que aceita a intenção ganha.
	strategies []ChatStrategy

	logger *zap.Logger
}

// NewChatService cria o ChatService com as dependências injetadas.
func NewChatService(
	agentClient port.ChatAgentCaller,
	strategies []ChatStrategy,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		agentClient: agentClient,
		strategies:  strategies,
		logger:      logger,
	}
}

// ProcessMessage é o ponto de entrada principal do chat.
//
// Fluxo:
//  1. Detecta a intenção do usuário baseado em palavras-chave
//  2. Monta o ChatContext com userID, query e intent
//  3. Procura uma strategy que saiba lidar com o intent
//  4. Se nenhuma strategy aceita → manda pro agent com o intent de contexto
func (s *ChatService) ProcessMessage(ctx context.Context, userID string, req *domain.ChatRequest) (*domain.ChatResponse, error) {
	ctx, span := chatTracer.Start(ctx, "ChatService.ProcessMessage")
	defer span.End()

	intent := s.detectIntent(req.Query)

	s.logger.Info("chat message received",
		zap.String("user_id", userID),
		zap.String("intent", intent),
		zap.Int("query_length", len(req.Query)),
	)

	chatCtx := &domain.ChatContext{
		UserID:         userID,
		Query:          req.Query,
		DetectedIntent: intent,
	}

	for _, strategy := range s.strategies {
		if strategy.CanHandle(intent) {
			s.logger.Debug("delegating to strategy",
				zap.String("intent", intent),
			)
			return strategy.Handle(ctx, chatCtx)
		}
	}

	s.logger.Debug("no strategy matched, using default agent call",
		zap.String("intent", intent),
	)
	return s.defaultHandle(ctx, chatCtx)
}

// defaultHandle envia a query pro Agent Python com o intent detectado
// como contexto. É o fallback quando nenhuma strategy aceita o intent.
func (s *ChatService) defaultHandle(ctx context.Context, chatCtx *domain.ChatContext) (*domain.ChatResponse, error) {
	agentReq := &domain.ChatAgentRequest{
		Query:   chatCtx.Query,
		UserID:  chatCtx.UserID,
		Context: chatCtx.DetectedIntent,
	}

	agentResp, err := s.agentClient.SendChat(ctx, agentReq)
	if err != nil {
		s.logger.Error("agent call failed",
			zap.String("user_id", chatCtx.UserID),
			zap.Error(err),
		)
		return nil, err
	}

	return &domain.ChatResponse{
		Answer: agentResp.Answer,
		Intent: chatCtx.DetectedIntent,
	}, nil
}

// ============================================================
// detectIntent — detecção simples de intenção por keywords
// ============================================================

// usdAmountPattern reconhece valores em dólar na mensagem:
// "100 dólares", "49.90 usd", "US$ 49,90".
var usdAmountPattern = regexp.MustCompile(`(?:us\$\s*)?(\d+(?:[.,]\d+)?)\s*(?:d[oó]lares?|usd)|us\$\s*(\d+(?:[.,]\d+)?)`)

// detectIntent analisa a query do usuário e retorna uma string de intent.
//
// Keywords mapeadas:
//   - "import"/"taxa" + valor em dólar         → "import"
//   - "cotação", "dólar"                       → "quote"
//   - "parcel", "à vista"                      → "payment"
//   - "posso comprar", "cabe no orçamento"     → "affordability"
//   - "sugest", "o que falta"                  → "suggestions"
//   - qualquer outra coisa                     → "general"
//
// No futuro isso pode ser substituído por um classificador no Agent.
func (s *ChatService) detectIntent(query string) string {
	lower := strings.ToLower(query)

	// Importação — precisa de um valor em dólar para calcular localmente
	if (strings.Contains(lower, "import") || strings.Contains(lower, "taxa")) &&
		usdAmountPattern.MatchString(lower) {
		return "import"
	}

	quoteKeywords := []string{"cotação", "cotacao", "dólar", "dolar"}
	for _, kw := range quoteKeywords {
		if strings.Contains(lower, kw) {
			return "quote"
		}
	}

	paymentKeywords := []string{"parcel", "à vista", "a vista"}
	for _, kw := range paymentKeywords {
		if strings.Contains(lower, kw) {
			return "payment"
		}
	}

	affordKeywords := []string{"posso comprar", "cabe no orçamento", "cabe no orcamento", "cabe no bolso"}
	for _, kw := range affordKeywords {
		if strings.Contains(lower, kw) {
			return "affordability"
		}
	}

	suggestKeywords := []string{"sugest", "o que falta", "que falta"}
	for _, kw := range suggestKeywords {
		if strings.Contains(lower, kw) {
			return "suggestions"
		}
	}

	return "general"
}
