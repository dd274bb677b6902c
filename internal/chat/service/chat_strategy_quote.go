// Package service — chat_strategy_quote.go implementa a strategy de
// cotação do dólar.
//
// Perguntas como "qual a cotação do dólar?" não precisam de IA: o motor
// já tem a cotação em cache. A strategy responde localmente, de graça
// e em microssegundos.
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/gcandido/finance-sniper-go/internal/chat/domain"
	mainport "github.com/gcandido/finance-sniper-go/internal/port"
)

// QuoteStrategy responde o intent "quote" com a cotação atual.
type QuoteStrategy struct {
	rates  mainport.RateProvider
	logger *zap.Logger
}

// NewQuoteStrategy cria a strategy de cotação.
func NewQuoteStrategy(rates mainport.RateProvider, logger *zap.Logger) *QuoteStrategy {
	return &QuoteStrategy{rates: rates, logger: logger}
}

// CanHandle retorna true quando o intent é "quote".
func (s *QuoteStrategy) CanHandle(intent string) bool {
	return intent == "quote"
}

// Handle busca a cotação (cache ou API) e formata a resposta.
func (s *QuoteStrategy) Handle(ctx context.Context, chatCtx *domain.ChatContext) (*domain.ChatResponse, error) {
	ctx, span := chatTracer.Start(ctx, "QuoteStrategy.Handle")
	defer span.End()

	quote := s.rates.GetCurrentRate(ctx)

	answer := fmt.Sprintf("Cotação atual do dólar: R$ %s", quote.Rate.Round(4).StringFixed(4))
	if quote.Fallback {
		answer += " (cotação de referência — não consegui consultar a API agora)"
	}

	return &domain.ChatResponse{
		Answer: answer,
		Intent: chatCtx.DetectedIntent,
	}, nil
}
