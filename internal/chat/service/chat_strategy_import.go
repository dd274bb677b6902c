// Package service — chat_strategy_import.go implementa a strategy de
// cálculo de importação via chat.
//
// Mensagens como "quanto custa importar um teclado de 100 dólares?"
// são respondidas localmente pelo motor de decisão: o valor em dólar é
// extraído da mensagem e o custo total (impostos + ICMS) é calculado
// com a cotação atual.
package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/gcandido/finance-sniper-go/internal/chat/domain"
	maindomain "github.com/gcandido/finance-sniper-go/internal/domain"
)

// importAnalyzer é o recorte do serviço de finanças que a strategy usa.
type importAnalyzer interface {
	AnalyzeImportCost(ctx context.Context, priceUSD, shippingUSD decimal.Decimal, isRemessaConforme bool) (*maindomain.ImportCostBreakdown, error)
}

// ImportStrategy responde o intent "import" com o custo de importação.
type ImportStrategy struct {
	finance importAnalyzer
	logger  *zap.Logger
}

// NewImportStrategy cria a strategy de importação.
func NewImportStrategy(finance importAnalyzer, logger *zap.Logger) *ImportStrategy {
	return &ImportStrategy{finance: finance, logger: logger}
}

// CanHandle retorna true quando o intent é "import".
func (s *ImportStrategy) CanHandle(intent string) bool {
	return intent == "import"
}

// Handle extrai o valor em dólar da mensagem e calcula o custo total.
// Assume Remessa Conforme (o caso comum de compra em marketplace).
func (s *ImportStrategy) Handle(ctx context.Context, chatCtx *domain.ChatContext) (*domain.ChatResponse, error) {
	ctx, span := chatTracer.Start(ctx, "ImportStrategy.Handle")
	defer span.End()

	priceUSD, ok := extractUSDAmount(chatCtx.Query)
	if !ok {
		return &domain.ChatResponse{
			Answer: "Me diga o valor em dólares para eu calcular. Exemplo: \"quanto custa importar 100 dólares?\"",
			Intent: chatCtx.DetectedIntent,
		}, nil
	}

	b, err := s.finance.AnalyzeImportCost(ctx, priceUSD, decimal.Zero, true)
	if err != nil {
		s.logger.Error("import analysis failed in chat",
			zap.String("user_id", chatCtx.UserID),
			zap.Error(err),
		)
		return nil, err
	}

	taxPct := b.ImportTaxRate.Mul(decimal.NewFromInt(100)).Round(0).StringFixed(0)
	var sb strings.Builder
	sb.WriteString("Análise de Importação:\n")
	sb.WriteString("- Cotação do dólar: R$ " + b.DollarRate.Round(4).StringFixed(4) + "\n")
	sb.WriteString("- Valor do produto: " + maindomain.FormatBRL(b.BaseBRL) + "\n")
	sb.WriteString("- Imposto importação (" + taxPct + "%): " + maindomain.FormatBRL(b.ImportTaxBRL) + "\n")
	sb.WriteString("- ICMS (17%): " + maindomain.FormatBRL(b.ICMSBRL) + "\n")
	sb.WriteString("- Total importado: " + maindomain.FormatBRL(b.TotalBRL))

	return &domain.ChatResponse{
		Answer: sb.String(),
		Intent: chatCtx.DetectedIntent,
	}, nil
}

// extractUSDAmount pega o primeiro valor em dólar da mensagem.
func extractUSDAmount(query string) (decimal.Decimal, bool) {
	m := usdAmountPattern.FindStringSubmatch(strings.ToLower(query))
	if m == nil {
		return decimal.Zero, false
	}
	raw := m[1]
	if raw == "" {
		raw = m[2]
	}
	raw = strings.ReplaceAll(raw, ",", ".")
	d, err := decimal.NewFromString(raw)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}
