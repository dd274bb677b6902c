package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gcandido/finance-sniper-go/internal/domain"
)

// comfortablePaymentPct: a "comfortable" installment uses at most 30% of
// the available budget.
var comfortablePaymentPct = decimal.NewFromFloat(0.30)

// SuggestInstallments recommends a number of installments for an item
// given the user's monthly budget: the minimum count that fits at all,
// and a comfortable count where each installment takes at most 30% of
// the budget. maxInstallments caps the suggestion (<=0 uses the default
// of 24).
func SuggestInstallments(itemPrice, userBudget decimal.Decimal, maxInstallments int) (*domain.InstallmentSuggestion, error) {
	if err := validateAmount("item_price", itemPrice); err != nil {
		return nil, err
	}
	if maxInstallments <= 0 {
		maxInstallments = DefaultMaxInstallments
	}

	if !userBudget.IsPositive() {
		return &domain.InstallmentSuggestion{
			Suggestion: "Sem orçamento disponível",
			ItemPrice:  itemPrice,
			UserBudget: userBudget,
		}, nil
	}

	minInstallments := roundHalfUpToInt(itemPrice.Div(userBudget))
	if minInstallments < 1 {
		minInstallments = 1
	}

	comfortablePayment := userBudget.Mul(comfortablePaymentPct)
	comfortable := maxInstallments
	if comfortablePayment.IsPositive() {
		comfortable = roundHalfUpToInt(itemPrice.Div(comfortablePayment))
	}
	if comfortable < 1 {
		comfortable = 1
	}
	if comfortable > maxInstallments {
		comfortable = maxInstallments
	}

	var suggestion string
	switch {
	case minInstallments > maxInstallments:
		suggestion = fmt.Sprintf("Este item está acima do seu orçamento. Precisaria de %dx mas o máximo comum é %dx.",
			minInstallments, maxInstallments)
	case comfortable <= 12:
		perInstallment := itemPrice.Div(decimal.NewFromInt(int64(comfortable)))
		suggestion = fmt.Sprintf("Ideal: %dx (parcela confortável de R$ %s)",
			comfortable, perInstallment.Round(2).StringFixed(2))
	default:
		suggestion = fmt.Sprintf("Mínimo: %dx | Confortável: %dx", minInstallments, comfortable)
	}

	return &domain.InstallmentSuggestion{
		Suggestion:              suggestion,
		MinInstallments:         &minInstallments,
		ComfortableInstallments: &comfortable,
		ItemPrice:               itemPrice,
		UserBudget:              userBudget,
	}, nil
}

// roundHalfUpToInt rounds a ratio half-up to the nearest whole number.
func roundHalfUpToInt(d decimal.Decimal) int {
	return int(d.Round(0).IntPart())
}
