package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gcandido/finance-sniper-go/internal/domain"
)

// ClassifyAffordability checks whether a single item fits a user's budget
// and picks the best purchase strategy for it.
//
// The classification cascade runs top to bottom, first match wins:
//
//  1. affords cash, discount >= 10%        -> cash_immediate / low
//  2. affords installment, commitment <=30% -> installment_safe / low
//  3. affords installment, commitment <=50% -> installment_moderate / medium
//  4. affords installment                   -> installment_risky / high
//  5. reachable by saving within 6 months   -> save_first / low
//  6. otherwise                             -> not_affordable / critical
func ClassifyAffordability(p domain.FinancialProfile, itemPriceCash, itemPriceInstallment decimal.Decimal, installmentCount int) (*domain.AffordabilityResult, error) {
	if err := validateProfile(p); err != nil {
		return nil, err
	}
	if err := validateAmount("item_price_cash", itemPriceCash); err != nil {
		return nil, err
	}
	if err := validateAmount("item_price_installment", itemPriceInstallment); err != nil {
		return nil, err
	}
	if err := validateCount("installment_count", installmentCount); err != nil {
		return nil, err
	}

	safetyMargin := p.MonthlyIncome.Mul(p.SafetyMarginPct).Div(hundred)
	freeCashFlow := p.MonthlyIncome.Sub(p.FixedExpenses).Sub(safetyMargin)
	availableBudget := freeCashFlow.Sub(p.CurrentCommitments)

	monthlyInstallment := itemPriceInstallment.Div(decimal.NewFromInt(int64(installmentCount)))

	canAffordCash := availableBudget.GreaterThanOrEqual(itemPriceCash)
	canAffordInstallment := availableBudget.GreaterThanOrEqual(monthlyInstallment)

	commitmentWithItem := p.CurrentCommitments.Add(monthlyInstallment)
	newCommitmentPct := SentinelPct
	if freeCashFlow.IsPositive() {
		newCommitmentPct = commitmentWithItem.Div(freeCashFlow).Mul(hundred)
	}

	monthsToSave := SentinelMonths
	if availableBudget.IsPositive() {
		months := itemPriceCash.Div(availableBudget).Ceil().IntPart()
		if months < SentinelMonths {
			monthsToSave = int(months)
		}
	}

	cashDiscount := itemPriceInstallment.Sub(itemPriceCash)
	cashDiscountPct := zero
	if itemPriceInstallment.IsPositive() {
		cashDiscountPct = cashDiscount.Div(itemPriceInstallment).Mul(hundred)
	}

	installmentIncomePct := SentinelPct
	if p.MonthlyIncome.IsPositive() {
		installmentIncomePct = monthlyInstallment.Div(p.MonthlyIncome).Mul(hundred)
	}

	result := &domain.AffordabilityResult{
		MonthlyIncome:        p.MonthlyIncome,
		FixedExpenses:        p.FixedExpenses,
		FreeCashFlow:         freeCashFlow,
		AvailableBudget:      availableBudget,
		CurrentCommitments:   p.CurrentCommitments,
		ItemPriceCash:        itemPriceCash,
		ItemPriceInstallment: itemPriceInstallment,
		InstallmentCount:     installmentCount,
		MonthlyInstallment:   monthlyInstallment.Round(2),
		CanAffordCash:        canAffordCash,
		CanAffordInstallment: canAffordInstallment,
		NewCommitmentPct:     newCommitmentPct.Round(1),
		InstallmentIncomePct: installmentIncomePct.Round(1),
		CashDiscount:         cashDiscount.Round(2),
		CashDiscountPct:      cashDiscountPct.Round(1),
		MonthsToSaveCash:     monthsToSave,
	}

	switch {
	case canAffordCash && cashDiscountPct.GreaterThanOrEqual(CashDiscountThresholdPct):
		result.Recommendation = domain.AffordCashImmediate
		result.Strategy = "À vista imediato"
		result.Reason = fmt.Sprintf("Você tem fluxo de caixa e o desconto de %s%% vale a pena. Economia de R$ %s.",
			cashDiscountPct.Round(1).StringFixed(1), cashDiscount.Round(2).StringFixed(2))
		result.RiskLevel = domain.RiskLow

	case canAffordInstallment && newCommitmentPct.LessThanOrEqual(SafeCommitmentPct):
		result.Recommendation = domain.AffordInstallmentSafe
		result.Strategy = fmt.Sprintf("Parcelado em %dx", installmentCount)
		result.Reason = fmt.Sprintf("Parcela de R$ %s compromete apenas %s%% da sua renda. Seguro.",
			monthlyInstallment.Round(2).StringFixed(2), installmentIncomePct.Round(1).StringFixed(1))
		result.RiskLevel = domain.RiskLow

	case canAffordInstallment && newCommitmentPct.LessThanOrEqual(ModerateCommitmentPct):
		result.Recommendation = domain.AffordInstallmentModerate
		result.Strategy = fmt.Sprintf("Parcelado em %dx (atenção)", installmentCount)
		result.Reason = fmt.Sprintf("Parcela cabe no orçamento, mas você ficará com %s%% comprometido. Considere esperar.",
			newCommitmentPct.Round(1).StringFixed(1))
		result.RiskLevel = domain.RiskMedium

	case canAffordInstallment:
		result.Recommendation = domain.AffordInstallmentRisky
		result.Strategy = fmt.Sprintf("Parcelado em %dx (arriscado)", installmentCount)
		result.Reason = fmt.Sprintf("A parcela cabe, mas comprometeria %s%% do seu fluxo livre. Alto risco financeiro.",
			newCommitmentPct.Round(1).StringFixed(1))
		result.RiskLevel = domain.RiskHigh

	case monthsToSave <= SaveFirstMaxMonths:
		result.Recommendation = domain.AffordSaveFirst
		result.Strategy = fmt.Sprintf("Economizar por %d meses", monthsToSave)
		result.Reason = fmt.Sprintf("Não cabe agora, mas economizando R$ %s/mês você compra à vista em %d meses.",
			availableBudget.Round(2).StringFixed(2), monthsToSave)
		result.RiskLevel = domain.RiskLow

	default:
		result.Recommendation = domain.AffordNotAffordable
		result.Strategy = "Fora do orçamento atual"
		result.Reason = "Este item está acima do seu poder de compra. Considere uma alternativa mais barata ou aumente sua renda."
		result.RiskLevel = domain.RiskCritical
	}

	if alert := budgetAlert(p.MonthlyBudget, monthlyInstallment); alert != nil {
		result.BudgetAlert = alert
	}

	return result, nil
}

// budgetAlert flags a monthly installment that exceeds the user's
// self-imposed monthly budget. Zero budget means "not set".
func budgetAlert(monthlyBudget, monthlyInstallment decimal.Decimal) *domain.BudgetAlert {
	if !monthlyBudget.IsPositive() || monthlyInstallment.LessThanOrEqual(monthlyBudget) {
		return nil
	}
	diff := monthlyInstallment.Sub(monthlyBudget).Round(2)
	return &domain.BudgetAlert{
		Message: fmt.Sprintf("Atenção: A parcela mensal (R$ %s) excede seu orçamento (R$ %s)",
			monthlyInstallment.Round(2).StringFixed(2), monthlyBudget.Round(2).StringFixed(2)),
		Difference: diff,
	}
}
