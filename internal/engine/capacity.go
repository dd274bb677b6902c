package engine

import (
	"github.com/shopspring/decimal"

	"github.com/gcandido/finance-sniper-go/internal/domain"
)

// ComputeCapacity derives the payment capacity of a profile:
//
//	safety_margin   = income * margin_pct / 100
//	free_cash_flow  = income - fixed_expenses - safety_margin
//	available       = free_cash_flow - current_commitments
//	safe capacity   = 30% of free cash flow
//	max capacity    = 50% of free cash flow
//
// Negative results are valid states (over-committed / underfunded), not
// errors. Inputs must be non-negative and the margin within [0,100].
func ComputeCapacity(p domain.FinancialProfile) (*domain.CapacitySnapshot, error) {
	if err := validateProfile(p); err != nil {
		return nil, err
	}

	safetyMargin := p.MonthlyIncome.Mul(p.SafetyMarginPct).Div(hundred)
	freeCashFlow := p.MonthlyIncome.Sub(p.FixedExpenses).Sub(safetyMargin)
	availableForNew := freeCashFlow.Sub(p.CurrentCommitments)

	return &domain.CapacitySnapshot{
		MonthlyIncome:      p.MonthlyIncome,
		FixedExpenses:      p.FixedExpenses,
		SafetyMargin:       safetyMargin,
		FreeCashFlow:       freeCashFlow,
		CurrentCommitments: p.CurrentCommitments,
		AvailableForNew:    availableForNew,
		SafeCapacity:       freeCashFlow.Mul(SafeCommitmentPct).Div(hundred),
		MaxCapacity:        freeCashFlow.Mul(ModerateCommitmentPct).Div(hundred),
	}, nil
}

func validateProfile(p domain.FinancialProfile) error {
	if p.MonthlyIncome.IsNegative() {
		return &domain.ErrValidation{Field: "monthly_income", Message: "must not be negative"}
	}
	if p.FixedExpenses.IsNegative() {
		return &domain.ErrValidation{Field: "fixed_expenses", Message: "must not be negative"}
	}
	if p.CurrentCommitments.IsNegative() {
		return &domain.ErrValidation{Field: "current_commitments", Message: "must not be negative"}
	}
	if p.SafetyMarginPct.IsNegative() || p.SafetyMarginPct.GreaterThan(hundred) {
		return &domain.ErrValidation{Field: "safety_margin_pct", Message: "must be between 0 and 100"}
	}
	return nil
}

func validateAmount(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return &domain.ErrValidation{Field: field, Message: "must not be negative"}
	}
	return nil
}

func validateCount(field string, n int) error {
	if n < 1 {
		return &domain.ErrValidation{Field: field, Message: "must be at least 1"}
	}
	return nil
}
