// Package domain defines the core business entities for the Financial Sniper.
// These models are independent of external services and represent the
// canonical data structures used throughout the engine and its callers.
package domain

import "github.com/shopspring/decimal"

// ============================================================
// Financial Profile & Payment Capacity
// ============================================================

// FinancialProfile is an immutable snapshot of a user's income/expense
// situation. It is supplied by the caller on every request — the engine
// never stores or mutates it.
type FinancialProfile struct {
	MonthlyIncome      decimal.Decimal `json:"monthly_income"`
	FixedExpenses      decimal.Decimal `json:"fixed_expenses"`
	SafetyMarginPct    decimal.Decimal `json:"safety_margin_pct"`
	CurrentCommitments decimal.Decimal `json:"current_commitments"`

	// MonthlyBudget is an optional self-imposed ceiling for new monthly
	// payments. Zero means "not set". Used only for budget alerts.
	MonthlyBudget decimal.Decimal `json:"monthly_budget,omitempty"`
}

// CapacitySnapshot is the derived payment capacity of a profile.
// Recomputed on every call, never cached across profile changes.
type CapacitySnapshot struct {
	MonthlyIncome      decimal.Decimal `json:"monthly_income"`
	FixedExpenses      decimal.Decimal `json:"fixed_expenses"`
	SafetyMargin       decimal.Decimal `json:"safety_margin"`
	FreeCashFlow       decimal.Decimal `json:"free_cash_flow"`
	CurrentCommitments decimal.Decimal `json:"current_commitments"`
	AvailableForNew    decimal.Decimal `json:"available_for_new"`

	// SafeCapacity is 30% of free cash flow — the recommended ceiling
	// for new recurring payments. MaxCapacity is 50%.
	SafeCapacity decimal.Decimal `json:"safe_installment_capacity"`
	MaxCapacity  decimal.Decimal `json:"max_installment_capacity"`
}

// BudgetAlert annotates a result when a monthly installment exceeds the
// user's self-imposed monthly budget.
type BudgetAlert struct {
	Message    string          `json:"message"`
	Difference decimal.Decimal `json:"difference"`
}
