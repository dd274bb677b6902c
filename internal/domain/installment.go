package domain

import "github.com/shopspring/decimal"

// ============================================================
// Cash vs installment analysis (time value of money)
// ============================================================

// PaymentChoice labels the outcome of a cash-vs-installment comparison.
type PaymentChoice string

const (
	PayCash        PaymentChoice = "cash"
	PayInstallment PaymentChoice = "installment"
	PayNeutral     PaymentChoice = "neutral"
)

// InstallmentComparison is the full cash-vs-installment analysis under
// the inflation discount model.
type InstallmentComparison struct {
	CashPrice          decimal.Decimal `json:"cash_price"`
	InstallmentPrice   decimal.Decimal `json:"installment_price"`
	NumInstallments    int             `json:"num_installments"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	CashDiscount       decimal.Decimal `json:"cash_discount"`
	CashDiscountPct    decimal.Decimal `json:"cash_discount_percentage"`
	PresentValue       decimal.Decimal `json:"present_value_installments"`
	InflationSavings   decimal.Decimal `json:"inflation_savings"`
	NetBenefit         decimal.Decimal `json:"net_benefit_installment"`
	InterestFree       bool            `json:"interest_free"`
	Recommendation     PaymentChoice   `json:"recommendation"`
	RecommendationText string          `json:"recommendation_text"`
	FinancialBenefit   decimal.Decimal `json:"financial_benefit"`
	AnnualInflationPct decimal.Decimal `json:"annual_inflation_rate"`
}

// InstallmentPlan is a PMT amortization of a price over N months at a
// fixed monthly interest rate.
type InstallmentPlan struct {
	OriginalPrice      decimal.Decimal `json:"original_price"`
	NumInstallments    int             `json:"num_installments"`
	MonthlyInterestPct decimal.Decimal `json:"interest_rate_monthly"`
	InstallmentValue   decimal.Decimal `json:"installment_value"`
	TotalWithInterest  decimal.Decimal `json:"total_with_interest"`
	InterestPaid       decimal.Decimal `json:"interest_paid"`
	InterestFree       bool            `json:"interest_free"`
}

// InstallmentSuggestion recommends how many installments fit a budget.
// MinInstallments and ComfortableInstallments are nil when the user has
// no available budget at all.
type InstallmentSuggestion struct {
	Suggestion              string          `json:"suggestion"`
	MinInstallments         *int            `json:"min_installments"`
	ComfortableInstallments *int            `json:"comfortable_installments"`
	ItemPrice               decimal.Decimal `json:"item_price"`
	UserBudget              decimal.Decimal `json:"user_budget"`
}
