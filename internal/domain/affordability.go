package domain

import "github.com/shopspring/decimal"

// ============================================================
// Affordability classification (income vs item)
// ============================================================

// AffordabilityStrategy is the classifier's strategy tag.
type AffordabilityStrategy string

const (
	AffordCashImmediate       AffordabilityStrategy = "cash_immediate"
	AffordInstallmentSafe     AffordabilityStrategy = "installment_safe"
	AffordInstallmentModerate AffordabilityStrategy = "installment_moderate"
	AffordInstallmentRisky    AffordabilityStrategy = "installment_risky"
	AffordSaveFirst           AffordabilityStrategy = "save_first"
	AffordNotAffordable       AffordabilityStrategy = "not_affordable"
)

// AffordabilityResult classifies whether one item fits a user's budget
// and which purchase strategy is advisable.
//
// Sentinel value 999 marks percentages/months that would otherwise be a
// division by a non-positive denominator ("infinitely over budget").
type AffordabilityResult struct {
	MonthlyIncome      decimal.Decimal `json:"monthly_income"`
	FixedExpenses      decimal.Decimal `json:"fixed_expenses"`
	FreeCashFlow       decimal.Decimal `json:"free_cash_flow"`
	AvailableBudget    decimal.Decimal `json:"available_budget"`
	CurrentCommitments decimal.Decimal `json:"current_commitments"`

	ItemPriceCash        decimal.Decimal `json:"item_price_cash"`
	ItemPriceInstallment decimal.Decimal `json:"item_price_installment"`
	InstallmentCount     int             `json:"installment_count"`
	MonthlyInstallment   decimal.Decimal `json:"monthly_installment"`

	CanAffordCash        bool            `json:"can_afford_cash"`
	CanAffordInstallment bool            `json:"can_afford_installment"`
	NewCommitmentPct     decimal.Decimal `json:"new_commitment_pct"`
	InstallmentIncomePct decimal.Decimal `json:"installment_as_income_pct"`
	CashDiscount         decimal.Decimal `json:"cash_discount"`
	CashDiscountPct      decimal.Decimal `json:"cash_discount_pct"`
	MonthsToSaveCash     int             `json:"months_to_save_cash"`

	Recommendation AffordabilityStrategy `json:"recommendation"`
	Strategy       string                `json:"strategy"`
	Reason         string                `json:"reason"`
	RiskLevel      RiskLevel             `json:"risk_level"`

	BudgetAlert *BudgetAlert `json:"budget_alert,omitempty"`
}

// ============================================================
// "For You" project suggestions
// ============================================================

// ProjectSuggestions lists items a purchase project is still missing,
// optionally enriched by the AI agent.
type ProjectSuggestions struct {
	ProjectName   string         `json:"project_name"`
	ProjectType   string         `json:"project_type"`
	ExistingItems []string       `json:"existing_items"`
	MissingItems  []string       `json:"missing_items"`
	AISuggestions *AISuggestions `json:"ai_suggestions"`
}

// AISuggestions is the agent-ranked subset of missing items.
type AISuggestions struct {
	Suggestions   []string `json:"suggestions"`
	Reasoning     string   `json:"reasoning"`
	PriorityOrder []string `json:"priority_order"`
}
