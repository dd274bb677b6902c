package domain

import "github.com/shopspring/decimal"

// ============================================================
// Offers & Smart Choice ranking
// ============================================================

// Offer is a single purchase option at a store: a cash price plus an
// installment plan for the same item.
type Offer struct {
	Store            string          `json:"store"`
	PriceCash        decimal.Decimal `json:"price_cash"`
	PriceInstallment decimal.Decimal `json:"price_installment"`
	InstallmentCount int             `json:"installment_count"`
	InterestFree     bool            `json:"interest_free"`
	URL              string          `json:"url,omitempty"`
}

// ScoredOffer is an Offer annotated with the affordability analysis and
// the 0–100 ranking score computed against one CapacitySnapshot.
type ScoredOffer struct {
	Store              string          `json:"store"`
	PriceCash          decimal.Decimal `json:"price_cash"`
	PriceInstallment   decimal.Decimal `json:"price_installment"`
	InstallmentCount   int             `json:"installment_count"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	InterestFree       bool            `json:"interest_free"`
	CanAffordCash      bool            `json:"can_afford_cash"`
	CanAffordInstall   bool            `json:"can_afford_installment"`
	CashDiscount       decimal.Decimal `json:"cash_discount"`
	CashDiscountPct    decimal.Decimal `json:"cash_discount_pct"`
	CommitmentPct      decimal.Decimal `json:"commitment_pct"`
	Score              decimal.Decimal `json:"score"`
	URL                string          `json:"url,omitempty"`
}

// Strategy labels a recommendation's purchase strategy.
type Strategy string

const (
	StrategyCash               Strategy = "cash"
	StrategyInstallment        Strategy = "installment"
	StrategyInstallmentCaution Strategy = "installment_caution"
	StrategyNotRecommended     Strategy = "not_recommended"
)

// RiskLevel grades how much a purchase strains the user's cash flow.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Recommendation is the human-facing outcome of a Smart Choice run.
// Generated fresh per request, never persisted.
type Recommendation struct {
	Strategy  Strategy  `json:"strategy"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	RiskLevel RiskLevel `json:"risk_level"`
	Store     string    `json:"store"`
}

// SmartChoiceResult bundles the ranked offers with the recommendation
// derived from the top-ranked one.
type SmartChoiceResult struct {
	BestOption      *ScoredOffer    `json:"best_option"`
	AllOptions      []ScoredOffer   `json:"all_options"`
	Recommendation  *Recommendation `json:"recommendation"`
	AvailableCash   decimal.Decimal `json:"user_available_cash"`
	MonthlyCapacity decimal.Decimal `json:"user_monthly_capacity"`

	// Capacity is filled when the ranking was run for a full profile
	// rather than raw cash/capacity figures.
	Capacity *CapacitySnapshot `json:"user_capacity,omitempty"`
}
