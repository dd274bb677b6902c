package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================
// Import cost analysis (USD -> BRL, Brazilian import taxes)
// ============================================================

// DollarQuote is a USD-BRL exchange rate with its retrieval timestamp.
// Fallback is true when the live quote could not be fetched and the
// static fallback rate was used instead.
type DollarQuote struct {
	Rate     decimal.Decimal `json:"rate"`
	AsOf     time.Time       `json:"as_of"`
	Fallback bool            `json:"fallback,omitempty"`
}

// ImportCostBreakdown is the landed cost of an imported item: the USD
// figures, the rate used, and every tax component in BRL.
// Monetary fields are rounded half-up to 2 decimals at computation output;
// intermediate arithmetic keeps full precision.
type ImportCostBreakdown struct {
	PriceUSD          decimal.Decimal `json:"price_usd"`
	ShippingUSD       decimal.Decimal `json:"shipping_usd"`
	TotalUSD          decimal.Decimal `json:"total_usd"`
	DollarRate        decimal.Decimal `json:"dollar_rate"`
	RateTimestamp     time.Time       `json:"rate_timestamp"`
	BaseBRL           decimal.Decimal `json:"base_brl"`
	ImportTaxRate     decimal.Decimal `json:"import_tax_rate"`
	ImportTaxBRL      decimal.Decimal `json:"import_tax_brl"`
	ICMSRate          decimal.Decimal `json:"icms_rate"`
	ICMSBRL           decimal.Decimal `json:"icms_brl"`
	TotalBRL          decimal.Decimal `json:"total_brl"`
	IsRemessaConforme bool            `json:"is_remessa_conforme"`
}

// ImportDecision says which side of an import-vs-national comparison won.
type ImportDecision string

const (
	DecisionImport   ImportDecision = "import"
	DecisionNational ImportDecision = "national"
	DecisionEqual    ImportDecision = "equal"
)

// ImportComparison contrasts the landed import cost against a domestic
// price for the same item.
type ImportComparison struct {
	ImportAnalysis     *ImportCostBreakdown `json:"import_analysis"`
	NationalPriceBRL   decimal.Decimal      `json:"national_price_brl"`
	PriceDifference    decimal.Decimal      `json:"price_difference"`
	PercentageDiff     decimal.Decimal      `json:"percentage_difference"`
	Recommendation     ImportDecision       `json:"recommendation"`
	RecommendationText string               `json:"recommendation_text"`
	Savings            decimal.Decimal      `json:"savings"`
}
