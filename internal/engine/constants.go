// Package engine implements the deterministic financial decision engine:
// payment capacity, Brazilian import taxes, cash-vs-installment time-value
// analysis, the Smart Choice offer ranking and the affordability classifier.
//
// Every function here is a pure, stateless computation over its inputs.
// All arithmetic uses fixed-point decimals at full precision; results are
// rounded half-up (2 decimals for currency, 1 for percentages and scores)
// only when the output value is built.
package engine

import (
	"math"

	"github.com/shopspring/decimal"
)

// Decision thresholds and tax rules. The values mirror the product rules
// they encode — do not tune without a rules change.
var (
	// SafeCommitmentPct is the recommended ceiling for recurring payments
	// as a percentage of free cash flow.
	SafeCommitmentPct = decimal.NewFromInt(30)

	// ModerateCommitmentPct is the absolute ceiling before a commitment is
	// graded high-risk.
	ModerateCommitmentPct = decimal.NewFromInt(50)

	// CashDiscountThresholdPct: a cash discount at or above this always
	// wins over the inflation benefit of installments.
	CashDiscountThresholdPct = decimal.NewFromInt(10)

	// NetBenefitThreshold is the minimum net inflation benefit (in BRL)
	// for an interest-free installment plan to beat paying cash.
	NetBenefitThreshold = decimal.NewFromInt(50)

	// SaveFirstMaxMonths: saving up is only suggested when the item is
	// reachable within this many months.
	SaveFirstMaxMonths = 6

	// AnnualInflationRate is the discount rate applied to future
	// installments (4.5% a.a.).
	AnnualInflationRate = decimal.NewFromFloat(0.045)

	// MonthlyInflationRate is the monthly equivalent of the annual rate:
	// (1+annual)^(1/12) - 1.
	MonthlyInflationRate = decimal.NewFromFloat(math.Pow(1.045, 1.0/12.0) - 1)
)

// Brazilian import tax rules (Remessa Conforme).
var (
	ICMSRate            = decimal.NewFromFloat(0.17)
	ImportTaxAbove50    = decimal.NewFromFloat(0.60)
	ImportTaxBelow50    = decimal.NewFromFloat(0.20)
	RemessaThresholdUSD = decimal.NewFromInt(50)
)

// SentinelPct stands in for percentages whose denominator is non-positive
// ("infinitely over budget"). Same sentinel is used for months-to-save.
var SentinelPct = decimal.NewFromInt(999)

// SentinelMonths is the months-to-save sentinel when no budget is left.
const SentinelMonths = 999

// DefaultMaxInstallments caps installment-count suggestions.
const DefaultMaxInstallments = 24

var (
	zero    = decimal.Zero
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)
