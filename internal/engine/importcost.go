package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gcandido/finance-sniper-go/internal/domain"
)

// CalculateImportCost computes the landed BRL cost of an imported item.
//
// Tax rules: import tax is 20% when the USD total (price+shipping) is at
// most 50 AND the store joins the Remessa Conforme program, 60% otherwise.
// ICMS of 17% applies over the import-taxed subtotal. All intermediate
// values stay at full precision; the breakdown fields are rounded half-up
// to 2 decimals.
func CalculateImportCost(priceUSD, shippingUSD decimal.Decimal, isRemessaConforme bool, quote domain.DollarQuote) (*domain.ImportCostBreakdown, error) {
	if err := validateAmount("price_usd", priceUSD); err != nil {
		return nil, err
	}
	if err := validateAmount("shipping_usd", shippingUSD); err != nil {
		return nil, err
	}

	totalUSD := priceUSD.Add(shippingUSD)
	baseBRL := totalUSD.Mul(quote.Rate)

	taxRate := importTaxRate(totalUSD, isRemessaConforme)
	importTax := baseBRL.Mul(taxRate)

	subtotal := baseBRL.Add(importTax)
	icms := subtotal.Mul(ICMSRate)
	totalBRL := subtotal.Add(icms)

	return &domain.ImportCostBreakdown{
		PriceUSD:          priceUSD,
		ShippingUSD:       shippingUSD,
		TotalUSD:          totalUSD,
		DollarRate:        quote.Rate,
		RateTimestamp:     quote.AsOf,
		BaseBRL:           baseBRL.Round(2),
		ImportTaxRate:     taxRate,
		ImportTaxBRL:      importTax.Round(2),
		ICMSRate:          ICMSRate,
		ICMSBRL:           icms.Round(2),
		TotalBRL:          totalBRL.Round(2),
		IsRemessaConforme: isRemessaConforme,
	}, nil
}

// importTaxRate re-evaluates the tier condition from the raw inputs.
// Callers that already hold a breakdown still go through here — the rate
// is always derived from the condition, never read back from a result.
func importTaxRate(totalUSD decimal.Decimal, isRemessaConforme bool) decimal.Decimal {
	if isRemessaConforme && totalUSD.LessThanOrEqual(RemessaThresholdUSD) {
		return ImportTaxBelow50
	}
	return ImportTaxAbove50
}

// CompareImportVsNational contrasts the landed import cost against a
// domestic price. Positive difference favours importing; on a tie the
// guidance text points at delivery time as the tiebreak.
func CompareImportVsNational(priceUSD, nationalBRL, shippingUSD decimal.Decimal, isRemessaConforme bool, quote domain.DollarQuote) (*domain.ImportComparison, error) {
	if err := validateAmount("national_price_brl", nationalBRL); err != nil {
		return nil, err
	}

	breakdown, err := CalculateImportCost(priceUSD, shippingUSD, isRemessaConforme, quote)
	if err != nil {
		return nil, err
	}

	importTotal := breakdown.TotalBRL
	difference := nationalBRL.Sub(importTotal)

	percentageDiff := zero
	if nationalBRL.IsPositive() {
		percentageDiff = difference.Div(nationalBRL).Mul(hundred)
	}

	var (
		decision domain.ImportDecision
		savings  decimal.Decimal
		text     string
	)
	switch {
	case difference.IsPositive():
		decision = domain.DecisionImport
		savings = difference
		text = fmt.Sprintf("Importar é mais barato. Economia de R$ %s (%s%%)",
			savings.Round(2).StringFixed(2), percentageDiff.Round(1).StringFixed(1))
	case difference.IsNegative():
		decision = domain.DecisionNational
		savings = difference.Abs()
		text = fmt.Sprintf("Comprar no Brasil é mais barato. Economia de R$ %s (%s%%)",
			savings.Round(2).StringFixed(2), percentageDiff.Abs().Round(1).StringFixed(1))
	default:
		decision = domain.DecisionEqual
		savings = zero
		text = "Preços equivalentes. Considere o prazo de entrega."
	}

	return &domain.ImportComparison{
		ImportAnalysis:     breakdown,
		NationalPriceBRL:   nationalBRL,
		PriceDifference:    difference.Round(2),
		PercentageDiff:     percentageDiff.Round(1),
		Recommendation:     decision,
		RecommendationText: text,
		Savings:            savings.Round(2),
	}, nil
}
