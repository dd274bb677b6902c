package engine

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/gcandido/finance-sniper-go/internal/domain"
)

// Score formula weights. Each affordability bucket has a base score; the
// discount or commitment percentage nudges offers within the bucket.
var (
	weightDiscountTop  = decimal.NewFromFloat(0.1)
	weightCommitLong   = decimal.NewFromFloat(0.2)
	weightCommitShort  = decimal.NewFromFloat(0.3)
	weightDiscountCash = decimal.NewFromFloat(0.5)
	priceScaleDivisor  = decimal.NewFromInt(1000)
)

// RankOffers scores every offer against the user's lump sum and monthly
// capacity, ranks them (stable, best first) and derives a recommendation
// from the winner. An empty offer list is a reported condition
// (ErrNoOffers), never a crash.
func RankOffers(availableCash, monthlyCapacity decimal.Decimal, offers []domain.Offer) (*domain.SmartChoiceResult, error) {
	if len(offers) == 0 {
		return nil, &domain.ErrNoOffers{}
	}

	scored := make([]domain.ScoredOffer, 0, len(offers))
	for i, offer := range offers {
		so, err := scoreOffer(availableCash, monthlyCapacity, offer, i)
		if err != nil {
			return nil, err
		}
		scored = append(scored, *so)
	}

	// Stable sort keeps input order between equal scores.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score.GreaterThan(scored[j].Score)
	})

	best := scored[0]

	return &domain.SmartChoiceResult{
		BestOption:      &best,
		AllOptions:      scored,
		Recommendation:  buildRecommendation(&best),
		AvailableCash:   availableCash,
		MonthlyCapacity: monthlyCapacity,
	}, nil
}

func scoreOffer(availableCash, monthlyCapacity decimal.Decimal, offer domain.Offer, idx int) (*domain.ScoredOffer, error) {
	field := fmt.Sprintf("offers[%d]", idx)
	if err := validateAmount(field+".price_cash", offer.PriceCash); err != nil {
		return nil, err
	}
	if err := validateAmount(field+".price_installment", offer.PriceInstallment); err != nil {
		return nil, err
	}
	if err := validateCount(field+".installment_count", offer.InstallmentCount); err != nil {
		return nil, err
	}

	monthlyInstallment := offer.PriceInstallment.Div(decimal.NewFromInt(int64(offer.InstallmentCount)))

	canAffordCash := availableCash.GreaterThanOrEqual(offer.PriceCash)
	canAffordInstallment := monthlyCapacity.GreaterThanOrEqual(monthlyInstallment)

	cashDiscount := offer.PriceInstallment.Sub(offer.PriceCash)
	cashDiscountPct := zero
	if offer.PriceInstallment.IsPositive() {
		cashDiscountPct = cashDiscount.Div(offer.PriceInstallment).Mul(hundred)
	}

	// 999 sentinel: zero capacity means any installment is infinitely
	// over budget.
	commitmentPct := SentinelPct
	if monthlyCapacity.IsPositive() {
		commitmentPct = monthlyInstallment.Div(monthlyCapacity).Mul(hundred)
	}

	score := offerScore(
		canAffordCash, canAffordInstallment,
		cashDiscountPct, offer.InterestFree, offer.InstallmentCount,
		commitmentPct, offer.PriceCash,
	)

	return &domain.ScoredOffer{
		Store:              offer.Store,
		PriceCash:          offer.PriceCash,
		PriceInstallment:   offer.PriceInstallment,
		InstallmentCount:   offer.InstallmentCount,
		MonthlyInstallment: monthlyInstallment.Round(2),
		InterestFree:       offer.InterestFree,
		CanAffordCash:      canAffordCash,
		CanAffordInstall:   canAffordInstallment,
		CashDiscount:       cashDiscount.Round(2),
		CashDiscountPct:    cashDiscountPct.Round(1),
		CommitmentPct:      commitmentPct.Round(1),
		Score:              score,
		URL:                offer.URL,
	}, nil
}

// offerScore assigns the 0–100 score. The cascade is evaluated top to
// bottom and the first matching rule wins; the order is a deliberate
// tie-break (discounted cash first, long interest-free plans next).
func offerScore(
	canAffordCash, canAffordInstallment bool,
	cashDiscountPct decimal.Decimal,
	interestFree bool,
	installmentCount int,
	commitmentPct, priceCash decimal.Decimal,
) decimal.Decimal {
	var score decimal.Decimal

	switch {
	case canAffordCash && cashDiscountPct.GreaterThanOrEqual(CashDiscountThresholdPct):
		score = decimal.NewFromInt(95).Add(cashDiscountPct.Mul(weightDiscountTop))
	case canAffordInstallment && interestFree && installmentCount >= 18:
		score = decimal.NewFromInt(90).Sub(commitmentPct.Mul(weightCommitLong))
	case canAffordInstallment && interestFree && installmentCount >= 12:
		score = decimal.NewFromInt(85).Sub(commitmentPct.Mul(weightCommitLong))
	case canAffordInstallment && interestFree:
		score = decimal.NewFromInt(75).Sub(commitmentPct.Mul(weightCommitShort))
	case canAffordCash:
		score = decimal.NewFromInt(70).Add(cashDiscountPct.Mul(weightDiscountCash))
	case canAffordInstallment:
		score = decimal.NewFromInt(50).Sub(commitmentPct.Mul(weightCommitShort))
	default:
		score = decimal.NewFromInt(20).Sub(priceCash.Div(priceScaleDivisor))
	}

	// Clamp into [0,100], one decimal place.
	if score.IsNegative() {
		score = zero
	}
	if score.GreaterThan(hundred) {
		score = hundred
	}
	return score.Round(1)
}

// buildRecommendation re-tests the winner's affordability conditions, in
// the same priority order as the scoring cascade, and attaches a risk
// level from the commitment thresholds.
func buildRecommendation(best *domain.ScoredOffer) *domain.Recommendation {
	switch {
	case best.CanAffordCash && best.CashDiscountPct.GreaterThanOrEqual(CashDiscountThresholdPct):
		return &domain.Recommendation{
			Strategy: domain.StrategyCash,
			Title:    "Pague à Vista!",
			Message: fmt.Sprintf("Recomendado: %s à vista por R$ %s. Economia de R$ %s (%s%% de desconto).",
				best.Store,
				best.PriceCash.Round(2).StringFixed(2),
				best.CashDiscount.StringFixed(2),
				best.CashDiscountPct.StringFixed(1)),
			RiskLevel: domain.RiskLow,
			Store:     best.Store,
		}

	case best.CanAffordInstall && best.InterestFree:
		risk := domain.RiskHigh
		if best.CommitmentPct.LessThanOrEqual(SafeCommitmentPct) {
			risk = domain.RiskLow
		} else if best.CommitmentPct.LessThanOrEqual(ModerateCommitmentPct) {
			risk = domain.RiskMedium
		}
		return &domain.Recommendation{
			Strategy: domain.StrategyInstallment,
			Title:    "Parcele sem Juros",
			Message: fmt.Sprintf("Recomendado: %s em %dx de R$ %s sem juros. Cabe no seu bolso!",
				best.Store, best.InstallmentCount, best.MonthlyInstallment.StringFixed(2)),
			RiskLevel: risk,
			Store:     best.Store,
		}

	case best.CanAffordCash:
		return &domain.Recommendation{
			Strategy: domain.StrategyCash,
			Title:    "Compra à Vista",
			Message: fmt.Sprintf("Você pode comprar na %s à vista por R$ %s. Sem comprometer seu fluxo mensal.",
				best.Store, best.PriceCash.Round(2).StringFixed(2)),
			RiskLevel: domain.RiskLow,
			Store:     best.Store,
		}

	case best.CanAffordInstall:
		return &domain.Recommendation{
			Strategy: domain.StrategyInstallmentCaution,
			Title:    "Parcelamento com Cautela",
			Message: fmt.Sprintf("%s oferece %dx de R$ %s, mas isso compromete %s%% do seu fluxo. Avalie com cuidado.",
				best.Store, best.InstallmentCount, best.MonthlyInstallment.StringFixed(2),
				best.CommitmentPct.Round(0).StringFixed(0)),
			RiskLevel: domain.RiskHigh,
			Store:     best.Store,
		}

	default:
		return &domain.Recommendation{
			Strategy:  domain.StrategyNotRecommended,
			Title:     "Fora do Orçamento",
			Message:   "Este produto está acima do seu orçamento atual. Considere economizar ou buscar alternativas mais baratas.",
			RiskLevel: domain.RiskCritical,
			Store:     best.Store,
		}
	}
}
