package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/gcandido/finance-sniper-go/internal/domain"
	"github.com/gcandido/finance-sniper-go/internal/engine"
	"github.com/gcandido/finance-sniper-go/internal/infra/observability"
	"github.com/gcandido/finance-sniper-go/internal/port"
)

var tracer = otel.Tracer("service/finance")

// Finance orchestrates the decision engine: it feeds live quotes into the
// calculators and records metrics around every analysis.
type Finance struct {
	rates           port.RateProvider
	maxInstallments int
	metrics         *observability.Metrics
	logger          *zap.Logger
}

// NewFinance creates the finance service with all dependencies injected.
func NewFinance(rates port.RateProvider, maxInstallments int, metrics *observability.Metrics, logger *zap.Logger) *Finance {
	if maxInstallments <= 0 {
		maxInstallments = engine.DefaultMaxInstallments
	}
	return &Finance{
		rates:           rates,
		maxInstallments: maxInstallments,
		metrics:         metrics,
		logger:          logger,
	}
}

// observe wraps an analysis with duration + counter metrics.
func (f *Finance) observe(kind string, start time.Time, err error) {
	f.metrics.RecordRequestDuration(kind, time.Since(start))
	f.metrics.IncrAnalysis(kind)
	if err != nil {
		f.metrics.IncrRequest("error")
	} else {
		f.metrics.IncrRequest("success")
	}
}

// ComputeCapacity derives the payment-capacity snapshot for a profile.
func (f *Finance) ComputeCapacity(ctx context.Context, p domain.FinancialProfile) (*domain.CapacitySnapshot, error) {
	_, span := tracer.Start(ctx, "Finance.ComputeCapacity")
	defer span.End()
	start := time.Now()

	snap, err := engine.ComputeCapacity(p)
	f.observe("capacity", start, err)
	return snap, err
}

// AnalyzeImportCost prices an imported item in BRL using the current quote.
func (f *Finance) AnalyzeImportCost(ctx context.Context, priceUSD, shippingUSD decimal.Decimal, isRemessaConforme bool) (*domain.ImportCostBreakdown, error) {
	ctx, span := tracer.Start(ctx, "Finance.AnalyzeImportCost")
	defer span.End()
	start := time.Now()

	quote := f.rates.GetCurrentRate(ctx)
	span.SetAttributes(attribute.Bool("quote.fallback", quote.Fallback))

	b, err := engine.CalculateImportCost(priceUSD, shippingUSD, isRemessaConforme, quote)
	f.observe("import", start, err)
	return b, err
}

// CompareImportVsNational compares the landed import cost with a national price.
func (f *Finance) CompareImportVsNational(ctx context.Context, priceUSD, nationalBRL, shippingUSD decimal.Decimal, isRemessaConforme bool) (*domain.ImportComparison, error) {
	ctx, span := tracer.Start(ctx, "Finance.CompareImportVsNational")
	defer span.End()
	start := time.Now()

	quote := f.rates.GetCurrentRate(ctx)
	cmp, err := engine.CompareImportVsNational(priceUSD, nationalBRL, shippingUSD, isRemessaConforme, quote)
	f.observe("import_compare", start, err)
	return cmp, err
}

// AnalyzePayment runs the cash-vs-installment time-value comparison.
func (f *Finance) AnalyzePayment(ctx context.Context, cashPrice, installmentPrice decimal.Decimal, numInstallments int, interestFree bool) (*domain.InstallmentComparison, error) {
	_, span := tracer.Start(ctx, "Finance.AnalyzePayment")
	defer span.End()
	start := time.Now()

	cmp, err := engine.CompareCashVsInstallment(cashPrice, installmentPrice, numInstallments, interestFree)
	f.observe("payment", start, err)
	return cmp, err
}

// RankOffers scores and ranks purchase offers against raw capacity figures.
func (f *Finance) RankOffers(ctx context.Context, availableCash, monthlyCapacity decimal.Decimal, offers []domain.Offer) (*domain.SmartChoiceResult, error) {
	_, span := tracer.Start(ctx, "Finance.RankOffers")
	defer span.End()
	span.SetAttributes(attribute.Int("offers.count", len(offers)))
	start := time.Now()

	res, err := engine.RankOffers(availableCash, monthlyCapacity, offers)
	f.observe("smart_choice", start, err)
	if err != nil {
		return nil, err
	}
	f.metrics.IncrStrategy(string(res.Recommendation.Strategy))
	return res, nil
}

// SmartChoiceForProfile derives capacity from a full profile and ranks the
// offers against it: the free lump sum funds cash purchases, the safe
// monthly capacity funds installments.
func (f *Finance) SmartChoiceForProfile(ctx context.Context, p domain.FinancialProfile, offers []domain.Offer) (*domain.SmartChoiceResult, error) {
	ctx, span := tracer.Start(ctx, "Finance.SmartChoiceForProfile")
	defer span.End()

	snap, err := engine.ComputeCapacity(p)
	if err != nil {
		f.metrics.IncrRequest("error")
		return nil, err
	}

	res, err := f.RankOffers(ctx, snap.AvailableForNew, snap.SafeCapacity, offers)
	if err != nil {
		return nil, err
	}
	res.Capacity = snap
	return res, nil
}

// ClassifyAffordability checks a single item against a profile's budget.
func (f *Finance) ClassifyAffordability(ctx context.Context, p domain.FinancialProfile, itemPriceCash, itemPriceInstallment decimal.Decimal, installmentCount int) (*domain.AffordabilityResult, error) {
	_, span := tracer.Start(ctx, "Finance.ClassifyAffordability")
	defer span.End()
	start := time.Now()

	res, err := engine.ClassifyAffordability(p, itemPriceCash, itemPriceInstallment, installmentCount)
	f.observe("affordability", start, err)
	if err != nil {
		return nil, err
	}
	if res.BudgetAlert != nil {
		f.logger.Info("installment exceeds monthly budget",
			zap.String("difference", res.BudgetAlert.Difference.String()),
		)
	}
	return res, nil
}

// BuildInstallmentPlan computes the fixed installment for a financed total.
func (f *Finance) BuildInstallmentPlan(ctx context.Context, totalPrice decimal.Decimal, numInstallments int, monthlyInterestRate decimal.Decimal) (*domain.InstallmentPlan, error) {
	_, span := tracer.Start(ctx, "Finance.BuildInstallmentPlan")
	defer span.End()
	start := time.Now()

	plan, err := engine.BuildInstallmentPlan(totalPrice, numInstallments, monthlyInterestRate)
	f.observe("plan", start, err)
	return plan, err
}

// SuggestInstallments recommends an installment count for an item and budget.
// A non-positive maxInstallments falls back to the configured ceiling.
func (f *Finance) SuggestInstallments(ctx context.Context, itemPrice, userBudget decimal.Decimal, maxInstallments int) (*domain.InstallmentSuggestion, error) {
	_, span := tracer.Start(ctx, "Finance.SuggestInstallments")
	defer span.End()
	start := time.Now()

	if maxInstallments <= 0 {
		maxInstallments = f.maxInstallments
	}
	s, err := engine.SuggestInstallments(itemPrice, userBudget, maxInstallments)
	f.observe("suggest", start, err)
	return s, err
}

// GetDollarQuote exposes the current USD→BRL quote.
func (f *Finance) GetDollarQuote(ctx context.Context) domain.DollarQuote {
	ctx, span := tracer.Start(ctx, "Finance.GetDollarQuote")
	defer span.End()
	return f.rates.GetCurrentRate(ctx)
}
