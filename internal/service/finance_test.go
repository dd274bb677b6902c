package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/gcandido/finance-sniper-go/internal/domain"
	"github.com/gcandido/finance-sniper-go/internal/infra/observability"
	"github.com/gcandido/finance-sniper-go/internal/service"
)

// --- Mocks ---

type mockRateProvider struct {
	quote domain.DollarQuote
}

func (m *mockRateProvider) GetCurrentRate(_ context.Context) domain.DollarQuote {
	return m.quote
}

func newFinance(rate string) *service.Finance {
	return service.NewFinance(
		&mockRateProvider{quote: domain.DollarQuote{
			Rate: decimal.RequireFromString(rate),
			AsOf: time.Now(),
		}},
		24,
		observability.NewMetrics(),
		zap.NewNop(),
	)
}

// --- Tests ---

func TestAnalyzeImportCost_UsesProvidedRate(t *testing.T) {
	svc := newFinance("5.00")

	b, err := svc.AnalyzeImportCost(context.Background(),
		decimal.RequireFromString("40"), decimal.Zero, true)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// 40 USD * 5.00 = 200 base; RC ≤ 50 USD → 20% = 40; ICMS 17% de 240 = 40.80
	if b.BaseBRL.StringFixed(2) != "200.00" {
		t.Errorf("expected base 200.00, got %s", b.BaseBRL)
	}
	if b.ImportTaxBRL.StringFixed(2) != "40.00" {
		t.Errorf("expected import tax 40.00, got %s", b.ImportTaxBRL)
	}
	if b.ICMSBRL.StringFixed(2) != "40.80" {
		t.Errorf("expected ICMS 40.80, got %s", b.ICMSBRL)
	}
	if b.TotalBRL.StringFixed(2) != "280.80" {
		t.Errorf("expected total 280.80, got %s", b.TotalBRL)
	}
}

func TestAnalyzeImportCost_InvalidPrice(t *testing.T) {
	svc := newFinance("5.00")

	_, err := svc.AnalyzeImportCost(context.Background(),
		decimal.RequireFromString("-10"), decimal.Zero, true)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
}

func TestCompareImportVsNational_ImportWins(t *testing.T) {
	svc := newFinance("5.00")

	cmp, err := svc.CompareImportVsNational(context.Background(),
		decimal.RequireFromString("40"), decimal.RequireFromString("400"),
		decimal.Zero, true)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cmp.Recommendation != domain.DecisionImport {
		t.Errorf("expected import recommendation, got %s", cmp.Recommendation)
	}
	// 400 - 280.80 = 119.20 de economia
	if cmp.Savings.StringFixed(2) != "119.20" {
		t.Errorf("expected savings 119.20, got %s", cmp.Savings)
	}
}

func TestSmartChoiceForProfile_FillsCapacity(t *testing.T) {
	svc := newFinance("5.00")

	profile := domain.FinancialProfile{
		MonthlyIncome:      decimal.RequireFromString("5000"),
		FixedExpenses:      decimal.RequireFromString("2000"),
		SafetyMarginPct:    decimal.RequireFromString("10"),
		CurrentCommitments: decimal.RequireFromString("300"),
	}
	offers := []domain.Offer{
		{Store: "Loja A", PriceCash: decimal.RequireFromString("1800"), PriceInstallment: decimal.RequireFromString("2000"), InstallmentCount: 10, InterestFree: true},
	}

	res, err := svc.SmartChoiceForProfile(context.Background(), profile, offers)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.Capacity == nil {
		t.Fatal("expected capacity snapshot attached to the result")
	}
	// income 5000 - expenses 2000 - margin 500 = FCF 2500; available 2200
	if res.AvailableCash.StringFixed(2) != "2200.00" {
		t.Errorf("expected available cash 2200.00, got %s", res.AvailableCash)
	}
	if res.BestOption == nil || res.BestOption.Store != "Loja A" {
		t.Error("expected Loja A as best option")
	}
}

func TestRankOffers_EmptyOffers(t *testing.T) {
	svc := newFinance("5.00")

	_, err := svc.RankOffers(context.Background(),
		decimal.RequireFromString("1000"), decimal.RequireFromString("300"), nil)
	if err == nil {
		t.Fatal("expected error for empty offer list, got nil")
	}
}

func TestSuggestInstallments_DefaultCeiling(t *testing.T) {
	svc := newFinance("5.00")

	// maxInstallments <= 0 cai no teto configurado (24).
	s, err := svc.SuggestInstallments(context.Background(),
		decimal.RequireFromString("2400"), decimal.RequireFromString("100"), 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if s.MinInstallments == nil || *s.MinInstallments != 24 {
		t.Errorf("expected min installments 24, got %v", s.MinInstallments)
	}
}

func TestGetDollarQuote_PassesThrough(t *testing.T) {
	svc := newFinance("5.4321")

	q := svc.GetDollarQuote(context.Background())
	if !q.Rate.Equal(decimal.RequireFromString("5.4321")) {
		t.Errorf("expected rate 5.4321, got %s", q.Rate)
	}
}
