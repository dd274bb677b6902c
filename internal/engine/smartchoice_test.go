package engine_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/gcandido/finance-sniper-go/internal/domain"
	"github.com/gcandido/finance-sniper-go/internal/engine"
)

func offer(store, cash, installment string, count int, free bool) domain.Offer {
	return domain.Offer{
		Store:            store,
		PriceCash:        dec(cash),
		PriceInstallment: dec(installment),
		InstallmentCount: count,
		InterestFree:     free,
	}
}

func TestRankOffers_EmptyList(t *testing.T) {
	_, err := engine.RankOffers(dec("1000"), dec("500"), nil)
	var noOffers *domain.ErrNoOffers
	if !errors.As(err, &noOffers) {
		t.Fatalf("expected ErrNoOffers, got %v", err)
	}
}

func TestRankOffers_ScoreBuckets(t *testing.T) {
	cases := []struct {
		name            string
		availableCash   string
		monthlyCapacity string
		offer           domain.Offer
		wantScore       string
	}{
		{
			// 10% discount, affordable cash: 95 + 10*0.1.
			name:          "cash with discount",
			availableCash: "5000", monthlyCapacity: "1000",
			offer:     offer("Loja A", "900", "1000", 10, true),
			wantScore: "96.0",
		},
		{
			// 20x interest free, 10% commitment: 90 - 10*0.2.
			name:          "long interest free plan",
			availableCash: "100", monthlyCapacity: "1000",
			offer:     offer("Loja B", "2000", "2000", 20, true),
			wantScore: "88.0",
		},
		{
			// 12x interest free, 10% commitment: 85 - 10*0.2.
			name:          "medium interest free plan",
			availableCash: "100", monthlyCapacity: "1000",
			offer:     offer("Loja C", "1200", "1200", 12, true),
			wantScore: "83.0",
		},
		{
			// 6x interest free, 10% commitment: 75 - 10*0.3.
			name:          "short interest free plan",
			availableCash: "100", monthlyCapacity: "1000",
			offer:     offer("Loja D", "600", "600", 6, true),
			wantScore: "72.0",
		},
		{
			// Cash only, interest-bearing plan out of reach:
			// 70 + 3.846...*0.5 rounded to one place.
			name:          "cash without discount",
			availableCash: "1000", monthlyCapacity: "10",
			offer:     offer("Loja E", "500", "520", 10, false),
			wantScore: "71.9",
		},
		{
			// Interest-bearing installment, 52% commitment: 50 - 52*0.3.
			name:          "installment with interest",
			availableCash: "100", monthlyCapacity: "1000",
			offer:     offer("Loja F", "5000", "5200", 10, false),
			wantScore: "34.4",
		},
		{
			// Nothing affordable: 20 - 3000/1000.
			name:          "out of reach",
			availableCash: "0", monthlyCapacity: "0",
			offer:     offer("Loja G", "3000", "3000", 10, true),
			wantScore: "17.0",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := engine.RankOffers(dec(tc.availableCash), dec(tc.monthlyCapacity), []domain.Offer{tc.offer})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got := res.BestOption.Score.StringFixed(1); got != tc.wantScore {
				t.Errorf("score: expected %s, got %s", tc.wantScore, got)
			}
		})
	}
}

func TestRankOffers_ScoreClampedTo100(t *testing.T) {
	// Free item listed at 1000 on installment: 100% discount would push
	// the score past the ceiling.
	res, err := engine.RankOffers(dec("1000"), dec("0"), []domain.Offer{
		offer("Loja", "0", "1000", 10, true),
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := res.BestOption.Score.StringFixed(1); got != "100.0" {
		t.Errorf("score must clamp at 100, got %s", got)
	}
}

func TestRankOffers_ScoreClampedToZero(t *testing.T) {
	// Very expensive unaffordable item drags the fallback formula below 0.
	res, err := engine.RankOffers(dec("0"), dec("0"), []domain.Offer{
		offer("Loja", "50000", "50000", 10, true),
	})
	if err != nil {
		t.Fatal(err)
	}
	if !res.BestOption.Score.IsZero() {
		t.Errorf("score must clamp at 0, got %s", res.BestOption.Score)
	}
}

func TestRankOffers_CommitmentSentinelOnZeroCapacity(t *testing.T) {
	res, err := engine.RankOffers(dec("5000"), dec("0"), []domain.Offer{
		offer("Loja", "1000", "1000", 10, true),
	})
	if err != nil {
		t.Fatal(err)
	}
	if !res.BestOption.CommitmentPct.Equal(dec("999")) {
		t.Errorf("commitment pct: expected sentinel 999, got %s", res.BestOption.CommitmentPct)
	}
}

func TestRankOffers_OrderedBestFirst(t *testing.T) {
	res, err := engine.RankOffers(dec("5000"), dec("1000"), []domain.Offer{
		offer("Fraca", "3000", "3000", 6, false),
		offer("Forte", "900", "1000", 10, true),
		offer("Media", "1200", "1200", 12, true),
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.BestOption.Store != "Forte" {
		t.Errorf("best option: expected Forte, got %s", res.BestOption.Store)
	}
	for i := 1; i < len(res.AllOptions); i++ {
		if res.AllOptions[i].Score.GreaterThan(res.AllOptions[i-1].Score) {
			t.Errorf("options not sorted descending at index %d", i)
		}
	}
}

func TestRankOffers_StableTieBreak(t *testing.T) {
	// Identical offers score identically; input order must survive.
	res, err := engine.RankOffers(dec("5000"), dec("1000"), []domain.Offer{
		offer("Primeira", "900", "1000", 10, true),
		offer("Segunda", "900", "1000", 10, true),
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.AllOptions[0].Store != "Primeira" || res.AllOptions[1].Store != "Segunda" {
		t.Errorf("tie break not stable: got %s then %s", res.AllOptions[0].Store, res.AllOptions[1].Store)
	}
}

func TestRankOffers_RecommendationStrategies(t *testing.T) {
	cases := []struct {
		name            string
		availableCash   string
		monthlyCapacity string
		offer           domain.Offer
		wantStrategy    domain.Strategy
		wantRisk        domain.RiskLevel
	}{
		{
			name:          "discounted cash",
			availableCash: "5000", monthlyCapacity: "1000",
			offer:        offer("Loja", "900", "1000", 10, true),
			wantStrategy: domain.StrategyCash, wantRisk: domain.RiskLow,
		},
		{
			name:          "interest free low commitment",
			availableCash: "100", monthlyCapacity: "1000",
			offer:        offer("Loja", "2000", "2000", 20, true),
			wantStrategy: domain.StrategyInstallment, wantRisk: domain.RiskLow,
		},
		{
			name:          "interest free medium commitment",
			availableCash: "100", monthlyCapacity: "1000",
			offer:        offer("Loja", "8000", "8000", 20, true),
			wantStrategy: domain.StrategyInstallment, wantRisk: domain.RiskMedium,
		},
		{
			name:          "interest free high commitment",
			availableCash: "100", monthlyCapacity: "1000",
			offer:        offer("Loja", "12000", "12000", 20, true),
			wantStrategy: domain.StrategyInstallment, wantRisk: domain.RiskHigh,
		},
		{
			name:          "plain cash",
			availableCash: "1000", monthlyCapacity: "10",
			offer:        offer("Loja", "500", "500", 10, false),
			wantStrategy: domain.StrategyCash, wantRisk: domain.RiskLow,
		},
		{
			name:          "installment with caution",
			availableCash: "100", monthlyCapacity: "1000",
			offer:        offer("Loja", "5000", "5200", 10, false),
			wantStrategy: domain.StrategyInstallmentCaution, wantRisk: domain.RiskHigh,
		},
		{
			name:          "out of budget",
			availableCash: "0", monthlyCapacity: "0",
			offer:        offer("Loja", "3000", "3000", 10, true),
			wantStrategy: domain.StrategyNotRecommended, wantRisk: domain.RiskCritical,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := engine.RankOffers(dec(tc.availableCash), dec(tc.monthlyCapacity), []domain.Offer{tc.offer})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			rec := res.Recommendation
			if rec == nil {
				t.Fatal("expected a recommendation")
			}
			if rec.Strategy != tc.wantStrategy {
				t.Errorf("strategy: expected %s, got %s", tc.wantStrategy, rec.Strategy)
			}
			if rec.RiskLevel != tc.wantRisk {
				t.Errorf("risk: expected %s, got %s", tc.wantRisk, rec.RiskLevel)
			}
			if rec.Message == "" || rec.Title == "" {
				t.Error("recommendation must carry title and message")
			}
		})
	}
}

func TestRankOffers_Validation(t *testing.T) {
	var verr *domain.ErrValidation
	_, err := engine.RankOffers(dec("1000"), dec("500"), []domain.Offer{
		offer("Loja", "-1", "100", 10, true),
	})
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	_, err = engine.RankOffers(dec("1000"), dec("500"), []domain.Offer{
		offer("Loja", "100", "100", 0, true),
	})
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error for zero count, got %v", err)
	}
}

func TestRankOffers_Deterministic(t *testing.T) {
	offers := []domain.Offer{
		offer("A", "900", "1000", 10, true),
		offer("B", "1200", "1200", 12, true),
	}
	a, err := engine.RankOffers(dec("5000"), dec("1000"), offers)
	if err != nil {
		t.Fatal(err)
	}
	b, err := engine.RankOffers(dec("5000"), dec("1000"), offers)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a.AllOptions, b.AllOptions) {
		t.Error("identical inputs must produce identical rankings")
	}
}
