package engine_test

import (
	"errors"
	"testing"

	"github.com/gcandido/finance-sniper-go/internal/domain"
	"github.com/gcandido/finance-sniper-go/internal/engine"
)

func TestClassifyAffordability_CashImmediate(t *testing.T) {
	// 7000 available, 10% cash discount: buy now.
	res, err := engine.ClassifyAffordability(profile("10000", "2000", "10", "0"), dec("900"), dec("1000"), 10)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.Recommendation != domain.AffordCashImmediate {
		t.Errorf("expected cash_immediate, got %s", res.Recommendation)
	}
	if res.RiskLevel != domain.RiskLow {
		t.Errorf("expected low risk, got %s", res.RiskLevel)
	}
	if !res.CanAffordCash {
		t.Error("expected can_afford_cash")
	}
	if got := res.CashDiscountPct.StringFixed(1); got != "10.0" {
		t.Errorf("discount pct: expected 10.0, got %s", got)
	}
}

func TestClassifyAffordability_InstallmentSafe(t *testing.T) {
	// Free cash flow 2500, available 2200; 250/month takes total
	// commitment to 22% of free cash flow.
	res, err := engine.ClassifyAffordability(profile("5000", "2000", "10", "300"), dec("3000"), dec("3000"), 12)
	if err != nil {
		t.Fatal(err)
	}
	if res.Recommendation != domain.AffordInstallmentSafe {
		t.Errorf("expected installment_safe, got %s", res.Recommendation)
	}
	if res.RiskLevel != domain.RiskLow {
		t.Errorf("expected low risk, got %s", res.RiskLevel)
	}
	if got := res.NewCommitmentPct.StringFixed(1); got != "22.0" {
		t.Errorf("new commitment pct: expected 22.0, got %s", got)
	}
	if got := res.MonthlyInstallment.StringFixed(2); got != "250.00" {
		t.Errorf("monthly installment: expected 250.00, got %s", got)
	}
	// 3000 cash on 2200/month of saving takes 2 months (ceiling).
	if res.MonthsToSaveCash != 2 {
		t.Errorf("months to save: expected 2, got %d", res.MonthsToSaveCash)
	}
}

func TestClassifyAffordability_InstallmentModerate(t *testing.T) {
	// 900/month raises commitment to 48% of free cash flow.
	res, err := engine.ClassifyAffordability(profile("5000", "2000", "10", "300"), dec("10800"), dec("10800"), 12)
	if err != nil {
		t.Fatal(err)
	}
	if res.Recommendation != domain.AffordInstallmentModerate {
		t.Errorf("expected installment_moderate, got %s", res.Recommendation)
	}
	if res.RiskLevel != domain.RiskMedium {
		t.Errorf("expected medium risk, got %s", res.RiskLevel)
	}
	if got := res.NewCommitmentPct.StringFixed(1); got != "48.0" {
		t.Errorf("new commitment pct: expected 48.0, got %s", got)
	}
}

func TestClassifyAffordability_InstallmentRisky(t *testing.T) {
	// 1500/month pushes commitment to 72%.
	res, err := engine.ClassifyAffordability(profile("5000", "2000", "10", "300"), dec("18000"), dec("18000"), 12)
	if err != nil {
		t.Fatal(err)
	}
	if res.Recommendation != domain.AffordInstallmentRisky {
		t.Errorf("expected installment_risky, got %s", res.Recommendation)
	}
	if res.RiskLevel != domain.RiskHigh {
		t.Errorf("expected high risk, got %s", res.RiskLevel)
	}
}

func TestClassifyAffordability_SaveFirst(t *testing.T) {
	// Installment out of reach (2500 > 2200/month) but saving covers the
	// 10000 cash price in 5 months.
	res, err := engine.ClassifyAffordability(profile("5000", "2000", "10", "300"), dec("10000"), dec("30000"), 12)
	if err != nil {
		t.Fatal(err)
	}
	if res.Recommendation != domain.AffordSaveFirst {
		t.Errorf("expected save_first, got %s", res.Recommendation)
	}
	if res.RiskLevel != domain.RiskLow {
		t.Errorf("expected low risk, got %s", res.RiskLevel)
	}
	if res.MonthsToSaveCash != 5 {
		t.Errorf("months to save: expected 5, got %d", res.MonthsToSaveCash)
	}
	if res.CanAffordInstallment {
		t.Error("installment should be out of reach")
	}
}

func TestClassifyAffordability_NotAffordable(t *testing.T) {
	// No income at all: every derived percentage falls back to the 999
	// sentinel and the item is out of reach.
	res, err := engine.ClassifyAffordability(profile("0", "0", "0", "0"), dec("1000"), dec("1000"), 10)
	if err != nil {
		t.Fatal(err)
	}
	if res.Recommendation != domain.AffordNotAffordable {
		t.Errorf("expected not_affordable, got %s", res.Recommendation)
	}
	if res.RiskLevel != domain.RiskCritical {
		t.Errorf("expected critical risk, got %s", res.RiskLevel)
	}
	if res.MonthsToSaveCash != 999 {
		t.Errorf("months to save: expected sentinel 999, got %d", res.MonthsToSaveCash)
	}
	if !res.NewCommitmentPct.Equal(dec("999")) {
		t.Errorf("new commitment pct: expected sentinel 999, got %s", res.NewCommitmentPct)
	}
	if !res.InstallmentIncomePct.Equal(dec("999")) {
		t.Errorf("installment income pct: expected sentinel 999, got %s", res.InstallmentIncomePct)
	}
}

func TestClassifyAffordability_BudgetAlert(t *testing.T) {
	p := profile("5000", "2000", "10", "300")
	p.MonthlyBudget = dec("200")

	// 250/month against a self-imposed 200 budget.
	res, err := engine.ClassifyAffordability(p, dec("3000"), dec("3000"), 12)
	if err != nil {
		t.Fatal(err)
	}
	if res.BudgetAlert == nil {
		t.Fatal("expected a budget alert")
	}
	if got := res.BudgetAlert.Difference.StringFixed(2); got != "50.00" {
		t.Errorf("alert difference: expected 50.00, got %s", got)
	}
	if res.BudgetAlert.Message == "" {
		t.Error("alert must carry a message")
	}
}

func TestClassifyAffordability_NoBudgetAlertWithinBudget(t *testing.T) {
	p := profile("5000", "2000", "10", "300")
	p.MonthlyBudget = dec("300")

	res, err := engine.ClassifyAffordability(p, dec("3000"), dec("3000"), 12)
	if err != nil {
		t.Fatal(err)
	}
	if res.BudgetAlert != nil {
		t.Errorf("expected no alert, got %+v", res.BudgetAlert)
	}
}

func TestClassifyAffordability_Validation(t *testing.T) {
	var verr *domain.ErrValidation
	if _, err := engine.ClassifyAffordability(profile("-1", "0", "10", "0"), dec("100"), dec("100"), 10); !errors.As(err, &verr) {
		t.Errorf("expected validation error for negative income, got %v", err)
	}
	if _, err := engine.ClassifyAffordability(profile("5000", "0", "10", "0"), dec("-1"), dec("100"), 10); !errors.As(err, &verr) {
		t.Errorf("expected validation error for negative price, got %v", err)
	}
	if _, err := engine.ClassifyAffordability(profile("5000", "0", "10", "0"), dec("100"), dec("100"), 0); !errors.As(err, &verr) {
		t.Errorf("expected validation error for zero count, got %v", err)
	}
}
