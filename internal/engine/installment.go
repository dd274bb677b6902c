package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gcandido/finance-sniper-go/internal/domain"
)

// CompareCashVsInstallment decides between paying cash and taking an
// installment plan, valuing the deferred payments at present value under
// the inflation discount rate.
//
// The decision cascade is ordered on purpose — a guaranteed cash discount
// of 10%+ always beats the probabilistic inflation benefit:
//
//  1. discount >= 10%                  -> cash
//  2. net benefit > R$50, interest-free -> installment
//  3. plan carries interest            -> cash (avoid the interest cost)
//  4. otherwise                        -> neutral
func CompareCashVsInstallment(cashPrice, installmentPrice decimal.Decimal, numInstallments int, interestFree bool) (*domain.InstallmentComparison, error) {
	if err := validateAmount("cash_price", cashPrice); err != nil {
		return nil, err
	}
	if err := validateAmount("installment_price", installmentPrice); err != nil {
		return nil, err
	}
	if err := validateCount("num_installments", numInstallments); err != nil {
		return nil, err
	}

	cashDiscount := installmentPrice.Sub(cashPrice)
	cashDiscountPct := zero
	if installmentPrice.IsPositive() {
		cashDiscountPct = cashDiscount.Div(installmentPrice).Mul(hundred)
	}

	monthlyInstallment := installmentPrice.Div(decimal.NewFromInt(int64(numInstallments)))

	presentValue := presentValueOfStream(monthlyInstallment, numInstallments, MonthlyInflationRate)
	inflationSavings := installmentPrice.Sub(presentValue)
	netBenefit := inflationSavings.Sub(cashDiscount)

	var (
		choice  domain.PaymentChoice
		text    string
		benefit decimal.Decimal
	)
	switch {
	case cashDiscountPct.GreaterThanOrEqual(CashDiscountThresholdPct):
		choice = domain.PayCash
		benefit = cashDiscount
		text = fmt.Sprintf("Pague à vista. Desconto de %s%% supera ganho com inflação.",
			cashDiscountPct.Round(1).StringFixed(1))
	case netBenefit.GreaterThan(NetBenefitThreshold) && interestFree:
		choice = domain.PayInstallment
		benefit = netBenefit
		text = fmt.Sprintf("Parcele sem juros. A inflação trabalha a seu favor, economia real de R$ %s.",
			netBenefit.Round(2).StringFixed(2))
	case !interestFree:
		choice = domain.PayCash
		benefit = cashDiscount
		text = fmt.Sprintf("Pague à vista para evitar juros. Economia de R$ %s.",
			cashDiscount.Round(2).StringFixed(2))
	default:
		choice = domain.PayNeutral
		benefit = zero
		text = "Diferença mínima. Escolha conforme seu fluxo de caixa."
	}

	return &domain.InstallmentComparison{
		CashPrice:          cashPrice,
		InstallmentPrice:   installmentPrice,
		NumInstallments:    numInstallments,
		MonthlyInstallment: monthlyInstallment.Round(2),
		CashDiscount:       cashDiscount.Round(2),
		CashDiscountPct:    cashDiscountPct.Round(1),
		PresentValue:       presentValue.Round(2),
		InflationSavings:   inflationSavings.Round(2),
		NetBenefit:         netBenefit.Round(2),
		InterestFree:       interestFree,
		Recommendation:     choice,
		RecommendationText: text,
		FinancialBenefit:   benefit.Round(2),
		AnnualInflationPct: AnnualInflationRate.Mul(hundred),
	}, nil
}

// presentValueOfStream discounts a fixed monthly payment over n months:
// sum of payment / (1+rate)^m for m in 1..n.
func presentValueOfStream(payment decimal.Decimal, n int, monthlyRate decimal.Decimal) decimal.Decimal {
	onePlusRate := one.Add(monthlyRate)
	pv := zero
	for m := 1; m <= n; m++ {
		factor := onePlusRate.Pow(decimal.NewFromInt(int64(m)))
		pv = pv.Add(payment.Div(factor))
	}
	return pv
}

// BuildInstallmentPlan amortizes a price over n months at a fixed monthly
// interest rate (PMT). A zero rate divides the price evenly.
func BuildInstallmentPlan(totalPrice decimal.Decimal, numInstallments int, monthlyInterestRate decimal.Decimal) (*domain.InstallmentPlan, error) {
	if err := validateAmount("total_price", totalPrice); err != nil {
		return nil, err
	}
	if err := validateCount("num_installments", numInstallments); err != nil {
		return nil, err
	}
	if monthlyInterestRate.IsNegative() {
		return nil, &domain.ErrValidation{Field: "interest_rate", Message: "must not be negative"}
	}

	n := decimal.NewFromInt(int64(numInstallments))

	var installment, totalWithInterest decimal.Decimal
	if monthlyInterestRate.IsPositive() {
		// PMT = P * r(1+r)^n / ((1+r)^n - 1)
		compound := one.Add(monthlyInterestRate).Pow(n)
		installment = totalPrice.Mul(monthlyInterestRate.Mul(compound)).Div(compound.Sub(one))
		totalWithInterest = installment.Mul(n)
	} else {
		installment = totalPrice.Div(n)
		totalWithInterest = totalPrice
	}

	return &domain.InstallmentPlan{
		OriginalPrice:      totalPrice,
		NumInstallments:    numInstallments,
		MonthlyInterestPct: monthlyInterestRate.Mul(hundred),
		InstallmentValue:   installment.Round(2),
		TotalWithInterest:  totalWithInterest.Round(2),
		InterestPaid:       totalWithInterest.Sub(totalPrice).Round(2),
		InterestFree:       monthlyInterestRate.IsZero(),
	}, nil
}
