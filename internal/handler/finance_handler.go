package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/gcandido/finance-sniper-go/internal/domain"
	"github.com/gcandido/finance-sniper-go/internal/service"
)

// ============================================================
// 1. Capacidade de Pagamento — POST /v1/capacity
// ============================================================

func capacityHandler(svc *service.Finance, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/capacity")
		defer span.End()

		var profile domain.FinancialProfile
		if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		snap, err := svc.ComputeCapacity(ctx, profile)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

// ============================================================
// 2. Importação — POST /v1/analysis/import
// ============================================================

// importAnalysisRequest aceita um preço nacional opcional: quando
// presente, a resposta vira uma comparação importado vs nacional.
type importAnalysisRequest struct {
	PriceUSD          decimal.Decimal  `json:"price_usd"`
	ShippingUSD       decimal.Decimal  `json:"shipping_usd"`
	IsRemessaConforme *bool            `json:"is_remessa_conforme"`
	NationalPriceBRL  *decimal.Decimal `json:"national_price_brl"`
}

func importAnalysisHandler(svc *service.Finance, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/analysis/import")
		defer span.End()

		var req importAnalysisRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		// Remessa Conforme é o caso comum — default true.
		remessa := true
		if req.IsRemessaConforme != nil {
			remessa = *req.IsRemessaConforme
		}

		if req.NationalPriceBRL != nil {
			cmp, err := svc.CompareImportVsNational(ctx, req.PriceUSD, *req.NationalPriceBRL, req.ShippingUSD, remessa)
			if err != nil {
				handleServiceError(w, err, logger)
				return
			}
			writeJSON(w, http.StatusOK, cmp)
			return
		}

		breakdown, err := svc.AnalyzeImportCost(ctx, req.PriceUSD, req.ShippingUSD, remessa)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, breakdown)
	}
}

// ============================================================
// 3. À vista vs Parcelado — POST /v1/analysis/payment
// ============================================================

type paymentAnalysisRequest struct {
	CashPrice        decimal.Decimal `json:"cash_price"`
	InstallmentPrice decimal.Decimal `json:"installment_price"`
	NumInstallments  int             `json:"num_installments"`
	InterestFree     *bool           `json:"interest_free"`
}

func paymentAnalysisHandler(svc *service.Finance, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/analysis/payment")
		defer span.End()

		var req paymentAnalysisRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		interestFree := true
		if req.InterestFree != nil {
			interestFree = *req.InterestFree
		}

		cmp, err := svc.AnalyzePayment(ctx, req.CashPrice, req.InstallmentPrice, req.NumInstallments, interestFree)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, cmp)
	}
}

// ============================================================
// 4. Smart Choice — POST /v1/analysis/smart-choice
// ============================================================

// smartChoiceRequest aceita duas formas de capacidade: um profile
// completo OU os valores diretos (available_cash + monthly_capacity).
type smartChoiceRequest struct {
	Profile         *domain.FinancialProfile `json:"profile"`
	AvailableCash   *decimal.Decimal         `json:"available_cash"`
	MonthlyCapacity *decimal.Decimal         `json:"monthly_capacity"`
	Offers          []domain.Offer           `json:"offers"`
}

func smartChoiceHandler(svc *service.Finance, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/analysis/smart-choice")
		defer span.End()
		span.SetAttributes(attribute.Int("offers.count", 0))

		var req smartChoiceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		span.SetAttributes(attribute.Int("offers.count", len(req.Offers)))

		if req.Profile != nil {
			result, err := svc.SmartChoiceForProfile(ctx, *req.Profile, req.Offers)
			if err != nil {
				handleServiceError(w, err, logger)
				return
			}
			writeJSON(w, http.StatusOK, result)
			return
		}

		if req.AvailableCash == nil || req.MonthlyCapacity == nil {
			writeError(w, http.StatusBadRequest, "either profile or available_cash + monthly_capacity is required")
			return
		}

		result, err := svc.RankOffers(ctx, *req.AvailableCash, *req.MonthlyCapacity, req.Offers)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// ============================================================
// 5. Acessibilidade — POST /v1/analysis/affordability
// ============================================================

type affordabilityRequest struct {
	Profile              domain.FinancialProfile `json:"profile"`
	ItemPriceCash        decimal.Decimal         `json:"item_price_cash"`
	ItemPriceInstallment decimal.Decimal         `json:"item_price_installment"`
	InstallmentCount     int                     `json:"installment_count"`
}

func affordabilityHandler(svc *service.Finance, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/analysis/affordability")
		defer span.End()

		var req affordabilityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		res, err := svc.ClassifyAffordability(ctx, req.Profile, req.ItemPriceCash, req.ItemPriceInstallment, req.InstallmentCount)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// ============================================================
// 6. Parcelamento — POST /v1/analysis/installments/{plan,suggest}
// ============================================================

type installmentPlanRequest struct {
	TotalPrice          decimal.Decimal `json:"total_price"`
	NumInstallments     int             `json:"num_installments"`
	MonthlyInterestRate decimal.Decimal `json:"monthly_interest_rate"`
}

func installmentPlanHandler(svc *service.Finance, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/analysis/installments/plan")
		defer span.End()

		var req installmentPlanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		plan, err := svc.BuildInstallmentPlan(ctx, req.TotalPrice, req.NumInstallments, req.MonthlyInterestRate)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, plan)
	}
}

type installmentSuggestRequest struct {
	ItemPrice       decimal.Decimal `json:"item_price"`
	UserBudget      decimal.Decimal `json:"user_budget"`
	MaxInstallments int             `json:"max_installments"`
}

func installmentSuggestHandler(svc *service.Finance, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/analysis/installments/suggest")
		defer span.End()

		var req installmentSuggestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		s, err := svc.SuggestInstallments(ctx, req.ItemPrice, req.UserBudget, req.MaxInstallments)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, s)
	}
}

// ============================================================
// 7. Sugestões de Projeto — POST /v1/projects/suggestions
// ============================================================

type projectSuggestionsRequest struct {
	ProjectName   string   `json:"project_name"`
	ProjectType   string   `json:"project_type"`
	ExistingItems []string `json:"existing_items"`
}

func projectSuggestionsHandler(svc *service.Suggestions, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/projects/suggestions")
		defer span.End()

		var req projectSuggestionsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.ProjectType == "" {
			writeError(w, http.StatusBadRequest, "project_type is required")
			return
		}

		writeJSON(w, http.StatusOK, svc.ForProject(ctx, req.ProjectName, req.ProjectType, req.ExistingItems))
	}
}

// ============================================================
// 8. Cotação — GET /v1/quote/usd
// ============================================================

func quoteHandler(svc *service.Finance, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/quote/usd")
		defer span.End()

		writeJSON(w, http.StatusOK, svc.GetDollarQuote(ctx))
	}
}
