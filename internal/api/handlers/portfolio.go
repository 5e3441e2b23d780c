package handlers

import (
	"errors"
	"net/http"

	"github.com/jmolenaar/etf-tracker-backend/internal/api/request"
	"github.com/jmolenaar/etf-tracker-backend/internal/api/response"
	"github.com/jmolenaar/etf-tracker-backend/internal/apperrors"
	"github.com/jmolenaar/etf-tracker-backend/internal/service"
)

// PortfolioHandler handles HTTP requests for valuation and planning
// endpoints. It serves as the HTTP layer adapter, parsing requests and
// delegating business logic to the portfolioService.
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependency.
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// Snapshot handles GET requests to value the portfolio at the latest stored
// prices. Held symbols without a price appear in missingPrices; the rest of
// the snapshot is still returned.
//
// Endpoint: GET /api/portfolio/snapshot
// Response: 200 OK with PortfolioSnapshot
// Error: 500 Internal Server Error if assembly fails
func (h *PortfolioHandler) Snapshot(w http.ResponseWriter, _ *http.Request) {
	snapshot, err := h.portfolioService.Snapshot()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToBuildSnapshot.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshot)
}

// Plan handles POST requests to compute a rebalance plan for an amount of
// investable cash.
//
// Endpoint: POST /api/portfolio/plan
// Request Body: PlanRequest (cashToInvest)
// Response: 200 OK with RebalancePlan
// Error: 400 Bad Request if the body is invalid, targets do not sum to 100,
// or the cash amount is negative
// Error: 422 Unprocessable Entity if an underweight ETF has no price
// Error: 500 Internal Server Error if assembly fails
func (h *PortfolioHandler) Plan(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.PlanRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	plan, err := h.portfolioService.Plan(req.CashToInvest)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidTargets), errors.Is(err, apperrors.ErrNegativeCash):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrFailedToBuildPlan.Error(), err.Error())
		case errors.Is(err, apperrors.ErrMissingPriceForUnderweight):
			response.RespondError(w, http.StatusUnprocessableEntity, apperrors.ErrMissingPriceForUnderweight.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToBuildPlan.Error(), err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, plan)
}
