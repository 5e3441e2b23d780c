package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jmolenaar/etf-tracker-backend/internal/api/response"
	"github.com/jmolenaar/etf-tracker-backend/internal/apperrors"
	"github.com/jmolenaar/etf-tracker-backend/internal/service"
)

// PriceHandler handles HTTP requests for price refresh and history
// endpoints. It serves as the HTTP layer adapter, delegating business
// logic to the priceService.
type PriceHandler struct {
	priceService *service.PriceService
}

// NewPriceHandler creates a new PriceHandler with the provided service dependency.
func NewPriceHandler(priceService *service.PriceService) *PriceHandler {
	return &PriceHandler{
		priceService: priceService,
	}
}

// Refresh handles POST requests to fetch and store a current price for every
// configured ETF. Per-symbol failures are reported in the response body and
// never fail the refresh as a whole.
//
// Endpoint: POST /api/prices/refresh
// Response: 200 OK with RefreshResult (updated symbols, per-symbol failures)
// Error: 500 Internal Server Error if configuration or storage access fails
func (h *PriceHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	result, err := h.priceService.RefreshAll(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRefreshPrices.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// History handles GET requests to retrieve the stored quote trail for a
// configured symbol, newest first.
//
// Endpoint: GET /api/prices/{symbol}
// Response: 200 OK with array of PriceQuote
// Error: 404 Not Found if the symbol is not configured or has no quotes
// Error: 500 Internal Server Error if retrieval fails
func (h *PriceHandler) History(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	quotes, err := h.priceService.History(symbol)
	if err != nil {
		if errors.Is(err, apperrors.ErrETFNotFound) || errors.Is(err, apperrors.ErrQuoteNotFound) {
			response.RespondError(w, http.StatusNotFound, err.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveQuotes.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, quotes)
}
