package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jmolenaar/etf-tracker-backend/internal/api/request"
	"github.com/jmolenaar/etf-tracker-backend/internal/api/response"
	"github.com/jmolenaar/etf-tracker-backend/internal/apperrors"
	"github.com/jmolenaar/etf-tracker-backend/internal/service"
	"github.com/jmolenaar/etf-tracker-backend/internal/validation"
)

// ETFHandler handles HTTP requests for ETF configuration endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the etfService.
type ETFHandler struct {
	etfService *service.ETFService
}

// NewETFHandler creates a new ETFHandler with the provided service dependency.
func NewETFHandler(etfService *service.ETFService) *ETFHandler {
	return &ETFHandler{
		etfService: etfService,
	}
}

// ETFs handles GET requests to retrieve all configured ETFs.
//
// Endpoint: GET /api/etf
// Response: 200 OK with array of ETF
// Error: 500 Internal Server Error if retrieval fails
func (h *ETFHandler) ETFs(w http.ResponseWriter, _ *http.Request) {
	etfs, err := h.etfService.ListETFs()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveETFs.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, etfs)
}

// GetETF handles GET requests to retrieve a single ETF by symbol.
//
// Endpoint: GET /api/etf/{symbol}
// Response: 200 OK with ETF
// Error: 404 Not Found if the symbol is not configured
// Error: 500 Internal Server Error if retrieval fails
func (h *ETFHandler) GetETF(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	etf, err := h.etfService.GetETF(symbol)
	if err != nil {
		if errors.Is(err, apperrors.ErrETFNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrETFNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveETFs.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, etf)
}

// CreateETF handles POST requests to add an ETF to the configuration.
//
// Endpoint: POST /api/etf
// Request Body: CreateETFRequest (symbol, displayName, targetPercent, fractionable)
// Response: 201 Created with ETF
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 409 Conflict if the symbol already exists
// Error: 500 Internal Server Error if creation fails
func (h *ETFHandler) CreateETF(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateETFRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateETF(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	etf, err := h.etfService.CreateETF(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateETF) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrDuplicateETF.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create etf", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, etf)
}

// UpdateETF handles PUT requests to update an existing ETF.
//
// Endpoint: PUT /api/etf/{symbol}
// Request Body: UpdateETFRequest (all fields optional)
// Response: 200 OK with updated ETF
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the symbol is not configured
// Error: 500 Internal Server Error if the update fails
func (h *ETFHandler) UpdateETF(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	req, err := parseJSON[request.UpdateETFRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateETF(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	etf, err := h.etfService.UpdateETF(r.Context(), symbol, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrETFNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrETFNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update etf", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, etf)
}

// DeleteETF handles DELETE requests to remove an ETF from the configuration.
// ETFs that ledger records reference cannot be deleted.
//
// Endpoint: DELETE /api/etf/{symbol}
// Response: 204 No Content on successful deletion
// Error: 404 Not Found if the symbol is not configured
// Error: 409 Conflict if transactions still reference the ETF
// Error: 500 Internal Server Error if deletion fails
func (h *ETFHandler) DeleteETF(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	err := h.etfService.DeleteETF(r.Context(), symbol)
	if err != nil {
		if errors.Is(err, apperrors.ErrETFNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrETFNotFound.Error(), err.Error())
			return
		}
		if errors.Is(err, apperrors.ErrETFInUse) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrETFInUse.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete etf", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
