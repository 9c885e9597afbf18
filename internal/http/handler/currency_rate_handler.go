package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/meridiancg/backoffice-api/internal/domain"
	"github.com/meridiancg/backoffice-api/internal/service"
)

type CurrencyRateHandler struct {
	currencyRateService *service.CurrencyRateService
	logger              *zap.Logger
}

func NewCurrencyRateHandler(currencyRateService *service.CurrencyRateService, logger *zap.Logger) *CurrencyRateHandler {
	return &CurrencyRateHandler{currencyRateService: currencyRateService, logger: logger}
}

// List godoc
// @Summary List currency rates
// @Tags CurrencyRates
// @Produce json
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Page size (max 1000)" default(100)
// @Param from query string false "Filter by source currency"
// @Param to query string false "Filter by target currency"
// @Param source query string false "Filter by rate source" Enums(manual, warehouse)
// @Success 200 {object} domain.ListResponse[domain.CurrencyRateDTO]
// @Security BearerAuth
// @Router /currency-rates [get]
func (h *CurrencyRateHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit := parsePagination(r)

	result, err := h.currencyRateService.List(r.Context(), skip, limit,
		r.URL.Query().Get("from"),
		r.URL.Query().Get("to"),
		r.URL.Query().Get("source"))
	if err != nil {
		respondServiceError(w, h.logger, err, "list currency rates")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetLatest godoc
// @Summary Get the latest rate for a currency pair
// @Description Returns the most recent rate effective on or before asOf (default today)
// @Tags CurrencyRates
// @Produce json
// @Param from query string true "Source currency"
// @Param to query string true "Target currency"
// @Param asOf query string false "Effective date" format(date)
// @Success 200 {object} domain.CurrencyRateDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /currency-rates/latest [get]
func (h *CurrencyRateHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		respondWithError(w, http.StatusBadRequest, "Query parameters 'from' and 'to' are required")
		return
	}

	rate, err := h.currencyRateService.GetLatest(r.Context(), from, to, r.URL.Query().Get("asOf"))
	if err != nil {
		respondServiceError(w, h.logger, err, "get latest currency rate")
		return
	}

	respondJSON(w, http.StatusOK, rate)
}

// GetByID godoc
// @Summary Get currency rate by ID
// @Tags CurrencyRates
// @Produce json
// @Param id path string true "Rate ID" format(uuid)
// @Success 200 {object} domain.CurrencyRateDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /currency-rates/{id} [get]
func (h *CurrencyRateHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid rate ID format")
		return
	}

	rate, err := h.currencyRateService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get currency rate")
		return
	}

	respondJSON(w, http.StatusOK, rate)
}

// Create godoc
// @Summary Create currency rate
// @Tags CurrencyRates
// @Accept json
// @Produce json
// @Param request body domain.CreateCurrencyRateRequest true "Rate data"
// @Success 201 {object} domain.CurrencyRateDTO
// @Failure 409 {object} domain.APIError "Duplicate pair and date"
// @Security BearerAuth
// @Router /currency-rates [post]
func (h *CurrencyRateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCurrencyRateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	rate, err := h.currencyRateService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create currency rate")
		return
	}

	respondJSON(w, http.StatusCreated, rate)
}

// Update godoc
// @Summary Update currency rate
// @Tags CurrencyRates
// @Accept json
// @Produce json
// @Param id path string true "Rate ID" format(uuid)
// @Param request body domain.UpdateCurrencyRateRequest true "Fields to update"
// @Success 200 {object} domain.CurrencyRateDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /currency-rates/{id} [put]
func (h *CurrencyRateHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid rate ID format")
		return
	}

	var req domain.UpdateCurrencyRateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	rate, err := h.currencyRateService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update currency rate")
		return
	}

	respondJSON(w, http.StatusOK, rate)
}

// Delete godoc
// @Summary Delete currency rate
// @Tags CurrencyRates
// @Param id path string true "Rate ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /currency-rates/{id} [delete]
func (h *CurrencyRateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid rate ID format")
		return
	}

	if err := h.currencyRateService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete currency rate")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
