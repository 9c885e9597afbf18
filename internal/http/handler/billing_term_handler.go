package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/meridiancg/backoffice-api/internal/domain"
	"github.com/meridiancg/backoffice-api/internal/service"
)

type BillingTermHandler struct {
	billingTermService *service.BillingTermService
	logger             *zap.Logger
}

func NewBillingTermHandler(billingTermService *service.BillingTermService, logger *zap.Logger) *BillingTermHandler {
	return &BillingTermHandler{billingTermService: billingTermService, logger: logger}
}

// List godoc
// @Summary List billing terms
// @Tags BillingTerms
// @Produce json
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Page size (max 1000)" default(100)
// @Param activeOnly query bool false "Only active terms"
// @Success 200 {object} domain.ListResponse[domain.BillingTermDTO]
// @Security BearerAuth
// @Router /billing-terms [get]
func (h *BillingTermHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit := parsePagination(r)
	activeOnly := r.URL.Query().Get("activeOnly") == "true"

	result, err := h.billingTermService.List(r.Context(), skip, limit, activeOnly)
	if err != nil {
		respondServiceError(w, h.logger, err, "list billing terms")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get billing term by ID
// @Tags BillingTerms
// @Produce json
// @Param id path string true "Billing term ID" format(uuid)
// @Success 200 {object} domain.BillingTermDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /billing-terms/{id} [get]
func (h *BillingTermHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid billing term ID format")
		return
	}

	term, err := h.billingTermService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get billing term")
		return
	}

	respondJSON(w, http.StatusOK, term)
}

// Create godoc
// @Summary Create billing term
// @Tags BillingTerms
// @Accept json
// @Produce json
// @Param request body domain.CreateBillingTermRequest true "Billing term data"
// @Success 201 {object} domain.BillingTermDTO
// @Failure 409 {object} domain.APIError "Duplicate code"
// @Security BearerAuth
// @Router /billing-terms [post]
func (h *BillingTermHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateBillingTermRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	term, err := h.billingTermService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create billing term")
		return
	}

	w.Header().Set("Location", "/api/v1/billing-terms/"+term.ID.String())
	respondJSON(w, http.StatusCreated, term)
}

// Update godoc
// @Summary Update billing term
// @Tags BillingTerms
// @Accept json
// @Produce json
// @Param id path string true "Billing term ID" format(uuid)
// @Param request body domain.UpdateBillingTermRequest true "Fields to update"
// @Success 200 {object} domain.BillingTermDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /billing-terms/{id} [put]
func (h *BillingTermHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid billing term ID format")
		return
	}

	var req domain.UpdateBillingTermRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	term, err := h.billingTermService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update billing term")
		return
	}

	respondJSON(w, http.StatusOK, term)
}

// Delete godoc
// @Summary Delete billing term
// @Description Deletion is rejected while any account references the term
// @Tags BillingTerms
// @Param id path string true "Billing term ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError "Term is in use"
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /billing-terms/{id} [delete]
func (h *BillingTermHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid billing term ID format")
		return
	}

	if err := h.billingTermService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete billing term")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
