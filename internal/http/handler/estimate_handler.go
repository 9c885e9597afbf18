package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/meridiancg/backoffice-api/internal/domain"
	"github.com/meridiancg/backoffice-api/internal/service"
)

type EstimateHandler struct {
	estimateService *service.EstimateService
	logger          *zap.Logger
}

func NewEstimateHandler(estimateService *service.EstimateService, logger *zap.Logger) *EstimateHandler {
	return &EstimateHandler{estimateService: estimateService, logger: logger}
}

// List godoc
// @Summary List estimates
// @Tags Estimates
// @Produce json
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Page size (max 1000)" default(100)
// @Param opportunityId query string false "Filter by opportunity" format(uuid)
// @Param status query string false "Filter by status" Enums(draft, final)
// @Success 200 {object} domain.ListResponse[domain.EstimateDTO]
// @Security BearerAuth
// @Router /estimates [get]
func (h *EstimateHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit := parsePagination(r)

	opportunityID, err := parseOptionalUUIDQuery(r, "opportunityId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid opportunityId format")
		return
	}

	result, err := h.estimateService.List(r.Context(), skip, limit, opportunityID, r.URL.Query().Get("status"))
	if err != nil {
		respondServiceError(w, h.logger, err, "list estimates")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get estimate by ID
// @Description Includes phases, line items and weekly hour distributions
// @Tags Estimates
// @Produce json
// @Param id path string true "Estimate ID" format(uuid)
// @Success 200 {object} domain.EstimateDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /estimates/{id} [get]
func (h *EstimateHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid estimate ID format")
		return
	}

	estimate, err := h.estimateService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get estimate")
		return
	}

	respondJSON(w, http.StatusOK, estimate)
}

// Create godoc
// @Summary Create estimate
// @Description Creation is rejected once the opportunity is permanently locked
// @Tags Estimates
// @Accept json
// @Produce json
// @Param id path string true "Opportunity ID" format(uuid)
// @Param request body domain.CreateEstimateRequest true "Estimate data"
// @Success 201 {object} domain.EstimateDTO
// @Failure 400 {object} domain.APIError "Opportunity is locked"
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /opportunities/{id}/estimates [post]
func (h *EstimateHandler) Create(w http.ResponseWriter, r *http.Request) {
	opportunityID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid opportunity ID format")
		return
	}

	var req domain.CreateEstimateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	estimate, err := h.estimateService.Create(r.Context(), opportunityID, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create estimate")
		return
	}

	w.Header().Set("Location", "/api/v1/estimates/"+estimate.ID.String())
	respondJSON(w, http.StatusCreated, estimate)
}

// Update godoc
// @Summary Update estimate
// @Description Rejected while the opportunity is locked or an active quote references the estimate
// @Tags Estimates
// @Accept json
// @Produce json
// @Param id path string true "Estimate ID" format(uuid)
// @Param request body domain.UpdateEstimateRequest true "Fields to update"
// @Success 200 {object} domain.EstimateDTO
// @Failure 400 {object} domain.APIError "Estimate is locked"
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /estimates/{id} [put]
func (h *EstimateHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid estimate ID format")
		return
	}

	var req domain.UpdateEstimateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	estimate, err := h.estimateService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update estimate")
		return
	}

	respondJSON(w, http.StatusOK, estimate)
}

// Delete godoc
// @Summary Delete estimate
// @Tags Estimates
// @Param id path string true "Estimate ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError "Estimate is locked"
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /estimates/{id} [delete]
func (h *EstimateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid estimate ID format")
		return
	}

	if err := h.estimateService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete estimate")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreatePhase godoc
// @Summary Add a phase to an estimate
// @Tags Estimates
// @Accept json
// @Produce json
// @Param id path string true "Estimate ID" format(uuid)
// @Param request body domain.CreateEstimatePhaseRequest true "Phase data"
// @Success 201 {object} domain.EstimatePhaseDTO
// @Failure 400 {object} domain.APIError "Estimate is locked"
// @Security BearerAuth
// @Router /estimates/{id}/phases [post]
func (h *EstimateHandler) CreatePhase(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid estimate ID format")
		return
	}

	var req domain.CreateEstimatePhaseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	phase, err := h.estimateService.CreatePhase(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create estimate phase")
		return
	}

	respondJSON(w, http.StatusCreated, phase)
}

// UpdatePhase godoc
// @Summary Update an estimate phase
// @Tags Estimates
// @Accept json
// @Produce json
// @Param phaseId path string true "Phase ID" format(uuid)
// @Param request body domain.UpdateEstimatePhaseRequest true "Fields to update"
// @Success 200 {object} domain.EstimatePhaseDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /estimates/phases/{phaseId} [put]
func (h *EstimateHandler) UpdatePhase(w http.ResponseWriter, r *http.Request) {
	phaseID, err := parseUUIDParam(r, "phaseId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid phase ID format")
		return
	}

	var req domain.UpdateEstimatePhaseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	phase, err := h.estimateService.UpdatePhase(r.Context(), phaseID, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update estimate phase")
		return
	}

	respondJSON(w, http.StatusOK, phase)
}

// DeletePhase godoc
// @Summary Delete an estimate phase
// @Description Remaining phases keep their row order
// @Tags Estimates
// @Param phaseId path string true "Phase ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /estimates/phases/{phaseId} [delete]
func (h *EstimateHandler) DeletePhase(w http.ResponseWriter, r *http.Request) {
	phaseID, err := parseUUIDParam(r, "phaseId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid phase ID format")
		return
	}

	if err := h.estimateService.DeletePhase(r.Context(), phaseID); err != nil {
		respondServiceError(w, h.logger, err, "delete estimate phase")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateLineItem godoc
// @Summary Add a line item to an estimate phase
// @Tags Estimates
// @Accept json
// @Produce json
// @Param phaseId path string true "Phase ID" format(uuid)
// @Param request body domain.CreateEstimateLineItemRequest true "Line item data"
// @Success 201 {object} domain.EstimateLineItemDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /estimates/phases/{phaseId}/line-items [post]
func (h *EstimateHandler) CreateLineItem(w http.ResponseWriter, r *http.Request) {
	phaseID, err := parseUUIDParam(r, "phaseId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid phase ID format")
		return
	}

	var req domain.CreateEstimateLineItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	item, err := h.estimateService.CreateLineItem(r.Context(), phaseID, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create estimate line item")
		return
	}

	respondJSON(w, http.StatusCreated, item)
}

// UpdateLineItem godoc
// @Summary Update an estimate line item
// @Description Supplying weeklyHours replaces the full distribution and recomputes total hours
// @Tags Estimates
// @Accept json
// @Produce json
// @Param itemId path string true "Line item ID" format(uuid)
// @Param request body domain.UpdateEstimateLineItemRequest true "Fields to update"
// @Success 200 {object} domain.EstimateLineItemDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /estimates/line-items/{itemId} [put]
func (h *EstimateHandler) UpdateLineItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := parseUUIDParam(r, "itemId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid line item ID format")
		return
	}

	var req domain.UpdateEstimateLineItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	item, err := h.estimateService.UpdateLineItem(r.Context(), itemID, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update estimate line item")
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// DeleteLineItem godoc
// @Summary Delete an estimate line item
// @Description Remaining line items keep their row order
// @Tags Estimates
// @Param itemId path string true "Line item ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /estimates/line-items/{itemId} [delete]
func (h *EstimateHandler) DeleteLineItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := parseUUIDParam(r, "itemId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid line item ID format")
		return
	}

	if err := h.estimateService.DeleteLineItem(r.Context(), itemID); err != nil {
		respondServiceError(w, h.logger, err, "delete estimate line item")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
