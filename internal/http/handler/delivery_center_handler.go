package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/meridiancg/backoffice-api/internal/domain"
	"github.com/meridiancg/backoffice-api/internal/service"
)

type DeliveryCenterHandler struct {
	deliveryCenterService *service.DeliveryCenterService
	logger                *zap.Logger
}

func NewDeliveryCenterHandler(deliveryCenterService *service.DeliveryCenterService, logger *zap.Logger) *DeliveryCenterHandler {
	return &DeliveryCenterHandler{deliveryCenterService: deliveryCenterService, logger: logger}
}

// List godoc
// @Summary List delivery centers
// @Tags DeliveryCenters
// @Produce json
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Page size (max 1000)" default(100)
// @Param activeOnly query bool false "Only active centers"
// @Success 200 {object} domain.ListResponse[domain.DeliveryCenterDTO]
// @Security BearerAuth
// @Router /delivery-centers [get]
func (h *DeliveryCenterHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit := parsePagination(r)
	activeOnly := r.URL.Query().Get("activeOnly") == "true"

	result, err := h.deliveryCenterService.List(r.Context(), skip, limit, activeOnly)
	if err != nil {
		respondServiceError(w, h.logger, err, "list delivery centers")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get delivery center by ID
// @Tags DeliveryCenters
// @Produce json
// @Param id path string true "Delivery center ID" format(uuid)
// @Success 200 {object} domain.DeliveryCenterDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /delivery-centers/{id} [get]
func (h *DeliveryCenterHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid delivery center ID format")
		return
	}

	dc, err := h.deliveryCenterService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get delivery center")
		return
	}

	respondJSON(w, http.StatusOK, dc)
}

// Create godoc
// @Summary Create delivery center
// @Tags DeliveryCenters
// @Accept json
// @Produce json
// @Param request body domain.CreateDeliveryCenterRequest true "Delivery center data"
// @Success 201 {object} domain.DeliveryCenterDTO
// @Failure 409 {object} domain.APIError "Duplicate code"
// @Security BearerAuth
// @Router /delivery-centers [post]
func (h *DeliveryCenterHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateDeliveryCenterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	dc, err := h.deliveryCenterService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create delivery center")
		return
	}

	w.Header().Set("Location", "/api/v1/delivery-centers/"+dc.ID.String())
	respondJSON(w, http.StatusCreated, dc)
}

// Update godoc
// @Summary Update delivery center
// @Tags DeliveryCenters
// @Accept json
// @Produce json
// @Param id path string true "Delivery center ID" format(uuid)
// @Param request body domain.UpdateDeliveryCenterRequest true "Fields to update"
// @Success 200 {object} domain.DeliveryCenterDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /delivery-centers/{id} [put]
func (h *DeliveryCenterHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid delivery center ID format")
		return
	}

	var req domain.UpdateDeliveryCenterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	dc, err := h.deliveryCenterService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update delivery center")
		return
	}

	respondJSON(w, http.StatusOK, dc)
}

// Delete godoc
// @Summary Delete delivery center
// @Tags DeliveryCenters
// @Param id path string true "Delivery center ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /delivery-centers/{id} [delete]
func (h *DeliveryCenterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid delivery center ID format")
		return
	}

	if err := h.deliveryCenterService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete delivery center")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListApprovers godoc
// @Summary List a delivery center's approvers
// @Tags DeliveryCenters
// @Produce json
// @Param id path string true "Delivery center ID" format(uuid)
// @Success 200 {array} domain.DeliveryCenterApproverDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /delivery-centers/{id}/approvers [get]
func (h *DeliveryCenterHandler) ListApprovers(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid delivery center ID format")
		return
	}

	approvers, err := h.deliveryCenterService.ListApprovers(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "list delivery center approvers")
		return
	}

	respondJSON(w, http.StatusOK, approvers)
}

// AddApprover godoc
// @Summary Add an approver to a delivery center
// @Tags DeliveryCenters
// @Accept json
// @Produce json
// @Param id path string true "Delivery center ID" format(uuid)
// @Param request body domain.AddDeliveryCenterApproverRequest true "Approver data"
// @Success 201 {object} domain.DeliveryCenterApproverDTO
// @Failure 409 {object} domain.APIError "Already an approver"
// @Security BearerAuth
// @Router /delivery-centers/{id}/approvers [post]
func (h *DeliveryCenterHandler) AddApprover(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid delivery center ID format")
		return
	}

	var req domain.AddDeliveryCenterApproverRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	approver, err := h.deliveryCenterService.AddApprover(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "add delivery center approver")
		return
	}

	respondJSON(w, http.StatusCreated, approver)
}

// RemoveApprover godoc
// @Summary Remove an approver from a delivery center
// @Tags DeliveryCenters
// @Param id path string true "Delivery center ID" format(uuid)
// @Param employeeId path string true "Employee ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /delivery-centers/{id}/approvers/{employeeId} [delete]
func (h *DeliveryCenterHandler) RemoveApprover(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid delivery center ID format")
		return
	}
	employeeID, err := parseUUIDParam(r, "employeeId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid employee ID format")
		return
	}

	if err := h.deliveryCenterService.RemoveApprover(r.Context(), id, employeeID); err != nil {
		respondServiceError(w, h.logger, err, "remove delivery center approver")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
