package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/meridiancg/backoffice-api/internal/domain"
	"github.com/meridiancg/backoffice-api/internal/service"
)

type QuoteHandler struct {
	quoteService *service.QuoteService
	logger       *zap.Logger
}

func NewQuoteHandler(quoteService *service.QuoteService, logger *zap.Logger) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService, logger: logger}
}

// List godoc
// @Summary List quotes
// @Tags Quotes
// @Produce json
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Page size (max 1000)" default(100)
// @Param opportunityId query string false "Filter by opportunity" format(uuid)
// @Param status query string false "Filter by status" Enums(draft, active, inactive)
// @Success 200 {object} domain.ListResponse[domain.QuoteDTO]
// @Security BearerAuth
// @Router /quotes [get]
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit := parsePagination(r)

	opportunityID, err := parseOptionalUUIDQuery(r, "opportunityId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid opportunityId format")
		return
	}

	result, err := h.quoteService.List(r.Context(), skip, limit, opportunityID, r.URL.Query().Get("status"))
	if err != nil {
		respondServiceError(w, h.logger, err, "list quotes")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get quote by ID
// @Description Includes phases, line items, payment triggers and variable compensation
// @Tags Quotes
// @Produce json
// @Param id path string true "Quote ID" format(uuid)
// @Success 200 {object} domain.QuoteDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /quotes/{id} [get]
func (h *QuoteHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID format")
		return
	}

	quote, err := h.quoteService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get quote")
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

// Create godoc
// @Summary Create quote
// @Description Creates a draft quote for the opportunity, optionally copying structure from a source estimate. The display name and version are assigned automatically.
// @Tags Quotes
// @Accept json
// @Produce json
// @Param id path string true "Opportunity ID" format(uuid)
// @Param request body domain.CreateQuoteRequest true "Quote data"
// @Success 201 {object} domain.QuoteDTO
// @Failure 400 {object} domain.APIError "Opportunity is locked"
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /opportunities/{id}/quotes [post]
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	opportunityID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid opportunity ID format")
		return
	}

	var req domain.CreateQuoteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	quote, err := h.quoteService.Create(r.Context(), opportunityID, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create quote")
		return
	}

	w.Header().Set("Location", "/api/v1/quotes/"+quote.ID.String())
	respondJSON(w, http.StatusCreated, quote)
}

// Update godoc
// @Summary Update quote
// @Tags Quotes
// @Accept json
// @Produce json
// @Param id path string true "Quote ID" format(uuid)
// @Param request body domain.UpdateQuoteRequest true "Fields to update"
// @Success 200 {object} domain.QuoteDTO
// @Failure 400 {object} domain.APIError "Opportunity is locked"
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /quotes/{id} [put]
func (h *QuoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID format")
		return
	}

	var req domain.UpdateQuoteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	quote, err := h.quoteService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update quote")
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

// Delete godoc
// @Summary Delete quote
// @Description Active quotes must be deactivated first
// @Tags Quotes
// @Param id path string true "Quote ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /quotes/{id} [delete]
func (h *QuoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID format")
		return
	}

	if err := h.quoteService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete quote")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Activate godoc
// @Summary Activate quote
// @Description Transitions a draft quote to active. Only one quote per opportunity can be active; activation locks the source estimate.
// @Tags Quotes
// @Produce json
// @Param id path string true "Quote ID" format(uuid)
// @Success 200 {object} domain.QuoteDTO
// @Failure 400 {object} domain.APIError "Invalid transition"
// @Failure 409 {object} domain.APIError "Another quote is already active"
// @Security BearerAuth
// @Router /quotes/{id}/activate [post]
func (h *QuoteHandler) Activate(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID format")
		return
	}

	quote, err := h.quoteService.Activate(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "activate quote")
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

// Deactivate godoc
// @Summary Deactivate quote
// @Description Transitions an active quote to inactive and releases its estimate lock
// @Tags Quotes
// @Produce json
// @Param id path string true "Quote ID" format(uuid)
// @Success 200 {object} domain.QuoteDTO
// @Failure 400 {object} domain.APIError "Invalid transition"
// @Security BearerAuth
// @Router /quotes/{id}/deactivate [post]
func (h *QuoteHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID format")
		return
	}

	quote, err := h.quoteService.Deactivate(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "deactivate quote")
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

// UpdateApproval godoc
// @Summary Decide a quote's approval
// @Description Moves a pending quote to approved or rejected; a decision is final
// @Tags Quotes
// @Accept json
// @Produce json
// @Param id path string true "Quote ID" format(uuid)
// @Param request body domain.UpdateQuoteApprovalRequest true "Approval decision"
// @Success 200 {object} domain.QuoteDTO
// @Failure 400 {object} domain.APIError "Invalid transition"
// @Security BearerAuth
// @Router /quotes/{id}/approval [put]
func (h *QuoteHandler) UpdateApproval(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID format")
		return
	}

	var req domain.UpdateQuoteApprovalRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	quote, err := h.quoteService.UpdateApproval(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update quote approval")
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

// CreatePhase godoc
// @Summary Add a phase to a quote
// @Tags Quotes
// @Accept json
// @Produce json
// @Param id path string true "Quote ID" format(uuid)
// @Param request body domain.CreateQuotePhaseRequest true "Phase data"
// @Success 201 {object} domain.QuotePhaseDTO
// @Failure 400 {object} domain.APIError "Opportunity is locked"
// @Security BearerAuth
// @Router /quotes/{id}/phases [post]
func (h *QuoteHandler) CreatePhase(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID format")
		return
	}

	var req domain.CreateQuotePhaseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	phase, err := h.quoteService.CreatePhase(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create quote phase")
		return
	}

	respondJSON(w, http.StatusCreated, phase)
}

// UpdatePhase godoc
// @Summary Update a quote phase
// @Tags Quotes
// @Accept json
// @Produce json
// @Param phaseId path string true "Phase ID" format(uuid)
// @Param request body domain.UpdateQuotePhaseRequest true "Fields to update"
// @Success 200 {object} domain.QuotePhaseDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /quotes/phases/{phaseId} [put]
func (h *QuoteHandler) UpdatePhase(w http.ResponseWriter, r *http.Request) {
	phaseID, err := parseUUIDParam(r, "phaseId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid phase ID format")
		return
	}

	var req domain.UpdateQuotePhaseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	phase, err := h.quoteService.UpdatePhase(r.Context(), phaseID, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update quote phase")
		return
	}

	respondJSON(w, http.StatusOK, phase)
}

// DeletePhase godoc
// @Summary Delete a quote phase
// @Tags Quotes
// @Param phaseId path string true "Phase ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /quotes/phases/{phaseId} [delete]
func (h *QuoteHandler) DeletePhase(w http.ResponseWriter, r *http.Request) {
	phaseID, err := parseUUIDParam(r, "phaseId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid phase ID format")
		return
	}

	if err := h.quoteService.DeletePhase(r.Context(), phaseID); err != nil {
		respondServiceError(w, h.logger, err, "delete quote phase")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateLineItem godoc
// @Summary Add a line item to a quote phase
// @Tags Quotes
// @Accept json
// @Produce json
// @Param phaseId path string true "Phase ID" format(uuid)
// @Param request body domain.CreateQuoteLineItemRequest true "Line item data"
// @Success 201 {object} domain.QuoteLineItemDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /quotes/phases/{phaseId}/line-items [post]
func (h *QuoteHandler) CreateLineItem(w http.ResponseWriter, r *http.Request) {
	phaseID, err := parseUUIDParam(r, "phaseId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid phase ID format")
		return
	}

	var req domain.CreateQuoteLineItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	item, err := h.quoteService.CreateLineItem(r.Context(), phaseID, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create quote line item")
		return
	}

	respondJSON(w, http.StatusCreated, item)
}

// UpdateLineItem godoc
// @Summary Update a quote line item
// @Tags Quotes
// @Accept json
// @Produce json
// @Param itemId path string true "Line item ID" format(uuid)
// @Param request body domain.UpdateQuoteLineItemRequest true "Fields to update"
// @Success 200 {object} domain.QuoteLineItemDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /quotes/line-items/{itemId} [put]
func (h *QuoteHandler) UpdateLineItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := parseUUIDParam(r, "itemId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid line item ID format")
		return
	}

	var req domain.UpdateQuoteLineItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	item, err := h.quoteService.UpdateLineItem(r.Context(), itemID, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update quote line item")
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// DeleteLineItem godoc
// @Summary Delete a quote line item
// @Tags Quotes
// @Param itemId path string true "Line item ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /quotes/line-items/{itemId} [delete]
func (h *QuoteHandler) DeleteLineItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := parseUUIDParam(r, "itemId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid line item ID format")
		return
	}

	if err := h.quoteService.DeleteLineItem(r.Context(), itemID); err != nil {
		respondServiceError(w, h.logger, err, "delete quote line item")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreatePaymentTrigger godoc
// @Summary Add a payment trigger to a quote
// @Tags Quotes
// @Accept json
// @Produce json
// @Param id path string true "Quote ID" format(uuid)
// @Param request body domain.CreateQuotePaymentTriggerRequest true "Payment trigger data"
// @Success 201 {object} domain.QuotePaymentTriggerDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /quotes/{id}/payment-triggers [post]
func (h *QuoteHandler) CreatePaymentTrigger(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID format")
		return
	}

	var req domain.CreateQuotePaymentTriggerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	trigger, err := h.quoteService.CreatePaymentTrigger(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create payment trigger")
		return
	}

	respondJSON(w, http.StatusCreated, trigger)
}

// UpdatePaymentTrigger godoc
// @Summary Update a payment trigger
// @Tags Quotes
// @Accept json
// @Produce json
// @Param triggerId path string true "Payment trigger ID" format(uuid)
// @Param request body domain.UpdateQuotePaymentTriggerRequest true "Fields to update"
// @Success 200 {object} domain.QuotePaymentTriggerDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /quotes/payment-triggers/{triggerId} [put]
func (h *QuoteHandler) UpdatePaymentTrigger(w http.ResponseWriter, r *http.Request) {
	triggerID, err := parseUUIDParam(r, "triggerId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid payment trigger ID format")
		return
	}

	var req domain.UpdateQuotePaymentTriggerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	trigger, err := h.quoteService.UpdatePaymentTrigger(r.Context(), triggerID, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update payment trigger")
		return
	}

	respondJSON(w, http.StatusOK, trigger)
}

// DeletePaymentTrigger godoc
// @Summary Delete a payment trigger
// @Tags Quotes
// @Param triggerId path string true "Payment trigger ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /quotes/payment-triggers/{triggerId} [delete]
func (h *QuoteHandler) DeletePaymentTrigger(w http.ResponseWriter, r *http.Request) {
	triggerID, err := parseUUIDParam(r, "triggerId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid payment trigger ID format")
		return
	}

	if err := h.quoteService.DeletePaymentTrigger(r.Context(), triggerID); err != nil {
		respondServiceError(w, h.logger, err, "delete payment trigger")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateVariableCompensation godoc
// @Summary Add a variable compensation component to a quote
// @Tags Quotes
// @Accept json
// @Produce json
// @Param id path string true "Quote ID" format(uuid)
// @Param request body domain.CreateQuoteVariableCompensationRequest true "Variable compensation data"
// @Success 201 {object} domain.QuoteVariableCompensationDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /quotes/{id}/variable-compensation [post]
func (h *QuoteHandler) CreateVariableCompensation(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID format")
		return
	}

	var req domain.CreateQuoteVariableCompensationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	comp, err := h.quoteService.CreateVariableCompensation(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create variable compensation")
		return
	}

	respondJSON(w, http.StatusCreated, comp)
}

// UpdateVariableCompensation godoc
// @Summary Update a variable compensation component
// @Tags Quotes
// @Accept json
// @Produce json
// @Param compId path string true "Component ID" format(uuid)
// @Param request body domain.UpdateQuoteVariableCompensationRequest true "Fields to update"
// @Success 200 {object} domain.QuoteVariableCompensationDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /quotes/variable-compensation/{compId} [put]
func (h *QuoteHandler) UpdateVariableCompensation(w http.ResponseWriter, r *http.Request) {
	compID, err := parseUUIDParam(r, "compId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid component ID format")
		return
	}

	var req domain.UpdateQuoteVariableCompensationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	comp, err := h.quoteService.UpdateVariableCompensation(r.Context(), compID, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update variable compensation")
		return
	}

	respondJSON(w, http.StatusOK, comp)
}

// DeleteVariableCompensation godoc
// @Summary Delete a variable compensation component
// @Tags Quotes
// @Param compId path string true "Component ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /quotes/variable-compensation/{compId} [delete]
func (h *QuoteHandler) DeleteVariableCompensation(w http.ResponseWriter, r *http.Request) {
	compID, err := parseUUIDParam(r, "compId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid component ID format")
		return
	}

	if err := h.quoteService.DeleteVariableCompensation(r.Context(), compID); err != nil {
		respondServiceError(w, h.logger, err, "delete variable compensation")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
