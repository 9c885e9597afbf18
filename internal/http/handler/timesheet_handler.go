package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meridiancg/backoffice-api/internal/domain"
	"github.com/meridiancg/backoffice-api/internal/service"
)

type TimesheetHandler struct {
	timesheetService *service.TimesheetService
	logger           *zap.Logger
}

func NewTimesheetHandler(timesheetService *service.TimesheetService, logger *zap.Logger) *TimesheetHandler {
	return &TimesheetHandler{timesheetService: timesheetService, logger: logger}
}

// List godoc
// @Summary List timesheets
// @Tags Timesheets
// @Produce json
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Page size (max 1000)" default(100)
// @Param employeeId query string false "Filter by employee" format(uuid)
// @Param status query string false "Filter by status" Enums(draft, submitted, approved, rejected)
// @Param weekStartDate query string false "Filter by week" format(date)
// @Success 200 {object} domain.ListResponse[domain.TimesheetDTO]
// @Security BearerAuth
// @Router /timesheets [get]
func (h *TimesheetHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit := parsePagination(r)

	employeeID, err := parseOptionalUUIDQuery(r, "employeeId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid employeeId format")
		return
	}

	result, err := h.timesheetService.List(r.Context(), skip, limit, employeeID,
		r.URL.Query().Get("status"), r.URL.Query().Get("weekStartDate"))
	if err != nil {
		respondServiceError(w, h.logger, err, "list timesheets")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get timesheet by ID
// @Description Includes entries and the full status history
// @Tags Timesheets
// @Produce json
// @Param id path string true "Timesheet ID" format(uuid)
// @Success 200 {object} domain.TimesheetDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /timesheets/{id} [get]
func (h *TimesheetHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid timesheet ID format")
		return
	}

	timesheet, err := h.timesheetService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get timesheet")
		return
	}

	respondJSON(w, http.StatusOK, timesheet)
}

// Create godoc
// @Summary Create timesheet
// @Description One timesheet per employee per week
// @Tags Timesheets
// @Accept json
// @Produce json
// @Param request body domain.CreateTimesheetRequest true "Timesheet data"
// @Success 201 {object} domain.TimesheetDTO
// @Failure 409 {object} domain.APIError "Week already has a timesheet"
// @Security BearerAuth
// @Router /timesheets [post]
func (h *TimesheetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateTimesheetRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	timesheet, err := h.timesheetService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create timesheet")
		return
	}

	w.Header().Set("Location", "/api/v1/timesheets/"+timesheet.ID.String())
	respondJSON(w, http.StatusCreated, timesheet)
}

// Delete godoc
// @Summary Delete timesheet
// @Description Approved timesheets cannot be deleted
// @Tags Timesheets
// @Param id path string true "Timesheet ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError "Timesheet is approved"
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /timesheets/{id} [delete]
func (h *TimesheetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid timesheet ID format")
		return
	}

	if err := h.timesheetService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete timesheet")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Submit godoc
// @Summary Submit timesheet for approval
// @Tags Timesheets
// @Produce json
// @Param id path string true "Timesheet ID" format(uuid)
// @Success 200 {object} domain.TimesheetDTO
// @Failure 400 {object} domain.APIError "Invalid transition"
// @Security BearerAuth
// @Router /timesheets/{id}/submit [post]
func (h *TimesheetHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid timesheet ID format")
		return
	}

	timesheet, err := h.timesheetService.Submit(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "submit timesheet")
		return
	}

	respondJSON(w, http.StatusOK, timesheet)
}

// Approve godoc
// @Summary Approve a submitted timesheet
// @Description Freezes an approval snapshot and makes the timesheet immutable
// @Tags Timesheets
// @Accept json
// @Produce json
// @Param id path string true "Timesheet ID" format(uuid)
// @Param request body domain.DecideTimesheetRequest false "Optional comment"
// @Success 200 {object} domain.TimesheetDTO
// @Failure 400 {object} domain.APIError "Invalid transition"
// @Security BearerAuth
// @Router /timesheets/{id}/approve [post]
func (h *TimesheetHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.timesheetService.Approve, "approve timesheet")
}

// Reject godoc
// @Summary Reject a submitted timesheet
// @Tags Timesheets
// @Accept json
// @Produce json
// @Param id path string true "Timesheet ID" format(uuid)
// @Param request body domain.DecideTimesheetRequest false "Optional comment"
// @Success 200 {object} domain.TimesheetDTO
// @Failure 400 {object} domain.APIError "Invalid transition"
// @Security BearerAuth
// @Router /timesheets/{id}/reject [post]
func (h *TimesheetHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.timesheetService.Reject, "reject timesheet")
}

type decideFn func(ctx context.Context, id uuid.UUID, req *domain.DecideTimesheetRequest) (*domain.TimesheetDTO, error)

func (h *TimesheetHandler) decide(w http.ResponseWriter, r *http.Request, fn decideFn, action string) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid timesheet ID format")
		return
	}

	var req domain.DecideTimesheetRequest
	if r.ContentLength > 0 {
		if !decodeAndValidate(w, r, &req) {
			return
		}
	}

	timesheet, err := fn(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, action)
		return
	}

	respondJSON(w, http.StatusOK, timesheet)
}

// GetSnapshot godoc
// @Summary Get a timesheet's approval snapshot
// @Description Returns the content frozen at approval time
// @Tags Timesheets
// @Produce json
// @Param id path string true "Timesheet ID" format(uuid)
// @Success 200 {object} domain.TimesheetDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /timesheets/{id}/snapshot [get]
func (h *TimesheetHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid timesheet ID format")
		return
	}

	snapshot, err := h.timesheetService.GetSnapshot(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get timesheet snapshot")
		return
	}

	respondJSON(w, http.StatusOK, snapshot)
}

// ListEntries godoc
// @Summary List a timesheet's entries
// @Tags Timesheets
// @Produce json
// @Param id path string true "Timesheet ID" format(uuid)
// @Success 200 {array} domain.TimesheetEntryDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /timesheets/{id}/entries [get]
func (h *TimesheetHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid timesheet ID format")
		return
	}

	entries, err := h.timesheetService.ListEntries(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "list timesheet entries")
		return
	}

	respondJSON(w, http.StatusOK, entries)
}

// CreateEntry godoc
// @Summary Add an entry to a timesheet
// @Description The first entry with nonzero hours permanently locks the referenced opportunity
// @Tags Timesheets
// @Accept json
// @Produce json
// @Param id path string true "Timesheet ID" format(uuid)
// @Param request body domain.CreateTimesheetEntryRequest true "Entry data"
// @Success 201 {object} domain.TimesheetEntryDTO
// @Failure 400 {object} domain.APIError "Timesheet is approved"
// @Security BearerAuth
// @Router /timesheets/{id}/entries [post]
func (h *TimesheetHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid timesheet ID format")
		return
	}

	var req domain.CreateTimesheetEntryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	entry, err := h.timesheetService.CreateEntry(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create timesheet entry")
		return
	}

	respondJSON(w, http.StatusCreated, entry)
}

// UpdateEntry godoc
// @Summary Update a timesheet entry
// @Tags Timesheets
// @Accept json
// @Produce json
// @Param entryId path string true "Entry ID" format(uuid)
// @Param request body domain.UpdateTimesheetEntryRequest true "Fields to update"
// @Success 200 {object} domain.TimesheetEntryDTO
// @Failure 400 {object} domain.APIError "Timesheet is approved"
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /timesheets/entries/{entryId} [put]
func (h *TimesheetHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	entryID, err := parseUUIDParam(r, "entryId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid entry ID format")
		return
	}

	var req domain.UpdateTimesheetEntryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	entry, err := h.timesheetService.UpdateEntry(r.Context(), entryID, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update timesheet entry")
		return
	}

	respondJSON(w, http.StatusOK, entry)
}

// DeleteEntry godoc
// @Summary Delete a timesheet entry
// @Description Remaining entries keep their row order; a placed opportunity lock stays
// @Tags Timesheets
// @Param entryId path string true "Entry ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /timesheets/entries/{entryId} [delete]
func (h *TimesheetHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	entryID, err := parseUUIDParam(r, "entryId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid entry ID format")
		return
	}

	if err := h.timesheetService.DeleteEntry(r.Context(), entryID); err != nil {
		respondServiceError(w, h.logger, err, "delete timesheet entry")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
