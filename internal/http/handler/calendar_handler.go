package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/meridiancg/backoffice-api/internal/domain"
	"github.com/meridiancg/backoffice-api/internal/service"
)

type CalendarHandler struct {
	calendarService *service.CalendarService
	logger          *zap.Logger
}

func NewCalendarHandler(calendarService *service.CalendarService, logger *zap.Logger) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService, logger: logger}
}

// List godoc
// @Summary List calendar days
// @Tags Calendars
// @Produce json
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Page size (max 1000)" default(100)
// @Param calendarCode query string false "Filter by calendar code"
// @Param from query string false "Start date (inclusive)" format(date)
// @Param to query string false "End date (inclusive)" format(date)
// @Success 200 {object} domain.ListResponse[domain.CalendarDayDTO]
// @Failure 400 {object} domain.APIError "Invalid date range"
// @Security BearerAuth
// @Router /calendars [get]
func (h *CalendarHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit := parsePagination(r)

	result, err := h.calendarService.List(r.Context(), skip, limit,
		r.URL.Query().Get("calendarCode"),
		r.URL.Query().Get("from"),
		r.URL.Query().Get("to"))
	if err != nil {
		respondServiceError(w, h.logger, err, "list calendar days")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get calendar day by ID
// @Tags Calendars
// @Produce json
// @Param id path string true "Calendar day ID" format(uuid)
// @Success 200 {object} domain.CalendarDayDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /calendars/{id} [get]
func (h *CalendarHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid calendar day ID format")
		return
	}

	day, err := h.calendarService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get calendar day")
		return
	}

	respondJSON(w, http.StatusOK, day)
}

// Create godoc
// @Summary Create calendar day
// @Tags Calendars
// @Accept json
// @Produce json
// @Param request body domain.CreateCalendarDayRequest true "Calendar day data"
// @Success 201 {object} domain.CalendarDayDTO
// @Failure 409 {object} domain.APIError "Duplicate calendar day"
// @Security BearerAuth
// @Router /calendars [post]
func (h *CalendarHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCalendarDayRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	day, err := h.calendarService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create calendar day")
		return
	}

	respondJSON(w, http.StatusCreated, day)
}

// Update godoc
// @Summary Update calendar day
// @Tags Calendars
// @Accept json
// @Produce json
// @Param id path string true "Calendar day ID" format(uuid)
// @Param request body domain.UpdateCalendarDayRequest true "Fields to update"
// @Success 200 {object} domain.CalendarDayDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /calendars/{id} [put]
func (h *CalendarHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid calendar day ID format")
		return
	}

	var req domain.UpdateCalendarDayRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	day, err := h.calendarService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update calendar day")
		return
	}

	respondJSON(w, http.StatusOK, day)
}

// Delete godoc
// @Summary Delete calendar day
// @Tags Calendars
// @Param id path string true "Calendar day ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /calendars/{id} [delete]
func (h *CalendarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid calendar day ID format")
		return
	}

	if err := h.calendarService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete calendar day")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
