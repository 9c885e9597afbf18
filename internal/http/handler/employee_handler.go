package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/meridiancg/backoffice-api/internal/domain"
	"github.com/meridiancg/backoffice-api/internal/service"
)

type EmployeeHandler struct {
	employeeService *service.EmployeeService
	logger          *zap.Logger
}

func NewEmployeeHandler(employeeService *service.EmployeeService, logger *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService, logger: logger}
}

// List godoc
// @Summary List employees
// @Tags Employees
// @Produce json
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Page size (max 1000)" default(100)
// @Param status query string false "Filter by status" Enums(active, inactive, on_leave)
// @Param deliveryCenterId query string false "Filter by delivery center" format(uuid)
// @Param search query string false "Search by name or email"
// @Success 200 {object} domain.ListResponse[domain.EmployeeDTO]
// @Security BearerAuth
// @Router /employees [get]
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit := parsePagination(r)

	deliveryCenterID, err := parseOptionalUUIDQuery(r, "deliveryCenterId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid deliveryCenterId format")
		return
	}

	result, err := h.employeeService.List(r.Context(), skip, limit,
		r.URL.Query().Get("status"), deliveryCenterID, r.URL.Query().Get("search"))
	if err != nil {
		respondServiceError(w, h.logger, err, "list employees")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get employee by ID
// @Tags Employees
// @Produce json
// @Param id path string true "Employee ID" format(uuid)
// @Success 200 {object} domain.EmployeeDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /employees/{id} [get]
func (h *EmployeeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid employee ID format")
		return
	}

	employee, err := h.employeeService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get employee")
		return
	}

	respondJSON(w, http.StatusOK, employee)
}

// Create godoc
// @Summary Create employee
// @Tags Employees
// @Accept json
// @Produce json
// @Param request body domain.CreateEmployeeRequest true "Employee data"
// @Success 201 {object} domain.EmployeeDTO
// @Failure 409 {object} domain.APIError "Duplicate email"
// @Security BearerAuth
// @Router /employees [post]
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateEmployeeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	employee, err := h.employeeService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create employee")
		return
	}

	w.Header().Set("Location", "/api/v1/employees/"+employee.ID.String())
	respondJSON(w, http.StatusCreated, employee)
}

// Update godoc
// @Summary Update employee
// @Tags Employees
// @Accept json
// @Produce json
// @Param id path string true "Employee ID" format(uuid)
// @Param request body domain.UpdateEmployeeRequest true "Fields to update"
// @Success 200 {object} domain.EmployeeDTO
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /employees/{id} [put]
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid employee ID format")
		return
	}

	var req domain.UpdateEmployeeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	employee, err := h.employeeService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update employee")
		return
	}

	respondJSON(w, http.StatusOK, employee)
}

// Delete godoc
// @Summary Delete employee
// @Tags Employees
// @Param id path string true "Employee ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid employee ID format")
		return
	}

	if err := h.employeeService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete employee")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
