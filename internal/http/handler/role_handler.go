package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/meridiancg/backoffice-api/internal/domain"
	"github.com/meridiancg/backoffice-api/internal/service"
)

type RoleHandler struct {
	roleService *service.RoleService
	logger      *zap.Logger
}

func NewRoleHandler(roleService *service.RoleService, logger *zap.Logger) *RoleHandler {
	return &RoleHandler{roleService: roleService, logger: logger}
}

// List godoc
// @Summary List roles
// @Tags Roles
// @Produce json
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Page size (max 1000)" default(100)
// @Param search query string false "Search by role name"
// @Success 200 {object} domain.ListResponse[domain.RoleDTO]
// @Security BearerAuth
// @Router /roles [get]
func (h *RoleHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit := parsePagination(r)

	result, err := h.roleService.List(r.Context(), skip, limit, r.URL.Query().Get("search"))
	if err != nil {
		respondServiceError(w, h.logger, err, "list roles")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get role by ID
// @Tags Roles
// @Produce json
// @Param id path string true "Role ID" format(uuid)
// @Success 200 {object} domain.RoleDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /roles/{id} [get]
func (h *RoleHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid role ID format")
		return
	}

	role, err := h.roleService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get role")
		return
	}

	respondJSON(w, http.StatusOK, role)
}

// Create godoc
// @Summary Create role
// @Tags Roles
// @Accept json
// @Produce json
// @Param request body domain.CreateRoleRequest true "Role data"
// @Success 201 {object} domain.RoleDTO
// @Failure 409 {object} domain.APIError "Duplicate name"
// @Security BearerAuth
// @Router /roles [post]
func (h *RoleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateRoleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	role, err := h.roleService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create role")
		return
	}

	w.Header().Set("Location", "/api/v1/roles/"+role.ID.String())
	respondJSON(w, http.StatusCreated, role)
}

// Update godoc
// @Summary Update role
// @Tags Roles
// @Accept json
// @Produce json
// @Param id path string true "Role ID" format(uuid)
// @Param request body domain.UpdateRoleRequest true "Fields to update"
// @Success 200 {object} domain.RoleDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /roles/{id} [put]
func (h *RoleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid role ID format")
		return
	}

	var req domain.UpdateRoleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	role, err := h.roleService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update role")
		return
	}

	respondJSON(w, http.StatusOK, role)
}

// Delete godoc
// @Summary Delete role
// @Tags Roles
// @Param id path string true "Role ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /roles/{id} [delete]
func (h *RoleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid role ID format")
		return
	}

	if err := h.roleService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete role")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListRates godoc
// @Summary List a role's rates
// @Tags Roles
// @Produce json
// @Param id path string true "Role ID" format(uuid)
// @Success 200 {array} domain.RoleRateDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /roles/{id}/rates [get]
func (h *RoleHandler) ListRates(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid role ID format")
		return
	}

	rates, err := h.roleService.ListRates(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "list role rates")
		return
	}

	respondJSON(w, http.StatusOK, rates)
}

// CreateRate godoc
// @Summary Add a rate to a role
// @Description One rate per role, delivery center and currency
// @Tags Roles
// @Accept json
// @Produce json
// @Param id path string true "Role ID" format(uuid)
// @Param request body domain.CreateRoleRateRequest true "Rate data"
// @Success 201 {object} domain.RoleRateDTO
// @Failure 409 {object} domain.APIError "Duplicate scope"
// @Security BearerAuth
// @Router /roles/{id}/rates [post]
func (h *RoleHandler) CreateRate(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid role ID format")
		return
	}

	var req domain.CreateRoleRateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	rate, err := h.roleService.CreateRate(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create role rate")
		return
	}

	respondJSON(w, http.StatusCreated, rate)
}

// UpdateRate godoc
// @Summary Update a role rate
// @Tags Roles
// @Accept json
// @Produce json
// @Param rateId path string true "Rate ID" format(uuid)
// @Param request body domain.UpdateRoleRateRequest true "Fields to update"
// @Success 200 {object} domain.RoleRateDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /roles/rates/{rateId} [put]
func (h *RoleHandler) UpdateRate(w http.ResponseWriter, r *http.Request) {
	rateID, err := parseUUIDParam(r, "rateId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid rate ID format")
		return
	}

	var req domain.UpdateRoleRateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	rate, err := h.roleService.UpdateRate(r.Context(), rateID, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update role rate")
		return
	}

	respondJSON(w, http.StatusOK, rate)
}

// DeleteRate godoc
// @Summary Delete a role rate
// @Tags Roles
// @Param rateId path string true "Rate ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /roles/rates/{rateId} [delete]
func (h *RoleHandler) DeleteRate(w http.ResponseWriter, r *http.Request) {
	rateID, err := parseUUIDParam(r, "rateId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid rate ID format")
		return
	}

	if err := h.roleService.DeleteRate(r.Context(), rateID); err != nil {
		respondServiceError(w, h.logger, err, "delete role rate")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
