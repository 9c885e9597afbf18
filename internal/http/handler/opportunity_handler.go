package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/meridiancg/backoffice-api/internal/domain"
	"github.com/meridiancg/backoffice-api/internal/service"
)

type OpportunityHandler struct {
	opportunityService *service.OpportunityService
	logger             *zap.Logger
}

func NewOpportunityHandler(opportunityService *service.OpportunityService, logger *zap.Logger) *OpportunityHandler {
	return &OpportunityHandler{opportunityService: opportunityService, logger: logger}
}

// List godoc
// @Summary List opportunities
// @Tags Opportunities
// @Produce json
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Page size (max 1000)" default(100)
// @Param accountId query string false "Filter by account" format(uuid)
// @Param stage query string false "Filter by stage" Enums(opportunity, engagement, closed)
// @Param search query string false "Search by name"
// @Success 200 {object} domain.ListResponse[domain.OpportunityDTO]
// @Security BearerAuth
// @Router /opportunities [get]
func (h *OpportunityHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit := parsePagination(r)

	accountID, err := parseOptionalUUIDQuery(r, "accountId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid accountId format")
		return
	}

	result, err := h.opportunityService.List(r.Context(), skip, limit, accountID,
		r.URL.Query().Get("stage"), r.URL.Query().Get("search"))
	if err != nil {
		respondServiceError(w, h.logger, err, "list opportunities")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get opportunity by ID
// @Description Includes the permanent lock status
// @Tags Opportunities
// @Produce json
// @Param id path string true "Opportunity ID" format(uuid)
// @Success 200 {object} domain.OpportunityDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /opportunities/{id} [get]
func (h *OpportunityHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid opportunity ID format")
		return
	}

	opp, err := h.opportunityService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get opportunity")
		return
	}

	respondJSON(w, http.StatusOK, opp)
}

// Create godoc
// @Summary Create opportunity
// @Tags Opportunities
// @Accept json
// @Produce json
// @Param request body domain.CreateOpportunityRequest true "Opportunity data"
// @Success 201 {object} domain.OpportunityDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /opportunities [post]
func (h *OpportunityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOpportunityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	opp, err := h.opportunityService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create opportunity")
		return
	}

	w.Header().Set("Location", "/api/v1/opportunities/"+opp.ID.String())
	respondJSON(w, http.StatusCreated, opp)
}

// Update godoc
// @Summary Update opportunity
// @Tags Opportunities
// @Accept json
// @Produce json
// @Param id path string true "Opportunity ID" format(uuid)
// @Param request body domain.UpdateOpportunityRequest true "Fields to update"
// @Success 200 {object} domain.OpportunityDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /opportunities/{id} [put]
func (h *OpportunityHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid opportunity ID format")
		return
	}

	var req domain.UpdateOpportunityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	opp, err := h.opportunityService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update opportunity")
		return
	}

	respondJSON(w, http.StatusOK, opp)
}

// Delete godoc
// @Summary Delete opportunity
// @Description Deletion is rejected once the opportunity is permanently locked
// @Tags Opportunities
// @Param id path string true "Opportunity ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError "Opportunity is locked"
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /opportunities/{id} [delete]
func (h *OpportunityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid opportunity ID format")
		return
	}

	if err := h.opportunityService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete opportunity")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetLockStatus godoc
// @Summary Get an opportunity's permanent lock status
// @Tags Opportunities
// @Produce json
// @Param id path string true "Opportunity ID" format(uuid)
// @Success 200 {object} map[string]bool
// @Security BearerAuth
// @Router /opportunities/{id}/lock [get]
func (h *OpportunityHandler) GetLockStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid opportunity ID format")
		return
	}

	locked, err := h.opportunityService.IsLocked(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get opportunity lock status")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"locked": locked})
}

// ListReleases godoc
// @Summary List an opportunity's releases
// @Tags Opportunities
// @Produce json
// @Param id path string true "Opportunity ID" format(uuid)
// @Success 200 {array} domain.ReleaseDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /opportunities/{id}/releases [get]
func (h *OpportunityHandler) ListReleases(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid opportunity ID format")
		return
	}

	releases, err := h.opportunityService.ListReleases(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "list releases")
		return
	}

	respondJSON(w, http.StatusOK, releases)
}

// CreateRelease godoc
// @Summary Add a release to an opportunity
// @Tags Opportunities
// @Accept json
// @Produce json
// @Param id path string true "Opportunity ID" format(uuid)
// @Param request body domain.CreateReleaseRequest true "Release data"
// @Success 201 {object} domain.ReleaseDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /opportunities/{id}/releases [post]
func (h *OpportunityHandler) CreateRelease(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid opportunity ID format")
		return
	}

	var req domain.CreateReleaseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	release, err := h.opportunityService.CreateRelease(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create release")
		return
	}

	respondJSON(w, http.StatusCreated, release)
}

// UpdateRelease godoc
// @Summary Update a release
// @Tags Opportunities
// @Accept json
// @Produce json
// @Param releaseId path string true "Release ID" format(uuid)
// @Param request body domain.UpdateReleaseRequest true "Fields to update"
// @Success 200 {object} domain.ReleaseDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /releases/{releaseId} [put]
func (h *OpportunityHandler) UpdateRelease(w http.ResponseWriter, r *http.Request) {
	releaseID, err := parseUUIDParam(r, "releaseId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid release ID format")
		return
	}

	var req domain.UpdateReleaseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	release, err := h.opportunityService.UpdateRelease(r.Context(), releaseID, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update release")
		return
	}

	respondJSON(w, http.StatusOK, release)
}

// DeleteRelease godoc
// @Summary Delete a release
// @Tags Opportunities
// @Param releaseId path string true "Release ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /releases/{releaseId} [delete]
func (h *OpportunityHandler) DeleteRelease(w http.ResponseWriter, r *http.Request) {
	releaseID, err := parseUUIDParam(r, "releaseId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid release ID format")
		return
	}

	if err := h.opportunityService.DeleteRelease(r.Context(), releaseID); err != nil {
		respondServiceError(w, h.logger, err, "delete release")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListStaff godoc
// @Summary List employees staffed on an engagement
// @Tags Opportunities
// @Produce json
// @Param id path string true "Opportunity ID" format(uuid)
// @Success 200 {array} domain.EmployeeEngagementDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /opportunities/{id}/staff [get]
func (h *OpportunityHandler) ListStaff(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid opportunity ID format")
		return
	}

	staff, err := h.opportunityService.ListEngagementEmployees(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "list engagement staff")
		return
	}

	respondJSON(w, http.StatusOK, staff)
}

// AddStaff godoc
// @Summary Staff an employee on an engagement
// @Tags Opportunities
// @Accept json
// @Produce json
// @Param id path string true "Opportunity ID" format(uuid)
// @Param request body domain.AddEmployeeEngagementRequest true "Staffing data"
// @Success 201 {object} domain.EmployeeEngagementDTO
// @Failure 409 {object} domain.APIError "Already staffed"
// @Security BearerAuth
// @Router /opportunities/{id}/staff [post]
func (h *OpportunityHandler) AddStaff(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid opportunity ID format")
		return
	}

	var req domain.AddEmployeeEngagementRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	engagement, err := h.opportunityService.AddEngagementEmployee(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "staff employee")
		return
	}

	respondJSON(w, http.StatusCreated, engagement)
}

// RemoveStaff godoc
// @Summary Remove an employee from an engagement
// @Tags Opportunities
// @Param id path string true "Opportunity ID" format(uuid)
// @Param employeeId path string true "Employee ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /opportunities/{id}/staff/{employeeId} [delete]
func (h *OpportunityHandler) RemoveStaff(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid opportunity ID format")
		return
	}
	employeeID, err := parseUUIDParam(r, "employeeId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid employee ID format")
		return
	}

	if err := h.opportunityService.RemoveEngagementEmployee(r.Context(), id, employeeID); err != nil {
		respondServiceError(w, h.logger, err, "remove engagement staff")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListApprovers godoc
// @Summary List an engagement's timesheet approvers
// @Tags Opportunities
// @Produce json
// @Param id path string true "Opportunity ID" format(uuid)
// @Success 200 {array} domain.EngagementTimesheetApproverDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /opportunities/{id}/approvers [get]
func (h *OpportunityHandler) ListApprovers(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid opportunity ID format")
		return
	}

	approvers, err := h.opportunityService.ListTimesheetApprovers(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "list timesheet approvers")
		return
	}

	respondJSON(w, http.StatusOK, approvers)
}

// AddApprover godoc
// @Summary Add a timesheet approver to an engagement
// @Tags Opportunities
// @Accept json
// @Produce json
// @Param id path string true "Opportunity ID" format(uuid)
// @Param request body domain.AddEngagementApproverRequest true "Approver data"
// @Success 201 {object} domain.EngagementTimesheetApproverDTO
// @Failure 409 {object} domain.APIError "Already an approver"
// @Security BearerAuth
// @Router /opportunities/{id}/approvers [post]
func (h *OpportunityHandler) AddApprover(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid opportunity ID format")
		return
	}

	var req domain.AddEngagementApproverRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	approver, err := h.opportunityService.AddTimesheetApprover(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "add timesheet approver")
		return
	}

	respondJSON(w, http.StatusCreated, approver)
}

// RemoveApprover godoc
// @Summary Remove a timesheet approver from an engagement
// @Tags Opportunities
// @Param id path string true "Opportunity ID" format(uuid)
// @Param employeeId path string true "Employee ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /opportunities/{id}/approvers/{employeeId} [delete]
func (h *OpportunityHandler) RemoveApprover(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid opportunity ID format")
		return
	}
	employeeID, err := parseUUIDParam(r, "employeeId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid employee ID format")
		return
	}

	if err := h.opportunityService.RemoveTimesheetApprover(r.Context(), id, employeeID); err != nil {
		respondServiceError(w, h.logger, err, "remove timesheet approver")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
