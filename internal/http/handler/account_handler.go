package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/meridiancg/backoffice-api/internal/domain"
	"github.com/meridiancg/backoffice-api/internal/service"
)

type AccountHandler struct {
	accountService *service.AccountService
	logger         *zap.Logger
}

func NewAccountHandler(accountService *service.AccountService, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{accountService: accountService, logger: logger}
}

// List godoc
// @Summary List accounts
// @Description Get a paginated list of accounts with optional filters
// @Tags Accounts
// @Produce json
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Page size (max 1000)" default(100)
// @Param type query string false "Filter by account type" Enums(prospect, client, partner, former_client)
// @Param search query string false "Search by company name"
// @Success 200 {object} domain.ListResponse[domain.AccountDTO]
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /accounts [get]
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit := parsePagination(r)

	result, err := h.accountService.List(r.Context(), skip, limit,
		r.URL.Query().Get("type"), r.URL.Query().Get("search"))
	if err != nil {
		respondServiceError(w, h.logger, err, "list accounts")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get account by ID
// @Description Get an account with its contacts and opportunities
// @Tags Accounts
// @Produce json
// @Param id path string true "Account ID" format(uuid)
// @Success 200 {object} domain.AccountWithDetailsDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *AccountHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid account ID format")
		return
	}

	account, err := h.accountService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get account")
		return
	}

	respondJSON(w, http.StatusOK, account)
}

// Create godoc
// @Summary Create account
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body domain.CreateAccountRequest true "Account data"
// @Success 201 {object} domain.AccountDTO
// @Failure 400 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Duplicate company name"
// @Security BearerAuth
// @Router /accounts [post]
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateAccountRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	account, err := h.accountService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create account")
		return
	}

	w.Header().Set("Location", "/api/v1/accounts/"+account.ID.String())
	respondJSON(w, http.StatusCreated, account)
}

// Update godoc
// @Summary Update account
// @Tags Accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID" format(uuid)
// @Param request body domain.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} domain.AccountDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /accounts/{id} [put]
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid account ID format")
		return
	}

	var req domain.UpdateAccountRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	account, err := h.accountService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update account")
		return
	}

	respondJSON(w, http.StatusOK, account)
}

// Delete godoc
// @Summary Delete account
// @Tags Accounts
// @Param id path string true "Account ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /accounts/{id} [delete]
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid account ID format")
		return
	}

	if err := h.accountService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete account")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
