package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/meridiancg/backoffice-api/internal/domain"
	"github.com/meridiancg/backoffice-api/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// Login godoc
// @Summary Log in with email and password
// @Description Exchange employee credentials for a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body domain.LoginRequest true "Credentials"
// @Success 200 {object} domain.LoginResponse
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "log in")
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// Me godoc
// @Summary Get the authenticated employee
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.EmployeeDTO
// @Failure 401 {object} domain.APIError
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	employee, err := h.authService.Me(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "load profile")
		return
	}

	respondJSON(w, http.StatusOK, employee)
}
