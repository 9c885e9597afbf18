package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meridiancg/backoffice-api/internal/config"
	"github.com/meridiancg/backoffice-api/internal/domain"
)

// PrincipalLoader looks up the employee behind a validated token so that
// deactivated accounts are rejected even while their tokens are unexpired
type PrincipalLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
}

// Middleware handles authentication for HTTP requests
type Middleware struct {
	jwtValidator *JWTValidator
	principals   PrincipalLoader
	logger       *zap.Logger
}

// NewMiddleware creates a new authentication middleware
func NewMiddleware(cfg *config.Config, principals PrincipalLoader, logger *zap.Logger) *Middleware {
	return &Middleware{
		jwtValidator: NewJWTValidator(&cfg.Auth),
		principals:   principals,
		logger:       logger,
	}
}

// Authenticate requires a valid bearer token and an active employee.
// Missing or invalid credentials yield 401; a valid token whose employee
// is no longer active yields 403.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondAuthError(w, http.StatusUnauthorized, "Missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			respondAuthError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		empCtx, err := m.jwtValidator.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("token validation failed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Error(err),
			)
			respondAuthError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		employee, err := m.principals.GetByID(r.Context(), empCtx.EmployeeID)
		if err != nil {
			m.logger.Warn("token principal not found",
				zap.String("employee_id", empCtx.EmployeeID.String()),
				zap.Error(err),
			)
			respondAuthError(w, http.StatusUnauthorized, "Unknown principal")
			return
		}

		if !employee.CanAuthenticate() {
			m.logger.Warn("inactive principal rejected",
				zap.String("employee_id", employee.ID.String()),
				zap.String("status", string(employee.Status)),
			)
			respondAuthError(w, http.StatusForbidden, "Account is not active")
			return
		}

		// Admin flag comes from the live record, not the token
		empCtx.IsAdmin = employee.IsAdmin

		m.logger.Debug("request authenticated",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("employee_id", empCtx.EmployeeID.String()),
			zap.Duration("auth_duration", time.Since(start)),
		)

		ctx := WithEmployeeContext(r.Context(), empCtx)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin allows only employees flagged as admins. Must run behind
// Authenticate.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		empCtx, ok := FromContext(r.Context())
		if !ok {
			respondAuthError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		if !empCtx.IsAdmin {
			respondAuthError(w, http.StatusForbidden, "Admin privileges required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func respondAuthError(w http.ResponseWriter, status int, detail string) {
	errType := domain.ErrorTypeUnauthorized
	title := "Unauthorized"
	if status == http.StatusForbidden {
		errType = domain.ErrorTypeForbidden
		title = "Forbidden"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(domain.APIError{
		Type:   errType,
		Title:  title,
		Status: status,
		Detail: detail,
	})
}
