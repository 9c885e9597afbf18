package handler

import (
	"net/http"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/meridiancg/backoffice-api/internal/database"
	"github.com/meridiancg/backoffice-api/internal/domain"
	"github.com/meridiancg/backoffice-api/internal/warehouse"
)

type HealthHandler struct {
	db        *gorm.DB
	warehouse *warehouse.Client
	version   string
	logger    *zap.Logger
}

func NewHealthHandler(db *gorm.DB, wh *warehouse.Client, version string, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, warehouse: wh, version: version, logger: logger}
}

// Health godoc
// @Summary Service health
// @Description Reports overall status plus per-dependency checks
// @Tags Health
// @Produce json
// @Success 200 {object} domain.HealthResponse
// @Failure 503 {object} domain.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}
	status := http.StatusOK
	overall := "ok"

	if err := database.HealthCheck(h.db); err != nil {
		h.logger.Error("database health check failed", zap.Error(err))
		checks["database"] = "down"
		overall = "degraded"
		status = http.StatusServiceUnavailable
	} else {
		checks["database"] = "ok"
	}

	// The warehouse is optional; a down warehouse degrades but does not fail
	if h.warehouse != nil && h.warehouse.IsEnabled() {
		wh := h.warehouse.HealthCheck(r.Context())
		checks["warehouse"] = wh.Status
		if wh.Error != "" && overall == "ok" {
			overall = "degraded"
		}
	}

	respondJSON(w, status, domain.HealthResponse{
		Status:  overall,
		Version: h.version,
		Checks:  checks,
	})
}

// Ready godoc
// @Summary Readiness probe
// @Description Returns 200 once the database connection is usable
// @Tags Health
// @Produce json
// @Success 200 {object} domain.HealthResponse
// @Failure 503 {object} domain.HealthResponse
// @Router /health/ready [get]
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if err := database.HealthCheck(h.db); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, domain.HealthResponse{
			Status: "not ready",
			Checks: map[string]string{"database": "down"},
		})
		return
	}
	respondJSON(w, http.StatusOK, domain.HealthResponse{
		Status: "ready",
		Checks: map[string]string{"database": "ok"},
	})
}
