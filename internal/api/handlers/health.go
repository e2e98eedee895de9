package handlers

import (
	"database/sql"
	"net/http"

	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/utils"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	db      *sql.DB
	version string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *sql.DB, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

// Health reports liveness
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.version,
	})
}

// Ready reports readiness, including database connectivity
// @Summary Readiness check
// @Tags Health
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		utils.WriteErrorMessage(w, http.StatusServiceUnavailable, "NOT_READY", "Database unavailable")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]string{"status": "ready"})
}
