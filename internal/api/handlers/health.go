package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/kirkbot2/speedaudit/internal/pkg/utils"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db      *sql.DB
	version string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *sql.DB, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

// Healthz handles GET /healthz. It reports liveness only.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.version,
	})
}

// Readyz handles GET /readyz. The service is ready once the database
// answers a ping.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		utils.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"reason": "database unreachable",
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}
