package server

import (
	"net/http"

	"tableflip.dev/catalog/pkg/catalogdb"
)

type HealthHandler struct {
	db *catalogdb.DB
}

func NewHealthHandler(db *catalogdb.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{"status": "ok"}
	count, err := h.db.ProductCount()
	if err != nil {
		resp["status"] = "degraded"
		resp["error"] = err.Error()
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	resp["produtos"] = count
	writeJSON(w, http.StatusOK, resp)
}
