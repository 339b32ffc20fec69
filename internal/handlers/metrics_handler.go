package handlers

import (
	"net/http"

	"books-explorer/internal/store"
	"books-explorer/internal/utils"
)

type MetricsHandler struct {
	Store *store.BookStore
}

// GET /admin/metrics
func (h *MetricsHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Store.Stats(r.Context())
	if err != nil {
		utils.JSONError(w, "Failed to collect metrics: "+err.Error(), http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, stats)
}
