package handlers

import (
	"net/http"
	"strconv"

	"books-explorer/internal/store"
	"books-explorer/internal/utils"
)

type StatsHandler struct {
	Store *store.BookStore
}

// GET /stats/genres/average-price
func (h *StatsHandler) AveragePriceByGenre(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Store.AveragePriceByGenre(r.Context())
	if err != nil {
		utils.JSONError(w, "Aggregation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, rows)
}

// GET /stats/authors/top?limit=
func (h *StatsHandler) TopAuthors(w http.ResponseWriter, r *http.Request) {
	limit := 1
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			utils.JSONError(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	rows, err := h.Store.TopAuthors(r.Context(), limit)
	if err != nil {
		utils.JSONError(w, "Aggregation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, rows)
}

// GET /stats/decades
func (h *StatsHandler) CountByDecade(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Store.CountByDecade(r.Context())
	if err != nil {
		utils.JSONError(w, "Aggregation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, rows)
}
