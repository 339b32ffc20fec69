package handlers

import (
	"net/http"
	"strconv"

	"books-explorer/internal/constants"
	"books-explorer/internal/models"
	"books-explorer/internal/store"
	"books-explorer/internal/utils"
)

type AdminHandler struct {
	Store       *store.BookStore
	AuditLogger utils.Logger
}

// POST /admin/indexes
func (h *AdminHandler) CreateIndexes(w http.ResponseWriter, r *http.Request) {
	names, err := h.Store.EnsureIndexes(r.Context())
	if err != nil {
		utils.JSONError(w, "Index creation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	h.AuditLogger.Log(r.Context(), models.IndexEntity, constants.CreateIndex, names)

	utils.JSON(w, http.StatusOK, map[string]interface{}{"indexes": names})
}

// GET /admin/explain?title= or ?author=&published_year=
func (h *AdminHandler) Explain(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	title, author, yearStr := q.Get("title"), q.Get("author"), q.Get("published_year")

	var (
		stats models.ExplainStats
		err   error
	)
	switch {
	case title != "" && author == "":
		stats, err = h.Store.ExplainByTitle(r.Context(), title)
	case title == "" && author != "":
		year, convErr := strconv.Atoi(yearStr)
		if convErr != nil {
			utils.JSONError(w, "Invalid or missing published_year", http.StatusBadRequest)
			return
		}
		stats, err = h.Store.ExplainByAuthorYear(r.Context(), author, year)
	default:
		utils.JSONError(w, "Provide either title or author with published_year", http.StatusBadRequest)
		return
	}
	if err != nil {
		utils.JSONError(w, "Explain failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"stats":      stats,
		"used_index": stats.UsedIndex(),
	})
}
