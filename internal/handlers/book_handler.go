package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"books-explorer/internal/constants"
	"books-explorer/internal/models"
	"books-explorer/internal/queries"
	"books-explorer/internal/store"
	"books-explorer/internal/utils"
	"books-explorer/internal/validation"
)

type BookHandler struct {
	Store       *store.BookStore
	AuditLogger utils.Logger
	Validator   *validation.Validator
	PerPage     int
}

func NewBookHandler(s *store.BookStore, logger utils.Logger, v *validation.Validator, perPage int) *BookHandler {
	return &BookHandler{
		Store:       s,
		AuditLogger: logger,
		Validator:   v,
		PerPage:     perPage,
	}
}

// POST /books
func (h *BookHandler) AddBook(w http.ResponseWriter, r *http.Request) {
	var book models.Book
	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		utils.JSONError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if err := h.validator().Validate(book); err != nil {
		utils.JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	saved, err := h.Store.Insert(r.Context(), book)
	if err != nil {
		utils.JSONError(w, "Insert failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	h.AuditLogger.Log(r.Context(), models.BookEntity, constants.Create, saved)

	utils.JSON(w, http.StatusCreated, saved)
}

// GET /books?genre= | ?author= | ?published_after=
func (h *BookHandler) GetBooks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	genre, author, after := q.Get("genre"), q.Get("author"), q.Get("published_after")

	set := 0
	for _, v := range []string{genre, author, after} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		utils.JSONError(w, "Exactly one of genre, author or published_after is required", http.StatusBadRequest)
		return
	}

	var (
		books []models.Book
		err   error
	)
	switch {
	case genre != "":
		books, err = h.Store.FindByGenre(r.Context(), genre)
	case author != "":
		books, err = h.Store.FindByAuthor(r.Context(), author)
	default:
		year, convErr := strconv.Atoi(after)
		if convErr != nil {
			utils.JSONError(w, "Invalid published_after", http.StatusBadRequest)
			return
		}
		books, err = h.Store.FindPublishedAfter(r.Context(), year)
	}
	if err != nil {
		utils.JSONError(w, "Failed to fetch books: "+err.Error(), http.StatusInternalServerError)
		return
	}

	utils.JSON(w, http.StatusOK, books)
}

// GET /books/in-stock?after=&sort=&page=&per_page=
func (h *BookHandler) GetInStockBooks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	year, err := strconv.Atoi(q.Get("after"))
	if err != nil {
		utils.JSONError(w, "Invalid or missing after", http.StatusBadRequest)
		return
	}
	dir, err := queries.ParseSortDirection(q.Get("sort"))
	if err != nil {
		utils.JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	pageNum, err := intParam(q, "page", 1)
	if err != nil {
		utils.JSONError(w, "Invalid page", http.StatusBadRequest)
		return
	}
	perPage, err := intParam(q, "per_page", h.PerPage)
	if err != nil {
		utils.JSONError(w, "Invalid per_page", http.StatusBadRequest)
		return
	}
	page := queries.NewPage(pageNum, perPage)

	books, err := h.Store.FindInStockAfter(r.Context(), year, dir, page)
	if err != nil {
		utils.JSONError(w, "Failed to fetch books: "+err.Error(), http.StatusInternalServerError)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"page":     page.Number,
		"per_page": page.Size,
		"sort":     dir.String(),
		"books":    books,
	})
}

// GET /books/{title}
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	title, ok := titleVar(w, r)
	if !ok {
		return
	}

	book, err := h.Store.FindByTitle(r.Context(), title)
	if errors.Is(err, store.ErrBookNotFound) {
		utils.JSONError(w, "Book not found", http.StatusNotFound)
		return
	}
	if err != nil {
		utils.JSONError(w, "Failed to fetch book: "+err.Error(), http.StatusInternalServerError)
		return
	}

	utils.JSON(w, http.StatusOK, book)
}

// PUT /books/{title}/price
func (h *BookHandler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	title, ok := titleVar(w, r)
	if !ok {
		return
	}

	var req models.PriceUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if err := h.validator().Validate(req); err != nil {
		utils.JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.Store.UpdatePrice(r.Context(), title, *req.Price)
	if errors.Is(err, store.ErrBookNotFound) {
		utils.JSONError(w, "Book not found", http.StatusNotFound)
		return
	}
	if err != nil {
		utils.JSONError(w, "Update failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	h.AuditLogger.Log(r.Context(), models.BookEntity, constants.UpdatePrice, map[string]interface{}{
		"title": title,
		"price": *req.Price,
	})

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message":       "Price updated successfully",
		"modifiedCount": result.ModifiedCount,
	})
}

// DELETE /books/{title}
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	title, ok := titleVar(w, r)
	if !ok {
		return
	}

	err := h.Store.DeleteByTitle(r.Context(), title)
	if errors.Is(err, store.ErrBookNotFound) {
		utils.JSONError(w, "Book not found", http.StatusNotFound)
		return
	}
	if err != nil {
		utils.JSONError(w, "Delete failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	h.AuditLogger.Log(r.Context(), models.BookEntity, constants.Delete, title)

	w.WriteHeader(http.StatusNoContent)
}

func (h *BookHandler) validator() *validation.Validator {
	if h.Validator == nil {
		h.Validator = validation.New()
	}
	return h.Validator
}

// titleVar reads the {title} route variable. Routes are matched on the
// encoded path so titles may contain escaped slashes.
func titleVar(w http.ResponseWriter, r *http.Request) (string, bool) {
	title, err := url.PathUnescape(mux.Vars(r)["title"])
	if err != nil || title == "" {
		utils.JSONError(w, "Invalid title", http.StatusBadRequest)
		return "", false
	}
	return title, true
}

func intParam(q url.Values, key string, fallback int) (int, error) {
	v := q.Get(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}
