package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"books-explorer/internal/metrics"
	"books-explorer/internal/middleware"
	"books-explorer/internal/store"
	"books-explorer/internal/utils"
	"books-explorer/internal/validation"
)

type RouterConfig struct {
	Store       *store.BookStore
	AuditLogger utils.Logger
	Metrics     *metrics.Metrics
	Logger      *slog.Logger
	PerPage     int
	Auth        *AuthHandler
}

func NewRouter(cfg RouterConfig) *mux.Router {
	r := mux.NewRouter().UseEncodedPath()
	if cfg.Logger != nil {
		r.Use(middleware.RequestLogger(cfg.Logger))
	}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "OK")
	}).Methods("GET")
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler()).Methods("GET")
	}

	api := r.PathPrefix("/").Subrouter()
	api.Use(middleware.JSONMiddleware)

	if cfg.Auth != nil {
		api.HandleFunc("/login", cfg.Auth.Login).Methods("POST")
	}

	bookHandler := NewBookHandler(cfg.Store, cfg.AuditLogger, validation.New(), cfg.PerPage)
	statsHandler := &StatsHandler{Store: cfg.Store}
	adminHandler := &AdminHandler{Store: cfg.Store, AuditLogger: cfg.AuditLogger}
	metricsHandler := &MetricsHandler{Store: cfg.Store}

	api.HandleFunc("/books", bookHandler.GetBooks).Methods("GET")
	api.HandleFunc("/books/in-stock", bookHandler.GetInStockBooks).Methods("GET")
	api.HandleFunc("/books/{title}", bookHandler.GetBook).Methods("GET")

	api.HandleFunc("/stats/genres/average-price", statsHandler.AveragePriceByGenre).Methods("GET")
	api.HandleFunc("/stats/authors/top", statsHandler.TopAuthors).Methods("GET")
	api.HandleFunc("/stats/decades", statsHandler.CountByDecade).Methods("GET")

	protected := api.PathPrefix("/").Subrouter()
	protected.Use(middleware.JWTAuthMiddleware)

	protected.HandleFunc("/books", bookHandler.AddBook).Methods("POST")
	protected.HandleFunc("/books/{title}/price", bookHandler.UpdatePrice).Methods("PUT")
	protected.HandleFunc("/books/{title}", bookHandler.DeleteBook).Methods("DELETE")

	protected.HandleFunc("/admin/indexes", adminHandler.CreateIndexes).Methods("POST")
	protected.HandleFunc("/admin/explain", adminHandler.Explain).Methods("GET")
	protected.HandleFunc("/admin/metrics", metricsHandler.GetMetrics).Methods("GET")

	return r
}
