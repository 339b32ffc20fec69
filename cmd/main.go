package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"books-explorer/configs"
	"books-explorer/internal/daemon"
	"books-explorer/internal/db"
	"books-explorer/internal/handlers"
	"books-explorer/internal/logger"
	"books-explorer/internal/metrics"
	"books-explorer/internal/seed"
	"books-explorer/internal/store"
	"books-explorer/internal/utils"
)

type app struct {
	cfg     configs.Config
	log     *slog.Logger
	metrics *metrics.Metrics
	books   *store.BookStore
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "books-explorer",
		Short:         "Query, aggregate and index the books collection",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return db.Disconnect(ctx)
		},
	}

	root.AddCommand(a.serveCmd(), a.seedCmd(), a.indexesCmd(), a.runCmd())
	return root
}

func (a *app) setup(ctx context.Context) error {
	cfg, err := configs.LoadConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.New(logger.Config{
		Format:      cfg.LogFormat,
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
	})
	slog.SetDefault(a.log)

	if err := db.Connect(ctx, cfg.MongoURI); err != nil {
		return err
	}
	a.log.Info("connected to mongo", slog.String("db", cfg.DBName), slog.String("collection", cfg.BooksCollection))

	a.metrics = metrics.New()
	a.books = store.NewBookStore(db.GetCollection(cfg.DBName, cfg.BooksCollection), store.Options{
		Timeout: cfg.QueryTimeout,
		Metrics: a.metrics,
	})
	return nil
}

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the books HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg
	utils.InitJwtSecret(cfg.JWTSecret)

	auditCol := db.GetCollection(cfg.DBName, cfg.AuditCollection)
	auditLogger := utils.Logger{Collection: auditCol}

	authHandler := &handlers.AuthHandler{
		ConfigCreds: struct {
			UserId       string
			Username     string
			UserPassword string
		}{UserId: cfg.UserId, Username: cfg.UserName, UserPassword: cfg.UserPassword},
	}

	r := handlers.NewRouter(handlers.RouterConfig{
		Store:       a.books,
		AuditLogger: auditLogger,
		Metrics:     a.metrics,
		Logger:      a.log,
		PerPage:     cfg.BooksPerPage,
		Auth:        authHandler,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	exporter := &daemon.LogExporter{Coll: auditCol, Logger: a.log, Interval: cfg.ExportInterval}
	go exporter.Run(ctx)

	server := http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server starting", slog.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info("shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	a.log.Info("server shut down")
	return nil
}

func (a *app) seedCmd() *cobra.Command {
	var (
		file string
		drop bool
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample books dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			books, err := seed.Load(file)
			if err != nil {
				return err
			}
			n, err := seed.Run(cmd.Context(), a.books, books, drop)
			if err != nil {
				return err
			}
			a.log.Info("seeded books", slog.Int("count", n), slog.Bool("dropped", drop))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Extended JSON dataset ({\"books\": [...]}); defaults to the built-in sample")
	cmd.Flags().BoolVar(&drop, "drop", false, "delete every book before inserting")
	return cmd
}

func (a *app) indexesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "indexes",
		Short: "Create the title and author/published_year indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := a.books.EnsureIndexes(cmd.Context())
			if err != nil {
				return err
			}
			a.log.Info("indexes ready", slog.Any("names", names))
			return nil
		},
	}
}
