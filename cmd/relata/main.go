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

	"github.com/relata/relata/internal/api"
	"github.com/relata/relata/internal/api/admin"
	"github.com/relata/relata/internal/api/companies"
	"github.com/relata/relata/internal/api/contacts"
	"github.com/relata/relata/internal/api/funnels"
	"github.com/relata/relata/internal/audit"
	"github.com/relata/relata/internal/config"
	"github.com/relata/relata/internal/database"
	"github.com/relata/relata/internal/engine"
	"github.com/relata/relata/internal/funnel"
	"github.com/relata/relata/internal/metrics"
	"github.com/relata/relata/internal/seed"
	"github.com/relata/relata/internal/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	catalog, err := funnel.Load(cfg.FunnelsPath)
	if err != nil {
		return fmt.Errorf("load funnel catalog: %w", err)
	}

	if err := seed.Seed(ctx, db, catalog); err != nil {
		return fmt.Errorf("seed data: %w", err)
	}

	s := store.New(db, catalog)
	m := metrics.New()

	notifiers := audit.Multi{audit.LogNotifier{}, audit.MetricsNotifier{Metrics: m}}
	if cfg.RedisAddr != "" {
		pub := audit.NewRedisPublisher(cfg.RedisAddr)
		defer func() { _ = pub.Close() }()
		notifiers = append(notifiers, pub)
		slog.Info("conversion publishing enabled", "redis", cfg.RedisAddr)
	}

	e := engine.New(s, catalog, notifiers)
	o := engine.NewOrchestrator(s, e, cfg.StageTimeout)

	mux := http.NewServeMux()

	// CRM API routes
	contacts.RegisterRoutes(mux, s, o)
	companies.RegisterRoutes(mux, s)
	funnels.RegisterRoutes(mux, s, catalog)

	// Admin API
	admin.RegisterRoutes(mux, db, s, catalog)

	// Prometheus
	mux.Handle("GET /metrics", m.Handler())

	// Catch-all: return 404 in the standard error format.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		corrID := api.CorrelationID(r.Context())
		api.WriteError(w, http.StatusNotFound, api.NewNotFoundError(
			fmt.Sprintf("No route found for %s %s", r.Method, r.URL.Path),
			corrID,
		))
	})

	handler := api.Chain(mux,
		api.Recovery(),
		api.RequestID(),
		api.Auth(cfg.AuthToken),
		api.JSONContentType(),
		m.Middleware(),
		api.Logging(),
	)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		slog.Info("shutting down server")
		if err := srv.Shutdown(context.Background()); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("starting relata server", "addr", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	return nil
}
