package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/myfintrack/internal/auth"
	"github.com/mmynk/myfintrack/internal/config"
	"github.com/mmynk/myfintrack/internal/middleware"
	"github.com/mmynk/myfintrack/internal/report"
	"github.com/mmynk/myfintrack/internal/service"
	"github.com/mmynk/myfintrack/internal/state"
	"github.com/mmynk/myfintrack/internal/storage"
	"github.com/mmynk/myfintrack/internal/storage/sqlite"
)

// App wires the store, its persistence and the services together.
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	kv       *sqlite.SQLiteStore
	registry *prometheus.Registry
	store    *state.Store

	auth      *service.AuthService
	records   *service.RecordService
	dashboard *service.DashboardService
	renderer  *report.Renderer
}

// NewApp opens the database and restores the persisted session.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	kv, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	logger.Debug("Storage initialized", "database", cfg.DBPath)

	adapter := storage.NewAdapter(kv, logger)
	registry := prometheus.NewRegistry()

	store := state.NewStore(adapter,
		state.WithLogger(logger),
		state.WithMetrics(state.NewMetrics(registry)),
		state.WithMiddleware(
			middleware.Logging(logger),
			middleware.RequireAuth(),
			middleware.EnforceOwnership(),
		),
	)
	store.Hydrate(ctx)

	authenticator := auth.NewPasswordAuthenticator(adapter, auth.WithDelay(cfg.AuthDelay))

	return &App{
		cfg:      cfg,
		logger:   logger,
		kv:       kv,
		registry: registry,
		store:    store,
		auth:     service.NewAuthService(authenticator, store, logger),
		records:  service.NewRecordService(store, logger),
		dashboard: service.NewDashboardService(store, service.DashboardOptions{
			TrendMonths:   cfg.TrendMonths,
			RecentLimit:   cfg.RecentLimit,
			DueWindowDays: cfg.DueWindowDays,
		}),
		renderer: report.New(cfg.Currency),
	}, nil
}

// WriteMetrics dumps the collected metrics in the Prometheus text format.
func (a *App) WriteMetrics(path string) error {
	if err := prometheus.WriteToTextfile(path, a.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

// Close releases the database.
func (a *App) Close() error {
	return a.kv.Close()
}
