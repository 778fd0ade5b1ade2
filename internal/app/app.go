package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"HazardBoard/internal/config"
	"HazardBoard/internal/dataset"
	"HazardBoard/internal/infrastructure/httpapi"
	"HazardBoard/internal/infrastructure/loader"
	"HazardBoard/internal/infrastructure/parser"
	"HazardBoard/internal/infrastructure/storage"
	"HazardBoard/internal/logging"
	"HazardBoard/internal/source"
	"HazardBoard/internal/usecase"
)

const shutdownGrace = 10 * time.Second

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg    config.Config
	logger *slog.Logger
	src    source.Source
	db     *sql.DB
}

// New builds a runnable application instance: it registers every dataset
// source strategy and resolves the one the config selects.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	app := &Application{cfg: cfg, logger: baseLogger}

	registry := source.NewRegistry()
	registry.Register(loader.NewCSVSource(cfg.Dataset.CSV, cfg.Dataset.Columns, baseLogger.With("component", "source.csv")))
	registry.Register(parser.NewHTMLSource(nil, cfg.Dataset.HTML, cfg.Dataset.Columns, baseLogger.With("component", "source.html")))

	if cfg.Dataset.SQL.DSN != "" {
		db, err := storage.Open(cfg.Dataset.SQL)
		if err != nil {
			return nil, fmt.Errorf("open dataset database: %w", err)
		}
		app.db = db
		registry.Register(storage.NewSQLSource(db, cfg.Dataset.SQL, cfg.Dataset.Columns, baseLogger.With("component", "source.sql")))
	}

	src, err := registry.Resolve(cfg.Dataset.Source)
	if err != nil {
		return nil, err
	}
	app.src = src

	return app, nil
}

// Run loads the dataset once, publishes the initial unfiltered bundle and
// serves the dashboard API until the context is cancelled.
func (a *Application) Run(ctx context.Context) error {
	defer a.close()

	rows, err := a.src.Load(ctx)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	store := dataset.New(rows)
	a.logger.Info("dataset loaded",
		"source", a.src.Name(),
		"articles", store.Len(),
		"excluded", store.Excluded())

	board, err := usecase.NewDashboard(usecase.DashboardDeps{
		Store:       store,
		TopN:        a.cfg.Dashboard.TopN,
		SeriesGroup: a.cfg.Dashboard.SeriesGroup,
		Logger:      a.logger.With("component", "dashboard"),
	})
	if err != nil {
		return fmt.Errorf("build dashboard: %w", err)
	}

	// Initial unfiltered pass so the first page load has a bundle.
	if _, err := board.Apply(ctx, usecase.FilterEvent{}); err != nil {
		return fmt.Errorf("initial pass: %w", err)
	}

	handler := httpapi.NewHandler(board, store, a.cfg.Dashboard.PageSize, a.logger.With("component", "httpapi"))
	router := httpapi.NewRouter(handler, a.cfg.Logging.Level == "debug")

	server := &http.Server{Addr: a.cfg.Server.Addr, Handler: router}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("dashboard listening", "addr", a.cfg.Server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve dashboard: %w", err)
	}
}

func (a *Application) close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("close dataset database", "error", err)
		}
	}
}
