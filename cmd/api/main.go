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

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/shiptrack/internal/config"
	"github.com/MrJamesThe3rd/shiptrack/internal/database"
	"github.com/MrJamesThe3rd/shiptrack/internal/export"
	shiptrackHttp "github.com/MrJamesThe3rd/shiptrack/internal/http"
	exportHandler "github.com/MrJamesThe3rd/shiptrack/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/shiptrack/internal/http/importcsv"
	shipmentHandler "github.com/MrJamesThe3rd/shiptrack/internal/http/shipment"
	"github.com/MrJamesThe3rd/shiptrack/internal/importer"
	"github.com/MrJamesThe3rd/shiptrack/internal/logger"
	"github.com/MrJamesThe3rd/shiptrack/internal/metrics"
	"github.com/MrJamesThe3rd/shiptrack/internal/shipment"
	shipmentStore "github.com/MrJamesThe3rd/shiptrack/internal/shipment/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("api stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	slog.SetDefault(logger.New(cfg.App.Env, cfg.Log.File).With("app", cfg.App.Name))

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	var (
		shipmentService = shipment.NewService(shipmentStore.New(db, loc))
		exportService   = export.NewService(shipmentService)
		importService   = importer.NewService()
	)

	var (
		shipmentH = shipmentHandler.NewHandler(shipmentService)
		exportH   = exportHandler.NewHandler(exportService, loc)
		importH   = importHandler.NewHandler(importService, shipmentService)
	)

	opts := shiptrackHttp.Options{AllowedOrigins: cfg.Server.AllowedOrigins}
	if cfg.Metrics.Enabled {
		opts.Metrics = metrics.New()
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           shiptrackHttp.New(opts, shipmentH, exportH, importH),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "addr", srv.Addr, "env", cfg.App.Env, "timezone", loc.String())

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
