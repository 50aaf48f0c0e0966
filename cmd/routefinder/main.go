package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/Jettpacked/UPSVAC-FlightFinder/internal/config"
	"github.com/Jettpacked/UPSVAC-FlightFinder/internal/ingestion"
	"github.com/Jettpacked/UPSVAC-FlightFinder/internal/logging"
	"github.com/Jettpacked/UPSVAC-FlightFinder/internal/metrics"
	"github.com/Jettpacked/UPSVAC-FlightFinder/internal/query"
	"github.com/Jettpacked/UPSVAC-FlightFinder/internal/server"
	"github.com/Jettpacked/UPSVAC-FlightFinder/internal/snapshot"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)
	slog.SetDefault(logger)

	client := ingestion.NewClient(ingestion.WithBaseURL(cfg.UPSVAC.BaseURL))
	holder := &snapshot.Holder{}

	refresh := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, cfg.UPSVAC.FetchTimeout)
		defer cancel()

		snap, err := client.FetchSnapshotWithRetry(ctx)
		if err != nil {
			return err
		}
		holder.Store(snap)

		airports, aircraft, legs := snap.Counts()
		metrics.SnapshotRefreshes.Inc()
		metrics.SnapshotAirports.Set(float64(airports))
		metrics.SnapshotAircraft.Set(float64(aircraft))
		metrics.SnapshotLegs.Set(float64(legs))
		logger.Info("snapshot published",
			"airports", airports, "aircraft", aircraft, "legs", legs)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initial load runs in the background; the API answers 503 for route
	// queries until the first snapshot lands, mirroring the upstream site
	// being temporarily unreachable.
	go func() {
		if err := refresh(ctx); err != nil {
			logger.Error("initial snapshot load failed", "error", err)
		}
	}()

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.UPSVAC.RefreshCron, func() {
		if err := refresh(context.Background()); err != nil {
			logger.Error("scheduled refresh failed", "error", err)
		}
	}); err != nil {
		logger.Error("invalid refresh schedule", "cron", cfg.UPSVAC.RefreshCron, "error", err)
		os.Exit(1)
	}
	scheduler.Start()

	engine := query.New(holder)
	srv := server.New(cfg.HTTP, engine, holder, refresh, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logger.Error("http server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	scheduler.Stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown incomplete", "error", err)
	}
}
