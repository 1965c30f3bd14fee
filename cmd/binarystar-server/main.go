package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"

	"github.com/signalsfoundry/binarystar-simulator/internal/logging"
	"github.com/signalsfoundry/binarystar-simulator/internal/observability"
	"github.com/signalsfoundry/binarystar-simulator/internal/server"
	"github.com/signalsfoundry/binarystar-simulator/internal/sim"
	"github.com/signalsfoundry/binarystar-simulator/kb"
	"github.com/signalsfoundry/binarystar-simulator/timectrl"
)

func main() {
	log := logging.NewFromEnv()
	ctx := context.Background()

	cfg, err := server.LoadConfig()
	if err != nil {
		log.Error(ctx, "failed to load configuration", logging.Err(err))
		os.Exit(1)
	}

	tracingShutdown, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.Err(err))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(context.Background(), tracingShutdown, log)

	lis, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		log.Error(ctx, "failed to listen", logging.String("addr", cfg.Addr), logging.Err(err))
		os.Exit(1)
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(stopCtx, cfg, log, lis); err != nil {
		log.Error(ctx, "server exited", logging.Err(err))
		os.Exit(1)
	}
}

// run wires the catalog, clock and HTTP server together and serves on
// lis until ctx is cancelled.
func run(ctx context.Context, cfg server.Config, log logging.Logger, lis net.Listener) error {
	apiMetrics, err := observability.NewAPICollector(nil)
	if err != nil {
		return err
	}
	simMetrics, err := observability.NewSimCollector(nil)
	if err != nil {
		return err
	}

	catalog := kb.NewCatalog()
	loadCatalog(log, catalog, cfg.CatalogPath)
	apiMetrics.SetCatalogSize(catalog.Len())

	clock := timectrl.NewTimeController(0, cfg.Tick, timectrl.Accelerated, cfg.DaysPerTick)
	runner := sim.NewRunner(catalog, clock, log, simMetrics)
	runner.Start(0)
	log.Info(ctx, "simulation clock started",
		logging.String("tick", cfg.Tick.String()),
		logging.Float64("days_per_tick", cfg.DaysPerTick),
	)

	api := server.New(catalog, log, apiMetrics)
	srv := &http.Server{
		Handler:      api.Routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting http server", logging.String("addr", lis.Addr().String()))
		if err := srv.Serve(lis); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info(ctx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn(ctx, "http shutdown failed", logging.Err(err))
	}
	return <-errCh
}

// loadCatalog reads the preset file when it exists; an empty catalog is
// fine, systems can still be created over the API.
func loadCatalog(log logging.Logger, catalog *kb.Catalog, path string) {
	if path == "" {
		return
	}
	f, err := os.Open(path)
	if err != nil {
		log.Warn(context.Background(), "skipping catalog load", logging.String("path", path), logging.Err(err))
		return
	}
	defer f.Close()

	summary, err := kb.LoadCatalog(catalog, f)
	if err != nil {
		log.Warn(context.Background(), "failed to load catalog", logging.String("path", path), logging.Err(err))
		return
	}
	log.Info(context.Background(), "loaded catalog presets",
		logging.String("path", path),
		logging.Int("count", len(summary.SystemNames)),
	)
}
