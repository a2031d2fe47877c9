package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"sirms/console/console/ui"
	"sirms/console/internal/api"
	"sirms/console/internal/common"
	"sirms/console/internal/config"
	"sirms/console/internal/logging"
	"sirms/console/internal/metrics"
	"sirms/console/internal/routes"
	"sirms/console/internal/workers"
)

const shutdownTimeout = 15 * time.Second

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("SIRMS console starting up",
		"environment", cfg.AppEnv,
		"flight_api", cfg.FlightAPI.BaseURL,
		"home_aerodrome", cfg.HomeAerodrome,
		"session_backend", cfg.Session.Backend,
	)

	metricsReg := metrics.NewMetricsRegistry(prometheus.DefaultRegisterer)

	store := newStateStore(cfg, metricsReg)
	defer store.Close()

	deps, err := api.InitDependencies(cfg, metricsReg)
	if err != nil {
		logging.Fatal("Failed to initialize dependencies", "error", err.Error())
	}
	deps.Store = store

	renderer, err := ui.NewRenderer()
	if err != nil {
		logging.Fatal("Failed to parse console templates", "error", err.Error())
	}
	uiHandler := ui.NewUIHandler(
		deps.Services.Flights,
		deps.Services.Schema,
		deps.Services.Weather,
		store,
		renderer,
		cfg.Location(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	workersContainer := workers.InitWorkers(ctx, deps.Provider, cfg.FlightAPI.ProbeInterval, cfg.FlightAPI.Timeout, metricsReg)
	deps.Upstream = workersContainer.Upstream

	upSince := time.Now()
	router := routes.RegisterRoutes(cfg, deps, uiHandler, metricsReg, upSince)

	// Setup metrics endpoint outside of Chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router) // Mount Chi router at root
	logging.Info("Prometheus metrics endpoint registered at /metrics")

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logging.Info("Server starting", "addr", cfg.HTTPAddr, "environment", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logging.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logging.Error("Server stopped with error", "error", err.Error())
		os.Exit(1)
	}
	logging.Info("Server stopped")
}

// newStateStore picks the console session backend from config
func newStateStore(cfg *config.Config, m *metrics.MetricsRegistry) common.StateStore[ui.ConsoleState] {
	if cfg.Session.Backend == "redis" {
		client := common.NewRedisClient(cfg.Redis)
		return common.NewRedisStateStore[ui.ConsoleState](client, cfg.Session.TTL, m)
	}
	return common.NewMemoryStateStore[ui.ConsoleState](cfg.Session.TTL, m)
}
