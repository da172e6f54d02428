package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"scrollfeed/internal/autorefresh"
	"scrollfeed/internal/common/pagination"
	"scrollfeed/internal/config"
	"scrollfeed/internal/infra/adapter/persistence/memory"
	"scrollfeed/internal/observability/logging"
	"scrollfeed/internal/observability/tracing"
	recordUC "scrollfeed/internal/usecase/record"

	hhttp "scrollfeed/internal/handler/http"
	hrecord "scrollfeed/internal/handler/http/record"
	"scrollfeed/internal/handler/http/requestid"
)

// @title           Scrollfeed Records API
// @version         1.0
// @description     Paginated mock corpus backing the infinite-scroll client.
// @BasePath  /

// gaugeInterval is how often the corpus size gauge is refreshed between requests.
const gaugeInterval = 15 * time.Second

func main() {
	logger := initLogger()

	cfg, err := config.LoadServerConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	if cfg.TracingEnabled {
		shutdownTracing := tracing.Setup("scrollfeed-api", 1.0)
		defer func() {
			if err := shutdownTracing(context.Background()); err != nil {
				logger.Warn("tracer shutdown failed", slog.Any("error", err))
			}
		}()
	}

	store := memory.NewRecordStore()
	store.Seed(cfg.CorpusSize)
	svc := &recordUC.Service{
		Repo:               store,
		Latency:            cfg.ProviderLatency,
		RefreshInsertCount: cfg.RefreshInsertCount,
	}

	version := getVersion()
	handler := setupServer(logger, cfg, svc, version)

	if err := runServer(logger, cfg, handler, svc, version); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// initLogger initializes and returns a structured logger based on environment configuration.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// setupServer registers the routes and wraps them in the middleware chain.
// Order, outermost first: request ID, tracing, metrics, logging, recovery, body limit, timeout.
func setupServer(logger *slog.Logger, cfg config.ServerConfig, svc *recordUC.Service, version string) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /health", &hhttp.HealthHandler{Corpus: svc, Version: version})
	mux.Handle("GET /live", hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	hrecord.Register(mux, svc, cfg.PaginationConfig(), logger)

	return hhttp.Chain(mux,
		requestid.Middleware,
		tracing.Middleware,
		hhttp.MetricsMiddleware,
		hhttp.Logging(logger),
		hhttp.Recover(logger),
		hhttp.LimitRequestBody(cfg.MaxBodyBytes),
		hhttp.RequestTimeout(cfg.RequestTimeout),
	)
}

// runServer serves until SIGINT or SIGTERM and then shuts down gracefully.
func runServer(logger *slog.Logger, cfg config.ServerConfig, handler http.Handler, svc *recordUC.Service, version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gauge := autorefresh.New(gaugeInterval, func() {
		if n, err := svc.Count(ctx); err == nil {
			pagination.UpdateTotalCount(n)
		}
	}, autorefresh.WithName("corpus-gauge"), autorefresh.WithLogger(logger))
	gauge.Start()
	defer gauge.Stop()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", cfg.HTTPAddr),
			slog.String("version", version),
			slog.Int("corpus_size", cfg.CorpusSize),
			slog.Duration("provider_latency", cfg.ProviderLatency))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logger.Info("server stopped")
		return nil
	})
	return g.Wait()
}
