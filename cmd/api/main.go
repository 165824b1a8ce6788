// Package main is the entry point for the TechWave Metrics/Alert API.
//
// It loads configuration, builds the fan-out logger, wires the HTTP chassis
// (middleware, routing, health) with the random metrics sampler and the
// Prometheus request collector, and serves until SIGINT or SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"techwave/internal/config"
	"techwave/internal/core"
	"techwave/internal/logging"
	"techwave/internal/sysmetrics"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// run encapsulates the startup lifecycle so that main() can cleanly exit on error.
func run() error {
	// The SSM provider is only consulted outside APP_ENV=local.
	cfg, err := config.LoadConfig(config.NewSSMProvider(os.Getenv("AWS_REGION")))
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger, closer, err := logging.New(logging.Options{
		Service:      cfg.Service,
		Level:        cfg.LogLevel,
		Pretty:       cfg.Logging.Pretty,
		ErrorFile:    cfg.Logging.ErrorFile,
		CombinedFile: cfg.Logging.CombinedFile,
	})
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer closer.Close()

	logger.Debug("techwave API starting",
		"environment", cfg.Environment,
		"version", cfg.Build.Version,
		"commit", cfg.Build.Commit,
	)

	srv, err := buildServer(cfg, logger, prometheus.NewRegistry())
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", ":"+cfg.Server.Port)
	if err != nil {
		return fmt.Errorf("listening on port %s: %w", cfg.Server.Port, err)
	}
	return serve(ctx, ln, srv.Handler(), cfg.Server, logger)
}

// buildServer wires the production dependencies into a mounted server.
func buildServer(cfg *config.Config, logger *slog.Logger, registry *prometheus.Registry) (*core.Server, error) {
	srv, err := core.NewServer(cfg, logger, sysmetrics.NewRandomSampler())
	if err != nil {
		return nil, err
	}
	srv.Metrics = core.NewPrometheusCollector(registry)
	srv.MountRoutes()
	return srv, nil
}

// serve runs the HTTP server on ln until ctx is cancelled, then drains
// in-flight requests within the configured shutdown timeout.
func serve(ctx context.Context, ln net.Listener, handler http.Handler, cfg config.ServerConfig, logger *slog.Logger) error {
	httpServer := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info(fmt.Sprintf("API running on port %s", portOf(ln)))
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("initiating graceful shutdown")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout(cfg))
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		logger.Info("server stopped cleanly")
		return nil
	})

	return g.Wait()
}

func shutdownTimeout(cfg config.ServerConfig) time.Duration {
	if cfg.ShutdownTimeout > 0 {
		return cfg.ShutdownTimeout
	}
	return 10 * time.Second
}

func portOf(ln net.Listener) string {
	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		return fmt.Sprint(addr.Port)
	}
	return ln.Addr().String()
}
