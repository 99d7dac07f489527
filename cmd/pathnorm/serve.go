// Grounded on cmd/klyr/run.go (teacher): kept the config-load-then-
// validate-then-serve shape, the signal.NotifyContext
// graceful-shutdown loop, and the separate metrics listener spun up only
// when metrics.enabled is set; replaced gateway.New/reverse-proxy wiring
// with internal/server.New's direct-call JSON handler.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/klyr/pathnorm/internal/config"
	"github.com/klyr/pathnorm/internal/logging"
	"github.com/klyr/pathnorm/internal/observability"
	"github.com/klyr/pathnorm/internal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the pathnorm HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return errors.New("config path is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runServer(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	return cmd
}

func runServer(ctx context.Context, cfg *config.Config) error {
	var eventLog *logging.EventLogger
	if cfg.Logging.EventLog != "" {
		logger, closer, err := logging.OpenEventLog(cfg.ResolvePath(cfg.Logging.EventLog))
		if err != nil {
			return err
		}
		defer func() { _ = closer() }()
		eventLog = logger
	}

	var metrics *observability.Metrics
	metricsSrv, err := startMetricsServer(cfg, &metrics)
	if err != nil {
		return err
	}
	defer func() {
		if metricsSrv != nil {
			_ = metricsSrv.Shutdown(context.Background())
		}
	}()

	srv := &http.Server{
		Addr:              cfg.Server.Listen,
		Handler:           server.New(cfg, eventLog, metrics),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		if cfg.Server.TLS.Enabled {
			serverErr <- srv.ListenAndServeTLS(cfg.ResolvePath(cfg.Server.TLS.CertFile), cfg.ResolvePath(cfg.Server.TLS.KeyFile))
			return
		}
		serverErr <- srv.ListenAndServe()
	}()

	signalCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-signalCtx.Done():
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func startMetricsServer(cfg *config.Config, out **observability.Metrics) (*http.Server, error) {
	if !cfg.Metrics.Enabled {
		return nil, nil
	}

	reg := prometheus.NewRegistry()
	*out = observability.NewMetrics(reg)

	mux := http.NewServeMux()
	mux.Handle("/metrics", (*out).Handler(reg))

	srv := &http.Server{Addr: cfg.Metrics.Listen, Handler: mux}
	go func() {
		_ = srv.ListenAndServe()
	}()
	return srv, nil
}
