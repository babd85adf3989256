package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/Chinh13571113/careermate-web-sub001"
	httpAdapter "github.com/Chinh13571113/careermate-web-sub001/pkg/adapters/http"
	"github.com/Chinh13571113/careermate-web-sub001/pkg/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the interview HTTP server",
	Long:  `Starts the CareerMate engine in server mode, exposing the session API as JSON over HTTP together with a Prometheus metrics endpoint.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger(cmd)

		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading configuration: %v\n", err)
			os.Exit(1)
		}
		if addr, _ := cmd.Flags().GetString("listen"); cmd.Flags().Changed("listen") {
			cfg.Listen = addr
		}

		registry := prometheus.NewRegistry()
		metrics := observability.NewMetrics(registry)

		eng, closer, err := buildEngine(cfg, logger, careermate.WithLifecycleHooks(metrics.Hooks()))
		if err != nil {
			fmt.Printf("Error initializing engine: %v\n", err)
			os.Exit(1)
		}
		if closer != nil {
			defer closer()
		}

		handler := httpAdapter.NewHandler(eng, httpAdapter.WithLogger(logger))

		srv := &http.Server{
			Addr:    cfg.Listen,
			Handler: handler,
		}
		metricsSrv := &http.Server{
			Addr:    cfg.MetricsListen,
			Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		}

		// Channel to listen for errors coming from the listeners.
		serverErrors := make(chan error, 2)

		go func() {
			logger.Info("starting CareerMate server", "addr", srv.Addr, "store", cfg.Store.Backend)
			serverErrors <- srv.ListenAndServe()
		}()
		go func() {
			logger.Info("starting metrics endpoint", "addr", metricsSrv.Addr)
			serverErrors <- metricsSrv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("starting shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					logger.Error("error killing server", "err", err)
				}
			}
			if err := metricsSrv.Shutdown(ctx); err != nil {
				metricsSrv.Close()
			}
			logger.Info("CareerMate server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("listen", "l", ":8080", "Address to listen on")
}
