package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/var1d/folio/internal/cli"
	httpAdapter "github.com/var1d/folio/pkg/adapters/http"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts folio in server mode: a JSON API for the theme and contact sessions,
SSE and WebSocket streams, content proxies with offline fallback and /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, debug, err := setup(cmd, flagBinding{key: "http.port", flag: "port"})
		if err != nil {
			return err
		}

		sc := cli.NewSignalContext(context.Background())
		defer sc.Cancel()

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		stack, err := cli.BuildStack(sc, cfg, logger, cli.StackOptions{Registerer: reg, Debug: debug})
		if err != nil {
			return err
		}

		server := httpAdapter.NewServer(stack.App.Theme, stack.App.Sessions,
			httpAdapter.WithContent(stack.Content),
			httpAdapter.WithMetrics(stack.Metrics.Handler()),
			httpAdapter.WithLogger(logger),
		)

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
			Handler:           server.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("Starting folio server", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		var runErr error
		select {
		case err := <-serverErrors:
			if !errors.Is(err, http.ErrServerClosed) {
				runErr = fmt.Errorf("server error: %w", err)
			}
		case <-sc.Done():
			logger.Info("Start shutdown", "signal", sc.Signal())
		}

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		// SSE and WebSocket handlers end with their request contexts.
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			_ = srv.Close()
		}
		server.Close()
		if err := stack.Close(ctx); err != nil {
			logger.Warn("Sessions did not drain", "err", err)
		}
		logger.Info("folio server stopped")
		return runErr
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
}
