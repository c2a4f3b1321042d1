package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/augmenter"
	"github.com/aretw0/augmenter/internal/demo"
	"github.com/aretw0/augmenter/internal/presentation/tui"
	httpAdapter "github.com/aretw0/augmenter/pkg/adapters/http"
	"github.com/aretw0/augmenter/pkg/domain"
	"github.com/aretw0/augmenter/pkg/observability"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the demo catalog HTTP server",
	Long: `Serves the demo catalog as JSON shaped by the engine, with prometheus metrics on /metrics.
Send X-Admin: true to see admin-only keys and ?currency= to change the price currency.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		quiet, _ := cmd.Flags().GetBool("quiet")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		e, err := newEnv(ctx, cmd)
		if err != nil {
			return err
		}
		defer e.close()

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		metrics, err := observability.NewMetrics(reg)
		if err != nil {
			return err
		}

		eng, err := e.engine(augmenter.WithLifecycleHooks(domain.ChainHooks(
			metrics.Hooks(),
			observability.LoggingHooks(e.logger),
		)))
		if err != nil {
			return err
		}

		adapter := httpAdapter.NewAdapter(eng,
			httpAdapter.WithRequestState(demo.RequestState),
			httpAdapter.WithLogger(e.logger),
		)
		catalog := demo.NewCatalog()
		handler := httpAdapter.NewRouter(augmenter.Version, func(r chi.Router) {
			r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			demo.Mount(r, adapter, catalog)
		})

		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		}

		if !quiet {
			tui.PrintBanner(cmd.ErrOrStderr())
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			e.logger.Info("Starting server", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case <-ctx.Done():
			e.logger.Info("Shutting down")

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				e.logger.Error("Graceful shutdown did not complete", "error", err)
				return srv.Close()
			}
			e.logger.Info("Server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")
}
