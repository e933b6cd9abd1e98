package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	apphttp "aarshjul/internal/http"
	applog "aarshjul/internal/log"
	"aarshjul/internal/metrics"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the planner web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), app)
		},
	}
}

// runServe starts the HTTP server and blocks until SIGINT/SIGTERM or a
// server error.
func runServe(ctx context.Context, app *App) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := apphttp.NewServer(app.Config.Addr(), app.Store, metrics.NewSet(), app.Config.BaseURL)
	if err != nil {
		return err
	}

	logger := app.Logger.WithComponent(applog.ComponentHTTP)
	logger.Info("Starting aarshjul server",
		"addr", app.Config.Addr(),
		applog.FieldOperation, applog.OpStartup)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received", applog.FieldOperation, applog.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("Server stopped gracefully")
	return nil
}
