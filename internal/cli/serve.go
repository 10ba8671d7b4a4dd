package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"viteurl/internal"
	"viteurl/web"
)

const defaultShutdownTimeout = 30 * time.Second

func newServeCommand(opts *options) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the preview server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				opts.cfg.AppPort = port
			}

			var appOpts []internal.Option
			if opts.cfg.ViewsDirectory == "" {
				appOpts = append(appOpts, internal.WithViews(web.Views()))
			}

			app, err := internal.NewAppWithConfig(opts.cfg, appOpts...)
			if err != nil {
				return fmt.Errorf("failed to create app: %w", err)
			}

			if err := app.StartAsync(); err != nil {
				return fmt.Errorf("failed to start application: %w", err)
			}

			return waitForShutdown(cmd.Context(), app)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")

	return cmd
}

// waitForShutdown blocks until a termination signal or a listener failure,
// then shuts the server down gracefully.
func waitForShutdown(ctx context.Context, app *internal.Application) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	select {
	case err := <-app.Errors():
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
		app.Logger.Info("Received shutdown signal", slog.Any("cause", context.Cause(ctx)))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	if err := app.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error during shutdown: %w", err)
	}
	app.Logger.Info("Server shutdown complete")
	return nil
}
