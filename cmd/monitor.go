package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/MohammedAlhaje/eleganza/internal/config"
	"github.com/MohammedAlhaje/eleganza/pkg/logger"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"riverqueue.com/riverui"
)

// monitorCommand constructs the 'monitor' subcommand serving the job queue
// dashboard.
func monitorCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Serves the background job dashboard",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			slogger := slog.New(zapslog.NewHandler(logger.Get(ctx).Core()))

			// insert-only client, the dashboard never works jobs
			riverClient, err := river.NewClient(riverpgxv5.New(strg.Pool), &river.Config{
				Logger: slogger,
			})
			if err != nil {
				logger.Fatal(ctx, "could not create river queue client", zap.Error(err))
			}

			ui, err := riverui.NewHandler(&riverui.HandlerOpts{
				Endpoints: riverui.NewEndpoints(riverClient, nil),
				Logger:    slogger,
			})
			if err != nil {
				logger.Fatal(ctx, "could not create dashboard handler", zap.Error(err))
			}

			if err := ui.Start(ctx); err != nil {
				logger.Fatal(ctx, "could not start dashboard handler", zap.Error(err))
			}

			server := &http.Server{
				Addr:              cfg.Monitor.Addr,
				Handler:           ui,
				ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
			}

			go func() {
				logger.Info(ctx, "starting dashboard...", zap.String("addr", cfg.Monitor.Addr))
				if err := server.ListenAndServe(); err != nil {
					if !errors.Is(err, http.ErrServerClosed) {
						logger.Error(ctx, "could not start dashboard", zap.Error(err))
					}
				}
			}()

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			logger.Info(ctx, "stopping dashboard...")
			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Error(ctx, "could not stop dashboard", zap.Error(err))
			}
		},
	}

	return cmd
}
