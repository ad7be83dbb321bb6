package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	root "github.com/MohammedAlhaje/eleganza"
	"github.com/MohammedAlhaje/eleganza/internal/api"
	"github.com/MohammedAlhaje/eleganza/internal/api/handler/v1handler"
	"github.com/MohammedAlhaje/eleganza/internal/config"
	"github.com/MohammedAlhaje/eleganza/internal/i18n"
	"github.com/MohammedAlhaje/eleganza/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// getCatalog loads the embedded message catalogs.
func getCatalog(ctx context.Context) *i18n.Catalog {
	catalog, err := i18n.Load(root.Locales, "locales")
	if err != nil {
		logger.Fatal(ctx, "could not load message catalogs", zap.Error(err))
	}

	return catalog
}

func setupServer(ctx context.Context, deps api.Deps, cfg *config.Config) func(ctx context.Context) {
	server, err := api.NewServer(deps, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

// serveCommand constructs the 'serve' subcommand that runs a single web
// process. In production it is launched and supervised by 'start'.
func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the web process",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			c, closeCache := getCache(ctx, cfg)
			defer closeCache()

			stopWebserver := setupServer(ctx, api.Deps{
				Deps: v1handler.Deps{
					Users:    strg,
					Cache:    c,
					Database: strg,
					Catalog:  getCatalog(ctx),
				},
			}, cfg)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
		},
	}

	return cmd
}
