package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/MohammedAlhaje/eleganza/internal/config"
	"github.com/MohammedAlhaje/eleganza/internal/mailer"
	"github.com/MohammedAlhaje/eleganza/internal/worker"
	"github.com/MohammedAlhaje/eleganza/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// workerCommand constructs the 'worker' subcommand that processes background
// jobs. With --schedule it also owns the periodic jobs, so exactly one
// instance should run with that flag.
func workerCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Runs background job workers",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			c, closeCache := getCache(ctx, cfg)
			defer closeCache()

			schedule, _ := cmd.Flags().GetBool("schedule")

			riverClient, err := worker.Start(ctx, strg.Pool, worker.Deps{
				Sender: mailer.New(mailer.Options{
					Host:     cfg.SMTP.Host,
					Port:     cfg.SMTP.Port,
					From:     cfg.SMTP.From,
					Username: cfg.SMTP.Username,
					Password: cfg.SMTP.Password,
				}),
				Catalog: getCatalog(ctx),
				Users:   strg,
				Cache:   c,
			}, worker.Options{
				MaxWorkers:        cfg.Worker.MaxWorkers,
				UserCountInterval: cfg.Worker.UserCountInterval,
				StatsCacheTTL:     cfg.Worker.StatsCacheTTL,
				Schedule:          schedule,
			})
			if err != nil {
				logger.Fatal(ctx, "could not start workers", zap.Error(err))
			}

			logger.Info(ctx, "workers started", zap.Bool("schedule", schedule))

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			logger.Info(ctx, "stopping workers...")
			if err := riverClient.Stop(shutdownCtx); err != nil {
				logger.Error(ctx, "could not stop workers cleanly", zap.Error(err))
			}
		},
	}

	cmd.Flags().Bool("schedule", false, "Also run the periodic job scheduler")

	return cmd
}
