package main

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/MohammedAlhaje/eleganza/internal/config"
	"github.com/MohammedAlhaje/eleganza/internal/schema"
	"github.com/MohammedAlhaje/eleganza/internal/supervisor"
	"github.com/MohammedAlhaje/eleganza/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// childArgs builds the serve invocation for the supervised child. The config
// flag is parsed with the standard flag package before cobra dispatch, which
// stops at the first non-flag argument, so -c must precede the subcommand.
func childArgs(configPath string) []string {
	return []string{"-c", configPath, "serve"}
}

// startCommand constructs the 'start' subcommand: the production entrypoint
// of the web service. It applies pending migrations exactly once, then keeps
// a 'serve' child process running, relaunching it after a fixed delay
// whenever it exits, cleanly or not.
func startCommand(cfg *config.Config, configPath string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Migrates once, then runs and supervises the web process",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

			exe, err := os.Executable()
			if err != nil {
				logger.Fatal(ctx, "could not resolve own executable", zap.Error(err))
			}

			err = supervisor.Run(ctx, supervisor.Options{
				Migrate: func(ctx context.Context) error {
					strg, closeStrg := getPostgres(ctx, cfg)
					defer closeStrg()

					db := strg.DB.(*sql.DB) //nolint: forcetypeassert
					if err := schema.Apply(ctx, db, cfg.Migrations.Dir); err != nil {
						return err
					}

					return schema.ApplyQueue(ctx, db)
				},
				Launch: func(ctx context.Context) error {
					child := exec.CommandContext(ctx, exe, childArgs(configPath)...)
					child.Stdout = os.Stdout
					child.Stderr = os.Stderr

					return child.Run()
				},
				RestartDelay: cfg.Supervisor.RestartDelay,
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Fatal(ctx, "supervisor stopped", zap.Error(err))
			}

			logger.Info(ctx, "supervisor stopped")
		},
	}

	return cmd
}
