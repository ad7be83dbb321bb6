package main

import (
	"context"
	"os"

	"github.com/MohammedAlhaje/eleganza/internal/config"
	"github.com/MohammedAlhaje/eleganza/internal/prompt"
	"github.com/MohammedAlhaje/eleganza/internal/schema"
	"github.com/MohammedAlhaje/eleganza/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// resetCommand constructs the 'reset' subcommand that deletes every generated
// migration file while keeping the per-app directory markers. It refuses to
// run without an explicit confirmation unless --yes is passed, and logs every
// file it removes.
func resetCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Deletes generated migration files, keeping directory markers",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			if err := schema.CheckRoot(cfg.Migrations.Dir); err != nil {
				logger.Fatal(ctx, "migrations directory is not usable", zap.Error(err))
			}

			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				ok, err := prompt.New(os.Stdin, os.Stdout).
					Confirm("Delete all migration files under "+cfg.Migrations.Dir+"?", false)
				if err != nil {
					logger.Fatal(ctx, "could not read confirmation", zap.Error(err))
				}
				if !ok {
					logger.Info(ctx, "reset declined, nothing removed")

					return
				}
			}

			removed, err := schema.Reset(ctx, cfg.Migrations.Dir, schema.Apps)
			if err != nil {
				logger.Fatal(ctx, "could not reset migrations", zap.Error(err))
			}

			logger.Info(ctx, "reset finished", zap.Int("removed", len(removed)))
		},
	}

	cmd.Flags().Bool("yes", false, "Skip the confirmation prompt")

	return cmd
}
