package main

import (
	"context"
	"path/filepath"

	"github.com/MohammedAlhaje/eleganza/internal/config"
	"github.com/MohammedAlhaje/eleganza/internal/topology"
	"github.com/MohammedAlhaje/eleganza/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// verifyCommand constructs the 'verify' subcommand that validates the
// deployment topology descriptor and exits non-zero when problems are found.
func verifyCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Validates the deployment topology descriptor",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			d, err := topology.Load(cfg.Topology.File)
			if err != nil {
				logger.Fatal(ctx, "could not load topology descriptor", zap.Error(err))
			}

			problems := d.Validate(filepath.Dir(cfg.Topology.File))
			for _, problem := range problems {
				logger.Error(ctx, "topology problem", zap.String("problem", problem))
			}
			if len(problems) > 0 {
				logger.Fatal(ctx, "topology descriptor is invalid",
					zap.Int("problems", len(problems)))
			}

			logger.Info(ctx, "topology descriptor is valid",
				zap.String("file", cfg.Topology.File))
		},
	}

	return cmd
}
