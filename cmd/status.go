package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MohammedAlhaje/eleganza/internal/config"
	"github.com/MohammedAlhaje/eleganza/internal/schema"
	"github.com/MohammedAlhaje/eleganza/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// statusCommand constructs the 'status' subcommand that prints the applied
// schema version of every app.
func statusCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Prints the applied schema version per app",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			versions, err := schema.Status(ctx, strg.DB.(*sql.DB))
			if err != nil {
				logger.Fatal(ctx, "could not read schema status", zap.Error(err))
			}

			for _, v := range versions {
				fmt.Printf("%-10s %d\n", v.App, v.Version) //nolint: forbidigo
			}
		},
	}

	return cmd
}
