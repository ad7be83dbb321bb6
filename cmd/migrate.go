package main

import (
	"context"
	"database/sql"
	"io/fs"
	"os"

	root "github.com/MohammedAlhaje/eleganza"
	"github.com/MohammedAlhaje/eleganza/internal/config"
	"github.com/MohammedAlhaje/eleganza/internal/prompt"
	"github.com/MohammedAlhaje/eleganza/internal/schema"
	"github.com/MohammedAlhaje/eleganza/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// baselineFS returns the embedded baseline migrations rooted at the per-app
// directories.
func baselineFS(ctx context.Context) fs.FS {
	sub, err := fs.Sub(root.Migrations, "migrations")
	if err != nil {
		logger.Fatal(ctx, "could not open embedded migrations", zap.Error(err))
	}

	return sub
}

// migrateCommand constructs the 'migrate' subcommand: an interactive wizard
// walking the operator through resetting, regenerating and applying the
// database schema, flushing data, and bootstrapping a superuser. Every step
// must be confirmed, declining all of them changes nothing.
func migrateCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Interactive wizard for migrations, schema and superuser setup",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			if err := schema.CheckRoot(cfg.Migrations.Dir); err != nil {
				logger.Fatal(ctx, "migrations directory is not usable", zap.Error(err))
			}

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			db := strg.DB.(*sql.DB) //nolint: forcetypeassert
			prompter := prompt.New(os.Stdin, os.Stdout)

			wizard := schema.Wizard{
				Confirm: prompter.Confirm,
				Reset: func(ctx context.Context) error {
					_, err := schema.Reset(ctx, cfg.Migrations.Dir, schema.Apps)

					return err
				},
				Flush: func(ctx context.Context) error {
					return schema.Flush(ctx, db)
				},
				Generate: func(ctx context.Context) error {
					_, err := schema.Generate(ctx, baselineFS(ctx), cfg.Migrations.Dir)

					return err
				},
				Apply: func(ctx context.Context) error {
					if err := schema.Apply(ctx, db, cfg.Migrations.Dir); err != nil {
						return err
					}

					return schema.ApplyQueue(ctx, db)
				},
				Superuser: func(ctx context.Context) error {
					return runSuperuser(ctx, cfg, strg, prompter)
				},
			}

			if err := wizard.Run(ctx); err != nil {
				logger.Fatal(ctx, "wizard aborted", zap.Error(err))
			}

			logger.Info(ctx, "wizard finished")
		},
	}

	return cmd
}
