package main

import (
	"context"
	"os"

	"github.com/MohammedAlhaje/eleganza/internal/account"
	"github.com/MohammedAlhaje/eleganza/internal/config"
	"github.com/MohammedAlhaje/eleganza/internal/prompt"
	"github.com/MohammedAlhaje/eleganza/pkg/logger"
	"github.com/MohammedAlhaje/eleganza/pkg/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runSuperuser creates a superuser account. With a prompter it first offers
// the configured credentials and falls back to asking for each field; without
// one (nil) it uses the configured credentials directly.
func runSuperuser(ctx context.Context, cfg *config.Config, strg storage.Storage, prompter *prompt.Prompter) error {
	input := account.SuperuserInput{
		Username: cfg.Superuser.Username,
		Email:    cfg.Superuser.Email,
		Password: cfg.Superuser.Password,
	}

	if prompter != nil {
		useConfigured, err := prompter.Confirm(
			"Use configured superuser credentials ("+input.Username+", "+input.Email+")?", true)
		if err != nil {
			return err
		}

		if !useConfigured {
			if input.Username, err = prompter.Line("Username"); err != nil {
				return err
			}
			if input.Email, err = prompter.Line("Email"); err != nil {
				return err
			}
			if input.Password, err = prompter.Line("Password"); err != nil {
				return err
			}
		}
	}

	_, err := account.NewBootstrapper(strg).CreateSuperuser(ctx, input)

	return err
}

// superuserCommand constructs the 'superuser' subcommand that creates a
// privileged account, either interactively or from configuration with
// --non-interactive.
func superuserCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "superuser",
		Short: "Creates a superuser account",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			var prompter *prompt.Prompter
			if nonInteractive, _ := cmd.Flags().GetBool("non-interactive"); !nonInteractive {
				prompter = prompt.New(os.Stdin, os.Stdout)
			}

			if err := runSuperuser(ctx, cfg, strg, prompter); err != nil {
				logger.Fatal(ctx, "could not create superuser", zap.Error(err))
			}
		},
	}

	cmd.Flags().Bool("non-interactive", false, "Use configured credentials without prompting")

	return cmd
}
