// Package command contains the CLI command constructors.
package command

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/stolasapp/bookplate/internal/config"
	"github.com/stolasapp/bookplate/internal/observability"
)

// RootCommand instantiates the root command, with all sub-commands bound.
func RootCommand() *cobra.Command {
	envFilePath := ".env"
	cmd := &cobra.Command{
		Use:          "bookplate [command] [flags]",
		Short:        "The book summary notebook",
		Version:      version(),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// The env file is optional; the environment itself wins.
			if err := godotenv.Load(envFilePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to load env file %s: %w", envFilePath, err)
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			logger := observability.InitSlog(cfg)
			logger.DebugContext(cmd.Context(), "configuration loaded", slog.Any("config", cfg))
			slog.SetDefault(logger)
			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(
		&envFilePath,
		"env-file", "e",
		envFilePath,
		"path to an optional env file with configuration overrides",
	)

	cmd.AddCommand(
		serveCommand(),
		userCommand(),
	)

	return cmd
}
