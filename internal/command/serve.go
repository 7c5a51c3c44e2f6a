package command

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/stolasapp/bookplate/internal/app"
	"github.com/stolasapp/bookplate/internal/server"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the book summary web app",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
			cfg, logger, store, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			grp, ctx := errgroup.WithContext(cmd.Context())

			// In dev mode, make sure the demo account exists.
			if cfg.DevMode {
				if err := app.Seed(ctx, cfg, logger, store); err != nil {
					return err
				}
			}

			appServer := app.New(cfg, logger, store)

			listener, err := server.Listen(ctx, cfg.WebAddress)
			if err != nil {
				return err
			}

			logger.InfoContext(ctx,
				"starting app server...",
				slog.String("address", cfg.WebAddress),
			)
			server.Serve(ctx, grp, appServer.Server, listener)
			return grp.Wait()
		},
	}
}
