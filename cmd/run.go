package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bnema/tradebot/internal/adapters/inventory/webapi"
	"github.com/bnema/tradebot/internal/adapters/network/jsonl"
	statusadapter "github.com/bnema/tradebot/internal/adapters/render/status"
	"github.com/bnema/tradebot/internal/adapters/tradeweb"
	"github.com/bnema/tradebot/internal/application/bot"
	"github.com/bnema/tradebot/internal/application/supervisor"
	"github.com/bnema/tradebot/internal/domain"
	"github.com/bnema/tradebot/internal/ports"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func newRunCmd(app *app) *cobra.Command {
	var only []string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every configured identity under the supervisor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger, err := app.newLogger()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			identities, err := selectIdentities(ctx, app.repo, only)
			if err != nil {
				return err
			}
			if len(identities) == 0 {
				return errors.New("no identities configured")
			}
			if err := app.registry.Validate(identities); err != nil {
				return err
			}

			catalog, settings, apiKey, err := app.catalog(ctx, logger)
			if err != nil {
				return err
			}
			defer catalog.Close()
			settings = settings.WithDefaults()

			builder := &bot.Builder{
				Registry:  app.registry,
				Dialer:    jsonl.Dialer{Logger: logger},
				Catalog:   catalog,
				Inventory: webapi.NewLoader(app.config.GetString(keyInventoryURL), apiKey, app.httpClient),
				Trades: tradeweb.ClientFactory{
					Options: tradeweb.Options{
						BaseURL:    app.config.GetString(keyTradeURL),
						HTTPClient: app.httpClient,
						Logger:     logger,
					},
					Rate:  rate.Every(app.config.GetDuration(keyTradeInterval)),
					Burst: 1,
				},
				Clock: ports.SystemClock{},
			}

			sup := supervisor.New(identities, func(ctx context.Context, identity domain.Identity, logger *zap.Logger) (supervisor.Runner, error) {
				unit, err := builder.Build(ctx, identity, logger)
				if err != nil {
					return nil, err
				}
				return unit, nil
			}, supervisor.Options{
				Stagger:      settings.Stagger,
				CrashCeiling: settings.CrashCeiling,
				Logger:       logger,
			})

			logger.Info("starting identities", zap.Int("count", len(identities)))
			runErr := sup.Run(ctx)
			if runErr != nil && !errors.Is(runErr, context.Canceled) {
				return fmt.Errorf("run supervisor: %w", runErr)
			}

			output, err := app.statusRenderer(sup.Snapshot(), statusadapter.RenderOptions{Now: app.now(), CrashCeiling: settings.CrashCeiling})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), output)
			return err
		},
	}

	cmd.Flags().StringSliceVar(&only, "identity", nil, "Run only these identity ids (repeatable)")

	return cmd
}

func selectIdentities(ctx context.Context, repo ports.IdentityRepository, ids []string) ([]domain.Identity, error) {
	if len(ids) == 0 {
		return repo.List(ctx)
	}

	identities := make([]domain.Identity, 0, len(ids))
	for _, id := range ids {
		identity, err := repo.GetByID(ctx, domain.IdentityID(id))
		if err != nil {
			return nil, err
		}
		identities = append(identities, identity)
	}
	return identities, nil
}
