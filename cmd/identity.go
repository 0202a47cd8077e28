package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	statusadapter "github.com/bnema/tradebot/internal/adapters/render/status"
	"github.com/bnema/tradebot/internal/application/supervisor"
	"github.com/bnema/tradebot/internal/domain"
	"github.com/spf13/cobra"
)

func newIdentityCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identity",
		Short: "Manage trade identities",
	}

	cmd.AddCommand(newIdentityListCmd(app), newIdentityAddCmd(app))

	return cmd
}

func newIdentityListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List configured identities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			identities, err := app.repo.List(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(identities)
			}

			statuses := make([]supervisor.Status, 0, len(identities))
			for _, identity := range identities {
				statuses = append(statuses, supervisor.Status{Identity: identity})
			}

			rendered, err := app.statusRenderer(statuses, statusadapter.RenderOptions{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render identities: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print identities as JSON")

	return cmd
}

func newIdentityAddCmd(app *app) *cobra.Command {
	var identity domain.Identity
	var id string
	var pollInterval time.Duration
	var maxIdle time.Duration

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add or replace an identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			identity.ID = domain.IdentityID(id)
			identity.PollInterval = pollInterval
			identity.MaxIdle = maxIdle

			if err := app.registry.Validate([]domain.Identity{identity}); err != nil {
				return err
			}
			if err := app.repo.Save(cmd.Context(), identity); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "saved identity %s\n", identity.ID)
			return err
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Identity ID")
	cmd.Flags().StringVar(&identity.DisplayName, "display-name", "", "Display name")
	cmd.Flags().StringVar(&identity.SteamID, "steam-id", "", "Steam ID the bot logs in as")
	cmd.Flags().StringArrayVar(&identity.Admins, "admin", nil, "Admin steam ID (repeatable)")
	cmd.Flags().StringVar(&identity.Handler, "handler", domain.DefaultHandler, "Handler name: "+strings.Join(app.registry.Names(), ", "))
	cmd.Flags().StringVar(&identity.EventsPath, "events", "", "Path of the JSONL event stream")
	cmd.Flags().StringVar(&identity.ResponsesPath, "responses", "", "Path of the JSONL reply stream")
	cmd.Flags().DurationVar(&pollInterval, "poll-interval", domain.DefaultPollInterval, "Trade status poll interval")
	cmd.Flags().DurationVar(&maxIdle, "max-idle", 0, "Cancel a trade after this long without activity (0 disables)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("steam-id")
	_ = cmd.MarkFlagRequired("events")

	return cmd
}
