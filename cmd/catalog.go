package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/tradebot/internal/domain"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the item catalog",
	}

	cmd.AddCommand(newCatalogListCmd(app))

	return cmd
}

func newCatalogListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list [category|alias]",
		Short: "List catalog items of a category, or the known categories",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := app.newLogger()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			catalog, _, _, err := app.catalog(cmd.Context(), logger)
			if err != nil {
				return err
			}
			defer catalog.Close()

			var categories []string
			warm := func(ctx context.Context) error {
				var err error
				categories, err = catalog.Categories(ctx)
				return err
			}
			if err := runFetchSpinner(cmd.Context(), cmd.ErrOrStderr(), "Fetching item schema...", warm); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				_, err = fmt.Fprintln(out, strings.Join(categories, "\n"))
				return err
			}

			items, err := catalog.ItemsByCraftMaterial(cmd.Context(), domain.ResolveCategory(args[0]))
			if err != nil {
				return err
			}
			if len(items) == 0 {
				return fmt.Errorf("no catalog items in category %q", args[0])
			}

			for _, item := range items {
				if _, err := fmt.Fprintf(out, "%d\t%s\n", item.Defindex, item.Name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
