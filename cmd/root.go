package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tb",
		Short:         "Trade bot (tb): run and manage automated trade identities",
		Long:          "tb supervises one trade bot per configured identity, answers chat commands inside live trades, and manages the identities and secrets it runs with.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (json or console)")
	_ = app.config.BindPFlag(keyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	_ = app.config.BindPFlag(keyLogFormat, rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(app),
		newIdentityCmd(app),
		newCatalogCmd(app),
		newSecretCmd(app),
	)

	return rootCmd
}
