package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func NewRootCmd() *cobra.Command {
	serve := newServeCmd()

	root := &cobra.Command{
		Use:   "cidash",
		Short: "CI computer asset dashboard",
		Long:  "cidash serves dashboards over the cmdb_ci_computer export: asset tag counts by year prefix and desktop/laptop breakdowns.",
		// Running without a subcommand starts the server
		RunE:  serve.RunE,
	}
	root.SilenceUsage = true

	root.AddCommand(
		serve,
		newSummaryCmd(),
		newDBCheckCmd(),
		newQRCmd(),
		newScrapeCmd(),
		newTrainCmd(),
		newDriveCmd(),
	)

	root.Version = Version
	root.SetVersionTemplate(fmt.Sprintf("cidash %s\n", Version))

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
