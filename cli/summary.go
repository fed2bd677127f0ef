package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ci-computer-dashboard/app"
	"ci-computer-dashboard/config"
	"ci-computer-dashboard/service"
)

func newSummaryCmd() *cobra.Command {
	var asJSON bool
	var machineUses []string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the asset tag and device type summary",
		Long:  "Load the configured asset source and print the year prefix counts and the desktop/laptop counts per machine use.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			repo, err := app.NewAssetRepository(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			dashboard := service.NewDashboardService(repo)

			sum, err := dashboard.Summary(cmd.Context())
			if err != nil {
				return err
			}
			var selected []string
			if cmd.Flags().Changed("machine-use") {
				selected = machineUses
			}
			groups, err := dashboard.DeviceGroups(cmd.Context(), selected)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{"summary": sum, "devices": groups})
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PREFIX\tCOUNT")
			for _, p := range sum.PrefixCounts {
				fmt.Fprintf(tw, "%s\t%d\n", p.Prefix, p.Count)
			}
			fmt.Fprintf(tw, "total\t%d\n\n", sum.TotalRecords)
			fmt.Fprintln(tw, "DEVICE\tMACHINE USE\tCOUNT")
			for _, g := range groups {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", g.DeviceType, g.Category, g.Count)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of tables")
	cmd.Flags().StringSliceVar(&machineUses, "machine-use", nil, "Restrict device counts to these machine uses")

	return cmd
}
