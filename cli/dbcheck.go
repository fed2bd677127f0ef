package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"ci-computer-dashboard/config"
	"ci-computer-dashboard/service"
)

func newDBCheckCmd() *cobra.Command {
	var targetsFile string
	var only []string

	cmd := &cobra.Command{
		Use:   "dbcheck",
		Short: "Check connectivity to the configured Postgres hosts",
		Long:  "Connect to every target in the YAML targets file, read the server version and run each target's probe query.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if targetsFile == "" {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				targetsFile = cfg.DBTargetsFile
			}

			targets, err := config.LoadDBTargets(targetsFile)
			if err != nil {
				return err
			}
			targets, err = selectTargets(targets, only)
			if err != nil {
				return err
			}

			reports := service.NewDBCheckService(nil).CheckAll(cmd.Context(), targets)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(reports); err != nil {
				return err
			}

			failed := 0
			for _, r := range reports {
				if r.Error != "" {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d database checks failed", failed, len(reports))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&targetsFile, "targets", "", "YAML targets file (default $DB_TARGETS_FILE or db_targets.yaml)")
	cmd.Flags().StringSliceVar(&only, "target", nil, "Only check the named targets")

	return cmd
}

func selectTargets(targets []config.DBTarget, names []string) ([]config.DBTarget, error) {
	if len(names) == 0 {
		return targets, nil
	}

	byName := make(map[string]config.DBTarget, len(targets))
	for _, t := range targets {
		byName[t.Name] = t
	}

	selected := make([]config.DBTarget, 0, len(names))
	for _, name := range names {
		t, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown db target %q", name)
		}
		selected = append(selected, t)
	}
	return selected, nil
}
