package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"ci-computer-dashboard/app"
	"ci-computer-dashboard/config"
	"ci-computer-dashboard/service"
)

func newTrainCmd() *cobra.Command {
	opts := service.DefaultTrainOptions()

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Fit the install status classifier",
		Long:  "Fit a logistic regression of install_status on location and u_build_machine_use and print the report as JSON.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			repo, err := app.NewAssetRepository(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			model := service.NewStatusModelService(service.NewDashboardService(repo), opts)
			report, err := model.Train(cmd.Context())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}

	cmd.Flags().IntVar(&opts.Epochs, "epochs", opts.Epochs, "Gradient descent epochs")
	cmd.Flags().Float64Var(&opts.LearningRate, "learning-rate", opts.LearningRate, "Gradient descent step size")
	cmd.Flags().Int64Var(&opts.Seed, "seed", opts.Seed, "Train/test split seed")

	return cmd
}
