package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ci-computer-dashboard/service"
)

func newQRCmd() *cobra.Command {
	var text string
	var out string

	cmd := &cobra.Command{
		Use:   "qr",
		Short: "Write a QR code PNG",
		Long:  "Encode text as a QR code (10 px modules, 4 module border) and write it as PNG.",
		RunE: func(cmd *cobra.Command, args []string) error {
			png, err := service.NewQRService().GeneratePNG(text)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, png, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", out, len(png))
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Text to encode")
	cmd.Flags().StringVar(&out, "out", "qr.png", "Output PNG file")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}
