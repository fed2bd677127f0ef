package cli

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ci-computer-dashboard/service"
)

func newDriveCmd() *cobra.Command {
	var folderID string
	var credentials string

	cmd := &cobra.Command{
		Use:   "drive-ls",
		Short: "List asset exports in a Google Drive folder",
		Long:  "List the CSV files and spreadsheets of a Drive folder; use an id as DRIVE_FILE_ID.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if credentials == "" {
				return errors.New("GOOGLE_APPLICATION_CREDENTIALS environment variable is not set")
			}

			drive, err := service.NewDriveService(cmd.Context(), credentials)
			if err != nil {
				return err
			}
			files, err := drive.ListAssetFiles(cmd.Context(), folderID)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tTYPE\tMODIFIED")
			for _, f := range files {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.ID, f.Name, f.MimeType, f.ModifiedTime)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&folderID, "folder", "", "Drive folder id")
	cmd.Flags().StringVar(&credentials, "credentials", os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"), "Service account JSON file")
	_ = cmd.MarkFlagRequired("folder")

	return cmd
}
