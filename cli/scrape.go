package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ci-computer-dashboard/models"
	"ci-computer-dashboard/service"
)

func newScrapeCmd() *cobra.Command {
	var file string
	var pageURL string
	var out string
	var chromePath string

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Extract a shopping cart into CSV with power estimates",
		Long:  "Parse a saved cart page (or fetch one with headless Chrome), add power estimates per item and write the table as CSV.",
		RunE: func(cmd *cobra.Command, args []string) error {
			scraper := service.NewScraperService(chromePath)

			var items []models.CartItem
			var err error
			switch {
			case file != "":
				items, err = scraper.ScrapeFile(file)
			case pageURL != "":
				items, err = scraper.ScrapeURL(cmd.Context(), pageURL)
			default:
				return errors.New("either --file or --url is required")
			}
			if err != nil {
				return err
			}
			if len(items) == 0 {
				return errors.New("no cart items found; check the page structure")
			}

			items = service.AddPowerProfiles(items)

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			defer f.Close()
			if err := service.WriteCartCSV(f, items); err != nil {
				return err
			}

			sum := service.SummarizeCart(items)
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Extracted %d items, total %s\n", len(items), sum.Total)
			fmt.Fprintf(w, "Total Power Consumption: %.2fW - %.2fW\n", sum.PowerMinW, sum.PowerMaxW)
			fmt.Fprintf(w, "Recommended Power Supply: 5V @ %dA (%dW)\n", sum.SupplyAmps, sum.SupplyWatts)
			fmt.Fprintf(w, "Table saved to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Saved cart HTML page")
	cmd.Flags().StringVar(&pageURL, "url", "", "Cart page URL (usually needs a session)")
	cmd.Flags().StringVar(&out, "out", "cart_with_power.csv", "Output CSV file")
	cmd.Flags().StringVar(&chromePath, "chrome", os.Getenv("CHROME_PATH"), "Chrome executable for --url")

	return cmd
}
