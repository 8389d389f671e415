package commands

import (
	"geg-automation/internal/components/telemetry"
	"geg-automation/internal/export"
	"geg-automation/internal/scrapers/geg"
	"geg-automation/pkg/serviceutil"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var parseOut *string

func init() {
	parseOut = parseCmd.Flags().String("out", "", "Write the CSV report here instead of stdout.")
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse <response-file> [--out <file.csv>]",
	Short: "Extracts the records of a saved grid callback response.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			serviceutil.Fatal("failed to read response", err)
		}

		layout := geg.DefaultLayout()
		cfg, err := readOptionalConfig()
		if err == nil {
			layout, err = cfg.layout()
			if err != nil {
				serviceutil.Fatal("failed to load layout", err)
			}
		}

		scraper := geg.NewScraper(geg.Options{}, layout, telemetry.SlogAPI{})
		records, err := scraper.ParseResponse(string(raw))
		if err != nil {
			serviceutil.Fatal("failed to parse response", err)
		}

		out := os.Stdout
		if *parseOut != "" {
			out, err = os.Create(*parseOut)
			if err != nil {
				serviceutil.Fatal("failed to create output", err)
			}
			defer out.Close()
		}
		err = export.WriteCSV(out, records)
		if err != nil {
			serviceutil.Fatal("failed to write csv", err)
		}

		if *parseOut != "" {
			export.RenderStatistics(os.Stdout, geg.Summarize(records))
			slog.Info("wrote report", "file", *parseOut, "records", len(records))
		}
	},
}
