package commands

import (
	"geg-automation/internal/export"
	"geg-automation/pkg/serviceutil"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(loadCmd)
}

var loadCmd = &cobra.Command{
	Use:   "load <file.csv>",
	Short: "Upserts the records of a previously written CSV report.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		records, err := export.ReadCSVFile(args[0])
		if err != nil {
			serviceutil.Fatal("failed to read csv", err)
		}

		store := openStore(cmd.Context(), cfg)
		defer store.Close()

		err = store.UpsertRows(cmd.Context(), export.TableRows(records, cfg.operations(), time.Now()))
		if err != nil {
			serviceutil.Fatal("failed to upsert records", err)
		}
		slog.Info("loaded report", "file", args[0], "records", len(records))
	},
}
