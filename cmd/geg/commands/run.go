package commands

import (
	"fmt"
	"geg-automation/internal/automation"
	"geg-automation/internal/components/db"
	"geg-automation/internal/components/telemetry"
	"geg-automation/internal/notify"
	"geg-automation/pkg/serviceutil"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var runXLSX *bool

func init() {
	runXLSX = runCmd.Flags().Bool("xlsx", false, "Also write an XLSX copy of every report.")
	rootCmd.AddCommand(runCmd)
}

func newNotifier(cfg Config) notify.Notifier {
	if cfg.Notify.Addr == "" || len(cfg.Notify.To) == 0 {
		return notify.Nop{}
	}
	return notify.NewMailer(notify.SmtpConfig{
		Addr:     cfg.Notify.Addr,
		Username: cfg.Notify.Username,
		Password: cfg.Notify.Password,
		From:     cfg.Notify.From,
		To:       cfg.Notify.To,
	}, telemetry.SlogAPI{})
}

func newRunner(cfg Config, store db.Store, options ...automation.RunnerOption) *automation.Runner {
	config, err := cfg.automationConfig()
	if err != nil {
		serviceutil.Fatal("invalid config", err)
	}
	if *runXLSX {
		config.XLSX = true
	}

	options = append(options, automation.WithNotifier(newNotifier(cfg)))
	return automation.NewRunner(newScraper(cfg), store, config, options...)
}

var runCmd = &cobra.Command{
	Use:   "run [--xlsx]",
	Short: "Collects the report once for every registered account.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		store := openStore(cmd.Context(), cfg)
		defer store.Close()

		runner := newRunner(cfg, store, automation.WithStatistics(os.Stdout))

		results, err := runner.RunAll(cmd.Context())
		for _, result := range results {
			if result.Err != nil {
				continue
			}
			fmt.Printf("%s: %d records -> %s\n", result.Email, len(result.Records), result.CSVPath)
		}
		if err != nil {
			slog.Error("run failed", "err", err)
			store.Close()
			exit(1)
		}
	},
}
