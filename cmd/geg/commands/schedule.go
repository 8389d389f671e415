package commands

import (
	"geg-automation/internal/automation"
	"geg-automation/internal/components/chrono"
	"geg-automation/internal/components/telemetry"
	"geg-automation/pkg/serviceutil"
	"log/slog"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scheduleCmd)
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Runs every account on a cron schedule until interrupted.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cfg := loadConfig()

		spec, grace, timezone, err := cfg.schedule()
		if err != nil {
			serviceutil.Fatal("invalid schedule config", err)
		}
		clock, err := chrono.NewStandardTime(timezone)
		if err != nil {
			serviceutil.Fatal("failed to load timezone", err)
		}

		store := openStore(ctx, cfg)
		defer store.Close()

		scheduler := automation.NewScheduler(
			newRunner(cfg, store, automation.WithTime(clock)),
			store,
			chrono.NewStandardCron(clock, telemetry.SlogAPI{}),
			clock,
			spec,
			grace,
			telemetry.SlogAPI{},
		)
		err = scheduler.Start(ctx)
		if err != nil {
			serviceutil.Fatal("failed to start scheduler", err)
		}
		slog.Info("scheduler started", "spec", spec, "timezone", timezone, "grace", grace)

		<-ctx.Done()
		<-scheduler.Stop().Done()
	},
}
