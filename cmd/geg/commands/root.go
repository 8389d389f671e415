package commands

import (
	"context"
	"fmt"
	"geg-automation/internal/components/db"
	"geg-automation/internal/components/telemetry"
	"geg-automation/internal/scrapers/geg"
	"geg-automation/pkg/configutil"
	"geg-automation/pkg/restyutil"
	"geg-automation/pkg/serviceutil"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const envPrefix = "GEG"

var (
	configPath *string
	verbose    *bool
	tracePath  *string

	shutdownTracing func(context.Context) error
	traceFile       *os.File
)

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "config.json5", "The configuration file, <name>.local.json5 is merged over it.")
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug messages and dump every HTTP exchange.")
	tracePath = rootCmd.PersistentFlags().String("trace", "", "Write trace spans to this file.")
}

var rootCmd = &cobra.Command{
	Use:   "geg",
	Short: "geg collects the driver records of the Gente e Gestão portal.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(os.Stderr, *verbose)

		if *tracePath == "" {
			return
		}
		f, err := os.Create(*tracePath)
		if err != nil {
			serviceutil.Fatal("failed to create trace file", err)
		}
		shutdown, err := telemetry.SetupTracing(f)
		if err != nil {
			serviceutil.Fatal("failed to setup tracing", err)
		}
		traceFile = f
		shutdownTracing = shutdown
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		flushTracing()
	},
}

func flushTracing() {
	if shutdownTracing == nil {
		return
	}
	err := shutdownTracing(context.Background())
	if err != nil {
		slog.Warn("failed to flush traces", "err", err)
	}
	traceFile.Close()
	shutdownTracing = nil
}

// exit flushes pending traces before terminating with `code`.
func exit(code int) {
	flushTracing()
	os.Exit(code)
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() Config {
	cfg, err := configutil.Load[Config](*configPath, envPrefix)
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	return cfg
}

func openStore(ctx context.Context, cfg Config) db.Store {
	store, err := db.Open(cfg.Database.URL, telemetry.SlogAPI{})
	if err != nil {
		serviceutil.Fatal("failed to open db", err)
	}
	err = store.Migrate(ctx)
	if err != nil {
		serviceutil.Fatal("failed to migrate db", err)
	}
	return store
}

func newScraper(cfg Config) geg.Scraper {
	opts, err := cfg.scraperOptions()
	if err != nil {
		serviceutil.Fatal("invalid portal config", err)
	}
	if *verbose {
		out, err := restyutil.NewFilesystemOutput(filepath.Join(cfg.Output.Dir, "debug", "http"))
		if err != nil {
			serviceutil.Fatal("failed to create http dump directory", err)
		}
		opts.HTTPOutput = out
	}

	layout, err := cfg.layout()
	if err != nil {
		serviceutil.Fatal("failed to load layout", err)
	}
	return geg.NewScraper(opts, layout, telemetry.SlogAPI{})
}
