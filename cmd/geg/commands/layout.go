package commands

import (
	"geg-automation/internal/export"
	"geg-automation/internal/scrapers/geg"
	"geg-automation/pkg/configutil"
	"geg-automation/pkg/serviceutil"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(layoutCmd)
}

// readOptionalConfig reads the config file without requiring a complete
// configuration, commands that work offline only need the layout from it.
func readOptionalConfig() (Config, error) {
	return configutil.ReadConfig[Config](*configPath)
}

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Prints the column layout used to read the report grid.",
	Run: func(cmd *cobra.Command, args []string) {
		layout := geg.DefaultLayout()
		cfg, err := readOptionalConfig()
		if err == nil {
			layout, err = cfg.layout()
			if err != nil {
				serviceutil.Fatal("failed to load layout", err)
			}
		}
		export.RenderLayout(os.Stdout, layout)
	},
}
