// internal/cli/show_config.go
package studybot

import (
	"os"

	"github.com/k0kubun/pp"
	"github.com/mwiater/studybot/internal/appconfig"
	"github.com/spf13/cobra"
)

// showConfigCmd prints the merged configuration, with a full structure dump
// when debug is enabled.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON config is loaded properly and overridden by flags accordingly.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := getConfig()
		file := ""
		if cfg != nil {
			file = cfg.ConfigPath
		}
		appconfig.ShowConfig(os.Stdout, file, cfg)
		if DebugEnabled() {
			pp.Println(cfg)
		}
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
}
