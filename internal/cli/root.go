// internal/cli/root.go
package studybot

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/mwiater/studybot/internal/appconfig"
	"github.com/mwiater/studybot/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
)

var rootCmd = &cobra.Command{
	Use:   "studybot",
	Short: "studybot — terminal study assistant backed by a local language model",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 1) Load config (file or legacy fallback). A missing file at the
		//    default path is fine; defaults carry the original fixed paths.
		cfg, err := appconfig.Load(cfgFile)
		if err != nil {
			if !cmd.Flags().Changed("config") && errors.Is(err, os.ErrNotExist) {
				cfg = appconfig.Config{}
			} else {
				return err
			}
		}

		// 2) If the user did NOT set the flag, copy the config value into the
		//    flag so both pflags and viper reflect the same, final value.
		if !cmd.Flags().Changed("debug") {
			_ = cmd.Flags().Set("debug", strconv.FormatBool(cfg.Debug))
		}
		cfg.Debug = viper.GetBool("debug")
		currentConfig = &cfg

		// 3) Route diagnostics to the configured log file for the rest of
		//    the process.
		if err := logging.Init(cfg.LogFilePath()); err != nil {
			return fmt.Errorf("initialize logging: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.Close()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// --config (defaults to the standard path)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	// Bind flags to Viper keys (flags override config)
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

// getConfig returns the loaded application configuration for command
// handlers.
func getConfig() *appconfig.Config {
	return currentConfig
}

// DebugEnabled reflects the merged flag/config debug state.
func DebugEnabled() bool { return viper.GetBool("debug") }
