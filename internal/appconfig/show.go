package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	fmt.Fprintln(out, "Current configuration:")
	if cfg == nil {
		cfg = &Config{}
	}
	fmt.Fprintf(out, "  Debug:            %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Model:            %s\n", cfg.Model)
	fmt.Fprintf(out, "  Model Asset:      %s\n", cfg.ModelAssetPath())
	fmt.Fprintf(out, "  Host:             %s (%s)\n", cfg.Host.Name, cfg.Host.URL)
	fmt.Fprintf(out, "  Formula Store:    %s\n", cfg.FormulaStorePath())
	fmt.Fprintf(out, "  Documents Dir:    %s\n", cfg.DocumentsDirPath())
	fmt.Fprintf(out, "  Max PDF Pages:    %d\n", cfg.PageLimit())
	fmt.Fprintf(out, "  Max Prompt Chars: %d\n", cfg.PromptCharLimit())
	fmt.Fprintf(out, "  Request Timeout:  %s\n", cfg.RequestTimeout())
	fmt.Fprintf(out, "  Log File:         %s\n", cfg.LogFilePath())
}
