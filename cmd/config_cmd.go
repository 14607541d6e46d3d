// Package cmd implements the filmdesk CLI commands.
package cmd

import (
	"fmt"

	"github.com/theirongolddev/filmdesk/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Database:   %s\n", cfg.General.Database)
	fmt.Printf("    Export dir: %s\n", cfg.General.ExportDir)
	fmt.Printf("    Log level:  %s\n", cfg.General.LogLevel)
	fmt.Println()

	fmt.Println("  [Schedule]")
	fmt.Printf("    Default period: %s\n", cfg.Schedule.DefaultPeriod)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Printf("  %s, %s and %s override the file.\n",
		config.EnvDatabase, config.EnvExportDir, config.EnvLogLevel)
	fmt.Println("  Run `filmdesk setup` to reconfigure.")
	return nil
}
