package cmd

import (
	"fmt"

	"github.com/theirongolddev/filmdesk/internal/config"
	"github.com/theirongolddev/filmdesk/internal/logging"
	"github.com/theirongolddev/filmdesk/internal/pipeline"
	"github.com/theirongolddev/filmdesk/internal/tui"
	"github.com/theirongolddev/filmdesk/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	// The alternate screen owns stderr, so log to a file beside the database.
	logFile, err := logging.OpenFile(cfg.General.Database)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := logging.New(logging.Config{Level: logLevel(cfg), Output: logFile})

	s, err := openStudioWith(cfg, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	period, _ := pipeline.ParsePeriod(cfg.Schedule.DefaultPeriod)
	app := tui.NewApp(s.svc, tui.Options{
		Database:  cfg.General.Database,
		ExportDir: cfg.General.ExportDir,
		Period:    period,
		FirstRun:  !config.Exists(),
		Logger:    logging.Component(logger, "tui"),
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
