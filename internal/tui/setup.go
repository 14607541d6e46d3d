package tui

import (
	"fmt"

	"github.com/theirongolddev/filmdesk/internal/config"
	"github.com/theirongolddev/filmdesk/internal/pipeline"
	"github.com/theirongolddev/filmdesk/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// SetupValues are the settings collected by the setup wizard.
type SetupValues struct {
	Database  string
	ExportDir string
	Period    string
	Theme     string
}

// SetupValuesFrom seeds the wizard with the current configuration.
func SetupValuesFrom(cfg config.Config) SetupValues {
	return SetupValues{
		Database:  cfg.General.Database,
		ExportDir: cfg.General.ExportDir,
		Period:    cfg.Schedule.DefaultPeriod,
		Theme:     cfg.Appearance.Theme,
	}
}

// Apply writes the collected values into cfg.
func (v SetupValues) Apply(cfg *config.Config) {
	cfg.General.Database = v.Database
	cfg.General.ExportDir = v.ExportDir
	cfg.Schedule.DefaultPeriod = v.Period
	cfg.Appearance.Theme = v.Theme
}

// NewSetupForm builds the setup wizard. It is shared by `filmdesk setup`
// and the dashboard's first run.
func NewSetupForm(v *SetupValues) *huh.Form {
	periodOpts := make([]huh.Option[string], len(pipeline.Periods))
	for i, p := range pipeline.Periods {
		periodOpts[i] = huh.NewOption(p.Label(), string(p))
	}
	themeOpts := make([]huh.Option[string], len(theme.All))
	for i, t := range theme.All {
		themeOpts[i] = huh.NewOption(t.Name, t.Name)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to filmdesk!").
				Description("Let's set up a few things.\n"),
			huh.NewInput().
				Title("Database file").
				Description("SQLite file holding actors, movies and shootings.").
				Value(&v.Database).
				Validate(requiredText("database")),
			huh.NewInput().
				Title("Export directory").
				Description("Where CSV exports are written. Must exist.").
				Value(&v.ExportDir).
				Validate(requiredText("export directory")),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default schedule period").
				Options(periodOpts...).
				Value(&v.Period),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&v.Theme),
		),
	).WithShowHelp(true)
}

// setupSavedMsg reports the outcome of saving the wizard's values.
type setupSavedMsg struct {
	values SetupValues
	err    error
}

func saveSetupCmd(v SetupValues) tea.Cmd {
	return func() tea.Msg {
		cfg, _ := config.Load()
		v.Apply(&cfg)
		if err := config.Save(cfg); err != nil {
			return setupSavedMsg{values: v, err: fmt.Errorf("saving config: %w", err)}
		}
		return setupSavedMsg{values: v}
	}
}
