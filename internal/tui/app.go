// Package tui provides the interactive Bubble Tea dashboard for filmdesk.
package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/theirongolddev/filmdesk/internal/model"
	"github.com/theirongolddev/filmdesk/internal/pipeline"
	"github.com/theirongolddev/filmdesk/internal/studio"
	"github.com/theirongolddev/filmdesk/internal/tui/components"
	"github.com/theirongolddev/filmdesk/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const (
	tabActors = iota
	tabMovies
	tabShootings
	tabSchedule
	tabExpenses
	tabBudget
	tabCount
)

const (
	minTerminalWidth = 80
	maxContentWidth  = 160
	minContentHeight = 5
)

// Options configures a new App.
type Options struct {
	Database  string
	ExportDir string
	Period    pipeline.Period
	FirstRun  bool // show the setup wizard before the dashboard
	Logger    *slog.Logger
}

// App is the root Bubble Tea model.
type App struct {
	svc *studio.Service
	log *slog.Logger

	// Data
	data     snapshot
	loaded   bool
	loading  bool
	loadTime time.Duration

	// UI state
	width     int
	height    int
	activeTab int
	cursors   [tabCount]int
	sorts     [tabCount]sortState
	showHelp  bool

	// Filters
	period      pipeline.Period
	actorSearch string
	movieSearch string
	searching   bool
	searchInput textinput.Model

	// Active huh form (add/edit/delete/setup), nil when none
	form     *huh.Form
	formVals *formValues

	status    string
	statusErr bool

	database  string
	exportDir string
	firstRun  bool
	spinner   spinner.Model
}

// NewApp creates a new TUI app model.
func NewApp(svc *studio.Service, opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	period := opts.Period
	if period == "" {
		period = pipeline.PeriodUpcoming
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return App{
		svc:       svc,
		log:       logger,
		period:    period,
		database:  opts.Database,
		exportDir: opts.ExportDir,
		firstRun:  opts.FirstRun,
		spinner:   sp,
		loading:   true,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadCmd(a.svc, studio.AllViews, a.query()),
		a.spinner.Tick,
	)
}

func (a App) query() query {
	return query{actorSearch: a.actorSearch, movieSearch: a.movieSearch, period: a.period}
}

func (a App) setStatus(msg string, isErr bool) App {
	a.status, a.statusErr = msg, isErr
	return a
}

func (a App) reload(views studio.View) (App, tea.Cmd) {
	if views == 0 {
		return a, nil
	}
	a.loading = true
	return a, tea.Batch(loadCmd(a.svc, views, a.query()), a.spinner.Tick)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(min(msg.Width-4, 70)).WithHeight(msg.Height - 4)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.form != nil {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.moveCursor(-1)
		case tea.MouseButtonWheelDown:
			a.moveCursor(1)
		case tea.MouseButtonLeft:
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.loaded {
			return a, nil
		}
		if a.form != nil {
			return a.updateForm(msg)
		}
		if a.searching {
			return a.updateSearch(msg)
		}
		return a.updateKeys(msg)

	case dataMsg:
		a.loading = false
		if msg.err != nil {
			a.log.Error("load failed", "views", msg.views.String(), "err", msg.err)
			return a.setStatus(msg.err.Error(), true), nil
		}
		a.apply(msg)
		a.loadTime = msg.loadTime
		if !a.loaded {
			a.loaded = true
			if a.firstRun {
				return a.openSetup()
			}
		}
		return a, nil

	case changedMsg:
		if msg.err != nil {
			a.log.Warn("change rejected", "err", msg.err)
			return a.setStatus(describeError(msg.err), true), nil
		}
		a = a.setStatus(msg.status, false)
		return a.reload(msg.change.Stale)

	case exportedMsg:
		if msg.err != nil {
			return a.setStatus(describeError(msg.err), true), nil
		}
		return a.setStatus(fmt.Sprintf("Exported %d files to %s", len(msg.paths), a.exportDir), false), nil

	case setupSavedMsg:
		a.firstRun = false
		if msg.err != nil {
			return a.setStatus(msg.err.Error(), true), nil
		}
		theme.SetActive(msg.values.Theme)
		a.exportDir = msg.values.ExportDir
		note := "Settings saved"
		if msg.values.Database != a.database {
			note += "; the new database is used on next start"
		}
		a = a.setStatus(note, false)
		if p, err := pipeline.ParsePeriod(msg.values.Period); err == nil && p != a.period {
			a.period = p
			return a.reload(studio.ViewSchedule)
		}
		return a, nil

	case spinner.TickMsg:
		if a.loading || !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward cursor blinks and other internal messages to the open form.
	if a.form != nil {
		return a.updateForm(msg)
	}
	if a.searching {
		var cmd tea.Cmd
		a.searchInput, cmd = a.searchInput.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "j", "down":
		a.moveCursor(1)
	case "k", "up":
		a.moveCursor(-1)
	case "g", "home":
		a.cursors[a.activeTab] = 0
	case "G", "end":
		a.cursors[a.activeTab] = clamp(a.rowCount(a.activeTab)-1, a.rowCount(a.activeTab))
	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + tabCount) % tabCount
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % tabCount
	case "/":
		if a.activeTab == tabActors || a.activeTab == tabMovies {
			a.searching = true
			a.searchInput = newSearchInput(a.currentSearch())
			a.searchInput.Focus()
			return a, textinput.Blink
		}
	case "esc":
		if a.currentSearch() != "" {
			return a.applySearch("")
		}
	case "a":
		return a.openForm("add")
	case "e", "enter":
		return a.openForm("edit")
	case "d", "delete":
		return a.openForm("delete")
	case "p":
		if a.activeTab == tabSchedule {
			a.period = a.period.Next()
			a.cursors[tabSchedule] = 0
			return a.reload(studio.ViewSchedule)
		}
	case "s":
		return a.cycleSort()
	case "S":
		return a.reverseSort(), nil
	case "x":
		a = a.setStatus("Exporting…", false)
		return a, exportCmd(a.svc, a.exportDir)
	case "r":
		return a.reload(studio.AllViews)
	default:
		if len(key) == 1 {
			if tab := components.TabIdxByKey(rune(key[0])); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (a *App) moveCursor(delta int) {
	a.cursors[a.activeTab] = clamp(a.cursors[a.activeTab]+delta, a.rowCount(a.activeTab))
}

func (a App) rowCount(tab int) int {
	switch tab {
	case tabActors:
		return len(a.data.actors)
	case tabMovies:
		return len(a.data.movies)
	case tabShootings:
		return len(a.data.shootings)
	case tabSchedule:
		return len(a.data.schedule)
	case tabExpenses:
		return len(a.data.expenses)
	case tabBudget:
		return len(a.data.budgets)
	}
	return 0
}

func (a App) openSetup() (App, tea.Cmd) {
	v := &formValues{kind: formSetup, tab: a.activeTab, setup: SetupValues{
		Database:  a.database,
		ExportDir: a.exportDir,
		Period:    string(a.period),
		Theme:     theme.Active.Name,
	}}
	a.formVals = v
	a.form = NewSetupForm(&v.setup)
	if a.width > 0 {
		a.form = a.form.WithWidth(min(a.width-4, 70)).WithHeight(a.height - 4)
	}
	return a, a.form.Init()
}

// ─── Search ─────────────────────────────────────────────────────

func newSearchInput(value string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search by name"
	ti.CharLimit = 100
	ti.Width = 40
	ti.SetValue(value)
	return ti
}

func (a App) currentSearch() string {
	if a.activeTab == tabMovies {
		return a.movieSearch
	}
	if a.activeTab == tabActors {
		return a.actorSearch
	}
	return ""
}

func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.searching = false
		return a.applySearch(strings.TrimSpace(a.searchInput.Value()))
	case "esc":
		a.searching = false
		return a, nil
	}
	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	return a, cmd
}

func (a App) applySearch(q string) (App, tea.Cmd) {
	a.cursors[a.activeTab] = 0
	if a.activeTab == tabMovies {
		a.movieSearch = q
		return a.reload(studio.ViewMovies)
	}
	a.actorSearch = q
	return a.reload(studio.ViewActors)
}

// describeError renders service errors for the status line.
func describeError(err error) string {
	var (
		exceeded *model.BudgetExceededError
		ref      *model.ReferentialIntegrityError
	)
	switch {
	case errors.As(err, &exceeded):
		return fmt.Sprintf("Over budget: fees would total %s of %s",
			exceeded.Total.StringFixed(2), exceeded.Budget.StringFixed(2))
	case errors.As(err, &ref):
		return fmt.Sprintf("Cannot delete %s #%d: %d shooting(s) still reference it", ref.Entity, ref.ID, ref.Shootings)
	}
	return err.Error()
}

// ─── Views ──────────────────────────────────────────────────────

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.form != nil {
		return a.viewForm()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  filmdesk needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	body := logoStyle.Render("◈ filmdesk") + subtitleStyle.Render(" · Studio ledger") + "\n\n" +
		a.spinner.View() + subtitleStyle.Render(" Opening database...")
	if a.statusErr {
		body += "\n\n" + lipgloss.NewStyle().Foreground(t.OverBudget).Background(t.Surface).Render(a.status)
	}

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(body),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewForm() string {
	t := theme.Active
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2).
		Render(a.form.View())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Info).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"1-6", "Jump to tab"},
			{"← → tab", "Previous / Next tab"},
			{"j k", "Move selection"},
			{"g G", "First / Last row"},
		}},
		{"Records", []struct{ key, desc string }{
			{"a", "Add"},
			{"e Enter", "Edit selected"},
			{"d", "Delete selected"},
			{"/", "Search actors or movies"},
			{"Esc", "Clear search"},
			{"s", "Sort by next column"},
			{"S", "Reverse sort order"},
		}},
		{"Other", []struct{ key, desc string }{
			{"p", "Cycle schedule period"},
			{"x", "Export CSV files"},
			{"r", "Reload everything"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n" + sectionStyle.Render(s.title) + "\n")
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n" + dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	hints := "[?]help  [a]dd [e]dit [d]elete  [s]ort  [x]export  [q]uit"
	status := a.status
	if a.loading {
		status = a.spinner.View() + " loading"
	} else if status == "" {
		status = fmt.Sprintf("loaded in %s", a.loadTime.Round(time.Millisecond))
	}
	statusBar := components.RenderStatusBar(w, hints, status, a.statusErr && !a.loading)

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabActors:
		content = a.renderActorsTab(cw, contentH)
	case tabMovies:
		content = a.renderMoviesTab(cw, contentH)
	case tabShootings:
		content = a.renderShootingsTab(cw, contentH)
	case tabSchedule:
		content = a.renderScheduleTab(cw, contentH)
	case tabExpenses:
		content = a.renderExpensesTab(cw, contentH)
	case tabBudget:
		content = a.renderBudgetTab(cw, contentH)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1 // separator
	}
	return -1
}
