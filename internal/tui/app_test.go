package tui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/filmdesk/internal/logging"
	"github.com/theirongolddev/filmdesk/internal/model"
	"github.com/theirongolddev/filmdesk/internal/pipeline"
	"github.com/theirongolddev/filmdesk/internal/store"
	"github.com/theirongolddev/filmdesk/internal/studio"
	"github.com/theirongolddev/filmdesk/internal/tui/components"
)

func TestTabAtXMatchesTabWidths(t *testing.T) {
	n := len(components.Tabs)
	for active := 0; active < n; active++ {
		a := App{activeTab: active}
		pos := 0

		for i := 0; i < n; i++ {
			w := tabWidthForTest(i, active)
			x := pos + w/2 // midpoint inside this tab
			if got := a.tabAtX(x); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
			}
			pos += w + 1 // separator
		}
		if got := a.tabAtX(pos + 5); got != -1 {
			t.Fatalf("active=%d x past last tab -> %d, want -1", active, got)
		}
	}
}

func tabWidthForTest(tabIdx, activeIdx int) int {
	w := len(components.Tabs[tabIdx].Name) + 2 // horizontal padding in tab renderer
	if tabIdx != activeIdx {
		w++ // inactive tabs show their key
	}
	return w
}

var testNow = time.Date(2026, 10, 17, 9, 0, 0, 0, time.Local)

func newTestApp(t *testing.T) (App, *studio.Service) {
	t.Helper()
	logger := logging.Discard()
	st, err := store.Open(filepath.Join(t.TempDir(), "filmdesk.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	svc := studio.New(st, logger, studio.WithClock(func() time.Time { return testNow }))
	a := NewApp(svc, Options{ExportDir: t.TempDir(), Period: pipeline.PeriodAll, Logger: logger})
	a.width, a.height = 120, 40
	return a, svc
}

// run feeds msg through Update and then drains the resulting commands,
// feeding back only the app's own result messages. Timers such as spinner
// ticks and cursor blinks are dropped.
func run(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	m, cmd := a.Update(msg)
	a = m.(App)
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch next := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, next...)
		case dataMsg, changedMsg, exportedMsg:
			m, cmd = a.Update(next)
			a = m.(App)
			queue = append(queue, cmd)
		}
	}
	return a
}

func key(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loaded(t *testing.T, a App) App {
	t.Helper()
	snap, err := load(context.Background(), a.svc, studio.AllViews, a.query())
	require.NoError(t, err)
	m, _ := a.Update(dataMsg{views: studio.AllViews, snap: snap})
	return m.(App)
}

func TestApp_TabKeys(t *testing.T) {
	a, _ := newTestApp(t)
	a = loaded(t, a)

	a = run(t, a, key("4"))
	assert.Equal(t, tabSchedule, a.activeTab)
	a = run(t, a, key("right"))
	assert.Equal(t, tabExpenses, a.activeTab)
	a = run(t, a, key("right"))
	a = run(t, a, key("right"))
	assert.Equal(t, tabActors, a.activeTab, "right wraps around")
	a = run(t, a, key("left"))
	assert.Equal(t, tabBudget, a.activeTab)
}

func TestApp_IgnoresKeysUntilLoaded(t *testing.T) {
	a, _ := newTestApp(t)
	m, _ := a.Update(key("3"))
	assert.Equal(t, tabActors, m.(App).activeTab)
}

func TestApp_ChangeReloadsStaleViews(t *testing.T) {
	ctx := context.Background()
	a, svc := newTestApp(t)
	a = loaded(t, a)
	require.Empty(t, a.data.actors)

	_, err := svc.CreateActor(ctx, model.Actor{FullName: "Ada", DailyRate: decimal.NewFromInt(100)})
	require.NoError(t, err)
	_, err = svc.CreateMovie(ctx, model.Movie{Title: "Alpha", Budget: decimal.NewFromInt(1000)})
	require.NoError(t, err)

	// Only actors are declared stale, so movies keep the old snapshot.
	a = run(t, a, changedMsg{change: studio.Change{ID: 1, Stale: studio.ViewActors}, status: "Actor #1 added"})
	assert.Len(t, a.data.actors, 1)
	assert.Empty(t, a.data.movies)
	assert.Equal(t, "Actor #1 added", a.status)
	assert.False(t, a.statusErr)

	a = run(t, a, key("r"))
	assert.Len(t, a.data.movies, 1)
	assert.Len(t, a.data.budgets, 1)
}

func TestApp_CursorClampsToRows(t *testing.T) {
	ctx := context.Background()
	a, svc := newTestApp(t)
	for _, name := range []string{"A", "B", "C"} {
		_, err := svc.CreateActor(ctx, model.Actor{FullName: name, DailyRate: decimal.Zero})
		require.NoError(t, err)
	}
	a = loaded(t, a)

	a = run(t, a, key("G"))
	assert.Equal(t, 2, a.cursors[tabActors])
	a = run(t, a, key("j"))
	assert.Equal(t, 2, a.cursors[tabActors])
	a = run(t, a, key("g"))
	assert.Equal(t, 0, a.cursors[tabActors])
	a = run(t, a, key("k"))
	assert.Equal(t, 0, a.cursors[tabActors])
}

func TestApp_SearchFiltersActors(t *testing.T) {
	ctx := context.Background()
	a, svc := newTestApp(t)
	for _, name := range []string{"Ada Lovelace", "Grace Hopper"} {
		_, err := svc.CreateActor(ctx, model.Actor{FullName: name, DailyRate: decimal.Zero})
		require.NoError(t, err)
	}
	a = loaded(t, a)

	a = run(t, a, key("/"))
	require.True(t, a.searching)
	a.searchInput.SetValue("grace")
	a = run(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, a.searching)
	assert.Equal(t, "grace", a.actorSearch)
	require.Len(t, a.data.actors, 1)
	assert.Equal(t, "Grace Hopper", a.data.actors[0].FullName)

	a = run(t, a, key("esc"))
	assert.Empty(t, a.actorSearch)
	assert.Len(t, a.data.actors, 2)
}

func actorNames(a App) []string {
	names := make([]string, len(a.data.actors))
	for i, act := range a.data.actors {
		names[i] = act.FullName
	}
	return names
}

func TestApp_SortCyclesColumns(t *testing.T) {
	ctx := context.Background()
	a, svc := newTestApp(t)
	for _, act := range []model.Actor{
		{FullName: "Bob", DailyRate: decimal.NewFromInt(1000)},
		{FullName: "alice", DailyRate: decimal.NewFromInt(200)},
		{FullName: "Carol", DailyRate: decimal.NewFromInt(30)},
	} {
		_, err := svc.CreateActor(ctx, act)
		require.NoError(t, err)
	}
	a = loaded(t, a)
	a = run(t, a, key("j"))

	a = run(t, a, key("s"))
	assert.Equal(t, sortState{on: true, col: 0}, a.sorts[tabActors])
	assert.Equal(t, 0, a.cursors[tabActors], "sorting resets the cursor")

	a = run(t, a, key("s"))
	assert.Equal(t, []string{"alice", "Bob", "Carol"}, actorNames(a), "names compare case-insensitively")

	a = run(t, a, key("S"))
	assert.Equal(t, []string{"Carol", "Bob", "alice"}, actorNames(a))
	assert.Equal(t, "Sorted by Full name ▼", a.status)

	// Text order would put 1,000.00 first.
	a = run(t, a, key("s"))
	assert.Equal(t, []string{"Carol", "alice", "Bob"}, actorNames(a))
	assert.Contains(t, a.View(), "Daily rate ▲")

	a = run(t, a, key("r"))
	assert.Equal(t, []string{"Carol", "alice", "Bob"}, actorNames(a), "sort survives a reload")

	a = run(t, a, key("s"))
	assert.False(t, a.sorts[tabActors].on)
	assert.Equal(t, []string{"Bob", "alice", "Carol"}, actorNames(a), "load order comes back")
	assert.NotContains(t, a.View(), "▲")
}

func TestApp_SortIsPerTab(t *testing.T) {
	a, _ := newTestApp(t)
	a = loaded(t, a)

	a = run(t, a, key("2"))
	a = run(t, a, key("S"))
	assert.Equal(t, sortState{on: true, desc: true}, a.sorts[tabMovies])
	assert.False(t, a.sorts[tabActors].on)
}

func TestSortRows_MixedColumnFallsBackToText(t *testing.T) {
	rows := []string{"9", "-", "10"}
	sortRows(rows, func(s string) []string { return []string{s} }, sortState{on: true})
	assert.Equal(t, []string{"-", "10", "9"}, rows)

	rows = []string{"9", "1,000.50", "10"}
	sortRows(rows, func(s string) []string { return []string{s} }, sortState{on: true, desc: true})
	assert.Equal(t, []string{"1,000.50", "10", "9"}, rows)
}

func TestApp_PeriodCyclesOnScheduleOnly(t *testing.T) {
	a, _ := newTestApp(t)
	a = loaded(t, a)

	a = run(t, a, key("p"))
	assert.Equal(t, pipeline.PeriodAll, a.period, "p is ignored outside the schedule tab")

	a = run(t, a, key("4"))
	a = run(t, a, key("p"))
	assert.Equal(t, pipeline.PeriodAll.Next(), a.period)
}

func TestApp_RejectedChangeKeepsRunning(t *testing.T) {
	a, _ := newTestApp(t)
	a = loaded(t, a)

	err := &model.BudgetExceededError{MovieID: 1, Total: decimal.NewFromInt(1200), Budget: decimal.NewFromInt(1000)}
	a = run(t, a, changedMsg{err: err})
	assert.True(t, a.statusErr)
	assert.Contains(t, a.status, "1200.00")
	assert.Contains(t, a.status, "1000.00")
	assert.True(t, a.loaded)
}

func TestApp_ExportWritesFiles(t *testing.T) {
	a, _ := newTestApp(t)
	a = loaded(t, a)

	a = run(t, a, key("x"))
	assert.False(t, a.statusErr, a.status)
	assert.Contains(t, a.status, "Exported 3 files")
}

func TestApp_AddNeedsActorsAndMovies(t *testing.T) {
	a, _ := newTestApp(t)
	a = loaded(t, a)

	a = run(t, a, key("3"))
	a = run(t, a, key("a"))
	assert.Nil(t, a.form)
	assert.True(t, a.statusErr)
}

func TestApp_OpenFormForSelectedActor(t *testing.T) {
	ctx := context.Background()
	a, svc := newTestApp(t)
	_, err := svc.CreateActor(ctx, model.Actor{FullName: "Ada", DailyRate: decimal.RequireFromString("150.5")})
	require.NoError(t, err)
	a = loaded(t, a)

	a, _ = a.openForm("edit")
	require.NotNil(t, a.form)
	require.NotNil(t, a.formVals)
	assert.Equal(t, formActor, a.formVals.kind)
	assert.Equal(t, "Ada", a.formVals.name)
	assert.Equal(t, "150.50", a.formVals.amount)

	a, _ = a.openForm("delete")
	assert.Equal(t, formDelete, a.formVals.kind)
}

func TestApp_SubmitDeleteBlockedByShootings(t *testing.T) {
	ctx := context.Background()
	a, svc := newTestApp(t)
	actor, err := svc.CreateActor(ctx, model.Actor{FullName: "Ada", DailyRate: decimal.Zero})
	require.NoError(t, err)
	movie, err := svc.CreateMovie(ctx, model.Movie{Title: "Alpha", Budget: decimal.NewFromInt(100)})
	require.NoError(t, err)
	_, err = svc.CreateShooting(ctx, model.Shooting{ActorID: actor.ID, MovieID: movie.ID, Date: testNow})
	require.NoError(t, err)
	a = loaded(t, a)

	msg := a.submit(&formValues{kind: formDelete, tab: tabActors, id: actor.ID, confirm: true})()
	a = run(t, a, msg)
	assert.True(t, a.statusErr)
	assert.Contains(t, a.status, "still reference it")
	assert.Len(t, a.data.actors, 1)
}

func TestDescribeError_Fallback(t *testing.T) {
	assert.Equal(t, "boom", describeError(errors.New("boom")))
}

func TestView_RendersEveryTab(t *testing.T) {
	ctx := context.Background()
	a, svc := newTestApp(t)
	actor, err := svc.CreateActor(ctx, model.Actor{FullName: "Ada", DailyRate: decimal.Zero})
	require.NoError(t, err)
	movie, err := svc.CreateMovie(ctx, model.Movie{Title: "Alpha", Budget: decimal.NewFromInt(100)})
	require.NoError(t, err)
	_, err = svc.CreateShooting(ctx, model.Shooting{ActorID: actor.ID, MovieID: movie.ID, Date: testNow, Fee: decimal.NewFromInt(40)})
	require.NoError(t, err)
	a = loaded(t, a)

	for tab := 0; tab < tabCount; tab++ {
		a.activeTab = tab
		out := a.View()
		assert.NotEmpty(t, out)
		assert.LessOrEqual(t, strings.Count(out, "\n")+1, a.height, "tab %d overflows", tab)
	}
}

func TestView_TooNarrow(t *testing.T) {
	a, _ := newTestApp(t)
	a.width = 40
	assert.Contains(t, a.View(), "Terminal too narrow")
}
