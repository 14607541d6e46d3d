package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/theirongolddev/filmdesk/internal/model"
	"github.com/theirongolddev/filmdesk/internal/pipeline"
	"github.com/theirongolddev/filmdesk/internal/studio"

	tea "github.com/charmbracelet/bubbletea"
)

// snapshot holds everything the tabs render. Only the fields belonging to
// the views named in a dataMsg are meaningful.
type snapshot struct {
	actors     []model.Actor
	movies     []model.Movie
	shootings  []model.ShootingRow
	schedule   []model.ShootingRow
	expenses   []model.ActorExpense
	expenseSum model.ExpenseSummary
	budgets    []model.MovieBudget
	budgetSum  model.BudgetSummary
}

// dataMsg is sent when a load of one or more views finishes.
type dataMsg struct {
	views    studio.View
	snap     snapshot
	loadTime time.Duration
	err      error
}

// changedMsg is sent when a mutation finishes.
type changedMsg struct {
	change studio.Change
	status string
	err    error
}

// exportedMsg is sent when an export finishes.
type exportedMsg struct {
	paths []string
	err   error
}

// query carries the filters that shape a load.
type query struct {
	actorSearch string
	movieSearch string
	period      pipeline.Period
}

// loadCmd fetches the given views in the background.
func loadCmd(svc *studio.Service, views studio.View, q query) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		snap, err := load(context.Background(), svc, views, q)
		return dataMsg{views: views, snap: snap, loadTime: time.Since(start), err: err}
	}
}

func load(ctx context.Context, svc *studio.Service, views studio.View, q query) (snapshot, error) {
	var (
		s   snapshot
		err error
	)
	if views.Has(studio.ViewActors) {
		if s.actors, err = svc.SearchActors(ctx, q.actorSearch); err != nil {
			return s, fmt.Errorf("loading actors: %w", err)
		}
	}
	if views.Has(studio.ViewMovies) {
		if s.movies, err = svc.SearchMovies(ctx, q.movieSearch); err != nil {
			return s, fmt.Errorf("loading movies: %w", err)
		}
	}
	if views.Has(studio.ViewShootings) {
		if s.shootings, err = svc.ListShootings(ctx); err != nil {
			return s, fmt.Errorf("loading shootings: %w", err)
		}
	}
	if views.Has(studio.ViewSchedule) {
		if s.schedule, err = svc.Schedule(ctx, q.period); err != nil {
			return s, fmt.Errorf("loading schedule: %w", err)
		}
	}
	if views.Has(studio.ViewExpenses) {
		if s.expenses, s.expenseSum, err = svc.Expenses(ctx); err != nil {
			return s, fmt.Errorf("loading expenses: %w", err)
		}
	}
	if views.Has(studio.ViewBudgets) {
		if s.budgets, s.budgetSum, err = svc.Budgets(ctx); err != nil {
			return s, fmt.Errorf("loading budgets: %w", err)
		}
	}
	return s, nil
}

// apply copies the freshly loaded views into the app, re-sorts them and
// clamps cursors.
func (a *App) apply(msg dataMsg) {
	v, s := msg.views, msg.snap
	if v.Has(studio.ViewActors) {
		a.data.actors = s.actors
	}
	if v.Has(studio.ViewMovies) {
		a.data.movies = s.movies
	}
	if v.Has(studio.ViewShootings) {
		a.data.shootings = s.shootings
	}
	if v.Has(studio.ViewSchedule) {
		a.data.schedule = s.schedule
	}
	if v.Has(studio.ViewExpenses) {
		a.data.expenses, a.data.expenseSum = s.expenses, s.expenseSum
	}
	if v.Has(studio.ViewBudgets) {
		a.data.budgets, a.data.budgetSum = s.budgets, s.budgetSum
	}
	for tab := range a.cursors {
		a.sortTab(tab)
		a.cursors[tab] = clamp(a.cursors[tab], a.rowCount(tab))
	}
}

// mutateCmd runs a studio mutation in the background.
func mutateCmd(status string, fn func(ctx context.Context) (studio.Change, error)) tea.Cmd {
	return func() tea.Msg {
		change, err := fn(context.Background())
		if err == nil {
			status = fmt.Sprintf(status, change.ID)
		}
		return changedMsg{change: change, status: status, err: err}
	}
}

// exportCmd writes every table into dir.
func exportCmd(svc *studio.Service, dir string) tea.Cmd {
	return func() tea.Msg {
		paths, err := svc.ExportAll(context.Background(), dir)
		return exportedMsg{paths: paths, err: err}
	}
}

func clamp(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}
