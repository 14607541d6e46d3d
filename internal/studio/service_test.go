package studio

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/filmdesk/internal/export"
	"github.com/theirongolddev/filmdesk/internal/model"
	"github.com/theirongolddev/filmdesk/internal/pipeline"
	"github.com/theirongolddev/filmdesk/internal/store"
)

var fixedNow = time.Date(2026, 10, 17, 9, 0, 0, 0, time.Local)

func newTestService(t *testing.T) *Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := store.Open(filepath.Join(t.TempDir(), "filmdesk.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return New(st, logger, WithClock(func() time.Time { return fixedNow }))
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(offset int) time.Time {
	return model.Day(fixedNow).AddDate(0, 0, offset)
}

func TestBudgetGuardScenario(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	x, err := svc.CreateActor(ctx, model.Actor{FullName: "  X  ", DailyRate: money("100")})
	require.NoError(t, err)
	alpha, err := svc.CreateMovie(ctx, model.Movie{Title: "Alpha", Budget: money("1000")})
	require.NoError(t, err)

	shoot := func(fee string) (Change, error) {
		return svc.CreateShooting(ctx, model.Shooting{ActorID: x.ID, MovieID: alpha.ID, Date: day(0), Fee: money(fee)})
	}

	_, err = shoot("400")
	require.NoError(t, err)
	b, err := shoot("500")
	require.NoError(t, err)

	_, err = shoot("200")
	var exceeded *model.BudgetExceededError
	require.ErrorAs(t, err, &exceeded)
	assert.Equal(t, "total fees 1100.00 would exceed the budget of movie 1 (1000.00)", exceeded.Error())

	_, err = svc.UpdateShooting(ctx, model.Shooting{ID: b.ID, ActorID: x.ID, MovieID: alpha.ID, Date: day(0), Fee: money("200")})
	require.NoError(t, err)
	_, err = shoot("200")
	require.NoError(t, err)

	rows, sum, err := svc.Budgets(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Spent.Equal(money("800")))
	assert.True(t, sum.TotalRemaining.Equal(money("200")))

	check, err := svc.ValidateFee(ctx, alpha.ID, money("200"), 0)
	require.NoError(t, err)
	assert.True(t, check.OK)
	check, err = svc.ValidateFee(ctx, alpha.ID, money("200.01"), 0)
	require.NoError(t, err)
	assert.False(t, check.OK)

	actor, err := svc.GetActor(ctx, x.ID)
	require.NoError(t, err)
	assert.Equal(t, "X", actor.FullName)
}

func TestReferentialGuard(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	a, err := svc.CreateActor(ctx, model.Actor{FullName: "Bound", DailyRate: money("1")})
	require.NoError(t, err)
	m, err := svc.CreateMovie(ctx, model.Movie{Title: "Tied", Budget: money("10")})
	require.NoError(t, err)
	sh, err := svc.CreateShooting(ctx, model.Shooting{ActorID: a.ID, MovieID: m.ID, Date: day(1)})
	require.NoError(t, err)

	_, err = svc.DeleteActor(ctx, a.ID)
	assert.ErrorAs(t, err, new(*model.ReferentialIntegrityError))
	_, err = svc.DeleteMovie(ctx, m.ID)
	assert.ErrorAs(t, err, new(*model.ReferentialIntegrityError))

	_, err = svc.DeleteShooting(ctx, sh.ID)
	require.NoError(t, err)
	_, err = svc.DeleteActor(ctx, a.ID)
	require.NoError(t, err)
	_, err = svc.DeleteMovie(ctx, m.ID)
	require.NoError(t, err)

	actors, err := svc.ListActors(ctx)
	require.NoError(t, err)
	assert.Empty(t, actors)
}

func TestExpensesIncludeIdleActors(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	busy, err := svc.CreateActor(ctx, model.Actor{FullName: "Busy", DailyRate: money("1")})
	require.NoError(t, err)
	_, err = svc.CreateActor(ctx, model.Actor{FullName: "Idle", DailyRate: money("1")})
	require.NoError(t, err)
	m, err := svc.CreateMovie(ctx, model.Movie{Title: "M", Budget: money("100")})
	require.NoError(t, err)
	_, err = svc.CreateShooting(ctx, model.Shooting{ActorID: busy.ID, MovieID: m.ID, Date: day(0), Fee: money("25")})
	require.NoError(t, err)

	rows, sum, err := svc.Expenses(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Idle", rows[1].FullName)
	assert.True(t, rows[1].TotalFee.IsZero())
	assert.Equal(t, 2, sum.Actors)
	assert.True(t, sum.Total.Equal(money("25")))
	assert.True(t, sum.Mean.Equal(money("12.5")))
}

func TestSchedulePeriods(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	a, err := svc.CreateActor(ctx, model.Actor{FullName: "A", DailyRate: money("1")})
	require.NoError(t, err)
	m, err := svc.CreateMovie(ctx, model.Movie{Title: "M", Budget: money("100")})
	require.NoError(t, err)
	// fixedNow is Saturday 2026-10-17.
	for _, offset := range []int{-20, -5, -1, 0, 0, 1, 2, 30} {
		_, err := svc.CreateShooting(ctx, model.Shooting{ActorID: a.ID, MovieID: m.ID, Date: day(offset)})
		require.NoError(t, err)
	}

	counts := map[pipeline.Period]int{
		pipeline.PeriodAll:      8,
		pipeline.PeriodToday:    2,
		pipeline.PeriodWeek:     5, // Mon 12th .. Sun 18th: -5, -1, 0, 0, +1
		pipeline.PeriodMonth:    6, // October: -5, -1, 0, 0, +1, +2
		pipeline.PeriodUpcoming: 5,
	}
	for period, want := range counts {
		rows, err := svc.Schedule(ctx, period)
		require.NoError(t, err, period)
		assert.Len(t, rows, want, period)
		for i := 1; i < len(rows); i++ {
			assert.False(t, rows[i].Date.Before(rows[i-1].Date), "schedule must be ascending")
		}
	}
}

func TestStaleViews(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	a, err := svc.CreateActor(ctx, model.Actor{FullName: "A", DailyRate: money("1")})
	require.NoError(t, err)
	assert.True(t, a.Stale.Has(ViewActors|ViewExpenses))
	assert.False(t, a.Stale.Has(ViewBudgets))

	m, err := svc.CreateMovie(ctx, model.Movie{Title: "M", Budget: money("1")})
	require.NoError(t, err)
	assert.Equal(t, "movies,budgets", m.Stale.String())

	sh, err := svc.CreateShooting(ctx, model.Shooting{ActorID: a.ID, MovieID: m.ID, Date: day(0)})
	require.NoError(t, err)
	assert.Equal(t, "shootings,schedule,expenses,budgets", sh.Stale.String())

	up, err := svc.UpdateActor(ctx, model.Actor{ID: a.ID, FullName: "A2", DailyRate: money("2")})
	require.NoError(t, err)
	assert.True(t, up.Stale.Has(ViewSchedule|ViewShootings), "renaming an actor changes joined rows")

	up, err = svc.UpdateMovie(ctx, model.Movie{ID: m.ID, Title: "M2", Budget: money("1")})
	require.NoError(t, err)
	assert.True(t, up.Stale.Has(ViewBudgets|ViewSchedule))
	assert.Equal(t, "none", View(0).String())
}

func TestValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	tests := []struct {
		name string
		run  func() error
	}{
		{"blank actor name", func() error {
			_, err := svc.CreateActor(ctx, model.Actor{FullName: "   ", DailyRate: money("1")})
			return err
		}},
		{"negative rate", func() error {
			_, err := svc.CreateActor(ctx, model.Actor{FullName: "A", DailyRate: money("-1")})
			return err
		}},
		{"blank title", func() error {
			_, err := svc.CreateMovie(ctx, model.Movie{Title: "", Budget: money("1")})
			return err
		}},
		{"negative budget", func() error {
			_, err := svc.CreateMovie(ctx, model.Movie{Title: "M", Budget: money("-0.01")})
			return err
		}},
		{"shooting without actor", func() error {
			_, err := svc.CreateShooting(ctx, model.Shooting{MovieID: 1, Date: day(0)})
			return err
		}},
		{"shooting without date", func() error {
			_, err := svc.CreateShooting(ctx, model.Shooting{ActorID: 1, MovieID: 1})
			return err
		}},
		{"negative fee", func() error {
			_, err := svc.CreateShooting(ctx, model.Shooting{ActorID: 1, MovieID: 1, Date: day(0), Fee: money("-5")})
			return err
		}},
		{"fee beyond int64 cents", func() error {
			_, err := svc.CreateShooting(ctx, model.Shooting{ActorID: 1, MovieID: 1, Date: day(0), Fee: money("92233720368547758.08")})
			return err
		}},
		{"budget above maximum", func() error {
			_, err := svc.CreateMovie(ctx, model.Movie{Title: "M", Budget: money("184467440737095516.16")})
			return err
		}},
		{"rate above maximum", func() error {
			_, err := svc.CreateActor(ctx, model.Actor{FullName: "A", DailyRate: money("1000000000000")})
			return err
		}},
		{"update without id", func() error {
			_, err := svc.UpdateActor(ctx, model.Actor{FullName: "A"})
			return err
		}},
		{"delete without id", func() error {
			_, err := svc.DeleteShooting(ctx, 0)
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorAs(t, tt.run(), new(*model.ValidationError))
		})
	}
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	for _, name := range []string{"Anna Karenina", "Boris Godunov", "anna smith"} {
		_, err := svc.CreateActor(ctx, model.Actor{FullName: name, DailyRate: money("1")})
		require.NoError(t, err)
	}

	got, err := svc.SearchActors(ctx, "ANNA")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = svc.SearchActors(ctx, "")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestOverviewAndExport(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	a, err := svc.CreateActor(ctx, model.Actor{FullName: "A", DailyRate: money("1")})
	require.NoError(t, err)
	m, err := svc.CreateMovie(ctx, model.Movie{Title: "M", Budget: money("100")})
	require.NoError(t, err)
	_, err = svc.CreateShooting(ctx, model.Shooting{ActorID: a.ID, MovieID: m.ID, Date: day(2), Fee: money("10")})
	require.NoError(t, err)
	_, err = svc.CreateShooting(ctx, model.Shooting{ActorID: a.ID, MovieID: m.ID, Date: day(-2), Fee: money("5")})
	require.NoError(t, err)

	ov, err := svc.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, ov.Shootings)
	assert.Len(t, ov.Upcoming, 1)
	require.Len(t, ov.NextWeek, 7)
	assert.Equal(t, 1, ov.NextWeek[2].Shootings)
	assert.True(t, ov.BudgetSum.TotalSpent.Equal(money("15")))

	dir := t.TempDir()
	paths, err := svc.ExportAll(ctx, dir)
	require.NoError(t, err)
	assert.Len(t, paths, 3)

	path, err := svc.Export(ctx, export.Shootings, dir)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ID,Actor,Movie,Date,Scene,Fee\n")
	assert.Contains(t, string(data), "A,M,2026-10-19,,10.00\n")

	_, err = svc.ExportAll(ctx, filepath.Join(dir, "nope"))
	assert.ErrorAs(t, err, new(*model.ExportError))
}
