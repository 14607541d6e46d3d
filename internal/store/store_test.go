package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/filmdesk/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "filmdesk.db"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}

func seedActor(t *testing.T, st *Store, name, rate string) int64 {
	t.Helper()
	id, err := st.CreateActor(context.Background(), model.Actor{FullName: name, DailyRate: amount(rate)})
	require.NoError(t, err)
	return id
}

func seedMovie(t *testing.T, st *Store, title, budget string) int64 {
	t.Helper()
	id, err := st.CreateMovie(context.Background(), model.Movie{Title: title, Budget: amount(budget)})
	require.NoError(t, err)
	return id
}

func spentOn(t *testing.T, st *Store, movieID int64) decimal.Decimal {
	t.Helper()
	rows, err := st.MovieBudgets(context.Background())
	require.NoError(t, err)
	for _, r := range rows {
		if r.MovieID == movieID {
			return r.Spent
		}
	}
	t.Fatalf("movie %d missing from budget view", movieID)
	return decimal.Zero
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "filmdesk.db")
	st, err := Open(path, nil)
	require.NoError(t, err)
	_, err = st.CreateActor(context.Background(), model.Actor{FullName: "Kept", DailyRate: amount("1")})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	st, err = Open(path, nil)
	require.NoError(t, err)
	defer st.Close()
	actors, err := st.ListActors(context.Background())
	require.NoError(t, err)
	require.Len(t, actors, 1)
	assert.Equal(t, "Kept", actors[0].FullName)
}

func TestBudgetScenario(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	actor := seedActor(t, st, "X", "100")
	alpha := seedMovie(t, st, "Alpha", "1000")
	day := mustDay(t, "2026-10-17")

	_, err := st.CreateShooting(ctx, model.Shooting{ActorID: actor, MovieID: alpha, Date: day, Fee: amount("400")})
	require.NoError(t, err)
	b, err := st.CreateShooting(ctx, model.Shooting{ActorID: actor, MovieID: alpha, Date: day, Fee: amount("500")})
	require.NoError(t, err)
	assert.True(t, spentOn(t, st, alpha).Equal(amount("900")))

	_, err = st.CreateShooting(ctx, model.Shooting{ActorID: actor, MovieID: alpha, Date: day, Fee: amount("200")})
	var exceeded *model.BudgetExceededError
	require.ErrorAs(t, err, &exceeded)
	assert.True(t, exceeded.Total.Equal(amount("1100")), "total = %s", exceeded.Total)
	assert.True(t, exceeded.Budget.Equal(amount("1000")))
	assert.True(t, spentOn(t, st, alpha).Equal(amount("900")), "rejected write must not change the aggregate")

	err = st.UpdateShooting(ctx, model.Shooting{ID: b, ActorID: actor, MovieID: alpha, Date: day, Fee: amount("200")})
	require.NoError(t, err)
	assert.True(t, spentOn(t, st, alpha).Equal(amount("600")))

	_, err = st.CreateShooting(ctx, model.Shooting{ActorID: actor, MovieID: alpha, Date: day, Fee: amount("200")})
	require.NoError(t, err)

	budgets, err := st.MovieBudgets(ctx)
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.True(t, budgets[0].Spent.Equal(amount("800")))
	assert.True(t, budgets[0].Remaining.Equal(amount("200")))
}

func TestUpdateShootingAtCeiling(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	actor := seedActor(t, st, "Y", "0")
	movie := seedMovie(t, st, "Ceiling", "500")
	id, err := st.CreateShooting(ctx, model.Shooting{ActorID: actor, MovieID: movie, Date: mustDay(t, "2026-01-01"), Fee: amount("500")})
	require.NoError(t, err)

	// Same fee again and a lower fee both fit once the old value is excluded.
	sh := model.Shooting{ID: id, ActorID: actor, MovieID: movie, Date: mustDay(t, "2026-01-02"), Fee: amount("500")}
	require.NoError(t, st.UpdateShooting(ctx, sh))
	sh.Fee = amount("100")
	require.NoError(t, st.UpdateShooting(ctx, sh))
	sh.Fee = amount("500.01")
	require.ErrorAs(t, st.UpdateShooting(ctx, sh), new(*model.BudgetExceededError))

	got, err := st.GetShooting(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.Fee.Equal(amount("100")))
	assert.Equal(t, "2026-01-02", model.FormatDate(got.Date))
}

func TestAmountsBeyondMaximumAreRejected(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	actor := seedActor(t, st, "Z", "0")
	movie := seedMovie(t, st, "Small", "1000")
	day := mustDay(t, "2026-10-17")

	// 2^63 cents and 2^64 cents do not fit int64 and must never be stored.
	for _, huge := range []string{"92233720368547758.08", "184467440737095516.16", "1000000000000"} {
		_, err := st.CreateShooting(ctx, model.Shooting{ActorID: actor, MovieID: movie, Date: day, Fee: amount(huge)})
		var invalid *model.ValidationError
		require.ErrorAs(t, err, &invalid, "fee %s", huge)
		assert.Equal(t, "fee", invalid.Field)

		_, err = st.CheckFee(ctx, movie, amount(huge), 0)
		require.ErrorAs(t, err, &invalid)

		_, err = st.CreateMovie(ctx, model.Movie{Title: "Huge", Budget: amount(huge)})
		require.ErrorAs(t, err, &invalid, "budget %s", huge)
		err = st.UpdateMovie(ctx, model.Movie{ID: movie, Title: "Small", Budget: amount(huge)})
		require.ErrorAs(t, err, &invalid)

		_, err = st.CreateActor(ctx, model.Actor{FullName: "Huge", DailyRate: amount(huge)})
		require.ErrorAs(t, err, &invalid, "rate %s", huge)
	}

	// The guard still holds after the rejected writes.
	_, err := st.CreateShooting(ctx, model.Shooting{ActorID: actor, MovieID: movie, Date: day, Fee: amount("5000000")})
	require.ErrorAs(t, err, new(*model.BudgetExceededError))
	assert.True(t, spentOn(t, st, movie).IsZero())

	movies, err := st.ListMovies(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.True(t, movies[0].Budget.Equal(amount("1000")))

	// The maximum itself is storable.
	big := seedMovie(t, st, "Tentpole", model.MaxAmount.String())
	_, err = st.CreateShooting(ctx, model.Shooting{ActorID: actor, MovieID: big, Date: day, Fee: model.MaxAmount})
	require.NoError(t, err)
	assert.True(t, spentOn(t, st, big).Equal(model.MaxAmount))
}

func TestCheckFee(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	actor := seedActor(t, st, "Z", "10")
	movie := seedMovie(t, st, "Guarded", "100")
	id, err := st.CreateShooting(ctx, model.Shooting{ActorID: actor, MovieID: movie, Date: mustDay(t, "2026-02-01"), Fee: amount("60")})
	require.NoError(t, err)

	check, err := st.CheckFee(ctx, movie, amount("40"), 0)
	require.NoError(t, err)
	assert.True(t, check.OK)
	assert.True(t, check.Total.Equal(amount("100")))

	check, err = st.CheckFee(ctx, movie, amount("40.01"), 0)
	require.NoError(t, err)
	assert.False(t, check.OK)

	check, err = st.CheckFee(ctx, movie, amount("100"), id)
	require.NoError(t, err)
	assert.True(t, check.OK, "excluded shooting should not count")

	_, err = st.CheckFee(ctx, 999, amount("1"), 0)
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = st.CheckFee(ctx, movie, amount("-1"), 0)
	assert.ErrorAs(t, err, new(*model.ValidationError))
}

func TestDeleteGuards(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	busyActor := seedActor(t, st, "Busy", "1")
	idleActor := seedActor(t, st, "Idle", "1")
	busyMovie := seedMovie(t, st, "Busy Movie", "100")
	idleMovie := seedMovie(t, st, "Idle Movie", "100")
	_, err := st.CreateShooting(ctx, model.Shooting{ActorID: busyActor, MovieID: busyMovie, Date: mustDay(t, "2026-03-01"), Fee: amount("10")})
	require.NoError(t, err)

	var ri *model.ReferentialIntegrityError
	require.ErrorAs(t, st.DeleteActor(ctx, busyActor), &ri)
	assert.Equal(t, "actor", ri.Entity)
	assert.Equal(t, 1, ri.Shootings)
	require.ErrorAs(t, st.DeleteMovie(ctx, busyMovie), &ri)
	assert.Equal(t, "movie", ri.Entity)

	actors, err := st.ListActors(ctx)
	require.NoError(t, err)
	assert.Len(t, actors, 2)
	movies, err := st.ListMovies(ctx)
	require.NoError(t, err)
	assert.Len(t, movies, 2)
	shootings, err := st.ListShootings(ctx)
	require.NoError(t, err)
	assert.Len(t, shootings, 1)

	require.NoError(t, st.DeleteActor(ctx, idleActor))
	require.NoError(t, st.DeleteMovie(ctx, idleMovie))
	actors, err = st.ListActors(ctx)
	require.NoError(t, err)
	require.Len(t, actors, 1)
	assert.Equal(t, busyActor, actors[0].ID)
	movies, err = st.ListMovies(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, busyMovie, movies[0].ID)

	assert.ErrorIs(t, st.DeleteActor(ctx, idleActor), model.ErrNotFound)
	assert.ErrorIs(t, st.DeleteShooting(ctx, 42), model.ErrNotFound)
}

func TestShootingReferencesMustExist(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	actor := seedActor(t, st, "Solo", "1")
	movie := seedMovie(t, st, "Only", "10")

	_, err := st.CreateShooting(ctx, model.Shooting{ActorID: 77, MovieID: movie, Date: mustDay(t, "2026-01-01")})
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = st.CreateShooting(ctx, model.Shooting{ActorID: actor, MovieID: 77, Date: mustDay(t, "2026-01-01")})
	assert.ErrorIs(t, err, model.ErrNotFound)

	err = st.UpdateShooting(ctx, model.Shooting{ID: 5, ActorID: actor, MovieID: movie, Date: mustDay(t, "2026-01-01")})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestUpdateMovieBudgetBelowSpent(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	actor := seedActor(t, st, "A", "1")
	movie := seedMovie(t, st, "Shrinking", "1000")
	_, err := st.CreateShooting(ctx, model.Shooting{ActorID: actor, MovieID: movie, Date: mustDay(t, "2026-01-01"), Fee: amount("700")})
	require.NoError(t, err)

	err = st.UpdateMovie(ctx, model.Movie{ID: movie, Title: "Shrinking", Budget: amount("699.99")})
	var exceeded *model.BudgetExceededError
	require.ErrorAs(t, err, &exceeded)
	assert.True(t, exceeded.Total.Equal(amount("700")))

	require.NoError(t, st.UpdateMovie(ctx, model.Movie{ID: movie, Title: "Shrunk", Director: "D", Budget: amount("700")}))
	m, err := st.GetMovie(ctx, movie)
	require.NoError(t, err)
	assert.Equal(t, "Shrunk", m.Title)
	assert.Equal(t, "D", m.Director)
	assert.True(t, m.Budget.Equal(amount("700")))

	assert.ErrorIs(t, st.UpdateMovie(ctx, model.Movie{ID: 99, Title: "x"}), model.ErrNotFound)
}

func TestAggregationViews(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	zed := seedActor(t, st, "Zed", "5")
	amy := seedActor(t, st, "Amy", "5")
	seedActor(t, st, "Nobody", "5")
	beta := seedMovie(t, st, "Beta", "300")
	alpha := seedMovie(t, st, "Alpha", "50")

	day := mustDay(t, "2026-04-01")
	for _, sh := range []model.Shooting{
		{ActorID: zed, MovieID: beta, Date: day, Fee: amount("100.25")},
		{ActorID: zed, MovieID: alpha, Date: day, Fee: amount("49.75")},
		{ActorID: amy, MovieID: beta, Date: day},
	} {
		_, err := st.CreateShooting(ctx, sh)
		require.NoError(t, err)
	}

	expenses, err := st.ActorExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, expenses, 3)
	assert.Equal(t, []string{"Amy", "Nobody", "Zed"}, []string{expenses[0].FullName, expenses[1].FullName, expenses[2].FullName})
	assert.True(t, expenses[0].TotalFee.IsZero())
	assert.Equal(t, 1, expenses[0].Shootings)
	assert.True(t, expenses[1].TotalFee.IsZero())
	assert.Equal(t, 0, expenses[1].Shootings)
	assert.True(t, expenses[2].TotalFee.Equal(amount("150")))

	budgets, err := st.MovieBudgets(ctx)
	require.NoError(t, err)
	require.Len(t, budgets, 2)
	assert.Equal(t, "Alpha", budgets[0].Title)
	assert.True(t, budgets[0].Remaining.Equal(amount("0.25")))
	assert.Equal(t, "Beta", budgets[1].Title)
	assert.True(t, budgets[1].Spent.Equal(amount("100.25")))
	assert.True(t, budgets[1].Remaining.Equal(amount("199.75")))
	assert.Equal(t, 2, budgets[1].Shootings)
}

func TestScheduleRangeAndOrder(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	actor := seedActor(t, st, "Sched", "1")
	movie := seedMovie(t, st, "Timeline", "1000")

	for _, d := range []string{"2026-10-18", "2026-10-16", "2026-10-17", "2026-10-17"} {
		_, err := st.CreateShooting(ctx, model.Shooting{ActorID: actor, MovieID: movie, Date: mustDay(t, d), Scene: "scene " + d})
		require.NoError(t, err)
	}

	today := mustDay(t, "2026-10-17")
	rows, err := st.Schedule(ctx, model.DateRange{From: today, To: today})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, "2026-10-17", model.FormatDate(r.Date))
		assert.Equal(t, "Sched", r.ActorName)
		assert.Equal(t, "Timeline", r.MovieTitle)
	}
	assert.Less(t, rows[0].ID, rows[1].ID)

	all, err := st.Schedule(ctx, model.DateRange{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "2026-10-16", model.FormatDate(all[0].Date))
	assert.Equal(t, "2026-10-18", model.FormatDate(all[3].Date))

	upcoming, err := st.Schedule(ctx, model.DateRange{From: today})
	require.NoError(t, err)
	assert.Len(t, upcoming, 3)

	listing, err := st.ListShootings(ctx)
	require.NoError(t, err)
	require.Len(t, listing, 4)
	assert.Equal(t, "2026-10-18", model.FormatDate(listing[0].Date), "raw listing is newest first")
	assert.Equal(t, "2026-10-16", model.FormatDate(listing[3].Date))
}

func TestSearchEscapesWildcards(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	seedActor(t, st, "Anna 100%", "1")
	seedActor(t, st, "Anna Smith", "1")
	seedMovie(t, st, "Big_Picture", "1")
	seedMovie(t, st, "BigXPicture", "1")

	got, err := st.SearchActors(ctx, "%")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Anna 100%", got[0].FullName)

	got, err = st.SearchActors(ctx, "anna")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	movies, err := st.SearchMovies(ctx, "g_p")
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Big_Picture", movies[0].Title)
}

func TestNotFoundLookups(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	_, err := st.GetActor(ctx, 1)
	assert.True(t, errors.Is(err, model.ErrNotFound))
	_, err = st.GetMovie(ctx, 1)
	assert.True(t, errors.Is(err, model.ErrNotFound))
	_, err = st.GetShooting(ctx, 1)
	assert.True(t, errors.Is(err, model.ErrNotFound))
	assert.ErrorIs(t, st.UpdateActor(ctx, model.Actor{ID: 3, FullName: "ghost"}), model.ErrNotFound)
}
