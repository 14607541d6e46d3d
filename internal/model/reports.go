package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActorExpense holds the fee total of one actor across all shootings.
type ActorExpense struct {
	ActorID   int64
	FullName  string
	TotalFee  decimal.Decimal
	Shootings int
}

// ExpenseSummary aggregates the per-actor expense view.
type ExpenseSummary struct {
	Actors int
	Total  decimal.Decimal
	Mean   decimal.Decimal // Total / Actors, zero when there are no actors
}

// MovieBudget holds budget consumption for one movie.
type MovieBudget struct {
	MovieID   int64
	Title     string
	Director  string
	Budget    decimal.Decimal
	Spent     decimal.Decimal
	Remaining decimal.Decimal
	Shootings int
}

// OverBudget reports whether spent exceeds the budget. Only pre-existing
// inconsistent data can produce this.
func (m MovieBudget) OverBudget() bool {
	return m.Remaining.IsNegative()
}

// UsedRatio returns spent / budget in [0, +inf). A zero budget with no
// spending is 0; a zero budget with spending is 1.
func (m MovieBudget) UsedRatio() float64 {
	if m.Budget.IsZero() {
		if m.Spent.IsPositive() {
			return 1
		}
		return 0
	}
	r, _ := m.Spent.Div(m.Budget).Float64()
	return r
}

// BudgetSummary aggregates the per-movie budget view.
type BudgetSummary struct {
	Movies         int
	TotalBudget    decimal.Decimal
	TotalSpent     decimal.Decimal
	TotalRemaining decimal.Decimal
	MeanBudget     decimal.Decimal // TotalBudget / Movies, zero when there are no movies
}

// FeeCheck is the outcome of a budget guard evaluation.
type FeeCheck struct {
	MovieID int64
	Total   decimal.Decimal // would-be cumulative fee total including the new fee
	Budget  decimal.Decimal
	OK      bool
}

// Err returns a *BudgetExceededError when the check failed, nil otherwise.
func (c FeeCheck) Err() error {
	if c.OK {
		return nil
	}
	return &BudgetExceededError{MovieID: c.MovieID, Total: c.Total, Budget: c.Budget}
}

// DayTotal holds the shootings and fees booked on one calendar date.
type DayTotal struct {
	Date      time.Time
	Shootings int
	Fees      decimal.Decimal
}
