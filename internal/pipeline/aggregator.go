// Package pipeline derives summaries and date windows from the store's
// report rows.
package pipeline

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/filmdesk/internal/model"
)

// SummarizeExpenses totals the per-actor expense rows.
func SummarizeExpenses(rows []model.ActorExpense) model.ExpenseSummary {
	sum := model.ExpenseSummary{Actors: len(rows), Total: decimal.Zero}
	for _, r := range rows {
		sum.Total = sum.Total.Add(r.TotalFee)
	}
	sum.Mean = mean(sum.Total, sum.Actors)
	return sum
}

// SummarizeBudgets totals the per-movie budget rows.
func SummarizeBudgets(rows []model.MovieBudget) model.BudgetSummary {
	sum := model.BudgetSummary{
		Movies:         len(rows),
		TotalBudget:    decimal.Zero,
		TotalSpent:     decimal.Zero,
		TotalRemaining: decimal.Zero,
	}
	for _, r := range rows {
		sum.TotalBudget = sum.TotalBudget.Add(r.Budget)
		sum.TotalSpent = sum.TotalSpent.Add(r.Spent)
		sum.TotalRemaining = sum.TotalRemaining.Add(r.Remaining)
	}
	sum.MeanBudget = mean(sum.TotalBudget, sum.Movies)
	return sum
}

// mean divides total by n. Zero when n is zero. The quotient is kept at
// full precision; renderers round it to cents.
func mean(total decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(n)))
}

// TopExpenses returns up to n actors with the highest fee totals, highest
// first. Ties keep name order.
func TopExpenses(rows []model.ActorExpense, n int) []model.ActorExpense {
	sorted := make([]model.ActorExpense, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalFee.GreaterThan(sorted[j].TotalFee)
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// MostConsumed returns up to n movies ordered by budget used ratio, highest
// first.
func MostConsumed(rows []model.MovieBudget, n int) []model.MovieBudget {
	sorted := make([]model.MovieBudget, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UsedRatio() > sorted[j].UsedRatio()
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// OverBudget returns the rows whose spending exceeds their budget.
func OverBudget(rows []model.MovieBudget) []model.MovieBudget {
	var result []model.MovieBudget
	for _, r := range rows {
		if r.OverBudget() {
			result = append(result, r)
		}
	}
	return result
}

// DailyTotals buckets shootings by calendar date between from and to
// (inclusive), oldest first. Days without shootings are present as zeros
// so charts show gaps.
func DailyTotals(rows []model.ShootingRow, from, to time.Time) []model.DayTotal {
	from, to = model.Day(from), model.Day(to)
	if to.Before(from) {
		return nil
	}
	window := model.DateRange{From: from, To: to}

	index := make(map[string]int)
	var days []model.DayTotal
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		index[model.FormatDate(day)] = len(days)
		days = append(days, model.DayTotal{Date: day, Fees: decimal.Zero})
	}

	for _, r := range rows {
		if !window.Contains(r.Date) {
			continue
		}
		i := index[model.FormatDate(r.Date)]
		days[i].Shootings++
		days[i].Fees = days[i].Fees.Add(r.Fee)
	}
	return days
}
