package studio

import (
	"context"
	"fmt"
	"time"

	"github.com/theirongolddev/filmdesk/internal/export"
	"github.com/theirongolddev/filmdesk/internal/model"
	"github.com/theirongolddev/filmdesk/internal/pipeline"
)

// Schedule returns the shootings falling in period, oldest first.
func (s *Service) Schedule(ctx context.Context, period pipeline.Period) ([]model.ShootingRow, error) {
	return s.store.Schedule(ctx, pipeline.RangeFor(period, s.now()))
}

// Expenses returns the per-actor fee totals and their summary.
func (s *Service) Expenses(ctx context.Context) ([]model.ActorExpense, model.ExpenseSummary, error) {
	rows, err := s.store.ActorExpenses(ctx)
	if err != nil {
		return nil, model.ExpenseSummary{}, err
	}
	return rows, pipeline.SummarizeExpenses(rows), nil
}

// Budgets returns per-movie budget consumption and its summary.
func (s *Service) Budgets(ctx context.Context) ([]model.MovieBudget, model.BudgetSummary, error) {
	rows, err := s.store.MovieBudgets(ctx)
	if err != nil {
		return nil, model.BudgetSummary{}, err
	}
	return rows, pipeline.SummarizeBudgets(rows), nil
}

// Overview is the data behind the summary dashboard.
type Overview struct {
	Expenses    []model.ActorExpense
	ExpenseSum  model.ExpenseSummary
	Budgets     []model.MovieBudget
	BudgetSum   model.BudgetSummary
	Upcoming    []model.ShootingRow
	Shootings   int
	NextWeek    []model.DayTotal
	GeneratedAt time.Time
}

// Overview gathers both aggregation views, the upcoming schedule and the
// next seven days of bookings.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	var ov Overview
	var err error
	if ov.Expenses, ov.ExpenseSum, err = s.Expenses(ctx); err != nil {
		return ov, fmt.Errorf("expenses: %w", err)
	}
	if ov.Budgets, ov.BudgetSum, err = s.Budgets(ctx); err != nil {
		return ov, fmt.Errorf("budgets: %w", err)
	}
	if ov.Upcoming, err = s.Schedule(ctx, pipeline.PeriodUpcoming); err != nil {
		return ov, fmt.Errorf("schedule: %w", err)
	}
	for _, b := range ov.Budgets {
		ov.Shootings += b.Shootings
	}
	now := s.now()
	ov.NextWeek = pipeline.DailyTotals(ov.Upcoming, now, now.AddDate(0, 0, 6))
	ov.GeneratedAt = now
	return ov, nil
}

// Export writes one table as CSV into dir and returns the file path.
func (s *Service) Export(ctx context.Context, kind export.Kind, dir string) (string, error) {
	return s.exporter.Export(ctx, kind, dir)
}

// ExportAll writes actors, movies and shootings into dir, stopping at the
// first failure.
func (s *Service) ExportAll(ctx context.Context, dir string) ([]string, error) {
	return s.exporter.ExportAll(ctx, dir)
}
