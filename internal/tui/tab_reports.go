package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/filmdesk/internal/cli"
	"github.com/theirongolddev/filmdesk/internal/model"
	"github.com/theirongolddev/filmdesk/internal/pipeline"
	"github.com/theirongolddev/filmdesk/internal/tui/components"
	"github.com/theirongolddev/filmdesk/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const maxChartDays = 10

var (
	expenseColumns = []components.Column{
		{Title: "ID", Width: 6, Right: true},
		{Title: "Actor"},
		{Title: "Shootings", Width: 11, Right: true},
		{Title: "Total fee", Width: 16, Right: true},
	}
	budgetColumns = []components.Column{
		{Title: "Movie"},
		{Title: "Budget", Width: 14, Right: true},
		{Title: "Spent", Width: 14, Right: true},
		{Title: "Remaining", Width: 14, Right: true},
	}
)

func expenseCells(e model.ActorExpense) []string {
	return []string{
		strconv.FormatInt(e.ActorID, 10),
		e.FullName,
		strconv.Itoa(e.Shootings),
		cli.FormatMoney(e.TotalFee),
	}
}

func budgetCells(b model.MovieBudget) []string {
	return []string{
		b.Title,
		cli.FormatMoney(b.Budget),
		cli.FormatMoney(b.Spent),
		cli.FormatMoney(b.Remaining),
	}
}

func (a App) renderScheduleTab(cw, h int) string {
	rng := pipeline.RangeFor(a.period, a.svc.Now())
	title := fmt.Sprintf("Schedule · %s (%d)  [p] period", a.period.Label(), len(a.data.schedule))

	// Bounded short periods get a per-day chart beside the table.
	var chart string
	if !rng.From.IsZero() && !rng.To.IsZero() {
		days := pipeline.DailyTotals(a.data.schedule, rng.From, rng.To)
		if len(days) <= maxChartDays {
			chartW := min(cw/3, 48)
			chart = components.ContentCard("Per day", components.DayBars(days, components.CardInnerWidth(chartW)), chartW)
			cw -= chartW
		}
	}

	tv := components.TableView{
		Columns: a.sortedColumns(tabSchedule),
		Rows:    cellRows(a.data.schedule, shootingCells),
		Cursor:  a.cursors[tabSchedule],
	}
	table := tableCard(title, tv, cw, h)
	if chart == "" {
		return table
	}
	return components.CardRow([]string{table, chart})
}

func (a App) renderExpensesTab(cw, h int) string {
	sum := a.data.expenseSum
	var top string
	if leader := pipeline.TopExpenses(a.data.expenses, 1); len(leader) == 1 && leader[0].TotalFee.IsPositive() {
		top = leader[0].FullName
	}

	metrics := components.MetricCardRow([]components.Metric{
		{Label: "Actors", Value: cli.FormatNumber(int64(sum.Actors))},
		{Label: "Total fees", Value: cli.FormatMoney(sum.Total)},
		{Label: "Mean per actor", Value: cli.FormatMoney(sum.Mean)},
		{Label: "Top earner", Value: cli.OrDash(top)},
	}, cw)

	tv := components.TableView{
		Columns: a.sortedColumns(tabExpenses),
		Rows:    cellRows(a.data.expenses, expenseCells),
		Cursor:  a.cursors[tabExpenses],
	}
	table := tableCard("Fees per actor", tv, cw, h-lipgloss.Height(metrics))
	return metrics + "\n" + table
}

func (a App) renderBudgetTab(cw, h int) string {
	t := theme.Active
	sum := a.data.budgetSum
	over := pipeline.OverBudget(a.data.budgets)

	metrics := components.MetricCardRow([]components.Metric{
		{Label: "Total budget", Value: cli.FormatMoney(sum.TotalBudget),
			Note: fmt.Sprintf("%d movies · mean %s", sum.Movies, cli.FormatMoney(sum.MeanBudget))},
		{Label: "Spent", Value: cli.FormatMoney(sum.TotalSpent)},
		{Label: "Remaining", Value: cli.FormatMoney(sum.TotalRemaining), Alert: sum.TotalRemaining.IsNegative()},
		{Label: "Over budget", Value: strconv.Itoa(len(over)), Alert: len(over) > 0},
	}, cw)

	tv := components.TableView{
		Columns: a.sortedColumns(tabBudget),
		Rows:    cellRows(a.data.budgets, budgetCells),
		Cursor:  a.cursors[tabBudget],
		RowColor: func(i int) (lipgloss.Color, bool) {
			if a.data.budgets[i].OverBudget() {
				return t.OverBudget, true
			}
			return "", false
		},
	}

	detail := a.budgetDetail(cw)
	table := tableCard("Budget per movie", tv, cw, h-lipgloss.Height(metrics)-lipgloss.Height(detail))
	return strings.Join([]string{metrics, table, detail}, "\n")
}

// budgetDetail shows the consumption bar of the selected movie.
func (a App) budgetDetail(cw int) string {
	if len(a.data.budgets) == 0 {
		return ""
	}
	b := a.data.budgets[a.cursors[tabBudget]]
	inner := components.CardInnerWidth(cw)
	label := fmt.Sprintf("%s · %s of %s", b.Title, cli.FormatMoney(b.Spent), cli.FormatMoney(b.Budget))
	return components.ContentCard(label, components.BudgetBar(b.UsedRatio(), max(inner-6, 4)), cw)
}

