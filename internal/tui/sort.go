package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/theirongolddev/filmdesk/internal/studio"
	"github.com/theirongolddev/filmdesk/internal/tui/components"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
)

// sortState is the column ordering of one tab. When on is false the rows
// keep the order the service returned them in.
type sortState struct {
	on   bool
	col  int
	desc bool
}

var tabViews = [tabCount]studio.View{
	tabActors:    studio.ViewActors,
	tabMovies:    studio.ViewMovies,
	tabShootings: studio.ViewShootings,
	tabSchedule:  studio.ViewSchedule,
	tabExpenses:  studio.ViewExpenses,
	tabBudget:    studio.ViewBudgets,
}

func tabColumns(tab int) []components.Column {
	switch tab {
	case tabActors:
		return actorColumns
	case tabMovies:
		return movieColumns
	case tabShootings, tabSchedule:
		return shootingColumns
	case tabExpenses:
		return expenseColumns
	case tabBudget:
		return budgetColumns
	}
	return nil
}

// sortedColumns returns the tab's columns with an arrow on the sorted one.
func (a App) sortedColumns(tab int) []components.Column {
	cols := slices.Clone(tabColumns(tab))
	if st := a.sorts[tab]; st.on && st.col < len(cols) {
		cols[st.col].Title += " " + st.arrow()
	}
	return cols
}

func (st sortState) arrow() string {
	if st.desc {
		return "▼"
	}
	return "▲"
}

// cycleSort moves the active tab's sort to the next column. Past the last
// column sorting turns off and the view is reloaded in service order.
func (a App) cycleSort() (App, tea.Cmd) {
	tab := a.activeTab
	st := a.sorts[tab]
	switch {
	case !st.on:
		st = sortState{on: true}
	case st.col+1 < len(tabColumns(tab)):
		st = sortState{on: true, col: st.col + 1}
	default:
		st = sortState{}
	}
	a.sorts[tab] = st
	a.cursors[tab] = 0
	if !st.on {
		a = a.setStatus("Sort cleared", false)
		return a.reload(tabViews[tab])
	}
	a.sortTab(tab)
	return a.setStatus(a.sortStatus(tab), false), nil
}

// reverseSort flips the direction, sorting by the first column when the
// tab is unsorted.
func (a App) reverseSort() App {
	tab := a.activeTab
	st := a.sorts[tab]
	if !st.on {
		st = sortState{on: true}
	}
	st.desc = !st.desc
	a.sorts[tab] = st
	a.cursors[tab] = 0
	a.sortTab(tab)
	return a.setStatus(a.sortStatus(tab), false)
}

func (a App) sortStatus(tab int) string {
	st := a.sorts[tab]
	return fmt.Sprintf("Sorted by %s %s", tabColumns(tab)[st.col].Title, st.arrow())
}

// sortTab reorders the loaded rows of tab in place.
func (a *App) sortTab(tab int) {
	st := a.sorts[tab]
	switch tab {
	case tabActors:
		sortRows(a.data.actors, actorCells, st)
	case tabMovies:
		sortRows(a.data.movies, movieCells, st)
	case tabShootings:
		sortRows(a.data.shootings, shootingCells, st)
	case tabSchedule:
		sortRows(a.data.schedule, shootingCells, st)
	case tabExpenses:
		sortRows(a.data.expenses, expenseCells, st)
	case tabBudget:
		sortRows(a.data.budgets, budgetCells, st)
	}
}

// sortRows stable-sorts rows by the rendered text of column st.col. A
// column whose every cell reads as a number compares numerically,
// anything else compares case-insensitively as text.
func sortRows[T any](rows []T, cells func(T) []string, st sortState) {
	if !st.on || len(rows) < 2 {
		return
	}
	keys := make([]string, len(rows))
	for i, r := range rows {
		keys[i] = cells(r)[st.col]
	}
	cmp := columnCompare(keys)

	order := make([]int, len(rows))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(i, j int) int {
		c := cmp(i, j)
		if st.desc {
			return -c
		}
		return c
	})

	sorted := make([]T, len(rows))
	for i, o := range order {
		sorted[i] = rows[o]
	}
	copy(rows, sorted)
}

// columnCompare returns a comparison over the indexes of keys.
func columnCompare(keys []string) func(i, j int) int {
	nums := make([]decimal.Decimal, len(keys))
	numeric := true
	for i, k := range keys {
		d, err := decimal.NewFromString(strings.ReplaceAll(k, ",", ""))
		if err != nil {
			numeric = false
			break
		}
		nums[i] = d
	}
	if numeric {
		return func(i, j int) int { return nums[i].Cmp(nums[j]) }
	}
	lower := make([]string, len(keys))
	for i, k := range keys {
		lower[i] = strings.ToLower(k)
	}
	return func(i, j int) int { return strings.Compare(lower[i], lower[j]) }
}
