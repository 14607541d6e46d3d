package tui

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/filmdesk/internal/cli"
	"github.com/theirongolddev/filmdesk/internal/model"
	"github.com/theirongolddev/filmdesk/internal/tui/components"
	"github.com/theirongolddev/filmdesk/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// cardChrome is the border plus title line a ContentCard adds around a table.
const cardChrome = 3

var (
	actorColumns = []components.Column{
		{Title: "ID", Width: 6, Right: true},
		{Title: "Full name"},
		{Title: "Daily rate", Width: 14, Right: true},
	}
	movieColumns = []components.Column{
		{Title: "ID", Width: 6, Right: true},
		{Title: "Title"},
		{Title: "Director"},
		{Title: "Budget", Width: 16, Right: true},
	}
	shootingColumns = []components.Column{
		{Title: "ID", Width: 6, Right: true},
		{Title: "Date", Width: 10},
		{Title: "Actor"},
		{Title: "Movie"},
		{Title: "Scene"},
		{Title: "Fee", Width: 14, Right: true},
	}
)

func actorCells(act model.Actor) []string {
	return []string{
		strconv.FormatInt(act.ID, 10),
		act.FullName,
		cli.FormatMoney(act.DailyRate),
	}
}

func movieCells(m model.Movie) []string {
	return []string{
		strconv.FormatInt(m.ID, 10),
		m.Title,
		cli.OrDash(m.Director),
		cli.FormatMoney(m.Budget),
	}
}

func shootingCells(s model.ShootingRow) []string {
	return []string{
		strconv.FormatInt(s.ID, 10),
		model.FormatDate(s.Date),
		s.ActorName,
		s.MovieTitle,
		cli.OrDash(s.Scene),
		cli.FormatMoney(s.Fee),
	}
}

func cellRows[T any](rows []T, cells func(T) []string) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = cells(r)
	}
	return out
}

func (a App) searchLine(current string, width int) string {
	t := theme.Active
	style := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Background).Width(width)
	switch {
	case a.searching:
		return style.Render(a.searchInput.View())
	case current != "":
		return style.Render(fmt.Sprintf("filter: %q  (esc to clear)", current))
	}
	return ""
}

// tableCard renders a table inside a content card sized to h lines.
func tableCard(title string, tv components.TableView, cw, h int) string {
	tv.Height = max(h-cardChrome-1, 1)
	return components.ContentCard(title, tv.Render(components.CardInnerWidth(cw)), cw)
}

func withSearch(search, card string) string {
	if search == "" {
		return card
	}
	return search + "\n" + card
}

func (a App) renderActorsTab(cw, h int) string {
	search := a.searchLine(a.actorSearch, cw)
	if search != "" {
		h--
	}
	tv := components.TableView{
		Columns: a.sortedColumns(tabActors),
		Rows:    cellRows(a.data.actors, actorCells),
		Cursor:  a.cursors[tabActors],
	}
	title := fmt.Sprintf("Actors (%d)", len(a.data.actors))
	return withSearch(search, tableCard(title, tv, cw, h))
}

func (a App) renderMoviesTab(cw, h int) string {
	search := a.searchLine(a.movieSearch, cw)
	if search != "" {
		h--
	}
	tv := components.TableView{
		Columns: a.sortedColumns(tabMovies),
		Rows:    cellRows(a.data.movies, movieCells),
		Cursor:  a.cursors[tabMovies],
	}
	title := fmt.Sprintf("Movies (%d)", len(a.data.movies))
	return withSearch(search, tableCard(title, tv, cw, h))
}

func (a App) renderShootingsTab(cw, h int) string {
	tv := components.TableView{
		Columns: a.sortedColumns(tabShootings),
		Rows:    cellRows(a.data.shootings, shootingCells),
		Cursor:  a.cursors[tabShootings],
	}
	title := fmt.Sprintf("Shootings (%d)", len(a.data.shootings))
	if !a.sorts[tabShootings].on {
		title += " · newest first"
	}
	return tableCard(title, tv, cw, h)
}
