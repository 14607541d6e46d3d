package components

import (
	"strings"

	"github.com/theirongolddev/filmdesk/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Column describes one table column. Width 0 takes the remaining space.
type Column struct {
	Title string
	Width int
	Right bool
}

// TableView is a scrolling list with a highlighted cursor row.
type TableView struct {
	Columns []Column
	Rows    [][]string
	Cursor  int
	Height  int // rows visible, header excluded
	// RowColor optionally overrides the foreground of a row.
	RowColor func(row int) (lipgloss.Color, bool)
}

// ScrollOffset returns the first visible row so that cursor stays in view.
func ScrollOffset(cursor, rows, height int) int {
	if height <= 0 || rows <= height {
		return 0
	}
	off := cursor - height/2
	return min(max(off, 0), rows-height)
}

// ResolveWidths gives fixed columns their width and splits what is left of
// total (minus one separator space per column) among flexible ones.
func ResolveWidths(cols []Column, total int) []int {
	widths := make([]int, len(cols))
	used, flex := 0, 0
	for i, c := range cols {
		widths[i] = c.Width
		used += c.Width + 1
		if c.Width == 0 {
			flex++
		}
	}
	if flex == 0 {
		return widths
	}
	each := max((total-used)/flex, 4)
	for i := range widths {
		if widths[i] == 0 {
			widths[i] = each
		}
	}
	return widths
}

// Render draws the header and the visible window of rows within width.
func (tv TableView) Render(width int) string {
	t := theme.Active
	widths := ResolveWidths(tv.Columns, width)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	cells := func(values []string) string {
		parts := make([]string, len(tv.Columns))
		for i, c := range tv.Columns {
			v := ""
			if i < len(values) {
				v = truncate(values[i], widths[i])
			}
			pad := spaces(max(widths[i]-lipgloss.Width(v), 0))
			if c.Right {
				parts[i] = pad + v
			} else {
				parts[i] = v + pad
			}
		}
		return " " + strings.Join(parts, " ")
	}

	titles := make([]string, len(tv.Columns))
	for i, c := range tv.Columns {
		titles[i] = c.Title
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(cells(titles)))

	if len(tv.Rows) == 0 {
		b.WriteString("\n" + dimStyle.Render(" (empty)"))
		return b.String()
	}

	height := tv.Height
	if height <= 0 {
		height = len(tv.Rows)
	}
	off := ScrollOffset(tv.Cursor, len(tv.Rows), height)
	end := min(off+height, len(tv.Rows))
	for i := off; i < end; i++ {
		style := rowStyle
		if i == tv.Cursor {
			style = selStyle
		}
		if tv.RowColor != nil {
			if c, ok := tv.RowColor(i); ok {
				style = style.Foreground(c)
			}
		}
		b.WriteString("\n" + style.Render(cells(tv.Rows[i])))
	}
	return b.String()
}
