package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/filmdesk/internal/model"
	"github.com/theirongolddev/filmdesk/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// DayBars renders one line per day: weekday and date, a bar proportional to
// the number of shootings, and the count. width is the full line width.
func DayBars(days []model.DayTotal, width int) string {
	if len(days) == 0 {
		return ""
	}
	t := theme.Active

	peak := 1
	for _, d := range days {
		peak = max(peak, d.Shootings)
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	countStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	const labelW, countW = 11, 4
	barMax := max(width-labelW-countW-2, 4)

	lines := make([]string, len(days))
	for i, d := range days {
		label := labelStyle.Render(fmt.Sprintf("%-*s", labelW, d.Date.Format("Mon Jan 02")))
		if d.Shootings == 0 {
			lines[i] = label + " " + emptyStyle.Render("·")
			continue
		}
		n := max(d.Shootings*barMax/peak, 1)
		lines[i] = label + " " + barStyle.Render(strings.Repeat("█", n)) +
			countStyle.Render(fmt.Sprintf(" %d", d.Shootings))
	}
	return strings.Join(lines, "\n")
}
