package components

import (
	"fmt"

	"github.com/theirongolddev/filmdesk/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// BudgetBar renders spent/budget as a solid bar followed by the percentage.
// Ratios above 1 fill the bar and show the real percentage in red.
func BudgetBar(ratio float64, width int) string {
	t := theme.Active
	color := t.BudgetColor(ratio)

	fill := min(max(ratio, 0), 1)
	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(max(width, 4)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return bar.ViewAs(fill) + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%3.0f%%", ratio*100))
}
