package components

import (
	"github.com/theirongolddev/filmdesk/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left and
// the latest status message on the right. Errors use the over-budget color.
func RenderStatusBar(width int, hints, message string, isErr bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)
	msgStyle := style.Foreground(t.AccentBright)
	if isErr {
		msgStyle = style.Foreground(t.OverBudget).Bold(true)
	}

	left := style.Render(" " + hints)
	right := ""
	if message != "" {
		room := width - lipgloss.Width(left) - 2
		if room < 10 {
			room = 10
		}
		right = msgStyle.Render(truncate(message, room) + " ")
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}
	return left + style.Render(spaces(padding)) + right
}

func spaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
