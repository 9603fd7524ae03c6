package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/tripbudget/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar. msg replaces the right-hand
// file info when set.
func RenderStatusBar(width int, tripFile string, dirty bool, msg string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)

	left := " [?]help  [w]rite  [q]uit"
	right := tripFile
	if dirty {
		right += " *"
	}
	if msg != "" {
		right = msg
	}
	right += " "

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return style.Render(left + lipgloss.NewStyle().Background(t.Surface).Width(padding).Render("") + right)
}
