package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/tripbudget/internal/tui/theme"
)

// ShareBar renders a stakeholder share as a bar with its percentage.
// Shares above 100% clamp to a full bar.
func ShareBar(pct float64, width int) string {
	t := theme.Active
	frac := min(max(pct/100, 0), 1)

	bar := progress.New(
		progress.WithSolidFill(string(t.Accent)),
		progress.WithWidth(max(width, 4)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)
	return bar.ViewAs(frac) + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%5.1f%%", pct))
}

// SplitBar renders a students/mentors split of one cost line. An empty line
// renders as a dim track.
func SplitBar(students, mentors float64, width int) string {
	t := theme.Active
	width = max(width, 2)

	studentStyle := lipgloss.NewStyle().Foreground(t.Students).Background(t.Surface)
	mentorStyle := lipgloss.NewStyle().Foreground(t.Mentors).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	total := students + mentors
	if total <= 0 {
		return emptyStyle.Render(repeat("░", width))
	}

	sw := int(students / total * float64(width))
	sw = min(max(sw, 0), width)
	return studentStyle.Render(repeat("█", sw)) + mentorStyle.Render(repeat("█", width-sw))
}

func repeat(s string, n int) string {
	out := make([]byte, 0, len(s)*n)
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}
