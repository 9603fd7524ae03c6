package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/tripbudget/internal/cli"
	"github.com/theirongolddev/tripbudget/internal/tui/components"
	"github.com/theirongolddev/tripbudget/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderCostsTab(cw int) string {
	widths := components.LayoutRow(cw, 2)

	table := components.ContentCard("Costs by category", a.costTable(components.CardInnerWidth(cw)), cw)
	acts := components.ContentCard("Activities  [space] toggle", a.activityList(components.CardInnerWidth(widths[0])), widths[0])
	rooms := components.ContentCard("Rooms", a.roomSummary(), widths[1])

	return table + "\n" + components.CardRow([]string{acts, rooms})
}

func (a App) costTable(innerW int) string {
	t := theme.Active
	headStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	totalStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)

	const catW, numW = 16, 14
	row := func(style lipgloss.Style, cat, total, students, mentors string) string {
		return style.Render(fmt.Sprintf("%-*s %*s %*s %*s", catW, cat, numW, total, numW, students, numW, mentors))
	}
	money := func(v float64) string { return cli.FormatMoney(v, a.conv.Base) }

	lines := []string{
		row(headStyle, "Category", "Total", "Students", "Mentors"),
		dimStyle.Render(strings.Repeat("─", min(innerW, catW+3*numW+3))),
	}
	for _, line := range a.result.Costs.Lines() {
		style := rowStyle
		if line.Total == 0 {
			style = dimStyle
		}
		lines = append(lines, row(style, line.Category, money(line.Total), money(line.StudentsCost), money(line.MentorsCost)))
	}
	c := a.result.Costs
	lines = append(lines,
		dimStyle.Render(strings.Repeat("─", min(innerW, catW+3*numW+3))),
		row(totalStyle, "Total", money(c.Total), money(c.StudentsTotal), money(c.MentorsTotal)),
	)
	return strings.Join(lines, "\n")
}

func (a App) activityList(innerW int) string {
	t := theme.Active
	onStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	offStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	cursorStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover).Bold(true)

	if len(a.cfg.Activities) == 0 {
		return offStyle.Render("No activities")
	}

	priceW := 12
	nameW := max(innerW-priceW-6, 8)

	lines := make([]string, 0, len(a.cfg.Activities))
	for i, act := range a.cfg.Activities {
		mark := "[ ]"
		style := offStyle
		if act.Enabled {
			mark = "[x]"
			style = onStyle
		}
		if i == a.costs.cursor && a.activeTab == tabCosts {
			style = cursorStyle
		}
		lines = append(lines, style.Render(fmt.Sprintf("%s %-*s %*s",
			mark, nameW, truncStr(act.Name, nameW), priceW, cli.FormatMoney(act.PricePerPerson, a.conv.Base))))
	}
	return strings.Join(lines, "\n")
}

func (a App) roomSummary() string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)

	rooms := a.result.Costs.Rooms
	lodging, _ := a.cfg.Lodging()
	rows := []struct {
		label string
		value string
	}{
		{"Lodging", lodging.Name},
		{"Student pairs", fmt.Sprintf("%d", rooms.StudentPairs)},
		{"Student singles", fmt.Sprintf("%d", rooms.StudentSingles)},
		{"Mentor rooms", fmt.Sprintf("%d", rooms.Mentor)},
		{"Rooms total", fmt.Sprintf("%d", rooms.Total)},
		{"Price per room", cli.FormatMoney(lodging.PairPrice, a.conv.Base)},
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, labelStyle.Render(fmt.Sprintf("%-16s", r.label))+valueStyle.Render(r.value))
	}
	return strings.Join(lines, "\n")
}
