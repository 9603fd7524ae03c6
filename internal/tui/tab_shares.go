package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/tripbudget/internal/cli"
	"github.com/theirongolddev/tripbudget/internal/tui/components"
	"github.com/theirongolddev/tripbudget/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderSharesTab(cw int) string {
	t := theme.Active
	d := a.result.Distribution
	money := func(v float64) string { return cli.FormatMoney(v, a.conv.Base) }

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	cursorStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	inner := components.CardInnerWidth(cw)
	const nameW, numW = 14, 14
	barW := max(inner-nameW-3*numW-12, 8)

	var lines []string
	for i, s := range d.Shares {
		style := nameStyle
		if i == a.shares.cursor {
			style = cursorStyle
		}
		net := lipgloss.NewStyle().Foreground(t.Signed(s.NetAmount)).Background(t.Surface).
			Render(fmt.Sprintf("%*s", numW, money(s.NetAmount)))
		lines = append(lines,
			style.Render(fmt.Sprintf("%-*s", nameW, truncStr(s.Name, nameW)))+
				space.Render(" ")+
				components.ShareBar(s.Percent, barW)+
				space.Render(" ")+
				nameStyle.Render(fmt.Sprintf("%*s", numW, money(s.ShareAmount)))+
				dimStyle.Render(fmt.Sprintf("%*s", numW, "tax "+money(s.TaxOnShare)))+
				net)
	}
	if len(lines) == 0 {
		lines = append(lines, dimStyle.Render("No stakeholders"))
	}

	sumStyle := lipgloss.NewStyle().Foreground(t.Profit).Background(t.Surface).Bold(true)
	sumText := "Shares: " + cli.FormatPercent(d.ShareSum)
	if !d.SharesValid {
		sumStyle = sumStyle.Foreground(t.Warn)
		sumText += "  (must add up to 100%, press n to fix the last share)"
	}

	dist := components.ContentCard("Distribution  [ ] adjust  n normalize", strings.Join(lines, "\n")+"\n\n"+sumStyle.Render(sumText), cw)

	totals := components.MetricCardRow([]components.Metric{
		{Label: "Gross profit", Value: money(a.result.GrossProfit), Color: t.Signed(a.result.GrossProfit)},
		{Label: "Tax on shares", Value: money(d.TotalTaxOnShares)},
		{Label: "Net profit", Value: money(d.NetProfit), Color: t.Signed(d.NetProfit)},
	}, cw)

	return totals + "\n" + dist
}
