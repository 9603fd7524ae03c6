package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/tripbudget/internal/cli"
	"github.com/theirongolddev/tripbudget/internal/tui/components"
	"github.com/theirongolddev/tripbudget/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	r := a.result
	base := a.conv.Base

	money := func(v float64) string { return cli.FormatMoney(v, base) }

	var b strings.Builder

	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Total cost", Value: money(r.TotalCost), Delta: a.secondary(r.TotalCost)},
		{Label: "Revenue after tax", Value: money(r.Revenue.AfterTax), Delta: a.secondary(r.Revenue.AfterTax)},
		{Label: "Gross profit", Value: money(r.GrossProfit), Delta: a.secondary(r.GrossProfit), Color: t.Signed(r.GrossProfit)},
		{Label: "Net profit", Value: money(r.NetProfit), Delta: a.secondary(r.NetProfit), Color: t.Signed(r.NetProfit)},
	}, cw))
	b.WriteString("\n")

	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Cost / student", Value: money(r.CostPerStudent)},
		{Label: "Break-even price", Value: money(r.BreakEvenPrice),
			Delta: "charging " + money(a.cfg.Financial.PricePerStudent)},
		{Label: "Margin", Value: cli.FormatPercent(r.MarginPercent), Color: t.Signed(r.MarginPercent)},
		{Label: "Mentor cost / student", Value: money(r.MentorCostPerStudent)},
	}, cw))
	b.WriteString("\n")

	widths := components.LayoutRow(cw, 2)
	left := components.ContentCard("Where the money goes", a.categorySummary(components.CardInnerWidth(widths[0])), widths[0])
	right := components.ContentCard("Checks", a.checks(), widths[1])
	b.WriteString(components.CardRow([]string{left, right}))

	return b.String()
}

// secondary renders v in the secondary currency, or nothing without a rate.
func (a App) secondary(v float64) string {
	if a.conv.Rate <= 0 || a.conv.Secondary == "" {
		return ""
	}
	return cli.FormatMoney(a.conv.ToSecondary(v), a.conv.Secondary)
}

func (a App) categorySummary(innerW int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	total := a.result.TotalCost
	labelW := 16
	valueW := 14
	barW := max(innerW-labelW-valueW-9, 4)

	var lines []string
	for _, line := range a.result.Costs.Lines() {
		if line.Total == 0 {
			continue
		}
		share := 0.0
		if total > 0 {
			share = line.Total / total * 100
		}
		lines = append(lines,
			labelStyle.Render(fmt.Sprintf("%-*s", labelW, truncStr(line.Category, labelW)))+
				space.Render(" ")+
				valueStyle.Render(fmt.Sprintf("%*s", valueW, cli.FormatMoney(line.Total, a.conv.Base)))+
				space.Render(" ")+
				components.SplitBar(line.StudentsCost, line.MentorsCost, barW)+
				space.Render(" ")+
				dimStyle.Render(fmt.Sprintf("%5.1f%%", share)))
	}
	if len(lines) == 0 {
		return dimStyle.Render("No costs yet")
	}

	legend := lipgloss.NewStyle().Foreground(t.Students).Background(t.Surface).Render("█ students") +
		space.Render("  ") +
		lipgloss.NewStyle().Foreground(t.Mentors).Background(t.Surface).Render("█ mentors")
	return strings.Join(lines, "\n") + "\n\n" + legend
}

func (a App) checks() string {
	t := theme.Active
	okStyle := lipgloss.NewStyle().Foreground(t.Profit).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Warn).Background(t.Surface)

	var out []string
	warn := func(s string) { out = append(out, warnStyle.Render("! "+s)) }
	ok := func(s string) { out = append(out, okStyle.Render("✓ "+s)) }

	r := a.result
	if _, has := a.cfg.Lodging(); !has {
		warn("no lodging configured")
	}
	if a.cfg.Group.Students == 0 {
		warn("no students: per-student figures are 0")
	}
	if r.Distribution.SharesValid {
		ok("shares add up to 100%")
	} else {
		warn(fmt.Sprintf("shares add up to %s", cli.FormatPercent(r.Distribution.ShareSum)))
	}
	if r.GrossProfit < 0 {
		warn(fmt.Sprintf("loss of %s shared by stakeholders", cli.FormatMoney(-r.GrossProfit, a.conv.Base)))
	} else {
		ok("trip covers its costs")
	}
	if a.cfg.Financial.PricePerStudent > 0 && a.cfg.Financial.PricePerStudent < r.BreakEvenPrice {
		warn(fmt.Sprintf("price is %s below break-even",
			cli.FormatMoney(r.BreakEvenPrice-a.cfg.Financial.PricePerStudent, a.conv.Base)))
	}
	return strings.Join(out, "\n")
}
