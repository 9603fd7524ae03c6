package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/tripbudget/internal/budget"
	"github.com/theirongolddev/tripbudget/internal/cli"
	"github.com/theirongolddev/tripbudget/internal/tui/components"
	"github.com/theirongolddev/tripbudget/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderGroupTab(cw int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	kv := func(rows [][2]string) string {
		lines := make([]string, 0, len(rows))
		for _, r := range rows {
			lines = append(lines, labelStyle.Render(fmt.Sprintf("%-18s", r[0]))+valueStyle.Render(r[1]))
		}
		return strings.Join(lines, "\n")
	}
	money := func(v float64) string { return cli.FormatMoneyPair(v, a.conv) }
	cfg := a.cfg

	start, end := "", ""
	if !cfg.Trip.Start.IsZero() {
		start = cfg.Trip.Start.Format("2006-01-02")
	}
	if !cfg.Trip.End.IsZero() {
		end = cfg.Trip.End.Format("2006-01-02")
	}

	transport := "not included"
	if cfg.Transport.Included {
		transport = money(cfg.Transport.PerPersonCost) + " per person"
	}

	group := kv([][2]string{
		{"Students", fmt.Sprintf("%d", cfg.Group.Students)},
		{"Mentors", fmt.Sprintf("%d", cfg.Group.Mentors)},
		{"Dates", cli.FormatDateRange(start, end, cfg.Trip.DurationDays(), cfg.Trip.DurationNights())},
		{"Price / student", money(cfg.Financial.PricePerStudent)},
		{"Revenue tax", cli.FormatPercent(cfg.Financial.RevenueTaxPercent)},
		{"Transport", transport},
	}) + "\n\n" + dimStyle.Render("e edit  +/- students  >/< mentors  p/P price  t transport")

	lodgingLines := make([]string, 0, a.trip.Lodgings.Len())
	for _, l := range a.trip.Lodgings.Items() {
		mark := "  "
		style := valueStyle
		if l.ID == a.trip.Selected() {
			mark = "▸ "
			style = style.Foreground(t.AccentBright).Bold(true)
		}
		extras := []string{}
		if l.IncludesBreakfast {
			extras = append(extras, "breakfast")
		}
		if l.IncludesTransfer {
			extras = append(extras, "transfer")
		}
		line := style.Render(mark+l.Name) + dimStyle.Render("  "+money(l.PairPrice)+" / room")
		if len(extras) > 0 {
			line += dimStyle.Render("  +" + strings.Join(extras, ", "))
		}
		lodgingLines = append(lodgingLines, line)
	}
	lodging := strings.Join(lodgingLines, "\n") + "\n\n" + dimStyle.Render("h next lodging")

	meals := kv([][2]string{
		{"Student meals", fmt.Sprintf("%d × %s / day", cfg.Meals.Students.MealsPerDay, money(cfg.Meals.Students.CostPerMeal))},
		{"Mentor meals", fmt.Sprintf("%d × %s / day", cfg.Meals.Mentors.MealsPerDay, money(cfg.Meals.Mentors.CostPerMeal))},
		{"Breakfast", money(cfg.Meals.BreakfastPerDay) + " / day"},
	})

	var extraLines []string
	for _, f := range cfg.Flights {
		extraLines = append(extraLines, valueStyle.Render("✈ "+f.Name)+dimStyle.Render("  "+money(f.PricePerMentor)+" / mentor"))
	}
	for _, e := range cfg.Expenses {
		n := budget.Occurrences(e, cfg.Trip.DurationDays())
		extraLines = append(extraLines, valueStyle.Render("• "+e.Name)+
			dimStyle.Render(fmt.Sprintf("  %s × %d", money(e.Amount), n)))
	}
	if len(extraLines) == 0 {
		extraLines = append(extraLines, dimStyle.Render("No flights or custom expenses"))
	}

	widths := components.LayoutRow(cw, 2)
	top := components.CardRow([]string{
		components.ContentCard("Group", group, widths[0]),
		components.ContentCard("Lodging", lodging, widths[1]),
	})
	bottom := components.CardRow([]string{
		components.ContentCard("Meals", meals, widths[0]),
		components.ContentCard("Flights & expenses", strings.Join(extraLines, "\n"), widths[1]),
	})
	return top + "\n" + bottom
}
