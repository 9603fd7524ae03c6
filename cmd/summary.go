package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/tripbudget/internal/cli"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Budget summary: cost, revenue, profit and per-student figures",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	c, err := loadAndCompute()
	if err != nil {
		return err
	}
	return emit(c.Result, func() { printSummary(c) })
}

func printSummary(c computed) {
	r := c.Result
	trip := c.Trip
	conv := c.Conv
	lodging, _ := trip.Lodging()

	start, end := "", ""
	if !trip.Trip.Start.IsZero() {
		start = trip.Trip.Start.Format("2006-01-02")
	}
	if !trip.Trip.End.IsZero() {
		end = trip.Trip.End.Format("2006-01-02")
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(trip.Name))
	fmt.Println()

	fmt.Print(cli.RenderKV("Trip", []cli.KV{
		{Label: "Dates", Value: cli.FormatDateRange(start, end, trip.Trip.DurationDays(), trip.Trip.DurationNights())},
		{Label: "Group", Value: fmt.Sprintf("%d students, %d mentors", trip.Group.Students, trip.Group.Mentors)},
		{Label: "Lodging", Value: lodging.Name},
		{Label: "Rooms", Value: fmt.Sprintf("%d (%d pairs, %d singles, %d mentors)",
			r.Costs.Rooms.Total, r.Costs.Rooms.StudentPairs, r.Costs.Rooms.StudentSingles, r.Costs.Rooms.Mentor)},
	}))
	fmt.Println()

	fmt.Print(cli.RenderKV("Budget", []cli.KV{
		{Label: "Total cost", Value: money(r.TotalCost, conv)},
		{Label: "Revenue", Value: money(r.Revenue.Total, conv)},
		{Label: "Revenue tax", Value: fmt.Sprintf("%s (%s)", money(r.Revenue.Tax, conv), cli.FormatPercent(trip.Financial.RevenueTaxPercent))},
		{Label: "Gross profit", Value: cli.RenderSigned(r.GrossProfit, money(r.GrossProfit, conv))},
		{Label: "Tax on shares", Value: money(r.Distribution.TotalTaxOnShares, conv)},
		{Label: "Net profit", Value: cli.RenderSigned(r.NetProfit, money(r.NetProfit, conv))},
	}))
	fmt.Println()

	fmt.Print(cli.RenderKV("Per student", []cli.KV{
		{Label: "Price", Value: money(trip.Financial.PricePerStudent, conv)},
		{Label: "Cost", Value: money(r.CostPerStudent, conv)},
		{Label: "Break-even price", Value: money(r.BreakEvenPrice, conv)},
		{Label: "Margin", Value: cli.RenderSigned(r.MarginPerStudent,
			fmt.Sprintf("%s (%s)", money(r.MarginPerStudent, conv), cli.FormatPercent(r.MarginPercent)))},
		{Label: "Mentor cost", Value: money(r.MentorCostPerStudent, conv)},
	}))

	printWarnings(c)
	fmt.Println()
}

// printWarnings lists conditions that make the figures misleading.
func printWarnings(c computed) {
	var warnings []string
	if _, ok := c.Trip.Lodging(); !ok {
		warnings = append(warnings, "no lodging configured")
	}
	if c.Trip.Group.Students == 0 {
		warnings = append(warnings, "no students: per-student figures are 0")
	}
	if !c.Result.Distribution.SharesValid {
		warnings = append(warnings, fmt.Sprintf("stakeholder shares add up to %s, not 100%%",
			cli.FormatPercent(c.Result.Distribution.ShareSum)))
	}
	if c.Result.GrossProfit < 0 {
		warnings = append(warnings, "the trip runs at a loss; stakeholders share it")
	}
	if len(warnings) == 0 {
		return
	}
	fmt.Println()
	for _, w := range warnings {
		fmt.Println(cli.RenderWarning(w))
	}
}
