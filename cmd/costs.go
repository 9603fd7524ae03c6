package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/tripbudget/internal/cli"
	"github.com/theirongolddev/tripbudget/internal/model"
)

var flagCostsItems bool

var costsCmd = &cobra.Command{
	Use:   "costs",
	Short: "Cost breakdown by category and cohort",
	RunE:  runCosts,
}

func init() {
	costsCmd.Flags().BoolVar(&flagCostsItems, "items", false, "List the items behind each category")
	rootCmd.AddCommand(costsCmd)
}

func runCosts(_ *cobra.Command, _ []string) error {
	c, err := loadAndCompute()
	if err != nil {
		return err
	}
	return emit(c.Result.Costs, func() { printCosts(c) })
}

func printCosts(c computed) {
	costs := c.Result.Costs
	base := c.Conv.Base
	m := func(v float64) string { return cli.FormatMoney(v, base) }

	rows := make([][]string, 0, 12)
	for _, line := range costs.Lines() {
		rows = append(rows, []string{line.Category, m(line.Total), m(line.StudentsCost), m(line.MentorsCost), share(line.Total, costs.Total)})
		if flagCostsItems {
			rows = append(rows, itemRows(line, m)...)
		}
	}
	rows = append(rows, cli.Separator)
	rows = append(rows, []string{"Total", m(costs.Total), m(costs.StudentsTotal), m(costs.MentorsTotal), share(costs.Total, costs.Total)})
	if c.Conv.Rate > 0 && c.Conv.Secondary != "" {
		rows = append(rows, []string{
			"Total " + c.Conv.Secondary,
			cli.FormatMoney(c.Conv.ToSecondary(costs.Total), c.Conv.Secondary),
			cli.FormatMoney(c.Conv.ToSecondary(costs.StudentsTotal), c.Conv.Secondary),
			cli.FormatMoney(c.Conv.ToSecondary(costs.MentorsTotal), c.Conv.Secondary),
			"",
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Costs",
		Headers: []string{"Category", "Total", "Students", "Mentors", "Share"},
		Rows:    rows,
	}))
	fmt.Println()
}

func itemRows(line model.LineItem, m func(float64) string) [][]string {
	rows := make([][]string, 0, len(line.Items))
	for _, it := range line.Items {
		rows = append(rows, []string{"  " + it.Name, m(it.Cost), "", "", ""})
	}
	return rows
}

func share(part, total float64) string {
	if total <= 0 {
		return "-"
	}
	return cli.FormatPercent(part / total * 100)
}
