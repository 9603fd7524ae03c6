package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/tripbudget/internal/budget"
	"github.com/theirongolddev/tripbudget/internal/cli"
	"github.com/theirongolddev/tripbudget/internal/model"
)

var (
	flagSharesEqual       bool
	flagSharesNoNormalize bool
)

var sharesCmd = &cobra.Command{
	Use:   "shares",
	Short: "How gross profit splits between stakeholders",
	RunE:  runShares,
}

var sharesSetCmd = &cobra.Command{
	Use:   "set NAME=PCT[:TAX] ...",
	Short: "Replace the stakeholder list",
	Long: `Replace the stakeholder list. Each argument is NAME=PERCENT with an optional
:TAX percent on that stakeholder's share. Unless --no-normalize is given the
last stakeholder takes whatever the others leave of 100%.

With --equal, arguments are plain names and 100% is split evenly.`,
	Example: `  tripbudget shares set "Partner 1=40" "Partner 2=30:10" "Partner 3"
  tripbudget shares set --equal Alice Bob Carol`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSharesSet,
}

func init() {
	sharesSetCmd.Flags().BoolVar(&flagSharesEqual, "equal", false, "Split 100% evenly between the named stakeholders")
	sharesSetCmd.Flags().BoolVar(&flagSharesNoNormalize, "no-normalize", false, "Keep the last share as given")
	sharesCmd.AddCommand(sharesSetCmd)
	rootCmd.AddCommand(sharesCmd)
}

func runShares(_ *cobra.Command, _ []string) error {
	c, err := loadAndCompute()
	if err != nil {
		return err
	}
	return emit(c.Result.Distribution, func() { printShares(c) })
}

func printShares(c computed) {
	d := c.Result.Distribution
	base := c.Conv.Base
	m := func(v float64) string { return cli.FormatMoney(v, base) }

	rows := make([][]string, 0, len(d.Shares)+3)
	for _, s := range d.Shares {
		rows = append(rows, []string{
			s.Name,
			cli.FormatPercent(s.Percent),
			m(s.ShareAmount),
			cli.FormatPercent(s.TaxPercent),
			m(s.TaxOnShare),
			cli.RenderSigned(s.NetAmount, m(s.NetAmount)),
		})
	}
	rows = append(rows, cli.Separator)
	rows = append(rows, []string{
		"Total",
		cli.FormatPercent(d.ShareSum),
		m(c.Result.GrossProfit),
		"",
		m(d.TotalTaxOnShares),
		cli.RenderSigned(d.NetProfit, m(d.NetProfit)),
	})

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Profit distribution",
		Headers: []string{"Stakeholder", "Share", "Amount", "Tax", "Tax amount", "Net"},
		Rows:    rows,
	}))
	for _, s := range d.Shares {
		fmt.Printf("  %-14s %s\n", s.Name, cli.RenderShareBar(s.Percent, 30))
	}
	if !d.SharesValid {
		fmt.Println()
		fmt.Println(cli.RenderWarning(fmt.Sprintf("shares add up to %s, not 100%%", cli.FormatPercent(d.ShareSum))))
	}
	fmt.Println()
}

func runSharesSet(_ *cobra.Command, args []string) error {
	trip, err := loadTrip()
	if err != nil {
		return err
	}

	var shares []model.Stakeholder
	if flagSharesEqual {
		shares = budget.EqualShares(args...)
	} else {
		shares, err = parseShares(args)
		if err != nil {
			return err
		}
		if !flagSharesNoNormalize {
			shares = budget.NormalizeLastShare(shares)
		}
	}

	trip.Stakeholders = shares
	if err := saveTrip(trip); err != nil {
		return err
	}

	c := compute(trip)
	if !c.Result.Distribution.SharesValid {
		logger.Warn().Float64("sum", c.Result.Distribution.ShareSum).Msg("shares do not add up to 100%")
	}
	return emit(c.Result.Distribution, func() { printShares(c) })
}

// parseShares reads NAME=PCT[:TAX] arguments. A bare NAME gets 0%, which
// normalization then fills in when it is last.
func parseShares(args []string) ([]model.Stakeholder, error) {
	out := make([]model.Stakeholder, 0, len(args))
	for _, arg := range args {
		name, value, hasPct := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("share %q: missing name", arg)
		}

		s := model.Stakeholder{Name: name}
		if hasPct {
			pctStr, taxStr, hasTax := strings.Cut(value, ":")
			pct, err := parsePercent(pctStr)
			if err != nil {
				return nil, fmt.Errorf("share %q: %w", arg, err)
			}
			s.Percent = pct
			if hasTax {
				tax, err := parsePercent(taxStr)
				if err != nil {
					return nil, fmt.Errorf("share %q tax: %w", arg, err)
				}
				s.TaxPercent = tax
			}
		}
		out = append(out, s)
	}
	return out, nil
}

var errBadPercent = errors.New("percent must be a number between 0 and 100")

func parsePercent(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "%"), 64)
	if err != nil || v < 0 || v > 100 {
		return 0, errBadPercent
	}
	return v, nil
}
