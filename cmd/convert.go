package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/tripbudget/internal/cli"
	"github.com/theirongolddev/tripbudget/internal/currency"
)

var flagConvertTo string

var convertCmd = &cobra.Command{
	Use:   "convert AMOUNT",
	Short: "Convert an amount between the trip's base and secondary currency",
	Example: `  tripbudget convert 8903
  tripbudget convert 500,000 --to base`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

type conversion struct {
	From   string  `json:"from" yaml:"from"`
	To     string  `json:"to" yaml:"to"`
	Amount float64 `json:"amount" yaml:"amount"`
	Result float64 `json:"result" yaml:"result"`
	Rate   float64 `json:"rate" yaml:"rate"`
}

func init() {
	convertCmd.Flags().StringVar(&flagConvertTo, "to", "secondary", "Target currency: base, secondary, or either currency code")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(_ *cobra.Command, args []string) error {
	trip, err := loadTrip()
	if err != nil {
		return err
	}
	conv := converterFor(trip.Currency)
	if conv.Rate <= 0 {
		return fmt.Errorf("trip has no usable exchange rate for %s", trip.Currency.Secondary)
	}

	from, to, err := convertDirection(conv, flagConvertTo)
	if err != nil {
		return err
	}

	// Parse always yields the base amount.
	base, err := conv.Parse(args[0], from)
	if err != nil {
		return err
	}

	out := conversion{
		From:   from,
		To:     to,
		Amount: conv.Display(base, from),
		Result: conv.Display(base, to),
		Rate:   conv.Rate,
	}

	return emit(out, func() {
		fmt.Printf("  %s = %s  %s\n",
			cli.FormatMoney(out.Amount, out.From),
			cli.FormatMoney(out.Result, out.To),
			cli.RenderMuted(fmt.Sprintf("(1 %s = %g %s)", conv.Base, conv.Rate, conv.Secondary)))
	})
}

// convertDirection resolves --to into the source and target currency codes.
func convertDirection(conv currency.Converter, target string) (from, to string, err error) {
	switch t := strings.ToUpper(strings.TrimSpace(target)); t {
	case "", "SECONDARY", conv.Secondary:
		return conv.Base, conv.Secondary, nil
	case "BASE", conv.Base:
		return conv.Secondary, conv.Base, nil
	default:
		return "", "", fmt.Errorf("unknown target %q (use base, secondary, %s or %s)", target, conv.Base, conv.Secondary)
	}
}
