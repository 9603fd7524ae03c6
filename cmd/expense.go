package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/tripbudget/internal/budget"
	"github.com/theirongolddev/tripbudget/internal/catalog"
	"github.com/theirongolddev/tripbudget/internal/cli"
	"github.com/theirongolddev/tripbudget/internal/model"
)

var (
	flagExpenseID        string
	flagExpenseAmount    float64
	flagExpenseFrequency string
	flagExpenseCount     int
)

var expenseCmd = &cobra.Command{
	Use:     "expense",
	Aliases: []string{"expenses"},
	Short:   "Manage custom per-person expenses",
	RunE:    runExpenseList,
}

var expenseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List custom expenses",
	RunE:  runExpenseList,
}

var expenseAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a custom expense charged to every traveller",
	Example: `  tripbudget expense add "SIM cards" --amount 60
  tripbudget expense add "Snacks" --amount 30 --frequency per_day
  tripbudget expense add "Museum" --amount 50 --frequency custom --count 3`,
	Args: cobra.ExactArgs(1),
	RunE: runExpenseAdd,
}

var expenseRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Remove a custom expense",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpenseRm,
}

func init() {
	expenseAddCmd.Flags().StringVar(&flagExpenseID, "id", "", "Stable id (default: generated)")
	expenseAddCmd.Flags().Float64Var(&flagExpenseAmount, "amount", 0, "Amount per person per occurrence")
	expenseAddCmd.Flags().StringVar(&flagExpenseFrequency, "frequency", string(model.FrequencyOnce), "once, per_day or custom")
	expenseAddCmd.Flags().IntVar(&flagExpenseCount, "count", 0, "Occurrences when --frequency=custom")

	expenseCmd.AddCommand(expenseListCmd, expenseAddCmd, expenseRmCmd)
	rootCmd.AddCommand(expenseCmd)
}

func runExpenseList(_ *cobra.Command, _ []string) error {
	trip, err := loadTrip()
	if err != nil {
		return err
	}
	return emit(trip.Expenses, func() {
		conv := converterFor(trip.Currency)
		days := trip.Trip.DurationDays()
		people := float64(trip.Group.Total())

		rows := make([][]string, 0, len(trip.Expenses))
		for _, e := range trip.Expenses {
			n := budget.Occurrences(e, days)
			rows = append(rows, []string{
				e.ID, e.Name, string(e.Frequency), fmt.Sprintf("%d", n),
				cli.FormatMoney(e.Amount, conv.Base),
				cli.FormatMoney(e.Amount*float64(n)*people, conv.Base),
			})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Custom expenses",
			Headers: []string{"ID", "Name", "Frequency", "Times", "Amount", "Group total"},
			Rows:    rows,
		}))
		fmt.Println()
	})
}

func runExpenseAdd(_ *cobra.Command, args []string) error {
	freq := model.Frequency(flagExpenseFrequency)
	switch freq {
	case model.FrequencyOnce, model.FrequencyPerDay:
	case model.FrequencyCustom:
		if flagExpenseCount < 1 {
			return fmt.Errorf("--count is required with --frequency=custom")
		}
	default:
		return fmt.Errorf("unknown frequency %q (want once, per_day or custom)", flagExpenseFrequency)
	}

	before, err := loadTrip()
	if err != nil {
		return err
	}

	var added model.CustomExpense
	after, err := editTrip(func(t *catalog.Trip) error {
		added, err = t.Expenses.Add(model.CustomExpense{
			ID:        flagExpenseID,
			Name:      args[0],
			Amount:    flagExpenseAmount,
			Frequency: freq,
			Count:     flagExpenseCount,
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("adding expense: %w", err)
	}

	fmt.Printf("  Added expense %s (%s)\n", added.Name, added.ID)
	printDelta(before, after)
	return nil
}

func runExpenseRm(_ *cobra.Command, args []string) error {
	before, err := loadTrip()
	if err != nil {
		return err
	}
	after, err := editTrip(func(t *catalog.Trip) error { return t.Expenses.Delete(args[0]) })
	if err != nil {
		return fmt.Errorf("removing expense: %w", err)
	}

	fmt.Printf("  Removed expense %s\n", args[0])
	printDelta(before, after)
	return nil
}
