package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/tripbudget/internal/catalog"
	"github.com/theirongolddev/tripbudget/internal/cli"
	"github.com/theirongolddev/tripbudget/internal/model"
)

var (
	flagActivityID       string
	flagActivityPrice    float64
	flagActivityDisabled bool
	flagActivityURL      string
	flagActivityNotes    string
)

var activityCmd = &cobra.Command{
	Use:     "activity",
	Aliases: []string{"activities"},
	Short:   "Manage activities (charged to every traveller while enabled)",
	RunE:    runActivityList,
}

var activityListCmd = &cobra.Command{
	Use:   "list",
	Short: "List activities",
	RunE:  runActivityList,
}

var activityAddCmd = &cobra.Command{
	Use:     "add NAME",
	Short:   "Add an activity",
	Example: `  tripbudget activity add "Victoria Peak" --price 182`,
	Args:    cobra.ExactArgs(1),
	RunE:    runActivityAdd,
}

var activityRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Remove an activity",
	Args:  cobra.ExactArgs(1),
	RunE:  runActivityRm,
}

var activityToggleCmd = &cobra.Command{
	Use:   "toggle ID",
	Short: "Switch an activity on or off",
	Args:  cobra.ExactArgs(1),
	RunE:  runActivityToggle,
}

func init() {
	activityAddCmd.Flags().StringVar(&flagActivityID, "id", "", "Stable id (default: generated)")
	activityAddCmd.Flags().Float64Var(&flagActivityPrice, "price", 0, "Price per person")
	activityAddCmd.Flags().BoolVar(&flagActivityDisabled, "disabled", false, "Add without enabling")
	activityAddCmd.Flags().StringVar(&flagActivityURL, "url", "", "Booking link")
	activityAddCmd.Flags().StringVar(&flagActivityNotes, "notes", "", "Free-form notes")

	activityCmd.AddCommand(activityListCmd, activityAddCmd, activityRmCmd, activityToggleCmd)
	rootCmd.AddCommand(activityCmd)
}

func runActivityList(_ *cobra.Command, _ []string) error {
	trip, err := loadTrip()
	if err != nil {
		return err
	}
	return emit(trip.Activities, func() { printActivities(trip) })
}

func printActivities(trip model.TripConfig) {
	conv := converterFor(trip.Currency)
	people := float64(trip.Group.Total())

	rows := make([][]string, 0, len(trip.Activities)+2)
	var total float64
	for _, a := range trip.Activities {
		cost := a.PricePerPerson * people
		if a.Enabled {
			total += cost
		}
		rows = append(rows, []string{
			mark(a.Enabled),
			a.ID,
			a.Name,
			cli.FormatMoney(a.PricePerPerson, conv.Base),
			cli.FormatMoney(cost, conv.Base),
		})
	}
	rows = append(rows, cli.Separator, []string{"", "", "Enabled total", "", cli.FormatMoney(total, conv.Base)})

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Activities (%d travellers)", trip.Group.Total()),
		Headers: []string{"On", "ID", "Name", "Per person", "Group"},
		Rows:    rows,
	}))
	fmt.Println()
}

func runActivityAdd(_ *cobra.Command, args []string) error {
	before, err := loadTrip()
	if err != nil {
		return err
	}

	var added model.Activity
	after, err := editTrip(func(t *catalog.Trip) error {
		added, err = t.Activities.Add(model.Activity{
			ID:             flagActivityID,
			Name:           args[0],
			PricePerPerson: flagActivityPrice,
			Enabled:        !flagActivityDisabled,
			URL:            flagActivityURL,
			Notes:          flagActivityNotes,
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("adding activity: %w", err)
	}

	fmt.Printf("  Added activity %s (%s)\n", added.Name, added.ID)
	printDelta(before, after)
	return nil
}

func runActivityRm(_ *cobra.Command, args []string) error {
	before, err := loadTrip()
	if err != nil {
		return err
	}
	after, err := editTrip(func(t *catalog.Trip) error { return t.Activities.Delete(args[0]) })
	if err != nil {
		return fmt.Errorf("removing activity: %w", err)
	}

	fmt.Printf("  Removed activity %s\n", args[0])
	printDelta(before, after)
	return nil
}

func runActivityToggle(_ *cobra.Command, args []string) error {
	before, err := loadTrip()
	if err != nil {
		return err
	}

	var act model.Activity
	after, err := editTrip(func(t *catalog.Trip) error {
		act, err = t.ToggleActivity(args[0])
		return err
	})
	if err != nil {
		return fmt.Errorf("toggling activity: %w", err)
	}

	state := "disabled"
	if act.Enabled {
		state = "enabled"
	}
	fmt.Printf("  %s %s\n", act.Name, state)
	printDelta(before, after)
	return nil
}
