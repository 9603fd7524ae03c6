package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/tripbudget/internal/catalog"
	"github.com/theirongolddev/tripbudget/internal/cli"
	"github.com/theirongolddev/tripbudget/internal/model"
)

var (
	flagFlightID    string
	flagFlightPrice float64
	flagFlightRoute string
	flagFlightDate  string
	flagFlightTime  string
	flagFlightNotes string
)

var flightCmd = &cobra.Command{
	Use:     "flight",
	Aliases: []string{"flights"},
	Short:   "Manage mentor flights",
	RunE:    runFlightList,
}

var flightListCmd = &cobra.Command{
	Use:   "list",
	Short: "List flights",
	RunE:  runFlightList,
}

var flightAddCmd = &cobra.Command{
	Use:     "add NAME",
	Short:   "Add a flight paid for every mentor",
	Example: `  tripbudget flight add "Astana -> Hong Kong" --route "TSE -> HKG" --price 2400`,
	Args:    cobra.ExactArgs(1),
	RunE:    runFlightAdd,
}

var flightRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Remove a flight",
	Args:  cobra.ExactArgs(1),
	RunE:  runFlightRm,
}

func init() {
	flightAddCmd.Flags().StringVar(&flagFlightID, "id", "", "Stable id (default: generated)")
	flightAddCmd.Flags().Float64Var(&flagFlightPrice, "price", 0, "Ticket price per mentor")
	flightAddCmd.Flags().StringVar(&flagFlightRoute, "route", "", "Route, e.g. TSE -> HKG")
	flightAddCmd.Flags().StringVar(&flagFlightDate, "date", "", "Departure date")
	flightAddCmd.Flags().StringVar(&flagFlightTime, "time", "", "Departure time")
	flightAddCmd.Flags().StringVar(&flagFlightNotes, "notes", "", "Free-form notes")

	flightCmd.AddCommand(flightListCmd, flightAddCmd, flightRmCmd)
	rootCmd.AddCommand(flightCmd)
}

func runFlightList(_ *cobra.Command, _ []string) error {
	trip, err := loadTrip()
	if err != nil {
		return err
	}
	return emit(trip.Flights, func() {
		conv := converterFor(trip.Currency)
		rows := make([][]string, 0, len(trip.Flights))
		for _, f := range trip.Flights {
			rows = append(rows, []string{
				f.ID, f.Name, f.Route, f.Date + " " + f.Time,
				cli.FormatMoney(f.PricePerMentor, conv.Base),
				cli.FormatMoney(f.PricePerMentor*float64(trip.Group.Mentors), conv.Base),
			})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   fmt.Sprintf("Flights (%d mentors)", trip.Group.Mentors),
			Headers: []string{"ID", "Name", "Route", "When", "Per mentor", "Total"},
			Rows:    rows,
		}))
		fmt.Println()
	})
}

func runFlightAdd(_ *cobra.Command, args []string) error {
	before, err := loadTrip()
	if err != nil {
		return err
	}

	var added model.Flight
	after, err := editTrip(func(t *catalog.Trip) error {
		added, err = t.Flights.Add(model.Flight{
			ID:             flagFlightID,
			Name:           args[0],
			Route:          flagFlightRoute,
			Date:           flagFlightDate,
			Time:           flagFlightTime,
			PricePerMentor: flagFlightPrice,
			Notes:          flagFlightNotes,
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("adding flight: %w", err)
	}

	fmt.Printf("  Added flight %s (%s)\n", added.Name, added.ID)
	printDelta(before, after)
	return nil
}

func runFlightRm(_ *cobra.Command, args []string) error {
	before, err := loadTrip()
	if err != nil {
		return err
	}
	after, err := editTrip(func(t *catalog.Trip) error { return t.Flights.Delete(args[0]) })
	if err != nil {
		return fmt.Errorf("removing flight: %w", err)
	}

	fmt.Printf("  Removed flight %s\n", args[0])
	printDelta(before, after)
	return nil
}
