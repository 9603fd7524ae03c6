package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/tripbudget/internal/catalog"
	"github.com/theirongolddev/tripbudget/internal/cli"
	"github.com/theirongolddev/tripbudget/internal/model"
)

var (
	flagHotelID        string
	flagHotelSolo      float64
	flagHotelPair      float64
	flagHotelBreakfast bool
	flagHotelTransfer  bool
	flagHotelURL       string
	flagHotelNotes     string
	flagHotelSelect    bool
)

var hotelCmd = &cobra.Command{
	Use:     "hotel",
	Aliases: []string{"hotels", "lodging"},
	Short:   "Manage lodging options",
	RunE:    runHotelList,
}

var hotelListCmd = &cobra.Command{
	Use:   "list",
	Short: "List lodging options",
	RunE:  runHotelList,
}

var hotelAddCmd = &cobra.Command{
	Use:     "add NAME",
	Short:   "Add a lodging option",
	Example: `  tripbudget hotel add "Dorsett Mongkok" --pair 8903 --solo 4451.5 --breakfast`,
	Args:    cobra.ExactArgs(1),
	RunE:    runHotelAdd,
}

var hotelRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Remove a lodging option (the last one cannot be removed)",
	Args:  cobra.ExactArgs(1),
	RunE:  runHotelRm,
}

var hotelSelectCmd = &cobra.Command{
	Use:   "select ID",
	Short: "Price the trip with this lodging",
	Args:  cobra.ExactArgs(1),
	RunE:  runHotelSelect,
}

func init() {
	hotelAddCmd.Flags().StringVar(&flagHotelID, "id", "", "Stable id (default: generated)")
	hotelAddCmd.Flags().Float64Var(&flagHotelSolo, "solo", 0, "Single room price for the whole stay")
	hotelAddCmd.Flags().Float64Var(&flagHotelPair, "pair", 0, "Shared room price for the whole stay")
	hotelAddCmd.Flags().BoolVar(&flagHotelBreakfast, "breakfast", false, "Breakfast included")
	hotelAddCmd.Flags().BoolVar(&flagHotelTransfer, "transfer", false, "Airport transfer included")
	hotelAddCmd.Flags().StringVar(&flagHotelURL, "url", "", "Booking link")
	hotelAddCmd.Flags().StringVar(&flagHotelNotes, "notes", "", "Free-form notes")
	hotelAddCmd.Flags().BoolVar(&flagHotelSelect, "select", false, "Select the new lodging")

	hotelCmd.AddCommand(hotelListCmd, hotelAddCmd, hotelRmCmd, hotelSelectCmd)
	rootCmd.AddCommand(hotelCmd)
}

func runHotelList(_ *cobra.Command, _ []string) error {
	trip, err := loadTrip()
	if err != nil {
		return err
	}
	return emit(trip.Lodgings, func() { printHotels(trip) })
}

func printHotels(trip model.TripConfig) {
	conv := converterFor(trip.Currency)
	selected, _ := trip.Lodging()

	rows := make([][]string, 0, len(trip.Lodgings))
	for _, l := range trip.Lodgings {
		rows = append(rows, []string{
			mark(l.ID == selected.ID),
			l.ID,
			l.Name,
			cli.FormatMoney(l.PairPrice, conv.Base),
			cli.FormatMoney(l.SoloPrice, conv.Base),
			mark(l.IncludesBreakfast),
			mark(l.IncludesTransfer),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Lodging",
		Headers: []string{"", "ID", "Name", "Pair", "Solo", "Breakfast", "Transfer"},
		Rows:    rows,
	}))
	fmt.Println()
}

func runHotelAdd(_ *cobra.Command, args []string) error {
	before, err := loadTrip()
	if err != nil {
		return err
	}

	var added model.Lodging
	after, err := editTrip(func(t *catalog.Trip) error {
		added, err = t.AddLodging(model.Lodging{
			ID:                flagHotelID,
			Name:              args[0],
			SoloPrice:         flagHotelSolo,
			PairPrice:         flagHotelPair,
			IncludesBreakfast: flagHotelBreakfast,
			IncludesTransfer:  flagHotelTransfer,
			URL:               flagHotelURL,
			Notes:             flagHotelNotes,
		})
		if err != nil {
			return err
		}
		if flagHotelSelect {
			return t.SelectLodging(added.ID)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("adding lodging: %w", err)
	}

	fmt.Printf("  Added lodging %s (%s)\n", added.Name, added.ID)
	printDelta(before, after)
	return nil
}

func runHotelRm(_ *cobra.Command, args []string) error {
	before, err := loadTrip()
	if err != nil {
		return err
	}
	after, err := editTrip(func(t *catalog.Trip) error { return t.RemoveLodging(args[0]) })
	if err != nil {
		return fmt.Errorf("removing lodging: %w", err)
	}

	fmt.Printf("  Removed lodging %s\n", args[0])
	if l, ok := after.Lodging(); ok && before.SelectedLodging == args[0] {
		fmt.Printf("  Now pricing with %s\n", l.Name)
	}
	printDelta(before, after)
	return nil
}

func runHotelSelect(_ *cobra.Command, args []string) error {
	before, err := loadTrip()
	if err != nil {
		return err
	}
	after, err := editTrip(func(t *catalog.Trip) error { return t.SelectLodging(args[0]) })
	if err != nil {
		return fmt.Errorf("selecting lodging: %w", err)
	}

	l, _ := after.Lodging()
	fmt.Printf("  Selected %s\n", l.Name)
	printDelta(before, after)
	return nil
}
