package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/tripbudget/internal/config"
	"github.com/theirongolddev/tripbudget/internal/rates"
)

var (
	flagRateSave    bool
	flagRateTimeout time.Duration
)

var rateCmd = &cobra.Command{
	Use:   "rate",
	Short: "Exchange rate between the base and secondary currency",
}

var rateFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the latest rate (and optionally store it in the trip)",
	RunE:  runRateFetch,
}

func init() {
	rateFetchCmd.Flags().BoolVar(&flagRateSave, "save", false, "Write the fetched rate into the trip file")
	rateFetchCmd.Flags().DurationVar(&flagRateTimeout, "timeout", 10*time.Second, "Request timeout")
	rateCmd.AddCommand(rateFetchCmd)
	rootCmd.AddCommand(rateCmd)
}

func runRateFetch(cmd *cobra.Command, _ []string) error {
	trip, err := loadTrip()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), flagRateTimeout)
	defer cancel()

	client := rates.NewClient(appCfg.Rates.BaseURL, config.GetRatesAPIKey(appCfg))
	q, err := client.Fetch(ctx, trip.Currency.Base, trip.Currency.Secondary)
	switch {
	case errors.Is(err, rates.ErrUnauthorized):
		return fmt.Errorf("%w: check [rates] api_key or TRIPBUDGET_RATES_API_KEY", err)
	case err != nil:
		return err
	}

	prev := trip.Currency.Rate
	if flagRateSave {
		trip.Currency.Rate = q.Rate
		if err := saveTrip(trip); err != nil {
			return err
		}
		logger.Info().Float64("rate", q.Rate).Float64("previous", prev).Msg("trip rate updated")
	}

	return emit(q, func() {
		fmt.Printf("  1 %s = %g %s\n", q.Base, q.Rate, q.Secondary)
		if !q.AsOf.IsZero() {
			fmt.Printf("  As of: %s\n", q.AsOf.Local().Format(time.RFC1123))
		}
		if prev > 0 && prev != q.Rate {
			fmt.Printf("  Trip rate: %g (%+.2f%%)\n", prev, (q.Rate-prev)/prev*100)
		}
		if !flagRateSave {
			fmt.Println("  Run with --save to store it in the trip.")
		}
	})
}
