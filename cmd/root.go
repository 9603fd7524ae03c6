package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/tripbudget/internal/budget"
	"github.com/theirongolddev/tripbudget/internal/cli"
	"github.com/theirongolddev/tripbudget/internal/config"
	"github.com/theirongolddev/tripbudget/internal/currency"
	"github.com/theirongolddev/tripbudget/internal/model"
)

var (
	flagTripFile string
	flagFormat   string
	flagQuiet    bool
	flagVerbose  bool
)

// appCfg and logger are populated before any command runs.
var (
	appCfg = config.DefaultConfig()
	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:           "tripbudget",
	Short:         "Trip budget calculator",
	Long:          "Price a group trip: costs by category, revenue, profit and how it splits between stakeholders.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSummary,

	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		config.LoadEnv()
		logger = newLogger()

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		appCfg = cfg

		if flagTripFile == "" {
			flagTripFile = config.TripPath(cfg)
		}
		if flagFormat == "" {
			flagFormat = cfg.General.Format
		}
		switch flagFormat {
		case cli.FormatTable, cli.FormatJSON, cli.FormatYAML:
		default:
			return fmt.Errorf("unknown format %q (want table, json or yaml)", flagFormat)
		}
		return nil
	},
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagTripFile, "trip", "t", "", "Trip file (default from config or $TRIPBUDGET_TRIP_FILE)")
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "", "Output format: table, json or yaml")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log warnings and errors")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output")
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	switch {
	case flagVerbose:
		level = zerolog.DebugLevel
	case flagQuiet:
		level = zerolog.WarnLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// loadTrip is the shared loading path used by every command. Validation
// problems are logged, not fatal: the engine runs on the sanitized trip.
func loadTrip() (model.TripConfig, error) {
	trip, err := config.LoadTrip(flagTripFile)
	if err != nil {
		return trip, err
	}
	if _, statErr := os.Stat(flagTripFile); os.IsNotExist(statErr) {
		logger.Debug().Str("path", flagTripFile).Msg("trip file not found, using the default trip")
	}
	if err := config.Validate(trip); err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			logger.Warn().Str("path", flagTripFile).Msg(line)
		}
	}
	return trip, nil
}

func saveTrip(trip model.TripConfig) error {
	if err := config.SaveTrip(flagTripFile, trip); err != nil {
		return err
	}
	logger.Debug().Str("path", flagTripFile).Msg("trip saved")
	return nil
}

// computed bundles a trip with its engine output.
type computed struct {
	Trip   model.TripConfig
	Result model.BudgetResult
	Conv   currency.Converter
}

func compute(trip model.TripConfig) computed {
	cfg := config.Sanitize(trip)
	return computed{
		Trip:   cfg,
		Result: budget.Compute(cfg),
		Conv:   converterFor(cfg.Currency),
	}
}

func loadAndCompute() (computed, error) {
	trip, err := loadTrip()
	if err != nil {
		return computed{}, err
	}
	return compute(trip), nil
}

// converterFor falls back to base-only output when the rate is unusable.
func converterFor(c model.Currency) currency.Converter {
	conv, err := currency.New(c.Base, c.Secondary, c.Rate)
	if err != nil {
		logger.Warn().Err(err).Msg("secondary currency disabled")
		return currency.Converter{Base: strings.ToUpper(c.Base)}
	}
	return conv
}

// emit prints v as JSON/YAML, or calls table for the default format.
func emit(v any, table func()) error {
	if flagFormat == cli.FormatTable {
		table()
		return nil
	}
	return cli.Emit(os.Stdout, flagFormat, v)
}

func money(v float64, conv currency.Converter) string {
	return cli.FormatMoneyPair(v, conv)
}
