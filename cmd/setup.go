package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/tripbudget/internal/cli"
	"github.com/theirongolddev/tripbudget/internal/config"
	"github.com/theirongolddev/tripbudget/internal/model"
	"github.com/theirongolddev/tripbudget/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg := appCfg
	trip, err := loadTrip()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("  Welcome to tripbudget!")
	fmt.Printf("  Trip file: %s\n\n", flagTripFile)

	// 1. Trip basics and theme
	vals := tui.NewGroupValues(trip)
	if err := tui.NewGroupForm(vals, trip.Currency.Base).Run(); err != nil {
		return formErr(err)
	}
	vals.Apply(&trip)
	cfg.Appearance.Theme = vals.Theme()

	// 2. Output and exchange rates
	apiKey := ""
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default output format").
				Options(
					huh.NewOption("Table", cli.FormatTable),
					huh.NewOption("JSON", cli.FormatJSON),
					huh.NewOption("YAML", cli.FormatYAML),
				).
				Value(&cfg.General.Format),
			huh.NewInput().
				Title("Exchange-rate API key").
				Description(apiKeyHint(cfg)).
				EchoMode(huh.EchoModePassword).
				Value(&apiKey),
		),
	)
	if err := form.Run(); err != nil {
		return formErr(err)
	}
	if apiKey = strings.TrimSpace(apiKey); apiKey != "" {
		cfg.Rates.APIKey = apiKey
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	if err := saveTrip(trip); err != nil {
		return fmt.Errorf("saving trip: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved %s\n", config.ConfigPath())
	fmt.Printf("  Saved %s\n", flagTripFile)
	printSetupHint(trip)
	fmt.Println("  Run `tripbudget setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}

func apiKeyHint(cfg config.Config) string {
	if key := config.GetRatesAPIKey(cfg); key != "" {
		return "Current: " + maskAPIKey(key) + " (leave empty to keep)"
	}
	return "Optional. Leave empty to skip."
}

func printSetupHint(trip model.TripConfig) {
	if trip.Financial.PricePerStudent == 0 {
		fmt.Println("  Price per student is 0. Try `tripbudget` to see the break-even price.")
	}
}

func formErr(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return errors.New("setup cancelled")
	}
	return fmt.Errorf("setup form: %w", err)
}

func maskAPIKey(key string) string {
	if len(key) > 16 {
		return key[:8] + "..." + key[len(key)-4:]
	}
	if len(key) > 4 {
		return key[:4] + "..."
	}
	return "****"
}
