package cmd

import (
	"fmt"

	"github.com/theirongolddev/tripbudget/internal/catalog"
	"github.com/theirongolddev/tripbudget/internal/cli"
	"github.com/theirongolddev/tripbudget/internal/model"
)

// editTrip loads the trip, applies fn through the catalog and saves the
// result. Nothing is written when fn fails.
func editTrip(fn func(t *catalog.Trip) error) (model.TripConfig, error) {
	cfg, err := loadTrip()
	if err != nil {
		return cfg, err
	}
	trip := catalog.FromConfig(cfg)
	if err := fn(trip); err != nil {
		return cfg, err
	}
	out := trip.Config()
	if err := saveTrip(out); err != nil {
		return out, err
	}
	return out, nil
}

// printDelta shows how an edit moved the total cost.
func printDelta(before, after model.TripConfig) {
	prev := compute(before)
	next := compute(after)
	fmt.Printf("  Total cost: %s  %s\n",
		money(next.Result.TotalCost, next.Conv),
		cli.RenderMuted(cli.FormatDelta(next.Result.TotalCost, prev.Result.TotalCost, next.Conv.Base)))
}

// mark renders a boolean as a check column.
func mark(on bool) string {
	if on {
		return "✓"
	}
	return ""
}
