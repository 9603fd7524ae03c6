package config

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/tripbudget/internal/budget"
	"github.com/theirongolddev/tripbudget/internal/model"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.False(t, Exists())
}

func TestSaveLoadConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.Format = "yaml"
	cfg.Daemon.PollSeconds = 5
	require.NoError(t, Save(cfg))
	require.True(t, Exists())

	info, err := os.Stat(ConfigPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadRejectsBadFormat(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	require.NoError(t, os.MkdirAll(ConfigDir(), 0o755))
	require.NoError(t, os.WriteFile(ConfigPath(), []byte("[general]\nformat = \"xml\"\n"), 0o600))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "General.Format")
}

func TestTripPathPrecedence(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("TRIPBUDGET_TRIP_FILE", "")

	cfg := DefaultConfig()
	assert.Equal(t, filepath.Join(dir, "tripbudget", "trip.toml"), TripPath(cfg))

	cfg.General.TripFile = "/tmp/a.toml"
	assert.Equal(t, "/tmp/a.toml", TripPath(cfg))

	t.Setenv("TRIPBUDGET_TRIP_FILE", "/tmp/b.toml")
	assert.Equal(t, "/tmp/b.toml", TripPath(cfg))
}

func TestGetRatesAPIKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rates.APIKey = "from-config"

	t.Setenv("TRIPBUDGET_RATES_API_KEY", "")
	assert.Equal(t, "from-config", GetRatesAPIKey(cfg))

	t.Setenv("TRIPBUDGET_RATES_API_KEY", "from-env")
	assert.Equal(t, "from-env", GetRatesAPIKey(cfg))
}

func TestTripRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trip.toml")

	trip := DefaultTrip()
	trip.Expenses = []model.CustomExpense{{ID: "sim", Name: "SIM", Amount: 50, Frequency: model.FrequencyPerDay}}
	require.NoError(t, SaveTrip(path, trip))

	got, err := LoadTrip(path)
	require.NoError(t, err)
	assert.Equal(t, budget.Compute(trip), budget.Compute(got))
	assert.Equal(t, trip.Lodgings, got.Lodgings)
	assert.True(t, trip.Trip.Start.Equal(got.Trip.Start))
}

func TestLoadTripMissingFile(t *testing.T) {
	got, err := LoadTrip(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, "dorsett", got.SelectedLodging)
}

func TestLoadTripBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trip.toml")
	require.NoError(t, os.WriteFile(path, []byte("group = ["), 0o600))

	_, err := LoadTrip(path)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "parsing trip file"))
}

func TestDefaultTripIsValid(t *testing.T) {
	require.NoError(t, Validate(DefaultTrip()))

	res := budget.Compute(DefaultTrip())
	assert.Equal(t, 174224.0, res.TotalCost)
}

func TestDefaultTripDates(t *testing.T) {
	trip := DefaultTrip().Trip
	assert.Equal(t, "2026-03-20", trip.Start.Format("2006-01-02"))
	assert.Equal(t, "2026-03-29", trip.End.Format("2006-01-02"))
	assert.Equal(t, 9, trip.DurationDays(), "the configured day count wins over the date span")
	assert.Equal(t, 8, trip.DurationNights())
}

func TestValidateReportsFields(t *testing.T) {
	trip := DefaultTrip()
	trip.Group.Students = -3
	trip.Currency.Rate = 0
	trip.Expenses = []model.CustomExpense{{Name: "x", Frequency: "weekly"}}

	err := Validate(trip)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "Group.Students")
	assert.Contains(t, msg, "Currency.Rate")
	assert.Contains(t, msg, "Expenses[0].Frequency")
}

func TestSanitizeClampsNegatives(t *testing.T) {
	trip := DefaultTrip()
	trip.Group.Mentors = -1
	trip.Financial.PricePerStudent = -100
	trip.Lodgings[0].PairPrice = -5
	trip.Financial.RevenueTaxPercent = -10

	got := Sanitize(trip)
	assert.Equal(t, 0, got.Group.Mentors)
	assert.Equal(t, 0.0, got.Financial.PricePerStudent)
	assert.Equal(t, 0.0, got.Lodgings[0].PairPrice)
	assert.Equal(t, -10.0, got.Financial.RevenueTaxPercent, "tax percentages are passed through")
	assert.Equal(t, -5.0, trip.Lodgings[0].PairPrice, "input must not be mutated")
	assert.NoError(t, Validate(got))
}

func TestSanitizeZeroesNonFiniteFloats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trip.toml")
	data := `
selected_lodging = "h"

[group]
students = 4
mentors = 1

[trip]
days = 3

[transport]
included = true
per_person_cost = -inf

[meals]
breakfast_per_day = nan

[financial]
price_per_student = inf
revenue_tax_percent = nan

[currency]
base = "USD"
secondary = "KZT"
rate = nan

[[lodgings]]
id = "h"
name = "Harbour"
pair_price = nan
solo_price = inf

[[activities]]
name = "Peak"
price_per_person = 120
enabled = true

[[stakeholders]]
name = "a"
percent = 150
tax_percent = nan

[[stakeholders]]
name = "b"
percent = -inf
tax_percent = 10
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	trip, err := LoadTrip(path)
	require.NoError(t, err)
	require.True(t, math.IsNaN(trip.Lodgings[0].PairPrice))

	got := Sanitize(trip)
	assert.Equal(t, 0.0, got.Lodgings[0].PairPrice)
	assert.Equal(t, 0.0, got.Lodgings[0].SoloPrice)
	assert.Equal(t, 0.0, got.Transport.PerPersonCost)
	assert.Equal(t, 0.0, got.Meals.BreakfastPerDay)
	assert.Equal(t, 0.0, got.Financial.PricePerStudent)
	assert.Equal(t, 0.0, got.Financial.RevenueTaxPercent)
	assert.Equal(t, 0.0, got.Currency.Rate)
	assert.Equal(t, 150.0, got.Stakeholders[0].Percent, "finite out-of-range shares are passed through")
	assert.Equal(t, 0.0, got.Stakeholders[0].TaxPercent)
	assert.Equal(t, 0.0, got.Stakeholders[1].Percent)
	assert.Equal(t, 10.0, got.Stakeholders[1].TaxPercent)

	res := budget.Compute(got)
	assert.Equal(t, 120.0*5, res.TotalCost)
	assert.Equal(t, 0.0, res.Revenue.Total)
	assert.Equal(t, 150.0, res.CostPerStudent)
	assert.Equal(t, 0.0, res.MarginPercent)

	_, err = json.Marshal(res)
	assert.NoError(t, err)
}
