package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/tripbudget/internal/currency"
)

func TestParseShares(t *testing.T) {
	shares, err := parseShares([]string{"Partner 1=40", "Partner 2=30:10", "Partner 3"})
	require.NoError(t, err)
	require.Len(t, shares, 3)

	assert.Equal(t, "Partner 1", shares[0].Name)
	assert.InDelta(t, 40, shares[0].Percent, 1e-9)
	assert.InDelta(t, 10, shares[1].TaxPercent, 1e-9)
	assert.Zero(t, shares[2].Percent)
}

func TestParseSharesRejectsBadInput(t *testing.T) {
	for _, arg := range []string{"=20", "A=abc", "A=120", "A=20:-5"} {
		_, err := parseShares([]string{arg})
		assert.Error(t, err, arg)
	}
}

func TestParsePercentAcceptsSuffix(t *testing.T) {
	v, err := parsePercent(" 12.5% ")
	require.NoError(t, err)
	assert.InDelta(t, 12.5, v, 1e-9)
}

func TestDaemonStateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tripbudgetd.json")
	want := daemonRuntimeState{
		PID:       os.Getpid(),
		Addr:      "127.0.0.1:9999",
		StartedAt: time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC),
		TripFile:  "/tmp/trip.toml",
	}
	require.NoError(t, writeState(path, want))

	got, err := readState(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// our own pid is alive, so a second daemon must refuse to start
	assert.Error(t, ensureDaemonNotRunning(path))
}

func TestEnsureDaemonNotRunningClearsBadState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tripbudgetd.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"pid":0}`), 0o600))

	require.NoError(t, ensureDaemonNotRunning(path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, ensureDaemonNotRunning(path), "missing state is fine")
}

func TestFilterDetachArg(t *testing.T) {
	got := filterDetachArg([]string{"daemon", "--detach", "--addr", ":1", "--detach=true"})
	assert.Equal(t, []string{"daemon", "--addr", ":1"}, got)
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "abcd1234...wxyz", maskAPIKey("abcd1234efghijklmnopwxyz"))
	assert.Equal(t, "abcd...", maskAPIKey("abcdefgh"))
	assert.Equal(t, "****", maskAPIKey("abc"))
}

func TestConvertDirection(t *testing.T) {
	conv, err := currency.New("HKD", "KZT", 64.55)
	require.NoError(t, err)

	tests := []struct {
		target   string
		from, to string
	}{
		{"secondary", "HKD", "KZT"},
		{"", "HKD", "KZT"},
		{"kzt", "HKD", "KZT"},
		{"base", "KZT", "HKD"},
		{"HKD", "KZT", "HKD"},
	}
	for _, tt := range tests {
		from, to, err := convertDirection(conv, tt.target)
		require.NoError(t, err, tt.target)
		assert.Equal(t, tt.from, from, tt.target)
		assert.Equal(t, tt.to, to, tt.target)
	}

	_, _, err = convertDirection(conv, "USD")
	assert.Error(t, err)

	base, err := conv.Parse("6,455", "KZT")
	require.NoError(t, err)
	assert.InDelta(t, 100.0, conv.Display(base, "HKD"), 1e-9)
	assert.InDelta(t, 6455.0, conv.Display(base, "KZT"), 1e-9)
}
