package currency

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadRate(t *testing.T) {
	for _, r := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := New("HKD", "KZT", r)
		if !errors.Is(err, ErrInvalidRate) {
			t.Fatalf("New(rate=%v) err = %v, want ErrInvalidRate", r, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	c, err := New("hkd", "kzt", 59)
	require.NoError(t, err)
	assert.Equal(t, "HKD", c.Base)

	for _, v := range []float64{8903, 600000.0 / 59, 3876, 182, 100, 0, 4451.5} {
		got := c.ToBase(c.ToSecondary(v))
		if math.Abs(got-v) > 1e-9*math.Max(1, math.Abs(v)) {
			t.Fatalf("round trip %v -> %v", v, got)
		}
	}
	assert.InDelta(t, 600000.0, c.ToSecondary(600000.0/59), 1e-6)
}

func TestDisplay(t *testing.T) {
	c, err := New("HKD", "KZT", 64.55)
	require.NoError(t, err)

	assert.Equal(t, 100.0, c.Display(100, "HKD"))
	assert.InDelta(t, 6455.0, c.Display(100, "kzt"), 1e-9)
	assert.Equal(t, 100.0, c.Display(100, "USD"))
}

func TestParse(t *testing.T) {
	c, err := New("HKD", "KZT", 64.55)
	require.NoError(t, err)

	v, err := c.Parse("8,903", "HKD")
	require.NoError(t, err)
	assert.Equal(t, 8903.0, v)

	v, err = c.Parse("6 455", "KZT")
	require.NoError(t, err)
	assert.InDelta(t, 100.0, v, 1e-9)

	v, err = c.Parse("  ", "HKD")
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	_, err = c.Parse("abc", "HKD")
	assert.Error(t, err)

	for _, in := range []string{"NaN", "inf", "-Inf"} {
		_, err = c.Parse(in, "HKD")
		assert.Error(t, err, in)
	}
}

func TestFormat(t *testing.T) {
	c, err := New("HKD", "KZT", 64.55)
	require.NoError(t, err)

	p := c.Format(174224)
	assert.Equal(t, "174,224 HKD", p.Base)
	assert.Equal(t, "11,246,159 KZT", p.Secondary)
	assert.Equal(t, "174,224 HKD (11,246,159 KZT)", p.String())

	assert.Equal(t, "-17,776 HKD", Amount(-17776, "HKD"))
	assert.Equal(t, "0", Amount(-0.2, ""))
}
