package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/tripbudget/internal/currency"
)

func TestFormatNumber(t *testing.T) {
	tests := map[int64]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		1234567:  "1,234,567",
		-174224:  "-174,224",
	}
	for in, want := range tests {
		if got := FormatNumber(in); got != want {
			t.Fatalf("FormatNumber(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "25%", FormatPercent(25))
	assert.Equal(t, "33.3%", FormatPercent(100.0/3))
	assert.Equal(t, "-9.3%", FormatPercent(-9.26))
}

func TestFormatMoneyPair(t *testing.T) {
	conv := currency.Converter{Base: "HKD", Secondary: "KZT", Rate: 64.55}
	assert.Equal(t, "8,903 HKD (574,689 KZT)", FormatMoneyPair(8903, conv))

	conv.Rate = 0
	assert.Equal(t, "8,903 HKD", FormatMoneyPair(8903, conv))
}

func TestFormatDelta(t *testing.T) {
	assert.Equal(t, "+100 HKD", FormatDelta(300, 200, "HKD"))
	assert.Equal(t, "-50 HKD", FormatDelta(150, 200, "HKD"))
}

func TestRenderTableAlignsColumns(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Category", "Total"},
		Rows: [][]string{
			{"Hotel", "124,642"},
			Separator,
			{"Total", "174,224"},
		},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 7)

	width := len([]rune(stripANSI(lines[0])))
	for _, l := range lines {
		assert.Equal(t, width, len([]rune(stripANSI(l))), l)
	}
	assert.Contains(t, stripANSI(lines[3]), "Hotel    ")
}

func TestEmit(t *testing.T) {
	v := map[string]float64{"total_cost": 174224}

	var js bytes.Buffer
	require.NoError(t, Emit(&js, FormatJSON, v))
	assert.JSONEq(t, `{"total_cost":174224}`, js.String())

	var y bytes.Buffer
	require.NoError(t, Emit(&y, FormatYAML, v))
	assert.Equal(t, "total_cost: 174224\n", y.String())

	assert.Error(t, Emit(&y, "xml", v))
}

func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
