// Package currency converts and formats amounts between the base currency
// and one display currency.
package currency

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrInvalidRate is returned for a non-positive or non-finite rate.
var ErrInvalidRate = errors.New("currency: rate must be a positive number")

var printer = message.NewPrinter(language.AmericanEnglish)

// Converter holds a fixed base to secondary rate.
type Converter struct {
	Base      string
	Secondary string
	Rate      float64
}

// Pair is an amount formatted in both currencies.
type Pair struct {
	Base      string `json:"base" yaml:"base"`
	Secondary string `json:"secondary" yaml:"secondary"`
}

// New returns a Converter, rejecting rates that cannot round-trip.
func New(base, secondary string, rate float64) (Converter, error) {
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return Converter{}, fmt.Errorf("%w: got %v", ErrInvalidRate, rate)
	}
	return Converter{
		Base:      strings.ToUpper(base),
		Secondary: strings.ToUpper(secondary),
		Rate:      rate,
	}, nil
}

// ToSecondary converts a base amount into the display currency.
func (c Converter) ToSecondary(amount float64) float64 {
	return amount * c.Rate
}

// ToBase converts a display-currency amount back into base.
func (c Converter) ToBase(amount float64) float64 {
	if c.Rate <= 0 {
		return 0
	}
	return amount / c.Rate
}

// Display returns amount (held in base) in the requested currency. Any code
// other than the secondary one yields the base amount.
func (c Converter) Display(amount float64, code string) float64 {
	if strings.EqualFold(code, c.Secondary) && !strings.EqualFold(code, c.Base) {
		return c.ToSecondary(amount)
	}
	return amount
}

// Parse reads a user-entered amount in code and returns it in base. Group
// separators and spaces are ignored. Empty input parses as 0.
func (c Converter) Parse(input, code string) (float64, error) {
	s := strings.NewReplacer(",", "", " ", "", "_", "").Replace(strings.TrimSpace(input))
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", input, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("parsing amount %q: not a finite number", input)
	}
	if strings.EqualFold(code, c.Secondary) && !strings.EqualFold(code, c.Base) {
		return c.ToBase(v), nil
	}
	return v, nil
}

// Format renders amount (in base) in both currencies.
func (c Converter) Format(amount float64) Pair {
	return Pair{
		Base:      Amount(amount, c.Base),
		Secondary: Amount(c.ToSecondary(amount), c.Secondary),
	}
}

// Amount formats v with en-US grouping, no fraction digits and a trailing
// currency code.
func Amount(v float64, code string) string {
	n := math.Round(v)
	if n == 0 {
		n = 0 // drop negative zero
	}
	s := printer.Sprintf("%.0f", n)
	if code == "" {
		return s
	}
	return s + " " + code
}

// String renders the pair as "base (secondary)".
func (p Pair) String() string {
	return p.Base + " (" + p.Secondary + ")"
}
