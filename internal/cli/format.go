// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/theirongolddev/tripbudget/internal/currency"
)

// FormatMoney formats an amount with grouping and the currency code,
// e.g. 174224 -> "174,224 HKD".
func FormatMoney(amount float64, code string) string {
	return currency.Amount(amount, code)
}

// FormatMoneyPair formats amount in base with the secondary currency in
// parentheses. Without a usable rate only the base amount is shown.
func FormatMoneyPair(amount float64, conv currency.Converter) string {
	if conv.Rate <= 0 || conv.Secondary == "" {
		return FormatMoney(amount, conv.Base)
	}
	return conv.Format(amount).String()
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a value already expressed in percent.
// Whole numbers drop the fraction: 25 -> "25%", 33.333 -> "33.3%".
func FormatPercent(pct float64) string {
	if pct == math.Trunc(pct) {
		return fmt.Sprintf("%.0f%%", pct)
	}
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatDelta formats the change between two amounts with an explicit sign.
func FormatDelta(current, previous float64, code string) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatMoney(delta, code)
	}
	return FormatMoney(delta, code)
}

// FormatDateRange renders a trip window as "2006-01-02 .. 2006-01-02 (9d/8n)".
func FormatDateRange(start, end string, days, nights int) string {
	if start == "" && end == "" {
		return fmt.Sprintf("%dd/%dn", days, nights)
	}
	return fmt.Sprintf("%s .. %s (%dd/%dn)", start, end, days, nights)
}
