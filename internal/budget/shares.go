package budget

import (
	"math"

	"github.com/theirongolddev/tripbudget/internal/model"
)

// shareTolerance is how far the share sum may drift from 100 and still count
// as valid.
const shareTolerance = 1e-9

// ShareSum adds up every stakeholder percentage.
func ShareSum(shares []model.Stakeholder) float64 {
	var sum float64
	for _, s := range shares {
		sum += s.Percent
	}
	return sum
}

// SharesValid reports whether the percentages add up to 100.
func SharesValid(shares []model.Stakeholder) bool {
	return math.Abs(ShareSum(shares)-100) <= shareTolerance
}

// EqualShares splits 100% evenly across names with no share tax.
func EqualShares(names ...string) []model.Stakeholder {
	if len(names) == 0 {
		return nil
	}
	pct := 100 / float64(len(names))
	out := make([]model.Stakeholder, len(names))
	for i, n := range names {
		out[i] = model.Stakeholder{Name: n, Percent: pct}
	}
	return out
}

// NormalizeLastShare returns a copy of shares where the last stakeholder takes
// whatever the others leave of 100%. When the others already exceed 100 the
// copy is returned unchanged so the caller can flag it.
func NormalizeLastShare(shares []model.Stakeholder) []model.Stakeholder {
	out := make([]model.Stakeholder, len(shares))
	copy(out, shares)
	if len(out) == 0 {
		return out
	}

	others := ShareSum(out[:len(out)-1])
	if others <= 100 {
		out[len(out)-1].Percent = 100 - others
	}
	return out
}

// Distribute splits grossProfit by percentage and applies each stakeholder's
// own tax. Losses are split the same way; nothing is clamped or rescaled.
func Distribute(grossProfit float64, shares []model.Stakeholder) model.Distribution {
	d := model.Distribution{
		Shares:      make([]model.ShareResult, 0, len(shares)),
		ShareSum:    ShareSum(shares),
		SharesValid: SharesValid(shares),
	}

	for _, s := range shares {
		amount := grossProfit * s.Percent / 100
		tax := amount * s.TaxPercent / 100
		d.Shares = append(d.Shares, model.ShareResult{
			Name:        s.Name,
			Percent:     s.Percent,
			TaxPercent:  s.TaxPercent,
			ShareAmount: amount,
			TaxOnShare:  tax,
			NetAmount:   amount - tax,
		})
		d.TotalTaxOnShares += tax
	}

	d.NetProfit = grossProfit - d.TotalTaxOnShares
	return d
}
