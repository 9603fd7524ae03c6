package budget

import "github.com/theirongolddev/tripbudget/internal/model"

// ComputeRevenue bills students only and layers the revenue tax on top.
// Tax percentages outside 0..100 are applied as given.
func ComputeRevenue(g model.Group, f model.Financial) model.Revenue {
	total := float64(g.Students) * f.PricePerStudent
	tax := total * f.RevenueTaxPercent / 100
	return model.Revenue{
		Total:    total,
		Tax:      tax,
		AfterTax: total - tax,
	}
}
