package budget

import (
	"math"

	"github.com/theirongolddev/tripbudget/internal/model"
)

// Compute runs the whole engine over cfg. Identical inputs always give
// identical output.
func Compute(cfg model.TripConfig) model.BudgetResult {
	costs := AggregateCosts(cfg)
	revenue := ComputeRevenue(cfg.Group, cfg.Financial)
	gross := revenue.AfterTax - costs.Total
	dist := Distribute(gross, cfg.Stakeholders)

	students := cfg.Group.Students
	return model.BudgetResult{
		Costs:        costs,
		TotalCost:    costs.Total,
		Revenue:      revenue,
		GrossProfit:  gross,
		Distribution: dist,
		NetProfit:    dist.NetProfit,

		CostPerStudent:       perStudent(costs.Total, students),
		MarginPercent:        MarginPercent(gross, revenue.Total),
		MarginPerStudent:     perStudent(gross, students),
		BreakEvenPrice:       BreakEvenPrice(costs.Total, students),
		MentorCostPerStudent: perStudent(costs.MentorsTotal, students),
	}
}

// MarginPercent is gross profit as a percentage of revenue, 0 without revenue.
func MarginPercent(grossProfit, revenue float64) float64 {
	if revenue <= 0 {
		return 0
	}
	return grossProfit / revenue * 100
}

// BreakEvenPrice is the smallest whole price per student covering totalCost.
func BreakEvenPrice(totalCost float64, students int) float64 {
	if students <= 0 {
		return 0
	}
	return math.Ceil(totalCost / float64(students))
}

func perStudent(amount float64, students int) float64 {
	if students <= 0 {
		return 0
	}
	return amount / float64(students)
}
