package budget

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/tripbudget/internal/model"
)

// hongKongTrip is 24 students and 2 mentors at a breakfast-included hotel.
func hongKongTrip() model.TripConfig {
	return model.TripConfig{
		Group:           model.Group{Students: 24, Mentors: 2},
		Trip:            model.Trip{Days: 9, Nights: 8},
		SelectedLodging: "dorsett",
		Lodgings: []model.Lodging{
			{ID: "beacon", Name: "The BEACON", SoloPrice: 3876, PairPrice: 7752},
			{ID: "dorsett", Name: "Dorsett Mongkok", SoloPrice: 4451.5, PairPrice: 8903, IncludesBreakfast: true, IncludesTransfer: true},
		},
		Transport: model.Transport{Included: true, PerPersonCost: 298},
		Meals:     model.Meals{BreakfastPerDay: 120},
		Activities: []model.Activity{
			{ID: "peak", Name: "Victoria Peak", PricePerPerson: 182, Enabled: true},
			{ID: "harbour", Name: "Star Ferry", PricePerPerson: 280, Enabled: true},
			{ID: "wheel", Name: "Observation Wheel", PricePerPerson: 30, Enabled: true},
			{ID: "lantau", Name: "Ngong Ping 360", PricePerPerson: 365, Enabled: true},
			{ID: "disney", Name: "Disneyland", PricePerPerson: 752, Enabled: true},
			{ID: "museum", Name: "Museum", PricePerPerson: 90, Enabled: false},
		},
		Flights: []model.Flight{{ID: "out", Name: "TSE -> HKG", PricePerMentor: 0}},
		Financial: model.Financial{PricePerStudent: 0, RevenueTaxPercent: 0},
	}
}

func TestComputeLossWithoutRevenue(t *testing.T) {
	res := Compute(hongKongTrip())

	assert.Equal(t, 14, res.Costs.Rooms.Total)
	assert.Equal(t, 124642.0, res.Costs.Hotel.Total)
	assert.Equal(t, 7748.0, res.Costs.Transport.Total)
	assert.Equal(t, 0.0, res.Costs.Breakfast.Total)
	assert.Equal(t, 41834.0, res.Costs.Activities.Total)
	assert.Equal(t, 0.0, res.Costs.Flights.Total)
	assert.Equal(t, 174224.0, res.TotalCost)
	assert.Equal(t, 0.0, res.Revenue.Total)
	assert.Equal(t, -174224.0, res.GrossProfit)
	assert.Equal(t, 0.0, res.MarginPercent)
}

func TestComputeEqualSplitProfit(t *testing.T) {
	cfg := hongKongTrip()
	cfg.Financial.PricePerStudent = 8000
	cfg.Stakeholders = EqualShares("Aigerim", "Daniyar", "Madina", "Timur")

	res := Compute(cfg)

	assert.Equal(t, 192000.0, res.Revenue.Total)
	assert.Equal(t, 17776.0, res.GrossProfit)
	require.Len(t, res.Distribution.Shares, 4)
	for _, s := range res.Distribution.Shares {
		assert.InDelta(t, 4444.0, s.ShareAmount, 1e-9, s.Name)
		assert.Equal(t, 0.0, s.TaxOnShare)
	}
	assert.True(t, res.Distribution.SharesValid)
	assert.InDelta(t, 17776.0, res.NetProfit, 1e-9)
}

func TestComputeWithoutStudents(t *testing.T) {
	cfg := hongKongTrip()
	cfg.Group = model.Group{Students: 0, Mentors: 2}

	res := Compute(cfg)

	assert.Equal(t, 2, res.Costs.Rooms.Total)
	assert.Equal(t, 0.0, res.CostPerStudent)
	assert.Equal(t, 0.0, res.BreakEvenPrice)
	assert.Equal(t, 0.0, res.MarginPerStudent)
	assert.Equal(t, 0.0, res.MentorCostPerStudent)
	assert.False(t, math.IsNaN(res.MarginPercent) || math.IsInf(res.MarginPercent, 0))
}

func TestPerDayExpenseChargesEveryTraveller(t *testing.T) {
	g := model.Group{Students: 24, Mentors: 2}
	item := ExpensesCost(g, []model.CustomExpense{
		{ID: "sim", Name: "SIM + data", Amount: 50, Frequency: model.FrequencyPerDay},
	}, 9)

	assert.Equal(t, 11700.0, item.Total)
	assert.Equal(t, 10800.0, item.StudentsCost)
	assert.Equal(t, 900.0, item.MentorsCost)
}

func TestOccurrences(t *testing.T) {
	tests := []struct {
		name string
		exp  model.CustomExpense
		want int
	}{
		{"once", model.CustomExpense{Frequency: model.FrequencyOnce, Count: 7}, 1},
		{"empty frequency is once", model.CustomExpense{}, 1},
		{"per day", model.CustomExpense{Frequency: model.FrequencyPerDay}, 9},
		{"custom", model.CustomExpense{Frequency: model.FrequencyCustom, Count: 3}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Occurrences(tt.exp, 9))
		})
	}
}

func TestRoomAllocation(t *testing.T) {
	lodging := model.Lodging{PairPrice: 8903}
	for s := 0; s <= 41; s++ {
		for m := 0; m <= 5; m++ {
			g := model.Group{Students: s, Mentors: m}
			item, rooms := HotelCost(g, lodging)

			want := s/2 + s%2 + m
			require.Equal(t, want, rooms.Total, "students=%d mentors=%d", s, m)
			require.Equal(t, float64(want)*8903, item.Total, "students=%d mentors=%d", s, m)
			// every student sits in exactly one room slot
			require.Equal(t, s, rooms.StudentPairs*2+rooms.StudentSingles)
			require.InDelta(t, item.Total, item.StudentsCost+item.MentorsCost, 1e-9)
		}
	}
}

func TestRevenueIgnoresMentors(t *testing.T) {
	f := model.Financial{PricePerStudent: 8000, RevenueTaxPercent: 12}
	base := ComputeRevenue(model.Group{Students: 24, Mentors: 0}, f)
	for m := 1; m <= 10; m++ {
		r := ComputeRevenue(model.Group{Students: 24, Mentors: m}, f)
		assert.Equal(t, base, r, "mentors=%d", m)
	}
	assert.Equal(t, 192000.0, base.Total)
	assert.InDelta(t, 23040.0, base.Tax, 1e-9)
	assert.InDelta(t, 168960.0, base.AfterTax, 1e-9)
}

func TestRevenueTaxNotClamped(t *testing.T) {
	r := ComputeRevenue(model.Group{Students: 10}, model.Financial{PricePerStudent: 100, RevenueTaxPercent: 150})
	assert.InDelta(t, 1500.0, r.Tax, 1e-9)
	assert.InDelta(t, -500.0, r.AfterTax, 1e-9)
}

func TestDistributionConservation(t *testing.T) {
	shareSets := [][]model.Stakeholder{
		EqualShares("a", "b", "c", "d"),
		EqualShares("a", "b", "c"),
		{
			{Name: "school", Percent: 40, TaxPercent: 10},
			{Name: "guide", Percent: 35, TaxPercent: 3},
			{Name: "agent", Percent: 25, TaxPercent: 22.5},
		},
		{
			{Name: "solo", Percent: 100, TaxPercent: 33.3},
		},
	}
	grossValues := []float64{17776, -174224, 0.01, 1e7, -3.5}

	for _, shares := range shareSets {
		for _, gross := range grossValues {
			d := Distribute(gross, shares)
			require.True(t, d.SharesValid)

			var sumNet float64
			for _, s := range d.Shares {
				sumNet += s.NetAmount
			}
			tol := 1e-9 * math.Max(1, math.Abs(d.NetProfit))
			require.InDelta(t, d.NetProfit, sumNet, tol, "gross=%v shares=%v", gross, shares)
			require.InDelta(t, gross-d.TotalTaxOnShares, d.NetProfit, tol)
		}
	}
}

func TestDistributeLossPropagates(t *testing.T) {
	d := Distribute(-1000, []model.Stakeholder{
		{Name: "a", Percent: 50, TaxPercent: 10},
		{Name: "b", Percent: 50},
	})
	assert.Equal(t, -500.0, d.Shares[0].ShareAmount)
	assert.Equal(t, -50.0, d.Shares[0].TaxOnShare)
	assert.Equal(t, -450.0, d.Shares[0].NetAmount)
	assert.Equal(t, -950.0, d.NetProfit)
}

func TestDistributeInvalidSumIsNotNormalized(t *testing.T) {
	d := Distribute(1000, []model.Stakeholder{
		{Name: "a", Percent: 60},
		{Name: "b", Percent: 60},
	})
	assert.False(t, d.SharesValid)
	assert.Equal(t, 120.0, d.ShareSum)
	assert.Equal(t, 600.0, d.Shares[1].ShareAmount)
}

func TestNormalizeLastShare(t *testing.T) {
	in := []model.Stakeholder{
		{Name: "a", Percent: 30},
		{Name: "b", Percent: 45},
		{Name: "c", Percent: 5},
	}
	out := NormalizeLastShare(in)

	assert.Equal(t, 25.0, out[2].Percent)
	assert.Equal(t, 5.0, in[2].Percent, "input must not be mutated")
	assert.True(t, SharesValid(out))

	over := []model.Stakeholder{
		{Name: "a", Percent: 70},
		{Name: "b", Percent: 40},
		{Name: "c", Percent: 10},
	}
	assert.Equal(t, over, NormalizeLastShare(over))

	assert.Empty(t, NormalizeLastShare(nil))
	assert.Equal(t, 100.0, NormalizeLastShare([]model.Stakeholder{{Name: "only", Percent: 3}})[0].Percent)
}

func TestBreakfastSuppressedWhenIncluded(t *testing.T) {
	g := model.Group{Students: 24, Mentors: 2}
	for _, price := range []float64{0, 1, 120, 1000, 99999} {
		m := model.Meals{BreakfastPerDay: price}
		item := BreakfastCost(g, m, model.Lodging{IncludesBreakfast: true}, 9)
		require.Equal(t, 0.0, item.Total, "price=%v", price)
	}

	item := BreakfastCost(g, model.Meals{BreakfastPerDay: 100}, model.Lodging{}, 9)
	assert.Equal(t, 100.0*9*26, item.Total)
}

func TestCohortMealsAreIndependent(t *testing.T) {
	cfg := hongKongTrip()
	cfg.Meals = model.Meals{
		Students: model.CohortMeals{MealsPerDay: 2, CostPerMeal: 80},
		Mentors:  model.CohortMeals{MealsPerDay: 3, CostPerMeal: 150},
	}
	c := AggregateCosts(cfg)

	assert.Equal(t, 2.0*80*9*24, c.StudentMeals.Total)
	assert.Equal(t, c.StudentMeals.Total, c.StudentMeals.StudentsCost)
	assert.Equal(t, 3.0*150*9*2, c.MentorMeals.Total)
	assert.Equal(t, c.MentorMeals.Total, c.MentorMeals.MentorsCost)
}

func TestFlightsChargedToMentorsOnly(t *testing.T) {
	item := FlightsCost(model.Group{Students: 24, Mentors: 2}, []model.Flight{
		{Name: "out", PricePerMentor: 2100},
		{Name: "back", PricePerMentor: 1900},
	})
	assert.Equal(t, 8000.0, item.Total)
	assert.Equal(t, 0.0, item.StudentsCost)
	assert.Equal(t, 8000.0, item.MentorsCost)
	require.Len(t, item.Items, 2)
}

func TestTransportExcluded(t *testing.T) {
	item := TransportCost(model.Group{Students: 5, Mentors: 1}, model.Transport{Included: false, PerPersonCost: 298})
	assert.Equal(t, 0.0, item.Total)
}

func TestCohortSplitSumsToTotal(t *testing.T) {
	cfg := hongKongTrip()
	cfg.Group = model.Group{Students: 23, Mentors: 3}
	cfg.SelectedLodging = "beacon"
	cfg.Meals = model.Meals{
		Students:        model.CohortMeals{MealsPerDay: 2, CostPerMeal: 75},
		Mentors:         model.CohortMeals{MealsPerDay: 2, CostPerMeal: 90},
		BreakfastPerDay: 60,
	}
	cfg.Flights = []model.Flight{{Name: "out", PricePerMentor: 2500}}
	cfg.Expenses = []model.CustomExpense{{Name: "tips", Amount: 40, Frequency: model.FrequencyCustom, Count: 4}}

	c := AggregateCosts(cfg)
	for _, line := range c.Lines() {
		assert.InDelta(t, line.Total, line.StudentsCost+line.MentorsCost, 1e-6, line.Category)
	}
	assert.InDelta(t, c.Total, c.StudentsTotal+c.MentorsTotal, 1e-6)
}

func TestDerivedMetrics(t *testing.T) {
	cfg := hongKongTrip()
	cfg.Financial.PricePerStudent = 8000
	res := Compute(cfg)

	assert.InDelta(t, 174224.0/24, res.CostPerStudent, 1e-9)
	assert.Equal(t, math.Ceil(174224.0/24), res.BreakEvenPrice)
	assert.InDelta(t, 17776.0/192000*100, res.MarginPercent, 1e-9)
	assert.InDelta(t, 17776.0/24, res.MarginPerStudent, 1e-9)
}

func TestComputeIsDeterministic(t *testing.T) {
	cfg := hongKongTrip()
	cfg.Financial = model.Financial{PricePerStudent: 7321.37, RevenueTaxPercent: 3}
	cfg.Stakeholders = []model.Stakeholder{{Name: "a", Percent: 33.3, TaxPercent: 10}, {Name: "b", Percent: 66.7, TaxPercent: 5}}

	assert.Equal(t, Compute(cfg), Compute(cfg))
}

func TestComputeWithoutLodging(t *testing.T) {
	cfg := hongKongTrip()
	cfg.Lodgings = nil
	res := Compute(cfg)
	assert.Equal(t, 0.0, res.Costs.Hotel.Total)
	assert.Equal(t, 14, res.Costs.Rooms.Total)
}
