// Package budget is the pure trip-budget engine: it turns a TripConfig into
// a cost breakdown, revenue, profit and a stakeholder distribution.
// Nothing here performs I/O or keeps state between calls.
package budget

import "github.com/theirongolddev/tripbudget/internal/model"

// AllocateRooms applies the room rule: students share two to a room, an odd
// student gets a room of their own, and every mentor gets a room.
func AllocateRooms(g model.Group) model.Rooms {
	r := model.Rooms{
		StudentPairs:   g.Students / 2,
		StudentSingles: g.Students % 2,
		Mentor:         g.Mentors,
	}
	r.Total = r.StudentPairs + r.StudentSingles + r.Mentor
	return r
}

// HotelCost prices every allocated room at the lodging's pair price.
func HotelCost(g model.Group, l model.Lodging) (model.LineItem, model.Rooms) {
	rooms := AllocateRooms(g)
	studentRooms := rooms.StudentPairs + rooms.StudentSingles

	item := model.LineItem{
		Category:     model.CategoryHotel,
		StudentsCost: float64(studentRooms) * l.PairPrice,
		MentorsCost:  float64(rooms.Mentor) * l.PairPrice,
		Total:        float64(rooms.Total) * l.PairPrice,
	}
	if l.Name != "" {
		item.Items = []model.ItemCost{{Name: l.Name, Cost: item.Total}}
	}
	return item, rooms
}

// TransportCost charges the flat fee to every traveller when included.
func TransportCost(g model.Group, t model.Transport) model.LineItem {
	item := model.LineItem{Category: model.CategoryTransport}
	if !t.Included {
		return item
	}
	return perHead(item, g, t.PerPersonCost)
}

// BreakfastCost is the per-day breakfast for all travellers, waived when the
// lodging serves breakfast.
func BreakfastCost(g model.Group, m model.Meals, l model.Lodging, days int) model.LineItem {
	item := model.LineItem{Category: model.CategoryBreakfast}
	if l.IncludesBreakfast {
		return item
	}
	return perHead(item, g, m.BreakfastPerDay*float64(days))
}

// StudentMealCost is mealsPerDay x costPerMeal x days x students.
func StudentMealCost(g model.Group, m model.Meals, days int) model.LineItem {
	cost := cohortMeals(m.Students, days, g.Students)
	return model.LineItem{
		Category:     model.CategoryStudentMeals,
		Total:        cost,
		StudentsCost: cost,
	}
}

// MentorMealCost is mealsPerDay x costPerMeal x days x mentors.
func MentorMealCost(g model.Group, m model.Meals, days int) model.LineItem {
	cost := cohortMeals(m.Mentors, days, g.Mentors)
	return model.LineItem{
		Category:    model.CategoryMentorMeals,
		Total:       cost,
		MentorsCost: cost,
	}
}

func cohortMeals(c model.CohortMeals, days, people int) float64 {
	return float64(c.MealsPerDay) * c.CostPerMeal * float64(days) * float64(people)
}

// ActivitiesCost charges every enabled activity to every traveller.
func ActivitiesCost(g model.Group, activities []model.Activity) model.LineItem {
	item := model.LineItem{Category: model.CategoryActivities}
	people := float64(g.Total())
	for _, a := range activities {
		if !a.Enabled {
			continue
		}
		cost := a.PricePerPerson * people
		item.Items = append(item.Items, model.ItemCost{Name: a.Name, Cost: cost})
		item.Total += cost
		item.StudentsCost += a.PricePerPerson * float64(g.Students)
		item.MentorsCost += a.PricePerPerson * float64(g.Mentors)
	}
	return item
}

// FlightsCost charges each flight to mentors only.
func FlightsCost(g model.Group, flights []model.Flight) model.LineItem {
	item := model.LineItem{Category: model.CategoryFlights}
	for _, f := range flights {
		cost := f.PricePerMentor * float64(g.Mentors)
		item.Items = append(item.Items, model.ItemCost{Name: f.Name, Cost: cost})
		item.Total += cost
	}
	item.MentorsCost = item.Total
	return item
}

// Occurrences returns how many times an expense is charged over days.
func Occurrences(e model.CustomExpense, days int) int {
	switch e.Frequency {
	case model.FrequencyPerDay:
		return days
	case model.FrequencyCustom:
		return e.Count
	default:
		return 1
	}
}

// ExpensesCost charges amount x occurrences to every traveller.
func ExpensesCost(g model.Group, expenses []model.CustomExpense, days int) model.LineItem {
	item := model.LineItem{Category: model.CategoryExpenses}
	for _, e := range expenses {
		perPerson := e.Amount * float64(Occurrences(e, days))
		cost := perPerson * float64(g.Total())
		item.Items = append(item.Items, model.ItemCost{Name: e.Name, Cost: cost})
		item.Total += cost
		item.StudentsCost += perPerson * float64(g.Students)
		item.MentorsCost += perPerson * float64(g.Mentors)
	}
	return item
}

func perHead(item model.LineItem, g model.Group, perPerson float64) model.LineItem {
	item.StudentsCost = perPerson * float64(g.Students)
	item.MentorsCost = perPerson * float64(g.Mentors)
	item.Total = perPerson * float64(g.Total())
	return item
}

// AggregateCosts computes every category for cfg and sums the totals.
func AggregateCosts(cfg model.TripConfig) model.CostBreakdown {
	g := cfg.Group
	days := cfg.Trip.DurationDays()
	lodging, _ := cfg.Lodging()

	var c model.CostBreakdown
	c.Hotel, c.Rooms = HotelCost(g, lodging)
	c.Transport = TransportCost(g, cfg.Transport)
	c.Breakfast = BreakfastCost(g, cfg.Meals, lodging, days)
	c.StudentMeals = StudentMealCost(g, cfg.Meals, days)
	c.MentorMeals = MentorMealCost(g, cfg.Meals, days)
	c.Activities = ActivitiesCost(g, cfg.Activities)
	c.Flights = FlightsCost(g, cfg.Flights)
	c.Expenses = ExpensesCost(g, cfg.Expenses, days)

	for _, line := range c.Lines() {
		c.Total += line.Total
		c.StudentsTotal += line.StudentsCost
		c.MentorsTotal += line.MentorsCost
	}
	return c
}
