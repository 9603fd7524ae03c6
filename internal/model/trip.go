// Package model defines the trip configuration and budget result types.
package model

import "time"

// Group is the travelling party. Students pay; mentors travel on student revenue.
type Group struct {
	Students int `toml:"students" json:"students" yaml:"students" validate:"gte=0"`
	Mentors  int `toml:"mentors" json:"mentors" yaml:"mentors" validate:"gte=0"`
}

// Total returns the number of travellers across both cohorts.
func (g Group) Total() int {
	return g.Students + g.Mentors
}

// Trip holds the travel window. Days drives every per-day charge.
type Trip struct {
	Start  time.Time `toml:"start,omitempty" json:"start,omitempty" yaml:"start,omitempty"`
	End    time.Time `toml:"end,omitempty" json:"end,omitempty" yaml:"end,omitempty"`
	Days   int       `toml:"days" json:"days" yaml:"days" validate:"gte=0"`
	Nights int       `toml:"nights" json:"nights" yaml:"nights" validate:"gte=0"`
}

// DurationDays returns Days when set, otherwise the inclusive day count
// between Start and End. A trip with no usable dates lasts 0 days.
func (t Trip) DurationDays() int {
	if t.Days > 0 {
		return t.Days
	}
	if t.Start.IsZero() || t.End.IsZero() || t.End.Before(t.Start) {
		return 0
	}
	return int(calendarDay(t.End).Sub(calendarDay(t.Start)).Hours()/24) + 1
}

// calendarDay drops the clock and zone so a DST shift between two dates
// cannot shave an hour off the gap.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DurationNights returns Nights when set, otherwise one less than the day count.
func (t Trip) DurationNights() int {
	if t.Nights > 0 {
		return t.Nights
	}
	if d := t.DurationDays(); d > 1 {
		return d - 1
	}
	return 0
}

// Lodging is one selectable accommodation. Prices cover the whole stay.
type Lodging struct {
	ID                string  `toml:"id" json:"id" yaml:"id"`
	Name              string  `toml:"name" json:"name" yaml:"name"`
	SoloPrice         float64 `toml:"solo_price" json:"solo_price" yaml:"solo_price" validate:"gte=0"`
	PairPrice         float64 `toml:"pair_price" json:"pair_price" yaml:"pair_price" validate:"gte=0"`
	IncludesBreakfast bool    `toml:"includes_breakfast" json:"includes_breakfast" yaml:"includes_breakfast"`
	IncludesTransfer  bool    `toml:"includes_transfer" json:"includes_transfer" yaml:"includes_transfer"`
	URL               string  `toml:"url,omitempty" json:"url,omitempty" yaml:"url,omitempty"`
	Notes             string  `toml:"notes,omitempty" json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Key implements catalog.Keyed.
func (l Lodging) Key() string { return l.ID }

// WithKey implements catalog.Keyed.
func (l Lodging) WithKey(id string) Lodging { l.ID = id; return l }

// Transport is a flat opt-in fee charged per traveller.
type Transport struct {
	Included      bool    `toml:"included" json:"included" yaml:"included"`
	PerPersonCost float64 `toml:"per_person_cost" json:"per_person_cost" yaml:"per_person_cost" validate:"gte=0"`
}

// CohortMeals configures meals for one cohort.
type CohortMeals struct {
	MealsPerDay int     `toml:"meals_per_day" json:"meals_per_day" yaml:"meals_per_day" validate:"gte=0"`
	CostPerMeal float64 `toml:"cost_per_meal" json:"cost_per_meal" yaml:"cost_per_meal" validate:"gte=0"`
}

// Meals holds independent student and mentor knobs plus a breakfast line
// charged to every traveller per day. Breakfast is waived when the selected
// lodging includes it.
type Meals struct {
	Students        CohortMeals `toml:"students" json:"students" yaml:"students"`
	Mentors         CohortMeals `toml:"mentors" json:"mentors" yaml:"mentors"`
	BreakfastPerDay float64     `toml:"breakfast_per_day" json:"breakfast_per_day" yaml:"breakfast_per_day" validate:"gte=0"`
}

// Activity is charged to every traveller while enabled.
type Activity struct {
	ID             string  `toml:"id" json:"id" yaml:"id"`
	Name           string  `toml:"name" json:"name" yaml:"name"`
	PricePerPerson float64 `toml:"price_per_person" json:"price_per_person" yaml:"price_per_person" validate:"gte=0"`
	Enabled        bool    `toml:"enabled" json:"enabled" yaml:"enabled"`
	URL            string  `toml:"url,omitempty" json:"url,omitempty" yaml:"url,omitempty"`
	Notes          string  `toml:"notes,omitempty" json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Key implements catalog.Keyed.
func (a Activity) Key() string { return a.ID }

// WithKey implements catalog.Keyed.
func (a Activity) WithKey(id string) Activity { a.ID = id; return a }

// IsEnabled implements catalog.Toggler.
func (a Activity) IsEnabled() bool { return a.Enabled }

// WithEnabled implements catalog.Toggler.
func (a Activity) WithEnabled(on bool) Activity { a.Enabled = on; return a }

// Flight is paid for mentors only.
type Flight struct {
	ID             string  `toml:"id" json:"id" yaml:"id"`
	Name           string  `toml:"name" json:"name" yaml:"name"`
	Route          string  `toml:"route,omitempty" json:"route,omitempty" yaml:"route,omitempty"`
	Date           string  `toml:"date,omitempty" json:"date,omitempty" yaml:"date,omitempty"`
	Time           string  `toml:"time,omitempty" json:"time,omitempty" yaml:"time,omitempty"`
	PricePerMentor float64 `toml:"price_per_mentor" json:"price_per_mentor" yaml:"price_per_mentor" validate:"gte=0"`
	Notes          string  `toml:"notes,omitempty" json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Key implements catalog.Keyed.
func (f Flight) Key() string { return f.ID }

// WithKey implements catalog.Keyed.
func (f Flight) WithKey(id string) Flight { f.ID = id; return f }

// Frequency says how often a custom expense recurs over the trip.
type Frequency string

// Supported frequencies.
const (
	FrequencyOnce   Frequency = "once"
	FrequencyPerDay Frequency = "per_day"
	FrequencyCustom Frequency = "custom"
)

// CustomExpense is an ad-hoc per-person charge.
type CustomExpense struct {
	ID        string    `toml:"id" json:"id" yaml:"id"`
	Name      string    `toml:"name" json:"name" yaml:"name"`
	Amount    float64   `toml:"amount" json:"amount" yaml:"amount" validate:"gte=0"`
	Frequency Frequency `toml:"frequency" json:"frequency" yaml:"frequency" validate:"omitempty,oneof=once per_day custom"`
	Count     int       `toml:"count,omitempty" json:"count,omitempty" yaml:"count,omitempty" validate:"gte=0"`
}

// Key implements catalog.Keyed.
func (e CustomExpense) Key() string { return e.ID }

// WithKey implements catalog.Keyed.
func (e CustomExpense) WithKey(id string) CustomExpense { e.ID = id; return e }

// Financial holds pricing and the revenue tax.
type Financial struct {
	PricePerStudent   float64 `toml:"price_per_student" json:"price_per_student" yaml:"price_per_student" validate:"gte=0"`
	RevenueTaxPercent float64 `toml:"revenue_tax_percent" json:"revenue_tax_percent" yaml:"revenue_tax_percent"`
}

// Stakeholder is one party entitled to a share of gross profit.
type Stakeholder struct {
	Name       string  `toml:"name" json:"name" yaml:"name"`
	Percent    float64 `toml:"percent" json:"percent" yaml:"percent"`
	TaxPercent float64 `toml:"tax_percent" json:"tax_percent" yaml:"tax_percent" validate:"gte=0,lte=100"`
}

// Currency pairs the base currency with a display currency.
type Currency struct {
	Base      string  `toml:"base" json:"base" yaml:"base"`
	Secondary string  `toml:"secondary" json:"secondary" yaml:"secondary"`
	Rate      float64 `toml:"rate" json:"rate" yaml:"rate" validate:"gt=0"`
}

// TripConfig is the full input to the budget engine. It is treated as an
// immutable value: edits produce a new TripConfig.
type TripConfig struct {
	Name            string          `toml:"name" json:"name" yaml:"name"`
	Group           Group           `toml:"group" json:"group" yaml:"group"`
	Trip            Trip            `toml:"trip" json:"trip" yaml:"trip"`
	SelectedLodging string          `toml:"selected_lodging" json:"selected_lodging" yaml:"selected_lodging"`
	Lodgings        []Lodging       `toml:"lodgings" json:"lodgings" yaml:"lodgings" validate:"dive"`
	Transport       Transport       `toml:"transport" json:"transport" yaml:"transport"`
	Meals           Meals           `toml:"meals" json:"meals" yaml:"meals"`
	Activities      []Activity      `toml:"activities" json:"activities" yaml:"activities" validate:"dive"`
	Flights         []Flight        `toml:"flights" json:"flights" yaml:"flights" validate:"dive"`
	Expenses        []CustomExpense `toml:"expenses" json:"expenses" yaml:"expenses" validate:"dive"`
	Financial       Financial       `toml:"financial" json:"financial" yaml:"financial"`
	Stakeholders    []Stakeholder   `toml:"stakeholders" json:"stakeholders" yaml:"stakeholders" validate:"dive"`
	Currency        Currency        `toml:"currency" json:"currency" yaml:"currency"`
}

// Lodging returns the selected lodging, falling back to the first one.
// ok is false when there are no lodgings at all.
func (c TripConfig) Lodging() (Lodging, bool) {
	for _, l := range c.Lodgings {
		if l.ID == c.SelectedLodging {
			return l, true
		}
	}
	if len(c.Lodgings) > 0 {
		return c.Lodgings[0], true
	}
	return Lodging{}, false
}
