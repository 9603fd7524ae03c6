package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/theirongolddev/tripbudget/internal/model"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadTrip reads a trip file. A missing file yields DefaultTrip so a fresh
// install has something to compute.
func LoadTrip(path string) (model.TripConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultTrip(), nil
		}
		return model.TripConfig{}, fmt.Errorf("reading trip file: %w", err)
	}

	var trip model.TripConfig
	if err := toml.Unmarshal(data, &trip); err != nil {
		return model.TripConfig{}, fmt.Errorf("parsing trip file: %w", err)
	}
	return trip, nil
}

// SaveTrip writes trip to path with owner-only permissions.
func SaveTrip(path string, trip model.TripConfig) error {
	return writeTOML(path, trip)
}

// Validate checks trip against its field constraints and reports every
// violation by field path.
func Validate(trip model.TripConfig) error {
	if err := validate.Struct(trip); err != nil {
		return fieldErrors(err)
	}
	return nil
}

// Sanitize clamps counts and amounts that must not be negative to 0 and
// zeroes any NaN or infinite float a TOML file can carry. Finite
// percentages are passed through untouched. The engine assumes sane inputs,
// so callers run this before computing.
func Sanitize(trip model.TripConfig) model.TripConfig {
	trip.Group.Students = max(trip.Group.Students, 0)
	trip.Group.Mentors = max(trip.Group.Mentors, 0)
	trip.Trip.Days = max(trip.Trip.Days, 0)
	trip.Trip.Nights = max(trip.Trip.Nights, 0)
	trip.Transport.PerPersonCost = nonNeg(trip.Transport.PerPersonCost)
	trip.Meals.BreakfastPerDay = nonNeg(trip.Meals.BreakfastPerDay)
	trip.Meals.Students = sanitizeMeals(trip.Meals.Students)
	trip.Meals.Mentors = sanitizeMeals(trip.Meals.Mentors)
	trip.Financial.PricePerStudent = nonNeg(trip.Financial.PricePerStudent)
	trip.Financial.RevenueTaxPercent = finite(trip.Financial.RevenueTaxPercent)
	trip.Currency.Rate = nonNeg(trip.Currency.Rate)

	trip.Lodgings = cloneEach(trip.Lodgings, func(l model.Lodging) model.Lodging {
		l.SoloPrice = nonNeg(l.SoloPrice)
		l.PairPrice = nonNeg(l.PairPrice)
		return l
	})
	trip.Activities = cloneEach(trip.Activities, func(a model.Activity) model.Activity {
		a.PricePerPerson = nonNeg(a.PricePerPerson)
		return a
	})
	trip.Flights = cloneEach(trip.Flights, func(f model.Flight) model.Flight {
		f.PricePerMentor = nonNeg(f.PricePerMentor)
		return f
	})
	trip.Expenses = cloneEach(trip.Expenses, func(e model.CustomExpense) model.CustomExpense {
		e.Amount = nonNeg(e.Amount)
		e.Count = max(e.Count, 0)
		return e
	})
	trip.Stakeholders = cloneEach(trip.Stakeholders, func(s model.Stakeholder) model.Stakeholder {
		s.Percent = finite(s.Percent)
		s.TaxPercent = finite(s.TaxPercent)
		return s
	})
	return trip
}

func sanitizeMeals(c model.CohortMeals) model.CohortMeals {
	c.MealsPerDay = max(c.MealsPerDay, 0)
	c.CostPerMeal = nonNeg(c.CostPerMeal)
	return c
}

// nonNeg maps negative and non-finite values to 0. Go's max propagates NaN,
// so it cannot be used for floats read from TOML.
func nonNeg(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func cloneEach[T any](in []T, fn func(T) T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}

func fieldErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		msg := fmt.Sprintf("%s: must satisfy %s", field, fe.Tag())
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		msgs = append(msgs, errors.New(msg))
	}
	return errors.Join(msgs...)
}
