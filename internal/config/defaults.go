package config

import (
	"time"

	"github.com/theirongolddev/tripbudget/internal/model"
)

// DefaultRate is the HKD to KZT rate the default trip ships with.
const DefaultRate = 64.55

// DefaultTrip returns the Hong Kong study trip used on first run.
func DefaultTrip() model.TripConfig {
	return model.TripConfig{
		Name:  "Hong Kong study trip",
		Group: model.Group{Students: 24, Mentors: 2},
		Trip: model.Trip{
			Start:  time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC),
			End:    time.Date(2026, time.March, 29, 0, 0, 0, 0, time.UTC),
			Days:   9,
			Nights: 8,
		},
		SelectedLodging: "dorsett",
		Lodgings: []model.Lodging{
			{
				ID:        "beacon",
				Name:      "The BEACON",
				SoloPrice: 3876,
				PairPrice: 7752,
				URL:       "https://book-directonline.com/properties/TheBeaconDirect",
				Notes:     "Without breakfast",
			},
			{
				ID:                "dorsett",
				Name:              "Dorsett Mongkok",
				SoloPrice:         4451.5,
				PairPrice:         8903,
				IncludesBreakfast: true,
				IncludesTransfer:  true,
				URL:               "https://www.book-secure.com/index.php?s=results&property=cnhon27154",
				Notes:             "Breakfast and group airport transfer",
			},
		},
		// MTR pass 288 + Star Ferry 10
		Transport: model.Transport{Included: true, PerPersonCost: 298},
		Meals: model.Meals{
			Students:        model.CohortMeals{MealsPerDay: 0, CostPerMeal: 100},
			Mentors:         model.CohortMeals{MealsPerDay: 0, CostPerMeal: 100},
			BreakfastPerDay: 80,
		},
		Activities: []model.Activity{
			{ID: "victoria-peak", Name: "Victoria Peak (Peak Tram + Sky Terrace)", PricePerPerson: 182, Enabled: true,
				URL: "https://webstore.thepeak.com.hk/ticket-detail?id=860"},
			{ID: "victoria-harbour", Name: "Victoria Harbour (Star Ferry + Laser Show)", PricePerPerson: 280, Enabled: true,
				URL: "https://www.starferry.com.hk/en/wt-schedule"},
			{ID: "observation-wheel", Name: "Hong Kong Observation Wheel", PricePerPerson: 20, Enabled: true,
				URL: "https://hkow.hk/#ticketshkow", Notes: "320 HKD with two private cabins"},
			{ID: "ifc-rooftop", Name: "IFC Rooftop Garden", PricePerPerson: 10, Enabled: true},
			{ID: "lantau-island", Name: "Lantau Island (Ngong Ping 360 + Big Buddha)", PricePerPerson: 365, Enabled: true,
				URL: "https://webstore.np360.com.hk/en/p/cable-car-ticket", Notes: "Crystal Cabin round route"},
			{ID: "disneyland", Name: "Disneyland + Dinner", PricePerPerson: 752, Enabled: true,
				URL: "https://www.hongkongdisneyland.com/book/general-tickets"},
		},
		Flights: []model.Flight{
			{ID: "outbound", Name: "Astana -> Hong Kong", Route: "TSE -> HKG", Date: "2026-03-20", Time: "10:00", Notes: "Mentors only"},
			{ID: "return", Name: "Hong Kong -> Astana", Route: "HKG -> TSE", Date: "2026-03-29", Time: "18:00", Notes: "Mentors only"},
		},
		Financial: model.Financial{PricePerStudent: 0, RevenueTaxPercent: 0},
		Stakeholders: []model.Stakeholder{
			{Name: "Partner 1", Percent: 25},
			{Name: "Partner 2", Percent: 25},
			{Name: "Partner 3", Percent: 25},
			{Name: "Partner 4", Percent: 25},
		},
		Currency: model.Currency{Base: "HKD", Secondary: "KZT", Rate: DefaultRate},
	}
}
