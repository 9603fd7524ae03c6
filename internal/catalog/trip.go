package catalog

import (
	"fmt"

	"github.com/theirongolddev/tripbudget/internal/model"
)

// Trip wraps a TripConfig with one collection per editable list. Edits go
// through the collections; Config assembles a new TripConfig value.
type Trip struct {
	base     model.TripConfig
	selected string

	Lodgings   *Collection[model.Lodging]
	Activities *Collection[model.Activity]
	Flights    *Collection[model.Flight]
	Expenses   *Collection[model.CustomExpense]
}

// FromConfig copies cfg's lists into collections.
func FromConfig(cfg model.TripConfig) *Trip {
	t := &Trip{
		base:       cfg,
		selected:   cfg.SelectedLodging,
		Lodgings:   New(cfg.Lodgings...),
		Activities: New(cfg.Activities...),
		Flights:    New(cfg.Flights...),
		Expenses:   New(cfg.Expenses...),
	}
	if _, ok := t.Lodgings.Get(t.selected); !ok {
		if first, ok := t.Lodgings.First(); ok {
			t.selected = first.ID
		}
	}
	return t
}

// Config returns a new TripConfig reflecting every edit so far.
func (t *Trip) Config() model.TripConfig {
	cfg := t.base
	cfg.SelectedLodging = t.selected
	cfg.Lodgings = t.Lodgings.Items()
	cfg.Activities = t.Activities.Items()
	cfg.Flights = t.Flights.Items()
	cfg.Expenses = t.Expenses.Items()
	return cfg
}

// Selected returns the id of the selected lodging.
func (t *Trip) Selected() string {
	return t.selected
}

// SelectLodging makes id the active lodging.
func (t *Trip) SelectLodging(id string) error {
	if _, ok := t.Lodgings.Get(id); !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	t.selected = id
	return nil
}

// AddLodging appends a lodging and selects it when it is the only one.
func (t *Trip) AddLodging(l model.Lodging) (model.Lodging, error) {
	l, err := t.Lodgings.Add(l)
	if err != nil {
		return l, err
	}
	if t.Lodgings.Len() == 1 {
		t.selected = l.ID
	}
	return l, nil
}

// RemoveLodging deletes a lodging. The last lodging can never be removed;
// removing the selected one falls back to the first remaining lodging.
func (t *Trip) RemoveLodging(id string) error {
	if err := t.Lodgings.DeleteKeeping(id, 1); err != nil {
		return err
	}
	if t.selected == id {
		first, _ := t.Lodgings.First()
		t.selected = first.ID
	}
	return nil
}

// ToggleActivity flips an activity on or off.
func (t *Trip) ToggleActivity(id string) (model.Activity, error) {
	return Toggle(t.Activities, id)
}

// Edit applies fn to the scalar parts of the trip: group, dates, transport,
// meals, financial policy, stakeholders and currency. Lists are owned by the
// collections, so changes fn makes to them are discarded.
func (t *Trip) Edit(fn func(cfg *model.TripConfig)) {
	cfg := t.base
	fn(&cfg)
	cfg.Lodgings, cfg.Activities, cfg.Flights, cfg.Expenses = nil, nil, nil, nil
	cfg.SelectedLodging = t.selected
	t.base = cfg
}

// CycleLodging selects the lodging after the current one, wrapping around,
// and returns it.
func (t *Trip) CycleLodging() (model.Lodging, bool) {
	items := t.Lodgings.Items()
	if len(items) == 0 {
		return model.Lodging{}, false
	}
	next := 0
	for i, l := range items {
		if l.ID == t.selected {
			next = (i + 1) % len(items)
			break
		}
	}
	t.selected = items[next].ID
	return items[next], true
}
