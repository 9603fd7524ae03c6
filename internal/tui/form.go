package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/tripbudget/internal/model"
	"github.com/theirongolddev/tripbudget/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// GroupValues holds the group form's bound fields. Numbers are edited as
// text so the form can show the current value and validate on the fly.
type GroupValues struct {
	name       string
	students   string
	mentors    string
	price      string
	revenueTax string
	theme      string
}

// NewGroupValues seeds the form fields from cfg.
func NewGroupValues(cfg model.TripConfig) *GroupValues {
	return &GroupValues{
		name:       cfg.Name,
		students:   strconv.Itoa(cfg.Group.Students),
		mentors:    strconv.Itoa(cfg.Group.Mentors),
		price:      strconv.FormatFloat(cfg.Financial.PricePerStudent, 'f', -1, 64),
		revenueTax: strconv.FormatFloat(cfg.Financial.RevenueTaxPercent, 'f', -1, 64),
		theme:      theme.Active.Name,
	}
}

// NewGroupForm builds the huh form used both by the dashboard and by the
// setup command. vals must outlive the form.
func NewGroupForm(vals *GroupValues, baseCode string) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Trip name").
				Value(&vals.name),
			huh.NewInput().
				Title("Students").
				Description("Paying travellers").
				Validate(validCount).
				Value(&vals.students),
			huh.NewInput().
				Title("Mentors").
				Description("Travel on student revenue").
				Validate(validCount).
				Value(&vals.mentors),
		),
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Price per student (%s)", baseCode)).
				Validate(validAmount).
				Value(&vals.price),
			huh.NewInput().
				Title("Revenue tax %").
				Validate(validPercent).
				Value(&vals.revenueTax),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.theme),
		),
	).WithTheme(huh.ThemeDracula())
}

// Apply writes the parsed form values into cfg. Values were validated by
// the form, so parse failures leave the field unchanged.
func (v *GroupValues) Apply(cfg *model.TripConfig) {
	if name := strings.TrimSpace(v.name); name != "" {
		cfg.Name = name
	}
	if n, err := parseCount(v.students); err == nil {
		cfg.Group.Students = n
	}
	if n, err := parseCount(v.mentors); err == nil {
		cfg.Group.Mentors = n
	}
	if f, err := parseAmount(v.price); err == nil {
		cfg.Financial.PricePerStudent = f
	}
	if f, err := parseAmount(v.revenueTax); err == nil {
		cfg.Financial.RevenueTaxPercent = f
	}
}

// Theme returns the selected theme name.
func (v *GroupValues) Theme() string {
	return v.theme
}

func (a App) openGroupForm() (tea.Model, tea.Cmd) {
	a.groupVals = NewGroupValues(a.cfg)
	a.groupForm = NewGroupForm(a.groupVals, a.conv.Base)
	if a.width > 0 {
		a.groupForm = a.groupForm.WithWidth(a.width).WithHeight(a.height)
	}
	return a, a.groupForm.Init()
}

func (a App) updateGroupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		a.groupForm = nil
		a.status = "edit cancelled"
		return a, nil
	}

	form, cmd := a.groupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.groupForm = f
	}

	switch a.groupForm.State {
	case huh.StateCompleted:
		vals := a.groupVals
		a.edit(vals.Apply)
		theme.SetActive(vals.Theme())
		a.groupForm = nil
		a.status = "group updated"
		return a, nil
	case huh.StateAborted:
		a.groupForm = nil
		return a, nil
	}
	return a, cmd
}

var errNotNumber = errors.New("enter a number")

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errNotNumber
	}
	if n < 0 {
		return 0, errors.New("must be 0 or more")
	}
	return n, nil
}

func parseAmount(s string) (float64, error) {
	s = strings.NewReplacer(",", "", " ", "", "_", "").Replace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errNotNumber
	}
	if f < 0 {
		return 0, errors.New("must be 0 or more")
	}
	return f, nil
}

func validCount(s string) error {
	_, err := parseCount(s)
	return err
}

func validAmount(s string) error {
	_, err := parseAmount(s)
	return err
}

func validPercent(s string) error {
	f, err := parseAmount(s)
	if err != nil {
		return err
	}
	if f > 100 {
		return errors.New("must be 100 or less")
	}
	return nil
}
