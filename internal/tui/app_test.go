package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/tripbudget/internal/config"
	"github.com/theirongolddev/tripbudget/internal/model"
	"github.com/theirongolddev/tripbudget/internal/tui/components"
)

type saveRecorder struct {
	calls int
	last  model.TripConfig
	err   error
}

func (r *saveRecorder) save(_ string, trip model.TripConfig) error {
	r.calls++
	r.last = trip
	return r.err
}

func newTestApp(t *testing.T) (App, *saveRecorder) {
	t.Helper()
	rec := &saveRecorder{}
	a := NewApp(config.DefaultTrip(), "trip.toml").WithSaveFunc(rec.save)
	a.width, a.height = 120, 40
	return a, rec
}

func press(t *testing.T, a App, keys ...string) App {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ := a.Update(msg)
		a = m.(App)
	}
	return a
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}
		pos := 0

		for i, tab := range components.Tabs {
			w := len(tab.Name) + 2 // horizontal padding in tab renderer
			x := pos + w/2
			if got := a.tabAtX(x); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
			}
			pos += w + 1 // separator
		}
		if got := a.tabAtX(pos + 10); got != -1 {
			t.Fatalf("click past the last tab -> %d, want -1", got)
		}
	}
}

func TestMouseClickSwitchesTab(t *testing.T) {
	a, _ := newTestApp(t)
	x := len("Overview") + 2 + 1 + len("Costs") + 2 + 1 + 1 // inside "Shares"

	m, _ := a.Update(tea.MouseMsg{X: x, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Equal(t, tabShares, m.(App).activeTab)
}

func TestNewAppComputesDefaultTrip(t *testing.T) {
	a, _ := newTestApp(t)
	assert.InDelta(t, 174224, a.result.TotalCost, 1e-9)
	assert.Equal(t, "HKD", a.conv.Base)
	assert.False(t, a.Dirty())
}

func TestStudentKeysRecompute(t *testing.T) {
	a, _ := newTestApp(t)

	a = press(t, a, "+")
	assert.Equal(t, 25, a.cfg.Group.Students)
	// one more room, transport and every activity
	assert.InDelta(t, 174224+8903+298+1609, a.result.TotalCost, 1e-9)
	assert.True(t, a.Dirty())

	a = press(t, a, "-", "-")
	assert.Equal(t, 23, a.cfg.Group.Students)
}

func TestStudentsNeverGoNegative(t *testing.T) {
	a, _ := newTestApp(t)
	a.edit(func(cfg *model.TripConfig) { cfg.Group.Students = 0 })

	a = press(t, a, "-")
	assert.Equal(t, 0, a.cfg.Group.Students)
	assert.Zero(t, a.result.BreakEvenPrice)
}

func TestPriceKeysChangeRevenue(t *testing.T) {
	a, _ := newTestApp(t)

	a = press(t, a, "p", "p")
	assert.InDelta(t, 2*priceStep*24, a.result.Revenue.Total, 1e-9)

	a = press(t, a, "P", "P", "P")
	assert.Zero(t, a.cfg.Financial.PricePerStudent)
}

func TestTransportToggle(t *testing.T) {
	a, _ := newTestApp(t)
	a = press(t, a, "t")
	assert.Zero(t, a.result.Costs.Transport.Total)
	assert.InDelta(t, 174224-298*26, a.result.TotalCost, 1e-9)
}

func TestLodgingCycleAddsBreakfast(t *testing.T) {
	a, _ := newTestApp(t)
	a = press(t, a, "h")

	l, ok := a.cfg.Lodging()
	require.True(t, ok)
	assert.Equal(t, "beacon", l.ID)
	// The Beacon serves no breakfast
	assert.InDelta(t, 80*9*26, a.result.Costs.Breakfast.Total, 1e-9)
	assert.Contains(t, a.status, "The BEACON")
}

func TestToggleActivityOnCostsTab(t *testing.T) {
	a, _ := newTestApp(t)

	// space does nothing outside the costs tab
	a = press(t, a, "space")
	assert.InDelta(t, 174224, a.result.TotalCost, 1e-9)

	a = press(t, a, "c", "j", "space")
	require.Equal(t, tabCosts, a.activeTab)
	assert.False(t, a.cfg.Activities[1].Enabled)
	assert.InDelta(t, 174224-280*26, a.result.TotalCost, 1e-9)
}

func TestShareKeys(t *testing.T) {
	a, _ := newTestApp(t)

	a = press(t, a, "s", "]")
	assert.InDelta(t, 30, a.cfg.Stakeholders[0].Percent, 1e-9)
	assert.False(t, a.result.Distribution.SharesValid)

	a = press(t, a, "n")
	assert.InDelta(t, 20, a.cfg.Stakeholders[3].Percent, 1e-9)
	assert.True(t, a.result.Distribution.SharesValid)
}

func TestQuitSavesWhenDirty(t *testing.T) {
	a, rec := newTestApp(t)

	m, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Zero(t, rec.calls, "clean trip is not rewritten")

	a = press(t, m.(App), ">")
	_, cmd = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, 3, rec.last.Group.Mentors)
	assert.Len(t, rec.last.Lodgings, 2)
}

func TestQuitStaysWhenSaveFails(t *testing.T) {
	a, rec := newTestApp(t)
	rec.err = errors.New("disk full")

	a = press(t, a, "+")
	m, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.Nil(t, cmd)
	assert.Contains(t, m.(App).status, "disk full")
	assert.True(t, m.(App).Dirty())
}

func TestGroupValuesApply(t *testing.T) {
	cfg := config.DefaultTrip()
	vals := NewGroupValues(cfg)
	assert.Equal(t, "24", vals.students)

	vals.students = "30"
	vals.mentors = "x"
	vals.price = "12,500"
	vals.Apply(&cfg)

	assert.Equal(t, 30, cfg.Group.Students)
	assert.Equal(t, 2, cfg.Group.Mentors, "invalid input leaves the field alone")
	assert.InDelta(t, 12500, cfg.Financial.PricePerStudent, 1e-9)
}

func TestFormValidators(t *testing.T) {
	assert.NoError(t, validCount("12"))
	assert.Error(t, validCount("-1"))
	assert.Error(t, validCount("a"))
	assert.NoError(t, validPercent("12.5"))
	assert.Error(t, validPercent("120"))
}

func TestEscClosesGroupForm(t *testing.T) {
	a, _ := newTestApp(t)
	a = press(t, a, "e")
	require.NotNil(t, a.groupForm)

	a = press(t, a, "esc")
	assert.Nil(t, a.groupForm)
}

func TestViewRendersEveryTab(t *testing.T) {
	a, _ := newTestApp(t)
	for i, tab := range components.Tabs {
		a.activeTab = i
		out := a.View()
		assert.Contains(t, out, tab.Name)
		assert.Equal(t, a.height, len(strings.Split(out, "\n")), "tab %s fills the screen", tab.Name)
	}

	a.width = 40
	assert.Contains(t, a.View(), "too narrow")
}
