// Package tui provides the interactive Bubble Tea dashboard for tripbudget.
package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/theirongolddev/tripbudget/internal/budget"
	"github.com/theirongolddev/tripbudget/internal/catalog"
	"github.com/theirongolddev/tripbudget/internal/config"
	"github.com/theirongolddev/tripbudget/internal/currency"
	"github.com/theirongolddev/tripbudget/internal/model"
	"github.com/theirongolddev/tripbudget/internal/tui/components"
	"github.com/theirongolddev/tripbudget/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// SaveFunc persists a trip. Tests swap it out to avoid touching disk.
type SaveFunc func(path string, trip model.TripConfig) error

// App is the root Bubble Tea model.
type App struct {
	// Data
	trip     *catalog.Trip
	cfg      model.TripConfig // sanitized view of trip, recomputed on change
	result   model.BudgetResult
	conv     currency.Converter
	tripPath string
	modTime  time.Time
	dirty    bool
	save     SaveFunc

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	status    string

	// Per-tab state
	costs  listState
	shares listState

	// Group editor (huh form)
	groupForm *huh.Form
	groupVals *GroupValues
}

type listState struct {
	cursor int
}

const (
	minTerminalWidth = 80
	maxContentWidth  = 160
	minContentHeight = 5

	priceStep = 500
	shareStep = 5
)

const (
	tabOverview = iota
	tabCosts
	tabShares
	tabGroup
)

// NewApp creates the root model for trip loaded from tripPath.
func NewApp(trip model.TripConfig, tripPath string) App {
	a := App{
		trip:     catalog.FromConfig(trip),
		tripPath: tripPath,
		save:     config.SaveTrip,
	}
	if info, err := os.Stat(tripPath); err == nil {
		a.modTime = info.ModTime()
	}
	a.recompute()
	return a
}

// WithSaveFunc overrides how the trip is persisted.
func (a App) WithSaveFunc(fn SaveFunc) App {
	a.save = fn
	return a
}

// Dirty reports whether the trip has unsaved edits.
func (a App) Dirty() bool {
	return a.dirty
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tickCmd()
}

// recompute runs the engine over the current trip. Every edit ends here.
func (a *App) recompute() {
	a.cfg = config.Sanitize(a.trip.Config())
	a.result = budget.Compute(a.cfg)

	conv, err := currency.New(a.cfg.Currency.Base, a.cfg.Currency.Secondary, a.cfg.Currency.Rate)
	if err != nil {
		conv = currency.Converter{Base: strings.ToUpper(a.cfg.Currency.Base)}
	}
	a.conv = conv

	if a.costs.cursor >= len(a.cfg.Activities) {
		a.costs.cursor = max(len(a.cfg.Activities)-1, 0)
	}
	if a.shares.cursor >= len(a.cfg.Stakeholders) {
		a.shares.cursor = max(len(a.cfg.Stakeholders)-1, 0)
	}
}

// edit applies fn to the trip, marks it dirty and recomputes.
func (a *App) edit(fn func(cfg *model.TripConfig)) {
	a.trip.Edit(fn)
	a.dirty = true
	a.recompute()
}

func (a *App) writeTrip() error {
	if err := a.save(a.tripPath, a.trip.Config()); err != nil {
		return err
	}
	a.dirty = false
	if info, err := os.Stat(a.tripPath); err == nil {
		a.modTime = info.ModTime()
	}
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.groupForm != nil {
			a.groupForm = a.groupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tickMsg:
		a.reloadIfChanged()
		return a, tickCmd()

	case tea.MouseMsg:
		if a.showHelp || a.groupForm != nil {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.moveCursor(-1)
		case tea.MouseButtonWheelDown:
			a.moveCursor(1)
		case tea.MouseButtonLeft:
			if msg.Action == tea.MouseActionPress && msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// The group form owns the keyboard while open
		if a.groupForm != nil {
			return a.updateGroupForm(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		a.status = ""
		return a.handleKey(key)
	}

	if a.groupForm != nil {
		return a.updateGroupForm(msg)
	}
	return a, nil
}

func (a App) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		if a.dirty {
			if err := a.writeTrip(); err != nil {
				a.status = "save failed: " + err.Error()
				return a, nil
			}
		}
		return a, tea.Quit

	case "w":
		if err := a.writeTrip(); err != nil {
			a.status = "save failed: " + err.Error()
		} else {
			a.status = "saved " + a.tripPath
		}
		return a, nil

	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil

	case "+", "=":
		a.edit(func(cfg *model.TripConfig) { cfg.Group.Students++ })
	case "-", "_":
		a.edit(func(cfg *model.TripConfig) { cfg.Group.Students = max(cfg.Group.Students-1, 0) })
	case ">", ".":
		a.edit(func(cfg *model.TripConfig) { cfg.Group.Mentors++ })
	case "<", ",":
		a.edit(func(cfg *model.TripConfig) { cfg.Group.Mentors = max(cfg.Group.Mentors-1, 0) })
	case "p":
		a.edit(func(cfg *model.TripConfig) { cfg.Financial.PricePerStudent += priceStep })
	case "P":
		a.edit(func(cfg *model.TripConfig) {
			cfg.Financial.PricePerStudent = max(cfg.Financial.PricePerStudent-priceStep, 0)
		})
	case "t":
		a.edit(func(cfg *model.TripConfig) { cfg.Transport.Included = !cfg.Transport.Included })
	case "h":
		if l, ok := a.trip.CycleLodging(); ok {
			a.dirty = true
			a.recompute()
			a.status = "lodging: " + l.Name
		}
	case "e":
		return a.openGroupForm()

	case "j", "down":
		a.moveCursor(1)
	case "k", "up":
		a.moveCursor(-1)
	case " ", "enter":
		if a.activeTab == tabCosts {
			a.toggleActivity()
		}
	case "]":
		if a.activeTab == tabShares {
			a.nudgeShare(shareStep)
		}
	case "[":
		if a.activeTab == tabShares {
			a.nudgeShare(-shareStep)
		}
	case "n":
		if a.activeTab == tabShares {
			a.edit(func(cfg *model.TripConfig) { cfg.Stakeholders = budget.NormalizeLastShare(cfg.Stakeholders) })
			if !a.result.Distribution.SharesValid {
				a.status = "other shares already exceed 100%"
			}
		}

	default:
		if len(key) == 1 {
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

func (a *App) moveCursor(delta int) {
	switch a.activeTab {
	case tabCosts:
		a.costs.cursor = clampCursor(a.costs.cursor+delta, len(a.cfg.Activities))
	case tabShares:
		a.shares.cursor = clampCursor(a.shares.cursor+delta, len(a.cfg.Stakeholders))
	}
}

func clampCursor(c, n int) int {
	if n == 0 {
		return 0
	}
	return min(max(c, 0), n-1)
}

func (a *App) toggleActivity() {
	if len(a.cfg.Activities) == 0 {
		return
	}
	act, err := a.trip.ToggleActivity(a.cfg.Activities[a.costs.cursor].ID)
	if err != nil {
		a.status = err.Error()
		return
	}
	a.dirty = true
	a.recompute()
	state := "off"
	if act.Enabled {
		state = "on"
	}
	a.status = fmt.Sprintf("%s %s", act.Name, state)
}

func (a *App) nudgeShare(delta float64) {
	idx := a.shares.cursor
	if idx >= len(a.cfg.Stakeholders) {
		return
	}
	a.edit(func(cfg *model.TripConfig) {
		shares := make([]model.Stakeholder, len(cfg.Stakeholders))
		copy(shares, cfg.Stakeholders)
		shares[idx].Percent = min(max(shares[idx].Percent+delta, 0), 100)
		cfg.Stakeholders = shares
	})
}

// reloadIfChanged picks up edits made to the trip file by other tools.
// Local unsaved edits win.
func (a *App) reloadIfChanged() {
	if a.dirty || a.tripPath == "" {
		return
	}
	info, err := os.Stat(a.tripPath)
	if err != nil || !info.ModTime().After(a.modTime) {
		return
	}
	trip, err := config.LoadTrip(a.tripPath)
	if err != nil {
		a.status = "reload failed: " + err.Error()
		return
	}
	a.modTime = info.ModTime()
	a.trip = catalog.FromConfig(trip)
	a.recompute()
	a.status = "reloaded " + a.tripPath
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.groupForm != nil {
		return a.groupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  tripbudget needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"o c s g", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Move cursor"},
		}},
		{"Group & price", []struct{ key, desc string }{
			{"+ -", "Students up / down"},
			{"> <", "Mentors up / down"},
			{"p P", fmt.Sprintf("Price per student ±%d", priceStep)},
			{"e", "Edit group and pricing"},
		}},
		{"Trip", []struct{ key, desc string }{
			{"h", "Next lodging"},
			{"t", "Toggle transport"},
			{"space", "Toggle activity (Costs)"},
			{"[ ]", fmt.Sprintf("Share ±%d%% (Shares)", shareStep)},
			{"n", "Last share takes the rest (Shares)"},
		}},
		{"File", []struct{ key, desc string }{
			{"w", "Write trip file"},
			{"q", "Quit (saves edits)"},
			{"?", "Toggle help"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-7s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + trip pill
	pillStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accentStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	lodging, _ := a.cfg.Lodging()
	pill := pillStyle.Render(" ") + accentStyle.Render(a.cfg.Name)
	pill += pillStyle.Render(" │ ") + accentStyle.Render(fmt.Sprintf("%dd", a.cfg.Trip.DurationDays()))
	if lodging.Name != "" {
		pill += pillStyle.Render(" │ ") + accentStyle.Render(lodging.Name)
	}
	pill += pillStyle.Render(" ")

	header := components.RenderTabBar(a.activeTab, w) +
		"\n" + lipgloss.NewStyle().Background(t.Surface).Width(w).Render(pill)

	// 2. Status bar
	statusBar := components.RenderStatusBar(w, a.tripPath, a.dirty, a.status)

	// 3. Content zone height
	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabCosts:
		content = a.renderCostsTab(cw)
	case tabShares:
		content = a.renderSharesTab(cw)
	case tabGroup:
		content = a.renderGroupTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit == 1 {
		return "…"
	}
	return string(runes[:limit-1]) + "…"
}

// tabAtX maps a click column in the tab bar to a tab index, or -1.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		// Must match RenderTabBar's width calculation exactly.
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
