// Package settings edits the remembered session defaults: the table
// selection every run starts from, and the question count and speed tier
// tests preload. Enter saves, esc leaves everything untouched.
package settings

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/jsterk/tafel/internal/config"
	"github.com/jsterk/tafel/internal/router"
	"github.com/jsterk/tafel/internal/screen"
	"github.com/jsterk/tafel/internal/session"
	"github.com/jsterk/tafel/internal/ui/components"
	"github.com/jsterk/tafel/internal/ui/layout"
	"github.com/jsterk/tafel/internal/ui/theme"
)

// focusArea is the section arrow keys act on.
type focusArea int

const (
	focusCount focusArea = iota
	focusSpeed
)

// settingsLoadedMsg delivers the stored defaults.
type settingsLoadedMsg struct {
	settings config.Settings
}

// SettingsScreen edits the stored defaults in place.
type SettingsScreen struct {
	store *config.SettingsStore

	tables    map[int]bool
	counts    []int
	countPick components.Picker
	tiers     []session.SpeedTier
	speedPick components.Picker
	focus     focusArea
	save      components.Button

	statusLine string
	loaded     bool
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)

// New creates the settings editor backed by the given store.
func New(store *config.SettingsStore) *SettingsScreen {
	s := &SettingsScreen{
		store:  store,
		tables: make(map[int]bool),
		counts: session.QuestionCounts,
		tiers:  session.SpeedTiers(),
	}

	countOptions := make([]components.PickerOption, len(s.counts))
	for i, c := range s.counts {
		countOptions[i] = components.PickerOption{Label: strconv.Itoa(c)}
	}
	s.countPick = components.NewPicker(countOptions, 0)
	s.countPick.Horizontal = true
	s.countPick.Focused = true

	tierOptions := make([]components.PickerOption, len(s.tiers))
	for i, tier := range s.tiers {
		tierOptions[i] = components.PickerOption{
			Label:  fmt.Sprintf("%s %-9s", tier.Icon, tier.Label),
			Detail: fmt.Sprintf("%s · %d min", tier.Description, int(tier.Limit.Minutes())),
		}
	}
	s.speedPick = components.NewPicker(tierOptions, 0)

	s.save = components.NewButton("SAVE", s.savePressed)
	return s
}

func (s *SettingsScreen) Title() string {
	return "Settings"
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "1-9,0", Description: "toggle table"},
		{Key: "a/w", Description: "all/none"},
		{Key: "tab", Description: "next section"},
		{Key: "enter", Description: "save"},
		{Key: "esc", Description: "cancel"},
	}
}

func (s *SettingsScreen) Init() tea.Cmd {
	return func() tea.Msg {
		loaded, err := s.store.Load()
		if err != nil {
			loaded = config.DefaultSettings()
		}
		return settingsLoadedMsg{settings: loaded}
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsLoadedMsg:
		s.apply(msg.settings)
		return s, nil
	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SettingsScreen) apply(saved config.Settings) {
	s.loaded = true
	s.tables = make(map[int]bool)
	for _, t := range saved.Tables {
		s.tables[t] = true
	}
	for i, c := range s.counts {
		if c == saved.QuestionCount {
			s.countPick.Selected = i
		}
	}
	for i, tier := range s.tiers {
		if tier.Label == saved.SpeedLabel {
			s.speedPick.Selected = i
		}
	}
}

func (s *SettingsScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch key := msg.String(); key {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		s.statusLine = ""
		n, _ := strconv.Atoi(key)
		s.tables[n] = !s.tables[n]
		return s, nil
	case "0":
		s.statusLine = ""
		s.tables[10] = !s.tables[10]
		return s, nil
	case "a":
		s.statusLine = ""
		for _, t := range session.AllTables() {
			s.tables[t] = true
		}
		return s, nil
	case "w":
		s.statusLine = ""
		s.tables = make(map[int]bool)
		return s, nil
	case "tab":
		s.toggleFocus()
		return s, nil
	case "enter":
		var cmd tea.Cmd
		s.save, cmd = s.save.Update(msg)
		return s, cmd
	}

	var cmd tea.Cmd
	if s.focus == focusCount {
		s.countPick, cmd = s.countPick.Update(msg)
	} else {
		s.speedPick, cmd = s.speedPick.Update(msg)
	}
	return s, cmd
}

func (s *SettingsScreen) toggleFocus() {
	if s.focus == focusCount {
		s.focus = focusSpeed
	} else {
		s.focus = focusCount
	}
	s.countPick.Focused = s.focus == focusCount
	s.speedPick.Focused = s.focus == focusSpeed
}

// selectedTables returns the toggled tables in ascending order.
func (s *SettingsScreen) selectedTables() []int {
	chosen := make([]int, 0, len(s.tables))
	for t, on := range s.tables {
		if on {
			chosen = append(chosen, t)
		}
	}
	sort.Ints(chosen)
	return chosen
}

// savePressed validates the selection, writes it and leaves.
func (s *SettingsScreen) savePressed() tea.Cmd {
	chosen := s.selectedTables()
	if len(chosen) == 0 {
		s.statusLine = "Pick at least one table."
		return nil
	}
	saved := config.Settings{
		Tables:        chosen,
		SpeedLabel:    s.tiers[s.speedPick.Selected].Label,
		QuestionCount: s.counts[s.countPick.Selected],
	}
	if err := s.store.Save(saved); err != nil {
		s.statusLine = "Could not save. Try again."
		return nil
	}
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *SettingsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	sections := []string{
		theme.Title.Render("Settings"),
		theme.Subtitle.Render("Every run starts from these."),
	}

	sections = append(sections, components.ArcadeCard(
		sectionLabel("Tables")+"\n"+s.renderTables(), cw))
	sections = append(sections, components.ArcadeCard(
		sectionLabel("Test length")+"\n"+s.countPick.View(), cw))
	sections = append(sections, components.ArcadeCard(
		sectionLabel("Test speed")+"\n"+strings.TrimRight(s.speedPick.View(), "\n"), cw))

	sections = append(sections, s.save.View())

	if s.statusLine != "" {
		sections = append(sections, theme.Incorrect.Render(s.statusLine))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func sectionLabel(text string) string {
	return lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true).Render(text)
}

// renderTables draws the ten tables as two rows of toggle chips.
func (s *SettingsScreen) renderTables() string {
	var rows []string
	for rowStart := 1; rowStart <= 6; rowStart += 5 {
		var cells []string
		for t := rowStart; t < rowStart+5; t++ {
			label := fmt.Sprintf("%2d", t)
			if s.tables[t] {
				cells = append(cells, theme.Selected.Render(label+"✔"))
			} else {
				cells = append(cells, theme.Unselected.Render(label+" "))
			}
		}
		rows = append(rows, strings.Join(cells, "  "))
	}
	return strings.Join(rows, "\n")
}
