// Package setup is the pre-session screen: pick tables, and for tests the
// question count and speed tier, then launch the run. The last choices are
// remembered and preloaded next time.
package setup

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/jsterk/tafel/internal/config"
	"github.com/jsterk/tafel/internal/profile"
	"github.com/jsterk/tafel/internal/rewards"
	"github.com/jsterk/tafel/internal/router"
	"github.com/jsterk/tafel/internal/score"
	"github.com/jsterk/tafel/internal/screen"
	"github.com/jsterk/tafel/internal/screens/quiz"
	"github.com/jsterk/tafel/internal/session"
	"github.com/jsterk/tafel/internal/ui/components"
	"github.com/jsterk/tafel/internal/ui/layout"
	"github.com/jsterk/tafel/internal/ui/theme"
)

// Mode selects which kind of session the screen sets up.
type Mode int

const (
	ModePractice Mode = iota
	ModeTest
)

// focusArea is the section arrow keys act on in test mode.
type focusArea int

const (
	focusCount focusArea = iota
	focusSpeed
)

// defaultsLoadedMsg delivers the remembered settings.
type defaultsLoadedMsg struct {
	settings config.Settings
}

// SetupScreen collects the session parameters before a run starts.
type SetupScreen struct {
	mode     Mode
	player   profile.Profile
	profiles *profile.Store
	scores   *score.Store
	settings *config.SettingsStore

	tables    map[int]bool
	counts    []int
	countPick components.Picker
	tiers     []session.SpeedTier
	speedPick components.Picker
	focus     focusArea
	start     components.Button

	statusLine string
	loaded     bool
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates a setup screen for the given mode and player.
func New(mode Mode, player profile.Profile, profiles *profile.Store, scores *score.Store, settings *config.SettingsStore) *SetupScreen {
	s := &SetupScreen{
		mode:     mode,
		player:   player,
		profiles: profiles,
		scores:   scores,
		settings: settings,
		tables:   make(map[int]bool),
		counts:   session.QuestionCounts,
		tiers:    session.SpeedTiers(),
	}

	countOptions := make([]components.PickerOption, len(s.counts))
	for i, c := range s.counts {
		countOptions[i] = components.PickerOption{Label: strconv.Itoa(c)}
	}
	s.countPick = components.NewPicker(countOptions, 0)
	s.countPick.Horizontal = true

	tierOptions := make([]components.PickerOption, len(s.tiers))
	for i, tier := range s.tiers {
		tierOptions[i] = components.PickerOption{
			Label:  fmt.Sprintf("%s %-9s", tier.Icon, tier.Label),
			Detail: fmt.Sprintf("%s · %d min", tier.Description, int(tier.Limit.Minutes())),
		}
	}
	s.speedPick = components.NewPicker(tierOptions, 0)

	if mode == ModeTest {
		s.countPick.Focused = true
	}
	s.start = components.NewButton("START", s.startPressed)
	return s
}

func (s *SetupScreen) Title() string {
	if s.mode == ModeTest {
		return "Test setup"
	}
	return "Practice setup"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "1-9,0", Description: "toggle table"},
		{Key: "a/w", Description: "all/none"},
	}
	if s.mode == ModeTest {
		hints = append(hints, layout.KeyHint{Key: "tab", Description: "next section"})
	}
	return append(hints,
		layout.KeyHint{Key: "enter", Description: "start"},
		layout.KeyHint{Key: "esc", Description: "back"},
	)
}

// Init loads the remembered settings; Pop re-runs it, so the screen shows
// what the last started run actually used.
func (s *SetupScreen) Init() tea.Cmd {
	return func() tea.Msg {
		loaded, err := s.settings.Load()
		if err != nil {
			loaded = config.DefaultSettings()
		}
		return defaultsLoadedMsg{settings: loaded}
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case defaultsLoadedMsg:
		s.applyDefaults(msg.settings)
		return s, nil
	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

// applyDefaults preloads the pickers and table grid from saved settings.
func (s *SetupScreen) applyDefaults(saved config.Settings) {
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

func (s *SetupScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch key {
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
		if s.mode == ModeTest {
			s.toggleFocus()
		}
		return s, nil
	case "enter":
		var cmd tea.Cmd
		s.start, cmd = s.start.Update(msg)
		return s, cmd
	}

	if s.mode == ModeTest {
		var cmd tea.Cmd
		if s.focus == focusCount {
			s.countPick, cmd = s.countPick.Update(msg)
		} else {
			s.speedPick, cmd = s.speedPick.Update(msg)
		}
		return s, cmd
	}
	return s, nil
}

func (s *SetupScreen) toggleFocus() {
	if s.focus == focusCount {
		s.focus = focusSpeed
	} else {
		s.focus = focusCount
	}
	s.countPick.Focused = s.focus == focusCount
	s.speedPick.Focused = s.focus == focusSpeed
}

// selectedTables returns the toggled tables in ascending order.
func (s *SetupScreen) selectedTables() []int {
	chosen := make([]int, 0, len(s.tables))
	for t, on := range s.tables {
		if on {
			chosen = append(chosen, t)
		}
	}
	sort.Ints(chosen)
	return chosen
}

// startPressed validates the selection, remembers it and launches the run.
func (s *SetupScreen) startPressed() tea.Cmd {
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
	_ = s.settings.Save(saved)

	if s.mode == ModePractice {
		next := quiz.NewPractice(s.player, s.profiles, session.PracticeConfig{Tables: chosen})
		return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}

	cfg := session.TestConfig{
		Tables:        chosen,
		QuestionCount: s.counts[s.countPick.Selected],
		Speed:         s.tiers[s.speedPick.Selected],
	}
	next := quiz.NewTest(s.player, s.profiles, s.scores, cfg)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *SetupScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string
	if s.mode == ModeTest {
		sections = append(sections,
			theme.Title.Render("Set up your test"),
			theme.Subtitle.Render("Answer fast, earn coins!"),
		)
	} else {
		sections = append(sections,
			theme.Title.Render("Set up your practice"),
			theme.Subtitle.Render("No timer, no score. Just you and the tables."),
		)
	}

	sections = append(sections, components.ArcadeCard(
		sectionLabel("Which tables?")+"\n"+s.renderTables(), cw))

	if s.mode == ModeTest {
		sections = append(sections, components.ArcadeCard(
			sectionLabel("How many questions?")+"\n"+s.countPick.View(), cw))
		sections = append(sections, components.ArcadeCard(
			sectionLabel("How fast?")+"\n"+strings.TrimRight(s.speedPick.View(), "\n"), cw))
		sections = append(sections, s.renderEstimate())
	}

	sections = append(sections, s.start.View())

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
func (s *SetupScreen) renderTables() string {
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

// renderEstimate shows the coin ceiling for the current configuration.
func (s *SetupScreen) renderEstimate() string {
	max := rewards.EstimateMax(
		s.selectedTables(),
		s.counts[s.countPick.Selected],
		s.tiers[s.speedPick.Selected].Label,
	)
	return theme.CoinGain.Render(fmt.Sprintf("Up for grabs: ~%d coins", max))
}
