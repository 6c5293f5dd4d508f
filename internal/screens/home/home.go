package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/jsterk/tafel/internal/config"
	"github.com/jsterk/tafel/internal/profile"
	"github.com/jsterk/tafel/internal/progress"
	"github.com/jsterk/tafel/internal/router"
	"github.com/jsterk/tafel/internal/score"
	"github.com/jsterk/tafel/internal/screen"
	progressscreen "github.com/jsterk/tafel/internal/screens/progress"
	settingsscreen "github.com/jsterk/tafel/internal/screens/settings"
	"github.com/jsterk/tafel/internal/screens/setup"
	"github.com/jsterk/tafel/internal/ui/components"
	"github.com/jsterk/tafel/internal/ui/layout"
)

// statsLoadedMsg delivers the refreshed balance and test record.
type statsLoadedMsg struct {
	player   profile.Profile
	tests    int
	best     float64
	hasTests bool
	latest   float64
}

// HomeScreen is the arcade-style main menu for one signed-in player.
type HomeScreen struct {
	player        profile.Profile
	profiles      *profile.Store
	scores        *score.Store
	settings      *config.SettingsStore
	switchFactory func() screen.Screen

	menu          components.Menu
	tests         int
	best          float64
	hasTests      bool
	mascotVariant MascotVariant

	// autoStart, when set, pushes setup for that mode as soon as the
	// first stats load lands. Cleared after one use.
	autoStart *setup.Mode
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen for the chosen player. switchFactory builds
// the profile picker that replaces this screen on "switch player".
func New(player profile.Profile, profiles *profile.Store, scores *score.Store, settings *config.SettingsStore, switchFactory func() screen.Screen) *HomeScreen {
	h := &HomeScreen{
		player:        player,
		profiles:      profiles,
		scores:        scores,
		settings:      settings,
		switchFactory: switchFactory,
	}

	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "PRACTICE", Action: func() tea.Cmd { return h.pushSetup(setup.ModePractice) }},
		{Label: "TEST", Action: func() tea.Cmd { return h.pushSetup(setup.ModeTest) }},
		{Label: "MY PROGRESS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: progressscreen.New(h.profiles, h.scores, h.player.ID)}
			}
		}},
		{Label: "SETTINGS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: settingsscreen.New(h.settings)}
			}
		}},
		{Label: "SWITCH PLAYER", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: h.switchFactory()}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd { return tea.Quit }},
	})
	return h
}

// AutoStart makes the screen jump straight into setup for mode on first
// entry. The play command's --mode flag uses it to skip the menu.
func (h *HomeScreen) AutoStart(mode setup.Mode) *HomeScreen {
	h.autoStart = &mode
	return h
}

func (h *HomeScreen) pushSetup(mode setup.Mode) tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{
			Screen: setup.New(mode, h.player, h.profiles, h.scores, h.settings),
		}
	}
}

// Init reloads the balance and record from the stores. Popping back here
// re-runs it, so coins earned in a session show up on the way home.
func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	return func() tea.Msg {
		msg := statsLoadedMsg{player: h.player}
		if fresh, ok, err := h.profiles.Get(h.player.ID); err == nil && ok {
			msg.player = fresh
		}
		results, err := h.scores.ResultsFor(h.player.ID)
		if err != nil || len(results) == 0 {
			return msg
		}
		if s, ok := progress.Summarize(msg.player.ID, msg.player.DisplayName, results); ok {
			msg.tests = s.Tests
			msg.best = s.BestAccuracy
			msg.hasTests = true
			msg.latest = results[len(results)-1].Accuracy()
		}
		return msg
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if stats, ok := msg.(statsLoadedMsg); ok {
		h.player = stats.player
		h.tests = stats.tests
		h.best = stats.best
		h.hasTests = stats.hasTests
		h.mascotVariant = mascotFor(stats.hasTests, stats.latest)
		if h.autoStart != nil {
			mode := *h.autoStart
			h.autoStart = nil
			return h, tea.Batch(h.announce(), h.pushSetup(mode))
		}
		return h, h.announce()
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// announce pushes the refreshed player badge and balance into the header.
func (h *HomeScreen) announce() tea.Cmd {
	player := h.player
	return func() tea.Msg {
		return screen.StatusMsg{
			Player: fmt.Sprintf("%s %s", player.Avatar, player.DisplayName),
			Coins:  player.Coins,
		}
	}
}

func (h *HomeScreen) View(width, height int) string {
	// height is the body box; add back the chrome to estimate the window.
	termHeight := height + layout.HeaderHeight + layout.FooterHeight + 2
	compact := layout.IsCompactHeight(termHeight) || layout.IsCompactWidth(width)

	// One content width for every section keeps the boxes aligned.
	cw := components.ContentWidth(width)

	var sections []string

	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderGreeting(h.player.DisplayName, h.player.Avatar, cw))

	if !compact {
		sections = append(sections, renderMascotBox(h.mascotVariant, cw))
	}

	sections = append(sections, renderStatsBar(
		h.player.Coins, h.tests, h.hasTests, h.best, cw, compact))

	if compact {
		sections = append(sections, renderArcadeMenuCompact(h.menu.Items, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderArcadeMenu(h.menu.Items, h.menu.Selected, cw))
	}

	content := strings.Join(sections, "\n\n")

	return components.CabinetFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "select"},
		{Key: "enter", Description: "choose"},
		{Key: "ctrl+c", Description: "quit"},
	}
}
