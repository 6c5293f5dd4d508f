package welcome

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/jsterk/tafel/internal/profile"
	"github.com/jsterk/tafel/internal/router"
	"github.com/jsterk/tafel/internal/score"
	"github.com/jsterk/tafel/internal/screen"
	"github.com/jsterk/tafel/internal/ui/components"
	"github.com/jsterk/tafel/internal/ui/layout"
	"github.com/jsterk/tafel/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 4500 * time.Millisecond
)

const maxNameLen = 18

const mascotArt = `  ╭───────────╮
  │  ┌─────┐  │
  │  │ ◉ ◉ │  │
  │  │  ▽  │  │
  │  ├─────┤  │
  │  │ 7×8 │  │
  │  └─────┘  │
  ╰───────────╯`

// sparkle frames cycle around the mascot
var sparkleFrames = []string{"★", "✦"}

type tickMsg time.Time

// profilesLoadedMsg delivers the roster read from the store.
type profilesLoadedMsg struct {
	profiles []profile.Profile
	err      error
}

type mode int

const (
	modeSplash mode = iota
	modeRoster
	modeName
	modeAvatar
)

// WelcomeScreen plays a splash animation and then asks who is playing. The
// roster lists every profile with its coin balance; picking one swaps in the
// home screen for that player. New profiles are created in two steps, name
// then avatar, and deleting one also purges its test history.
type WelcomeScreen struct {
	profiles    *profile.Store
	scores      *score.Store
	homeFactory func(profile.Profile) screen.Screen

	mode         mode
	elapsed      time.Duration
	tickCount    int
	transitioned bool

	roster   []profile.Profile
	loaded   bool
	loadErr  error
	selected int

	confirmDelete bool
	statusLine    string

	nameInput   components.TextInput
	pendingName string
	avatarPick  components.Picker
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that starts on the splash animation.
func New(profiles *profile.Store, scores *score.Store, homeFactory func(profile.Profile) screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		profiles:    profiles,
		scores:      scores,
		homeFactory: homeFactory,
	}
}

// NewRoster creates a WelcomeScreen that opens straight on the profile
// picker, used when switching players from the home screen.
func NewRoster(profiles *profile.Store, scores *score.Store, homeFactory func(profile.Profile) screen.Screen) *WelcomeScreen {
	w := New(profiles, scores, homeFactory)
	w.mode = modeRoster
	return w
}

func (w *WelcomeScreen) Title() string {
	switch w.mode {
	case modeRoster:
		return "Who's playing?"
	case modeName, modeAvatar:
		return "New player"
	default:
		return ""
	}
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	switch w.mode {
	case modeRoster:
		return []layout.KeyHint{
			{Key: "↑/↓", Description: "select"},
			{Key: "enter", Description: "play"},
			{Key: "n", Description: "new player"},
			{Key: "d", Description: "delete"},
		}
	case modeName:
		return []layout.KeyHint{
			{Key: "enter", Description: "next"},
			{Key: "esc", Description: "back"},
		}
	case modeAvatar:
		return []layout.KeyHint{
			{Key: "←/→", Description: "pick"},
			{Key: "enter", Description: "done"},
			{Key: "esc", Description: "back"},
		}
	default:
		return []layout.KeyHint{
			{Key: "any key", Description: "continue"},
		}
	}
}

func (w *WelcomeScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{
		w.loadProfiles(),
		func() tea.Msg { return screen.StatusMsg{} },
	}
	if w.mode == modeSplash {
		cmds = append(cmds, tickCmd())
	}
	return tea.Batch(cmds...)
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) loadProfiles() tea.Cmd {
	return func() tea.Msg {
		profiles, err := w.profiles.All()
		return profilesLoadedMsg{profiles: profiles, err: err}
	}
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if w.mode != modeSplash {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tickCmd()

	case profilesLoadedMsg:
		w.loaded = true
		w.loadErr = msg.err
		w.roster = msg.profiles
		if w.selected >= len(w.roster) {
			w.selected = 0
		}
		return w, nil

	case tea.KeyPressMsg:
		return w.handleKey(msg)
	}

	if w.mode == modeName {
		var cmd tea.Cmd
		w.nameInput, cmd = w.nameInput.Update(msg)
		return w, cmd
	}
	return w, nil
}

func (w *WelcomeScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch w.mode {
	case modeRoster:
		return w.handleRosterKey(msg)
	case modeName:
		return w.handleNameKey(msg)
	case modeAvatar:
		return w.handleAvatarKey(msg)
	default:
		// Any key skips the rest of the splash.
		w.mode = modeRoster
		return w, nil
	}
}

func (w *WelcomeScreen) handleRosterKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if w.confirmDelete {
		switch msg.String() {
		case "y", "Y":
			w.confirmDelete = false
			return w, w.deleteSelected()
		case "n", "N", "esc":
			w.confirmDelete = false
		}
		return w, nil
	}

	w.statusLine = ""
	switch msg.String() {
	case "up", "k":
		if len(w.roster) > 0 {
			w.selected = (w.selected - 1 + len(w.roster)) % len(w.roster)
		}
	case "down", "j":
		if len(w.roster) > 0 {
			w.selected = (w.selected + 1) % len(w.roster)
		}
	case "enter":
		return w, w.choose()
	case "n":
		w.mode = modeName
		w.pendingName = ""
		w.nameInput = components.NewTextInput("Type your name", maxNameLen)
		return w, w.nameInput.Init()
	case "d":
		if len(w.roster) <= 1 {
			w.statusLine = "Keep at least one player."
			return w, nil
		}
		w.confirmDelete = true
	}
	return w, nil
}

func (w *WelcomeScreen) handleNameKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		w.mode = modeRoster
		w.statusLine = ""
		return w, nil
	case "enter":
		name := strings.TrimSpace(w.nameInput.Value())
		if name == "" {
			w.statusLine = "Enter a name first."
			return w, nil
		}
		w.pendingName = name
		w.statusLine = ""
		w.mode = modeAvatar
		w.avatarPick = newAvatarPicker()
		return w, nil
	}

	w.statusLine = ""
	var cmd tea.Cmd
	w.nameInput, cmd = w.nameInput.Update(msg)
	return w, cmd
}

func newAvatarPicker() components.Picker {
	avatars := profile.Avatars()
	options := make([]components.PickerOption, len(avatars))
	for i, a := range avatars {
		options[i] = components.PickerOption{Label: a}
	}
	p := components.NewPicker(options, 0)
	p.Horizontal = true
	p.Focused = true
	return p
}

func (w *WelcomeScreen) handleAvatarKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		w.mode = modeName
		return w, w.nameInput.Init()
	case "enter":
		return w, w.createProfile()
	}

	var cmd tea.Cmd
	w.avatarPick, cmd = w.avatarPick.Update(msg)
	return w, cmd
}

// choose hands the selected profile to the home screen.
func (w *WelcomeScreen) choose() tea.Cmd {
	if len(w.roster) == 0 || w.selected >= len(w.roster) {
		return nil
	}
	return w.enterHome(w.roster[w.selected])
}

func (w *WelcomeScreen) createProfile() tea.Cmd {
	created, err := w.profiles.Create(w.pendingName, w.avatarPick.Value().Label)
	if err != nil {
		w.statusLine = "Could not save the new player."
		w.mode = modeName
		return w.nameInput.Init()
	}
	return w.enterHome(created)
}

func (w *WelcomeScreen) enterHome(chosen profile.Profile) tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	home := w.homeFactory(chosen)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: home}
	}
}

func (w *WelcomeScreen) deleteSelected() tea.Cmd {
	if w.selected >= len(w.roster) {
		return nil
	}
	victim := w.roster[w.selected]
	if err := w.profiles.Delete(victim.ID); err != nil {
		w.statusLine = "Could not delete " + victim.DisplayName + "."
		return nil
	}
	if err := w.scores.Clear(victim.ID); err != nil {
		w.statusLine = "Deleted, but old scores stuck around."
		return w.loadProfiles()
	}
	w.statusLine = "Bye, " + victim.DisplayName + "!"
	return w.loadProfiles()
}

func (w *WelcomeScreen) View(width, height int) string {
	switch w.mode {
	case modeRoster:
		return w.viewRoster(width, height)
	case modeName:
		return w.viewName(width, height)
	case modeAvatar:
		return w.viewAvatar(width, height)
	default:
		return w.viewSplash(width, height)
	}
}

func (w *WelcomeScreen) viewSplash(width, height int) string {
	var sections []string

	mascotStyle := lipgloss.NewStyle().Foreground(theme.Primary)

	// Phase 1+: mascot
	rendered := mascotStyle.Render(mascotArt)

	// Phase 2+: sparkles around mascot
	if w.elapsed >= phase1End {
		frame := w.tickCount % len(sparkleFrames)
		sparkle := sparkleFrames[frame]

		accentStyle := lipgloss.NewStyle().Foreground(theme.Accent)
		secondaryStyle := lipgloss.NewStyle().Foreground(theme.Secondary)

		s1 := accentStyle.Render(sparkle)
		s2 := secondaryStyle.Render(sparkle)

		// Place sparkles on sides of mascot
		lines := strings.Split(rendered, "\n")
		if len(lines) > 1 {
			lines[0] = s1 + "  " + lines[0] + "  " + s2
		}
		if len(lines) > 3 {
			lines[3] = s2 + "  " + lines[3] + "  " + s1
		}
		if len(lines) > 6 {
			lines[6] = s1 + "  " + lines[6] + "  " + s2
		}
		rendered = strings.Join(lines, "\n")
	}

	sections = append(sections, rendered)

	// Phase 3+: banner + tagline
	if w.elapsed >= phase2End {
		sections = append(sections, "")
		sections = append(sections, RenderBanner(width))
		sections = append(sections, "")

		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Let's practice those tables!")
		sections = append(sections, tagline)

		sections = append(sections, "")
		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to continue")
		sections = append(sections, hint)
	}

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (w *WelcomeScreen) viewRoster(width, height int) string {
	if w.loadErr != nil {
		content := theme.Incorrect.Render("Could not load the players.") + "\n\n" +
			theme.Hint.Render(w.loadErr.Error())
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
	}
	if !w.loaded {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Loading players..."))
	}

	cw := components.ContentWidth(width)

	if w.confirmDelete && w.selected < len(w.roster) {
		victim := w.roster[w.selected]
		content := theme.Title.Render("Delete "+victim.DisplayName+"?") + "\n\n" +
			theme.Body.Render("Their coins and test scores go too.") + "\n\n" +
			theme.Incorrect.Render("[Y] Yes, delete") + "   " +
			theme.Body.Render("[N] Keep them")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			components.ArcadeCard(content, cw))
	}

	var rows []string
	for i, p := range w.roster {
		label := fmt.Sprintf("%s  %-14s", p.Avatar, p.DisplayName)
		coins := lipgloss.NewStyle().Foreground(theme.Coin).Render(fmt.Sprintf("● %d", p.Coins))
		if i == w.selected {
			rows = append(rows, theme.Selected.Render("▸ "+label)+" "+coins)
		} else {
			rows = append(rows, theme.Unselected.Render("  "+label)+" "+coins)
		}
	}

	sections := []string{
		theme.Title.Render("Who's playing?"),
		theme.Subtitle.Render("Pick a player, or press n for a new one"),
		components.ArcadeCard(strings.Join(rows, "\n"), cw),
	}
	if w.statusLine != "" {
		sections = append(sections, theme.Hint.Render(w.statusLine))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (w *WelcomeScreen) viewName(width, height int) string {
	cw := components.ContentWidth(width)

	sections := []string{
		theme.Title.Render("What's your name?"),
		components.ArcadeCard(w.nameInput.View(), cw),
	}
	if w.statusLine != "" {
		sections = append(sections, theme.Incorrect.Render(w.statusLine))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (w *WelcomeScreen) viewAvatar(width, height int) string {
	cw := components.ContentWidth(width)

	sections := []string{
		theme.Title.Render("Pick a picture"),
		theme.Subtitle.Render("for " + w.pendingName),
		components.ArcadeCard(w.avatarPick.View(), cw),
	}
	if w.statusLine != "" {
		sections = append(sections, theme.Incorrect.Render(w.statusLine))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
