package welcome

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/jsterk/tafel/internal/profile"
	"github.com/jsterk/tafel/internal/router"
	"github.com/jsterk/tafel/internal/score"
	"github.com/jsterk/tafel/internal/screen"
)

// memKV is an in-memory KeyValueStore for screen tests.
type memKV struct {
	data map[string][]byte
}

func newMemKV() *memKV { return &memKV{data: make(map[string][]byte)} }

func (m *memKV) Get(key string) ([]byte, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}
func (m *memKV) Set(key string, value []byte) error { m.data[key] = value; return nil }
func (m *memKV) Delete(key string) error            { delete(m.data, key); return nil }
func (m *memKV) Close() error                       { return nil }

// stubScreen stands in for the home screen the factory would build.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home" }
func (s *stubScreen) Title() string                           { return "Home" }

func newTestWelcome(t *testing.T) (*WelcomeScreen, *profile.Store, *score.Store, *int) {
	t.Helper()
	kv := newMemKV()
	profiles := profile.NewStore(kv)
	scores := score.NewStore(kv)
	if _, err := profiles.EnsureDefaults(); err != nil {
		t.Fatalf("seed profiles: %v", err)
	}
	callCount := 0
	factory := func(profile.Profile) screen.Screen {
		callCount++
		return &stubScreen{}
	}
	return New(profiles, scores, factory), profiles, scores, &callCount
}

func loadRoster(t *testing.T, w *WelcomeScreen) {
	t.Helper()
	msg := w.loadProfiles()()
	if _, ok := msg.(profilesLoadedMsg); !ok {
		t.Fatalf("expected profilesLoadedMsg, got %T", msg)
	}
	w.Update(msg)
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func sendTicks(w *WelcomeScreen, n int) {
	for i := 0; i < n; i++ {
		w.Update(tickMsg(time.Now()))
	}
}

func typeWord(w *WelcomeScreen, word string) {
	for _, r := range word {
		w.Update(keyPress(r))
	}
}

func TestSplashShowsBannerAfterPhases(t *testing.T) {
	w, _, _, _ := newTestWelcome(t)

	view := w.View(80, 24)
	if containsTagline(view) {
		t.Error("tagline should not be visible at start")
	}

	sendTicks(w, 15)
	if w.elapsed != 1500*time.Millisecond {
		t.Errorf("expected elapsed 1500ms, got %v", w.elapsed)
	}
	view = w.View(80, 24)
	if !containsTagline(view) {
		t.Error("tagline should be visible once the banner phase starts")
	}
}

func TestSplashElapsedCapped(t *testing.T) {
	w, _, _, callCount := newTestWelcome(t)

	sendTicks(w, 60)
	if w.elapsed != totalDur {
		t.Errorf("expected elapsed capped at %v, got %v", totalDur, w.elapsed)
	}
	if *callCount != 0 {
		t.Errorf("factory should not be called without a choice, got %d", *callCount)
	}
}

func TestKeypressDuringSplashOpensRoster(t *testing.T) {
	w, _, _, callCount := newTestWelcome(t)

	sendTicks(w, 3)
	w.Update(keyPress(' '))

	if w.mode != modeRoster {
		t.Fatalf("expected roster mode after keypress, got %v", w.mode)
	}
	if *callCount != 0 {
		t.Errorf("factory should not be called before a profile is chosen, got %d", *callCount)
	}
}

func TestNewRosterSkipsSplash(t *testing.T) {
	kv := newMemKV()
	profiles := profile.NewStore(kv)
	scores := score.NewStore(kv)
	w := NewRoster(profiles, scores, func(profile.Profile) screen.Screen { return &stubScreen{} })
	if w.mode != modeRoster {
		t.Fatalf("expected roster mode, got %v", w.mode)
	}
}

func TestChooseProfileEmitsReplace(t *testing.T) {
	w, _, _, callCount := newTestWelcome(t)
	w.mode = modeRoster
	loadRoster(t, w)

	_, cmd := w.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command from choosing a profile")
	}
	msg := cmd()
	replaceMsg, ok := msg.(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", msg)
	}
	if replaceMsg.Screen == nil {
		t.Error("replace screen should not be nil")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called once, got %d", *callCount)
	}
}

func TestChooseOnlyOnce(t *testing.T) {
	w, _, _, callCount := newTestWelcome(t)
	w.mode = modeRoster
	loadRoster(t, w)

	w.Update(specialKey(tea.KeyEnter))
	_, cmd := w.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("second choice should not produce a command")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called exactly once, got %d", *callCount)
	}
}

func TestRosterNavigationWraps(t *testing.T) {
	w, _, _, _ := newTestWelcome(t)
	w.mode = modeRoster
	loadRoster(t, w)

	if w.selected != 0 {
		t.Fatalf("expected first profile selected, got %d", w.selected)
	}
	w.Update(keyPress('j'))
	if w.selected != 1 {
		t.Errorf("expected selection 1 after down, got %d", w.selected)
	}
	w.Update(keyPress('j'))
	if w.selected != 0 {
		t.Errorf("expected wrap to 0, got %d", w.selected)
	}
	w.Update(keyPress('k'))
	if w.selected != 1 {
		t.Errorf("expected wrap to last on up, got %d", w.selected)
	}
}

func TestDeleteLastProfileRefused(t *testing.T) {
	kv := newMemKV()
	profiles := profile.NewStore(kv)
	scores := score.NewStore(kv)
	if _, err := profiles.Create("Solo", "🦊"); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	w := NewRoster(profiles, scores, func(profile.Profile) screen.Screen { return &stubScreen{} })
	loadRoster(t, w)

	w.Update(keyPress('d'))
	if w.confirmDelete {
		t.Error("delete confirm should not open for the last profile")
	}
	if w.statusLine == "" {
		t.Error("expected a status line explaining the refusal")
	}
}

func TestDeleteProfilePurgesScores(t *testing.T) {
	w, profiles, scores, _ := newTestWelcome(t)
	w.mode = modeRoster
	loadRoster(t, w)

	result := score.TestResult{
		ProfileID:        "feline",
		ProfileName:      "Feline",
		Tables:           []int{2},
		QuestionCount:    1,
		Answered:         1,
		Correct:          1,
		TimeLimitSeconds: 480,
		ElapsedSeconds:   30,
		Timestamp:        time.Now(),
		TableStats:       map[int]score.TableStat{2: {Attempts: 1, Correct: 1}},
	}
	if err := scores.Record(result); err != nil {
		t.Fatalf("record result: %v", err)
	}

	w.Update(keyPress('d'))
	if !w.confirmDelete {
		t.Fatal("expected delete confirm to open")
	}
	_, cmd := w.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected a reload command after delete")
	}
	w.Update(cmd())

	if len(w.roster) != 1 {
		t.Fatalf("expected 1 profile left, got %d", len(w.roster))
	}
	remaining, err := profiles.All()
	if err != nil {
		t.Fatalf("load profiles: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID == "feline" {
		t.Errorf("expected feline gone, got %+v", remaining)
	}
	results, err := scores.ResultsFor("feline")
	if err != nil {
		t.Fatalf("load results: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected feline's scores purged, got %d", len(results))
	}
}

func TestDeleteConfirmDismissed(t *testing.T) {
	w, _, _, _ := newTestWelcome(t)
	w.mode = modeRoster
	loadRoster(t, w)

	w.Update(keyPress('d'))
	w.Update(keyPress('n'))
	if w.confirmDelete {
		t.Error("expected confirm dismissed")
	}
	if len(w.roster) != 2 {
		t.Errorf("expected both profiles kept, got %d", len(w.roster))
	}
}

func TestCreateProfileFlow(t *testing.T) {
	w, profiles, _, callCount := newTestWelcome(t)
	w.mode = modeRoster
	loadRoster(t, w)

	w.Update(keyPress('n'))
	if w.mode != modeName {
		t.Fatalf("expected name entry, got %v", w.mode)
	}
	typeWord(w, "mia")
	w.Update(specialKey(tea.KeyEnter))
	if w.mode != modeAvatar {
		t.Fatalf("expected avatar pick, got %v", w.mode)
	}
	if w.pendingName != "mia" {
		t.Errorf("expected pending name mia, got %q", w.pendingName)
	}

	w.Update(keyPress('l'))
	_, cmd := w.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command from creating a profile")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Fatal("expected ReplaceScreenMsg after create")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called once, got %d", *callCount)
	}

	all, err := profiles.All()
	if err != nil {
		t.Fatalf("load profiles: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 profiles, got %d", len(all))
	}
	created := all[2]
	if created.DisplayName != "Mia" {
		t.Errorf("expected display name Mia, got %q", created.DisplayName)
	}
	if created.Avatar != profile.Avatars()[1] {
		t.Errorf("expected second avatar, got %q", created.Avatar)
	}
	if created.Coins != 0 {
		t.Errorf("new profiles start with 0 coins, got %d", created.Coins)
	}
}

func TestEmptyNameRejected(t *testing.T) {
	w, _, _, _ := newTestWelcome(t)
	w.mode = modeRoster
	loadRoster(t, w)

	w.Update(keyPress('n'))
	w.Update(specialKey(tea.KeyEnter))
	if w.mode != modeName {
		t.Errorf("expected to stay on name entry, got %v", w.mode)
	}
	if w.statusLine == "" {
		t.Error("expected a status line asking for a name")
	}
}

func TestEscBacksOutOfCreate(t *testing.T) {
	w, _, _, _ := newTestWelcome(t)
	w.mode = modeRoster
	loadRoster(t, w)

	w.Update(keyPress('n'))
	w.Update(specialKey(tea.KeyEscape))
	if w.mode != modeRoster {
		t.Errorf("expected back on roster, got %v", w.mode)
	}
}

func TestTitlePerMode(t *testing.T) {
	w, _, _, _ := newTestWelcome(t)
	if w.Title() != "" {
		t.Errorf("expected empty splash title, got %q", w.Title())
	}
	w.mode = modeRoster
	if w.Title() != "Who's playing?" {
		t.Errorf("unexpected roster title %q", w.Title())
	}
	w.mode = modeName
	if w.Title() != "New player" {
		t.Errorf("unexpected name title %q", w.Title())
	}
}

func containsTagline(s string) bool {
	return contains(s, "practice those tables")
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
