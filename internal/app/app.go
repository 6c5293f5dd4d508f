// Package app wires storage, the domain stores and the screen stack into
// the running program.
package app

import (
	"fmt"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/jsterk/tafel/internal/config"
	"github.com/jsterk/tafel/internal/profile"
	"github.com/jsterk/tafel/internal/router"
	"github.com/jsterk/tafel/internal/score"
	"github.com/jsterk/tafel/internal/screen"
	"github.com/jsterk/tafel/internal/screens/home"
	"github.com/jsterk/tafel/internal/screens/setup"
	"github.com/jsterk/tafel/internal/screens/welcome"
	"github.com/jsterk/tafel/internal/storage"
	"github.com/jsterk/tafel/internal/ui/layout"
)

// Options are the runtime knobs the CLI passes in.
type Options struct {
	// DataDir overrides the resolved data directory when non-empty.
	DataDir string
	// ConfigPath overrides the default config file location.
	ConfigPath string
	// Mode is "practice" or "test" to jump straight into setup after the
	// profile pick, empty for the normal menu flow.
	Mode string
}

// OpenData resolves the backend and data directory from the options, the
// environment and the config file, then opens the store. The caller owns
// the returned store.
func OpenData(opts Options) (storage.KeyValueStore, error) {
	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		cfgPath = config.DefaultConfigPath()
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return nil, err
	}

	backend, known := config.NormalizeBackend(cfg.Storage.Backend)
	if !known {
		fmt.Fprintf(os.Stderr, "unknown storage backend in config, using %s\n", backend)
	}

	dir, err := resolveDataDir(opts.DataDir, cfg)
	if err != nil {
		return nil, err
	}
	if err := storage.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	if backend == config.BackendFile {
		return storage.NewFileStore(dir)
	}
	return storage.OpenSQLite(filepath.Join(dir, storage.DBFileName))
}

// resolveDataDir picks the data directory: flag first, then TAFEL_DATA,
// then the config file, then the platform default.
func resolveDataDir(flagDir string, cfg config.FileConfig) (string, error) {
	if flagDir != "" {
		return flagDir, nil
	}
	if p := os.Getenv("TAFEL_DATA"); p != "" {
		return p, nil
	}
	if cfg.Storage.Dir != nil && *cfg.Storage.Dir != "" {
		return *cfg.Storage.Dir, nil
	}
	return storage.DefaultDataDir()
}

// AppModel is the root Bubble Tea model: it owns the window size, the
// header badge and the screen stack.
type AppModel struct {
	router *router.Router
	width  int
	height int

	// Header badge, updated by StatusMsg. Empty player hides it.
	player string
	coins  int
}

// newAppModel seeds the default profiles and builds the screen stack,
// starting on the profile picker.
func newAppModel(kv storage.KeyValueStore, mode string) (AppModel, error) {
	profiles := profile.NewStore(kv)
	scores := score.NewStore(kv)
	settings := config.NewSettingsStore(kv)

	if _, err := profiles.EnsureDefaults(); err != nil {
		return AppModel{}, fmt.Errorf("seed profiles: %w", err)
	}

	// The picker and home both need a way to build the other. The first
	// home consumes the --mode shortcut; later ones behave normally.
	pending := mode
	var makeRoster func() screen.Screen
	makeHome := func(p profile.Profile) screen.Screen {
		h := home.New(p, profiles, scores, settings, makeRoster)
		switch pending {
		case "practice":
			h.AutoStart(setup.ModePractice)
		case "test":
			h.AutoStart(setup.ModeTest)
		}
		pending = ""
		return h
	}
	makeRoster = func() screen.Screen {
		return welcome.New(profiles, scores, makeHome)
	}

	return AppModel{router: router.New(makeRoster())}, nil
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.StatusMsg:
		m.player = msg.Player
		m.coins = msg.Coins
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	return m, m.router.Update(msg)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.player, m.coins, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// footerHints asks the active screen for its hints and falls back to
// stack-depth defaults for screens that provide none.
func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "esc", Description: "back"},
			{Key: "ctrl+c", Description: "quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "navigate"},
		{Key: "enter", Description: "select"},
		{Key: "ctrl+c", Description: "quit"},
	}
}

// Run opens the data store, builds the model and runs the program until
// the player quits.
func Run(opts Options) error {
	kv, err := OpenData(opts)
	if err != nil {
		return err
	}
	defer kv.Close()

	model, err := newAppModel(kv, opts.Mode)
	if err != nil {
		return err
	}

	if _, err := tea.NewProgram(model).Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
