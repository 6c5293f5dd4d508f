// Package progress is the read-only stats screen: a leaderboard across
// profiles plus trends, tricky tables and recent tests for the active
// player.
package progress

import (
	tea "charm.land/bubbletea/v2"

	"github.com/jsterk/tafel/internal/profile"
	prog "github.com/jsterk/tafel/internal/progress"
	"github.com/jsterk/tafel/internal/router"
	"github.com/jsterk/tafel/internal/score"
	"github.com/jsterk/tafel/internal/screen"
	"github.com/jsterk/tafel/internal/ui/layout"
)

type statsLoadedMsg struct {
	entries []prog.NamedResults
	mine    []score.TestResult
	err     error
}

// ProgressScreen shows stored results; it never writes anything.
type ProgressScreen struct {
	profiles *profile.Store
	scores   *score.Store
	activeID string

	entries []prog.NamedResults
	mine    []score.TestResult
	loaded  bool
	errMsg  string
}

var _ screen.Screen = (*ProgressScreen)(nil)
var _ screen.KeyHintProvider = (*ProgressScreen)(nil)

// New creates the stats screen for the given active profile.
func New(profiles *profile.Store, scores *score.Store, activeID string) *ProgressScreen {
	return &ProgressScreen{
		profiles: profiles,
		scores:   scores,
		activeID: activeID,
	}
}

func (s *ProgressScreen) Init() tea.Cmd {
	return func() tea.Msg {
		all, err := s.profiles.All()
		if err != nil {
			return statsLoadedMsg{err: err}
		}
		msg := statsLoadedMsg{entries: make([]prog.NamedResults, 0, len(all))}
		for _, p := range all {
			results, err := s.scores.ResultsFor(p.ID)
			if err != nil {
				return statsLoadedMsg{err: err}
			}
			msg.entries = append(msg.entries, prog.NamedResults{
				ProfileID: p.ID,
				Name:      p.DisplayName,
				Results:   results,
			})
			if p.ID == s.activeID {
				msg.mine = results
			}
		}
		return msg
	}
}

func (s *ProgressScreen) Title() string {
	return "My progress"
}

func (s *ProgressScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "esc", Description: "back"},
	}
}

func (s *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
		} else {
			s.entries = msg.entries
			s.mine = msg.mine
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

// tested reports whether any profile has at least one stored result.
func (s *ProgressScreen) tested() bool {
	for _, e := range s.entries {
		if len(e.Results) > 0 {
			return true
		}
	}
	return false
}
