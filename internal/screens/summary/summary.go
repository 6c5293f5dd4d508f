// Package summary shows the results card after a run ends: score and coin
// payout for tests, a throwaway recap for practice. Reached only by screen
// replacement from an active quiz, so going back skips the finished run.
package summary

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/jsterk/tafel/internal/profile"
	"github.com/jsterk/tafel/internal/question"
	"github.com/jsterk/tafel/internal/router"
	"github.com/jsterk/tafel/internal/score"
	"github.com/jsterk/tafel/internal/screen"
	"github.com/jsterk/tafel/internal/session"
	"github.com/jsterk/tafel/internal/ui/layout"
)

// Mistake is one wrong test answer, kept for the recap list.
type Mistake struct {
	Question question.Question
	Guess    int
}

// Attempt is one answered practice question.
type Attempt struct {
	Question question.Question
	Guess    int
	Correct  bool
}

// SummaryScreen displays the end-of-run results.
type SummaryScreen struct {
	player profile.Profile
	isTest bool

	result   score.TestResult
	payout   int
	mistakes []Mistake

	snap     session.Snapshot
	attempts []Attempt

	retry func() screen.Screen
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// NewTest creates the results screen for a finished test. The player carries
// the balance after the payout was applied.
func NewTest(player profile.Profile, result score.TestResult, payout int, mistakes []Mistake, retry func() screen.Screen) *SummaryScreen {
	return &SummaryScreen{
		player:   player,
		isTest:   true,
		result:   result,
		payout:   payout,
		mistakes: mistakes,
		retry:    retry,
	}
}

// NewPractice creates the recap screen for a stopped practice run.
func NewPractice(player profile.Profile, snap session.Snapshot, attempts []Attempt, retry func() screen.Screen) *SummaryScreen {
	return &SummaryScreen{
		player:   player,
		snap:     snap,
		attempts: attempts,
		retry:    retry,
	}
}

// Init refreshes the header badge; the run may have changed the balance.
func (s *SummaryScreen) Init() tea.Cmd {
	player := s.player
	return func() tea.Msg {
		return screen.StatusMsg{
			Player: fmt.Sprintf("%s %s", player.Avatar, player.DisplayName),
			Coins:  player.Coins,
		}
	}
}

func (s *SummaryScreen) Title() string {
	if s.isTest {
		return "Test results"
	}
	return "Practice results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "enter", Description: "play again"},
		{Key: "esc", Description: "back to setup"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch key.String() {
	case "enter":
		retry := s.retry
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: retry()}
		}
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

// timedOut reports whether the test clock ran out before all questions
// were answered.
func (s *SummaryScreen) timedOut() bool {
	return s.result.Answered < s.result.QuestionCount
}
