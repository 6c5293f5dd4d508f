// Package quiz runs an active session: it feeds typed answers to the
// session engine, keeps the clock ticking and hands off to the summary
// screen when the run ends.
package quiz

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/jsterk/tafel/internal/profile"
	"github.com/jsterk/tafel/internal/router"
	"github.com/jsterk/tafel/internal/score"
	"github.com/jsterk/tafel/internal/screen"
	"github.com/jsterk/tafel/internal/screens/summary"
	"github.com/jsterk/tafel/internal/session"
	"github.com/jsterk/tafel/internal/ui/components"
	"github.com/jsterk/tafel/internal/ui/layout"
	"github.com/jsterk/tafel/internal/ui/theme"
)

// Flash durations, tuned to how long each message needs to be readable.
const (
	correctFlash = time.Second
	wrongFlash   = 2500 * time.Millisecond
	inputFlash   = 1500 * time.Millisecond
	startFlash   = 3 * time.Second
)

// praise lines rotate on correct answers.
var praise = []string{"Nice one!", "Great job!", "Super!", "You're on fire!", "Keep it up!"}

// QuizScreen implements screen.Screen for an active practice or test run.
type QuizScreen struct {
	player   profile.Profile
	profiles *profile.Store
	scores   *score.Store

	practiceCfg session.PracticeConfig
	testCfg     session.TestConfig
	isTest      bool

	practice *session.Practice
	test     *session.Test

	input       components.TextInput
	feedback    string
	feedbackSeq int
	showConfirm bool
	finishing   bool
	errMsg      string

	attempts []summary.Attempt
	mistakes []summary.Mistake
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// NewPractice creates the screen for an untimed practice run. Coins are
// settled per answer, so no score store is needed.
func NewPractice(player profile.Profile, profiles *profile.Store, cfg session.PracticeConfig) *QuizScreen {
	return &QuizScreen{
		player:      player,
		profiles:    profiles,
		practiceCfg: cfg,
		input:       answerInput(),
	}
}

// NewTest creates the screen for a timed, scored test run.
func NewTest(player profile.Profile, profiles *profile.Store, scores *score.Store, cfg session.TestConfig) *QuizScreen {
	return &QuizScreen{
		player:   player,
		profiles: profiles,
		scores:   scores,
		testCfg:  cfg,
		isTest:   true,
		input:    answerInput(),
	}
}

func answerInput() components.TextInput {
	return components.NewTextInput("Type your answer...", 4)
}

func (q *QuizScreen) Init() tea.Cmd {
	return tea.Batch(q.initSession(), q.input.Init())
}

func (q *QuizScreen) Title() string {
	if q.isTest {
		return "Test"
	}
	return "Practice"
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	if q.showConfirm {
		return []layout.KeyHint{
			{Key: "y", Description: "stop the test"},
			{Key: "n", Description: "keep going"},
		}
	}
	quit := "finish"
	if q.isTest {
		quit = "stop"
	}
	return []layout.KeyHint{
		{Key: "enter", Description: "answer"},
		{Key: "esc", Description: quit},
	}
}

// initSession builds the engine off the update loop; generating a long
// test sequence is not free.
func (q *QuizScreen) initSession() tea.Cmd {
	return func() tea.Msg {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		if q.isTest {
			t, err := session.NewTest(q.testCfg, rnd)
			return sessionReadyMsg{test: t, err: err}
		}
		p, err := session.NewPractice(q.practiceCfg, rnd)
		return sessionReadyMsg{practice: p, err: err}
	}
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionReadyMsg:
		return q.handleReady(msg)

	case timerTickMsg:
		return q.handleTick()

	case feedbackClearMsg:
		if msg.seq == q.feedbackSeq {
			q.feedback = ""
		}
		return q, nil

	case tea.KeyPressMsg:
		return q.handleKey(msg)
	}

	// Forward to input if a question is up.
	if q.active() {
		var cmd tea.Cmd
		q.input, cmd = q.input.Update(msg)
		return q, cmd
	}
	return q, nil
}

// active reports whether typed input should reach the answer box.
func (q *QuizScreen) active() bool {
	if q.errMsg != "" || q.showConfirm || q.finishing {
		return false
	}
	if q.isTest {
		return q.test != nil && !q.test.Finished()
	}
	return q.practice != nil
}

func (q *QuizScreen) handleReady(msg sessionReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.err != nil {
		q.errMsg = msg.err.Error()
		return q, nil
	}
	q.practice = msg.practice
	q.test = msg.test
	if q.isTest {
		return q, tea.Batch(
			tickCmd(),
			q.flash(theme.Correct.Render("Go! The clock is ticking."), startFlash),
		)
	}
	return q, tickCmd()
}

func (q *QuizScreen) handleTick() (screen.Screen, tea.Cmd) {
	if q.errMsg != "" || q.finishing {
		return q, nil
	}
	if q.isTest {
		if q.test == nil {
			return q, nil
		}
		if q.test.Advance(time.Second) {
			return q, q.finishTest()
		}
		if q.test.Finished() {
			return q, nil
		}
		return q, tickCmd()
	}
	if q.practice == nil {
		return q, nil
	}
	q.practice.Advance(time.Second)
	return q, tickCmd()
}

func (q *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state, any key goes back.
	if q.errMsg != "" {
		return q, func() tea.Msg { return router.PopScreenMsg{} }
	}

	// Quit confirmation dialog.
	if q.showConfirm {
		switch key {
		case "y", "Y":
			q.showConfirm = false
			q.test.Abandon()
			return q, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			q.showConfirm = false
		}
		return q, nil
	}

	switch key {
	case "esc":
		if q.isTest {
			if q.test == nil {
				return q, func() tea.Msg { return router.PopScreenMsg{} }
			}
			if !q.test.Finished() {
				q.showConfirm = true
			}
			return q, nil
		}
		if q.practice == nil {
			return q, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return q, q.stopPractice()
	case "enter":
		return q.submit()
	}

	if q.active() {
		var cmd tea.Cmd
		q.input, cmd = q.input.Update(msg)
		return q, cmd
	}
	return q, nil
}

func (q *QuizScreen) submit() (screen.Screen, tea.Cmd) {
	if !q.active() {
		return q, nil
	}
	if q.isTest {
		return q.submitTest()
	}
	return q.submitPractice()
}

func (q *QuizScreen) submitPractice() (screen.Screen, tea.Cmd) {
	fb, err := q.practice.Submit(q.input.Value())
	if err != nil {
		return q, q.inputError(err)
	}

	q.attempts = append(q.attempts, summary.Attempt{
		Question: fb.Question,
		Guess:    fb.Guess,
		Correct:  fb.Correct,
	})

	var cmds []tea.Cmd
	if cmd := q.applyCoins(fb.CoinDelta); cmd != nil {
		cmds = append(cmds, cmd)
	}

	q.input.Reset()
	if fb.Correct {
		cmds = append(cmds, q.flash(praiseLine(q.practice.CorrectCount(), fb.CoinDelta), correctFlash))
	} else {
		cmds = append(cmds, q.flash(almostLine(fb), wrongFlash))
	}
	return q, tea.Batch(cmds...)
}

func (q *QuizScreen) submitTest() (screen.Screen, tea.Cmd) {
	fb, err := q.test.Submit(q.input.Value())
	if err != nil {
		return q, q.inputError(err)
	}

	if !fb.Correct {
		q.mistakes = append(q.mistakes, summary.Mistake{Question: fb.Question, Guess: fb.Guess})
	}

	q.input.Reset()
	if fb.Done {
		return q, q.finishTest()
	}
	if fb.Correct {
		return q, q.flash(praiseLine(q.test.CorrectCount(), fb.CoinDelta), correctFlash)
	}
	return q, q.flash(almostLine(fb), wrongFlash)
}

// inputError flashes the matching complaint. Any other error means the
// session already ended and the submit is dropped.
func (q *QuizScreen) inputError(err error) tea.Cmd {
	switch {
	case errors.Is(err, session.ErrEmptyAnswer):
		return q.flash(theme.Incorrect.Render("Type an answer first."), inputFlash)
	case errors.Is(err, session.ErrInvalidAnswer):
		q.input.Reset()
		return q.flash(theme.Incorrect.Render("Numbers only."), inputFlash)
	}
	return nil
}

// applyCoins settles a live practice delta on the profile and refreshes
// the header badge.
func (q *QuizScreen) applyCoins(delta int) tea.Cmd {
	if delta == 0 {
		return nil
	}
	updated, err := q.profiles.AdjustCoins(q.player.ID, delta)
	if err != nil {
		return nil
	}
	q.player = updated
	player := updated
	return func() tea.Msg {
		return screen.StatusMsg{
			Player: fmt.Sprintf("%s %s", player.Avatar, player.DisplayName),
			Coins:  player.Coins,
		}
	}
}

// flash shows a pre-styled feedback line and arms its clear timer.
func (q *QuizScreen) flash(text string, d time.Duration) tea.Cmd {
	q.feedback = text
	q.feedbackSeq++
	seq := q.feedbackSeq
	return tea.Tick(d, func(time.Time) tea.Msg {
		return feedbackClearMsg{seq: seq}
	})
}

func praiseLine(correct, delta int) string {
	line := theme.Correct.Render(praise[correct%len(praise)])
	if delta > 0 {
		line += "  " + theme.CoinGain.Render(fmt.Sprintf("+%d ●", delta))
	}
	return line
}

func almostLine(fb session.Feedback) string {
	line := theme.Incorrect.Render(fmt.Sprintf("Almost! %s = %d", fb.Question.Text(), fb.Question.Answer()))
	if fb.CoinDelta < 0 {
		line += "  " + theme.CoinLoss.Render(fmt.Sprintf("%d ●", fb.CoinDelta))
	}
	return line
}

// finishTest settles the run once: record the result, pay out, swap in the
// summary. The guard keeps a timeout tick and a final answer from settling
// twice.
func (q *QuizScreen) finishTest() tea.Cmd {
	if q.finishing {
		return nil
	}
	q.finishing = true

	test := q.test
	scores := q.scores
	profiles := q.profiles
	player := q.player
	mistakes := q.mistakes
	retry := q.retryFactory()

	return func() tea.Msg {
		result := test.Result(player.ID, player.DisplayName, time.Now())
		payout := test.Payout()
		_ = scores.Record(result)
		if updated, err := profiles.AdjustCoins(player.ID, payout); err == nil {
			player = updated
		}
		return router.ReplaceScreenMsg{
			Screen: summary.NewTest(player, result, payout, mistakes, retry),
		}
	}
}

// stopPractice ends the run and swaps in the throwaway summary. Coins were
// already settled per answer, so there is nothing to pay out.
func (q *QuizScreen) stopPractice() tea.Cmd {
	if q.finishing {
		return nil
	}
	q.finishing = true

	snap := q.practice.Stop()
	player := q.player
	attempts := q.attempts
	retry := q.retryFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{
			Screen: summary.NewPractice(player, snap, attempts, retry),
		}
	}
}

// retryFactory builds the "play again" constructor handed to the summary.
func (q *QuizScreen) retryFactory() func() screen.Screen {
	player, profiles, scores := q.player, q.profiles, q.scores
	if q.isTest {
		cfg := q.testCfg
		return func() screen.Screen { return NewTest(player, profiles, scores, cfg) }
	}
	cfg := q.practiceCfg
	return func() screen.Screen { return NewPractice(player, profiles, cfg) }
}
