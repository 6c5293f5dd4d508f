// Package session runs the two play modes as plain state machines: untimed
// adaptive practice and timed scored tests. Screens feed them raw input and
// tick durations; the machines own question selection, per-table stats and
// the termination rules. Neither machine reads the wall clock or touches a
// store.
package session

import (
	"errors"
	"strconv"
	"strings"

	"github.com/jsterk/tafel/internal/question"
)

var (
	// ErrNoTables refuses to start a session with an empty table selection.
	ErrNoTables = errors.New("no tables selected")

	// ErrEmptyAnswer rejects a submit with blank input. State is unchanged
	// and the caller keeps its input buffer.
	ErrEmptyAnswer = errors.New("empty answer")

	// ErrInvalidAnswer rejects non-numeric input. State is unchanged but
	// the caller should clear its input buffer.
	ErrInvalidAnswer = errors.New("answer is not a number")

	// ErrFinished rejects submits on a session that already ended.
	ErrFinished = errors.New("session already finished")
)

// Reason records how a session ended.
type Reason int

const (
	ReasonNone    Reason = iota // still running
	ReasonNormal                // test answered its full question count
	ReasonTimeout               // test ran out the clock
	ReasonStopped               // ended by hand
)

// Feedback reports what a single submitted answer did.
type Feedback struct {
	// Question is the question that was just scored.
	Question question.Question

	// Guess is the parsed input.
	Guess int

	// Correct reports whether Guess matched the product.
	Correct bool

	// Table is the table the answer was attributed to.
	Table int

	// CoinDelta is the live coin feedback for this answer. Practice runs
	// apply it to the profile immediately; tests only display it and
	// settle once at the end.
	CoinDelta int

	// Retry means the same question stays on screen (practice, wrong answer).
	Retry bool

	// Done means that was the last question (test, normal finish).
	Done bool
}

// parseAnswer validates raw input and extracts the guessed product.
func parseAnswer(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, ErrEmptyAnswer
	}
	guess, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, ErrInvalidAnswer
	}
	return guess, nil
}

// attributeTable picks the table a question counts against: the left operand
// when it is in the configured set, else the right, else a fallback. Tests
// blame the larger operand, practice the left one.
func attributeTable(q question.Question, member map[int]bool, testMode bool) int {
	if member[q.Left] {
		return q.Left
	}
	if member[q.Right] {
		return q.Right
	}
	if testMode && q.Right > q.Left {
		return q.Right
	}
	return q.Left
}

func memberSet(tables []int) map[int]bool {
	m := make(map[int]bool, len(tables))
	for _, t := range tables {
		m[t] = true
	}
	return m
}
