package session

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/jsterk/tafel/internal/question"
	"github.com/jsterk/tafel/internal/rewards"
	"github.com/jsterk/tafel/internal/score"
)

// PracticeConfig selects the tables for an untimed practice run.
type PracticeConfig struct {
	Tables []int
}

// Practice is the state machine for an adaptive practice run. It has no
// natural end: the player stops it by hand, sees a summary once and nothing
// is persisted. Question picks are weighted toward tables answered wrong or
// slowly earlier in the same run.
type Practice struct {
	// ID identifies the run for logging and screen routing.
	ID string

	tables []int
	member map[int]bool
	rnd    *rand.Rand

	stats   map[int]score.TableStat
	current question.Question

	elapsed       time.Duration
	questionStart time.Duration

	attempts int
	correct  int
	streak   int
	stopped  bool
}

// NewPractice validates the config and serves the first question.
func NewPractice(cfg PracticeConfig, rnd *rand.Rand) (*Practice, error) {
	if len(cfg.Tables) == 0 {
		return nil, ErrNoTables
	}
	p := &Practice{
		ID:     uuid.NewString(),
		tables: append([]int(nil), cfg.Tables...),
		member: memberSet(cfg.Tables),
		rnd:    rnd,
		stats:  make(map[int]score.TableStat),
	}
	p.current = question.NextPractice(p.rnd, p.tables, p.stats)
	return p, nil
}

// Current returns the question on screen.
func (p *Practice) Current() question.Question { return p.current }

// Tables returns the configured selection.
func (p *Practice) Tables() []int { return p.tables }

// Attempts returns how many answers were scored, retries included.
func (p *Practice) Attempts() int { return p.attempts }

// CorrectCount returns how many answers were right.
func (p *Practice) CorrectCount() int { return p.correct }

// Streak returns the current run of consecutive correct answers.
func (p *Practice) Streak() int { return p.streak }

// Elapsed returns accumulated session time.
func (p *Practice) Elapsed() time.Duration { return p.elapsed }

// Advance adds one tick of frame time to the session clock.
func (p *Practice) Advance(dt time.Duration) {
	if !p.stopped {
		p.elapsed += dt
	}
}

// Submit scores raw input against the current question. A wrong answer
// keeps the same question up for another try without restarting its timer,
// so a struggling table accrues real response time. A correct answer serves
// a fresh weighted pick.
func (p *Practice) Submit(raw string) (Feedback, error) {
	if p.stopped {
		return Feedback{}, ErrFinished
	}
	guess, err := parseAnswer(raw)
	if err != nil {
		return Feedback{}, err
	}

	q := p.current
	correct := guess == q.Answer()
	seconds := (p.elapsed - p.questionStart).Seconds()

	table := attributeTable(q, p.member, false)
	stat := p.stats[table]
	stat.Record(correct, seconds)
	p.stats[table] = stat

	p.attempts++
	fb := Feedback{
		Question:  q,
		Guess:     guess,
		Correct:   correct,
		Table:     table,
		CoinDelta: rewards.LiveDelta(table, correct),
	}

	if correct {
		p.correct++
		p.streak++
		p.current = question.NextPractice(p.rnd, p.tables, p.stats)
		p.questionStart = p.elapsed
	} else {
		p.streak = 0
		fb.Retry = true
	}
	return fb, nil
}

// Snapshot is the throwaway summary of a stopped practice run.
type Snapshot struct {
	Tables   []int
	Attempts int
	Correct  int
	Streak   int
	Elapsed  time.Duration
	Stats    map[int]score.TableStat
}

// Accuracy returns correct over attempts, 0 for an empty run.
func (s Snapshot) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts)
}

// Stop ends the run and captures the summary snapshot.
func (p *Practice) Stop() Snapshot {
	p.stopped = true
	stats := make(map[int]score.TableStat, len(p.stats))
	for table, stat := range p.stats {
		stats[table] = stat
	}
	return Snapshot{
		Tables:   p.tables,
		Attempts: p.attempts,
		Correct:  p.correct,
		Streak:   p.streak,
		Elapsed:  p.elapsed,
		Stats:    stats,
	}
}
