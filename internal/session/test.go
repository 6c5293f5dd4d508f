package session

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/jsterk/tafel/internal/question"
	"github.com/jsterk/tafel/internal/rewards"
	"github.com/jsterk/tafel/internal/score"
)

// TestConfig fixes the parameters of a timed test run. It is immutable once
// the run starts.
type TestConfig struct {
	Tables        []int
	QuestionCount int
	Speed         SpeedTier
}

// Test is the state machine for a timed, scored test run. The question
// sequence is generated up front; every scored answer advances, right or
// wrong. The run ends when the questions run out, the clock does, or the
// player abandons it.
type Test struct {
	// ID identifies the run for logging and screen routing.
	ID string

	cfg    TestConfig
	member map[int]bool

	queue []question.Question
	index int

	stats  map[int]score.TableStat
	ledger []rewards.Answer

	correct   int
	incorrect int

	elapsed       time.Duration
	questionStart time.Duration

	// sessionCoins is the live ticker shown during the run. The real
	// payout is settled once by Payout.
	sessionCoins int

	reason Reason
}

// NewTest validates the config and generates the question sequence. Zero
// values for the count and speed fall back to the defaults.
func NewTest(cfg TestConfig, rnd *rand.Rand) (*Test, error) {
	if len(cfg.Tables) == 0 {
		return nil, ErrNoTables
	}
	if cfg.QuestionCount <= 0 {
		cfg.QuestionCount = DefaultQuestionCount
	}
	if cfg.Speed.Limit <= 0 {
		cfg.Speed = DefaultSpeedTier()
	}
	return &Test{
		ID:     uuid.NewString(),
		cfg:    cfg,
		member: memberSet(cfg.Tables),
		queue:  question.Sequence(rnd, cfg.Tables, cfg.QuestionCount),
		stats:  make(map[int]score.TableStat),
	}, nil
}

// Config returns the run's fixed parameters.
func (t *Test) Config() TestConfig { return t.cfg }

// Current returns the question on screen; ok is false once the run ended.
func (t *Test) Current() (q question.Question, ok bool) {
	if t.reason != ReasonNone || t.index >= len(t.queue) {
		return question.Question{}, false
	}
	return t.queue[t.index], true
}

// Progress returns answered and total question counts.
func (t *Test) Progress() (answered, total int) {
	return len(t.ledger), len(t.queue)
}

// CorrectCount returns how many answers were right.
func (t *Test) CorrectCount() int { return t.correct }

// IncorrectCount returns how many answers were wrong.
func (t *Test) IncorrectCount() int { return t.incorrect }

// SessionCoins returns the live coin ticker, never negative.
func (t *Test) SessionCoins() int { return t.sessionCoins }

// Elapsed returns accumulated session time, uncapped.
func (t *Test) Elapsed() time.Duration { return t.elapsed }

// Remaining returns time left on the clock, floored at zero.
func (t *Test) Remaining() time.Duration {
	rem := t.cfg.Speed.Limit - t.elapsed
	if rem < 0 {
		return 0
	}
	return rem
}

// Finished reports whether a termination condition fired.
func (t *Test) Finished() bool { return t.reason != ReasonNone }

// Reason returns how the run ended, ReasonNone while active.
func (t *Test) Reason() Reason { return t.reason }

// Advance adds one tick of frame time and applies the timeout rule,
// returning true when this call ended the run. The check fires once per
// tick, so the stored elapsed time can overshoot the limit by at most one
// tick; Result caps it.
func (t *Test) Advance(dt time.Duration) bool {
	if t.reason != ReasonNone {
		return false
	}
	t.elapsed += dt
	if t.elapsed >= t.cfg.Speed.Limit {
		t.reason = ReasonTimeout
		return true
	}
	return false
}

// Submit scores raw input against the current question. Tests always move
// on, right or wrong; Done reports that the final question was answered.
func (t *Test) Submit(raw string) (Feedback, error) {
	if t.reason != ReasonNone {
		return Feedback{}, ErrFinished
	}
	q, ok := t.Current()
	if !ok {
		return Feedback{}, ErrFinished
	}
	guess, err := parseAnswer(raw)
	if err != nil {
		return Feedback{}, err
	}

	correct := guess == q.Answer()
	seconds := (t.elapsed - t.questionStart).Seconds()

	table := attributeTable(q, t.member, true)
	stat := t.stats[table]
	stat.Record(correct, seconds)
	t.stats[table] = stat
	t.ledger = append(t.ledger, rewards.Answer{Table: table, Correct: correct})

	delta := rewards.LiveDelta(table, correct)
	t.sessionCoins = rewards.AdjustCoins(t.sessionCoins, delta)

	if correct {
		t.correct++
	} else {
		t.incorrect++
	}

	fb := Feedback{
		Question:  q,
		Guess:     guess,
		Correct:   correct,
		Table:     table,
		CoinDelta: delta,
	}

	t.index++
	t.questionStart = t.elapsed
	if t.index >= len(t.queue) {
		t.reason = ReasonNormal
		fb.Done = true
	}
	return fb, nil
}

// Abandon ends the run without a record or payout.
func (t *Test) Abandon() {
	if t.reason == ReasonNone {
		t.reason = ReasonStopped
	}
}

// Payout computes the coin delta the run earned: per-answer rewards and
// penalties, floored at zero, plus time and speed bonuses. Abandoned runs
// pay nothing because the caller never applies it.
func (t *Test) Payout() int {
	return rewards.TestPayout(t.ledger, t.remainingRatio(), t.cfg.Speed.Label)
}

func (t *Test) remainingRatio() float64 {
	limit := t.cfg.Speed.Limit.Seconds()
	if limit <= 0 {
		return 0
	}
	remaining := limit - t.elapsed.Seconds()
	if remaining < 0 {
		remaining = 0
	}
	return remaining / limit
}

// Result builds the persistent record of a finished run. Elapsed time is
// capped at the limit so a timeout tick's overshoot never reaches storage.
func (t *Test) Result(profileID, profileName string, now time.Time) score.TestResult {
	elapsed := t.elapsed
	if limit := t.cfg.Speed.Limit; elapsed > limit {
		elapsed = limit
	}
	stats := make(map[int]score.TableStat, len(t.stats))
	for table, stat := range t.stats {
		stats[table] = stat
	}
	return score.TestResult{
		ProfileID:        profileID,
		ProfileName:      profileName,
		Tables:           append([]int(nil), t.cfg.Tables...),
		QuestionCount:    t.cfg.QuestionCount,
		Answered:         len(t.ledger),
		Correct:          t.correct,
		Incorrect:        t.incorrect,
		TimeLimitSeconds: int(t.cfg.Speed.Limit.Seconds()),
		ElapsedSeconds:   elapsed.Seconds(),
		Timestamp:        now,
		TableStats:       stats,
	}
}
