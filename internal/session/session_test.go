package session

import (
	"errors"
	"math/rand"
	"strconv"
	"testing"
	"time"

	"github.com/jsterk/tafel/internal/question"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func newPractice(t *testing.T, tables ...int) *Practice {
	t.Helper()
	p, err := NewPractice(PracticeConfig{Tables: tables}, testRand())
	if err != nil {
		t.Fatalf("NewPractice: %v", err)
	}
	return p
}

func newTest(t *testing.T, cfg TestConfig) *Test {
	t.Helper()
	run, err := NewTest(cfg, testRand())
	if err != nil {
		t.Fatalf("NewTest: %v", err)
	}
	return run
}

func rightAnswer(q question.Question) string {
	return strconv.Itoa(q.Answer())
}

func wrongAnswer(q question.Question) string {
	return strconv.Itoa(q.Answer() + 1)
}

func TestNewSession_RefusesEmptyTables(t *testing.T) {
	if _, err := NewPractice(PracticeConfig{}, testRand()); !errors.Is(err, ErrNoTables) {
		t.Errorf("NewPractice error = %v, want ErrNoTables", err)
	}
	if _, err := NewTest(TestConfig{}, testRand()); !errors.Is(err, ErrNoTables) {
		t.Errorf("NewTest error = %v, want ErrNoTables", err)
	}
}

func TestSubmit_RejectsBadInput(t *testing.T) {
	p := newPractice(t, 4)

	if _, err := p.Submit("   "); !errors.Is(err, ErrEmptyAnswer) {
		t.Errorf("blank submit error = %v, want ErrEmptyAnswer", err)
	}
	if _, err := p.Submit("twaalf"); !errors.Is(err, ErrInvalidAnswer) {
		t.Errorf("non-numeric submit error = %v, want ErrInvalidAnswer", err)
	}
	if p.Attempts() != 0 {
		t.Errorf("Attempts after rejected input = %d, want 0", p.Attempts())
	}
}

func TestPractice_WrongAnswerRetriesSameQuestion(t *testing.T) {
	p := newPractice(t, 7)
	first := p.Current()

	fb, err := p.Submit(wrongAnswer(first))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !fb.Retry || fb.Correct {
		t.Errorf("feedback = %+v, want Retry=true Correct=false", fb)
	}
	if p.Current() != first {
		t.Errorf("Current() = %v, want the same question %v", p.Current(), first)
	}
	if p.Streak() != 0 {
		t.Errorf("Streak = %d, want 0 after wrong answer", p.Streak())
	}

	fb, err = p.Submit(rightAnswer(first))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if fb.Retry || !fb.Correct {
		t.Errorf("feedback = %+v, want Retry=false Correct=true", fb)
	}
	if p.Attempts() != 2 || p.CorrectCount() != 1 || p.Streak() != 1 {
		t.Errorf("attempts=%d correct=%d streak=%d, want 2/1/1",
			p.Attempts(), p.CorrectCount(), p.Streak())
	}
}

func TestPractice_RetryKeepsQuestionTimerRunning(t *testing.T) {
	p := newPractice(t, 6)
	q := p.Current()

	p.Advance(3 * time.Second)
	if _, err := p.Submit(wrongAnswer(q)); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	p.Advance(2 * time.Second)
	if _, err := p.Submit(rightAnswer(q)); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// The retry is timed from the original serve: 3s then 5s recorded.
	stat := p.stats[6]
	if stat.Attempts != 2 || stat.Incorrect != 1 {
		t.Fatalf("stat = %+v, want 2 attempts, 1 incorrect", stat)
	}
	if stat.TotalTime != 8.0 {
		t.Errorf("TotalTime = %v, want 8.0", stat.TotalTime)
	}

	// The follow-up question is timed from now.
	if p.questionStart != p.elapsed {
		t.Errorf("questionStart = %v, want %v", p.questionStart, p.elapsed)
	}
}

func TestPractice_StopSnapshot(t *testing.T) {
	p := newPractice(t, 2, 5)
	for i := 0; i < 3; i++ {
		p.Advance(time.Second)
		if _, err := p.Submit(rightAnswer(p.Current())); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	snap := p.Stop()
	if snap.Attempts != 3 || snap.Correct != 3 || snap.Streak != 3 {
		t.Errorf("snapshot = %+v, want 3/3/3", snap)
	}
	if snap.Accuracy() != 1.0 {
		t.Errorf("Accuracy = %v, want 1.0", snap.Accuracy())
	}
	if snap.Elapsed != 3*time.Second {
		t.Errorf("Elapsed = %v, want 3s", snap.Elapsed)
	}
	if _, err := p.Submit("10"); !errors.Is(err, ErrFinished) {
		t.Errorf("Submit after Stop error = %v, want ErrFinished", err)
	}
}

func TestSnapshotAccuracy_EmptyRun(t *testing.T) {
	if got := (Snapshot{}).Accuracy(); got != 0 {
		t.Errorf("Accuracy = %v, want 0", got)
	}
}

func TestTest_AlwaysAdvancesOnWrongAnswer(t *testing.T) {
	run := newTest(t, TestConfig{Tables: []int{3}, QuestionCount: 5, Speed: DefaultSpeedTier()})

	q, ok := run.Current()
	if !ok {
		t.Fatal("Current() not ok on a fresh run")
	}
	fb, err := run.Submit(wrongAnswer(q))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if fb.Retry {
		t.Error("test feedback has Retry=true, tests never retry")
	}
	answered, total := run.Progress()
	if answered != 1 || total != 5 {
		t.Errorf("Progress = %d/%d, want 1/5", answered, total)
	}
	if run.IncorrectCount() != 1 {
		t.Errorf("IncorrectCount = %d, want 1", run.IncorrectCount())
	}
}

func TestTest_SessionCoinsNeverNegative(t *testing.T) {
	run := newTest(t, TestConfig{Tables: []int{1}, QuestionCount: 3, Speed: DefaultSpeedTier()})

	q, _ := run.Current()
	fb, err := run.Submit(wrongAnswer(q))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if fb.CoinDelta != -2 {
		t.Errorf("CoinDelta = %d, want -2", fb.CoinDelta)
	}
	if run.SessionCoins() != 0 {
		t.Errorf("SessionCoins = %d, want 0 (clamped)", run.SessionCoins())
	}
}

func TestTest_NormalFinishAndPayout(t *testing.T) {
	run := newTest(t, TestConfig{Tables: []int{3}, QuestionCount: 1, Speed: DefaultSpeedTier()})

	q, _ := run.Current()
	fb, err := run.Submit(rightAnswer(q))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !fb.Done {
		t.Error("feedback.Done = false, want true on the last question")
	}
	if run.Reason() != ReasonNormal {
		t.Errorf("Reason = %v, want ReasonNormal", run.Reason())
	}
	if _, ok := run.Current(); ok {
		t.Error("Current() ok after finish, want false")
	}

	// Base 2 for table 3, time bonus 8 with the whole clock left,
	// Schildpad bonus 2.
	if got := run.Payout(); got != 12 {
		t.Errorf("Payout = %d, want 12", got)
	}
}

func TestTest_TimeoutStopsTheRun(t *testing.T) {
	run := newTest(t, TestConfig{Tables: []int{4}, QuestionCount: 10, Speed: DefaultSpeedTier()})

	if fired := run.Advance(time.Minute); fired {
		t.Error("Advance fired a timeout after one minute")
	}
	if fired := run.Advance(8 * time.Minute); !fired {
		t.Error("Advance did not fire the timeout past the limit")
	}
	if run.Reason() != ReasonTimeout {
		t.Errorf("Reason = %v, want ReasonTimeout", run.Reason())
	}
	if run.Remaining() != 0 {
		t.Errorf("Remaining = %v, want 0", run.Remaining())
	}
	if _, err := run.Submit("12"); !errors.Is(err, ErrFinished) {
		t.Errorf("Submit after timeout error = %v, want ErrFinished", err)
	}
	if fired := run.Advance(time.Second); fired {
		t.Error("Advance fired again on a finished run")
	}
}

func TestTest_ResultCapsElapsedAtLimit(t *testing.T) {
	run := newTest(t, TestConfig{Tables: []int{3, 7}, QuestionCount: 2, Speed: DefaultSpeedTier()})

	run.Advance(2 * time.Second)
	q, _ := run.Current()
	if _, err := run.Submit(rightAnswer(q)); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	run.Advance(9 * time.Minute) // overshoots the 8 minute limit

	now := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	res := run.Result("p-1", "Feline", now)
	if res.ElapsedSeconds != 480 {
		t.Errorf("ElapsedSeconds = %v, want 480", res.ElapsedSeconds)
	}
	if res.Answered != 1 || res.Correct != 1 {
		t.Errorf("Answered=%d Correct=%d, want 1/1", res.Answered, res.Correct)
	}
	if res.QuestionCount != 2 || res.TimeLimitSeconds != 480 {
		t.Errorf("QuestionCount=%d TimeLimitSeconds=%d, want 2/480",
			res.QuestionCount, res.TimeLimitSeconds)
	}
	if !res.Timestamp.Equal(now) {
		t.Errorf("Timestamp = %v, want %v", res.Timestamp, now)
	}

	// No clock left kills the time bonus, but the Schildpad bonus stays.
	table := attributeTable(q, map[int]bool{3: true, 7: true}, true)
	if got, want := run.Payout(), 2+table/4+2; got != want {
		t.Errorf("Payout = %d, want %d", got, want)
	}
}

func TestTest_AbandonPaysNothing(t *testing.T) {
	run := newTest(t, TestConfig{Tables: []int{5}, QuestionCount: 10, Speed: DefaultSpeedTier()})

	q, _ := run.Current()
	if _, err := run.Submit(rightAnswer(q)); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	run.Abandon()
	if run.Reason() != ReasonStopped {
		t.Errorf("Reason = %v, want ReasonStopped", run.Reason())
	}
	if _, err := run.Submit("25"); !errors.Is(err, ErrFinished) {
		t.Errorf("Submit after Abandon error = %v, want ErrFinished", err)
	}
}

func TestAttributeTable_Fallbacks(t *testing.T) {
	member := map[int]bool{3: true}

	cases := []struct {
		name     string
		q        question.Question
		testMode bool
		want     int
	}{
		{"left member", question.Question{Left: 3, Right: 8}, true, 3},
		{"right member after swap", question.Question{Left: 8, Right: 3}, true, 3},
		{"no member, test takes larger", question.Question{Left: 4, Right: 9}, true, 9},
		{"no member, test larger on left", question.Question{Left: 9, Right: 4}, true, 9},
		{"no member, practice takes left", question.Question{Left: 4, Right: 9}, false, 4},
	}
	for _, tc := range cases {
		if got := attributeTable(tc.q, member, tc.testMode); got != tc.want {
			t.Errorf("%s: attributeTable = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestSpeedTiers_CatalogAndDefaults(t *testing.T) {
	tiers := SpeedTiers()
	if len(tiers) != 4 {
		t.Fatalf("len(SpeedTiers) = %d, want 4", len(tiers))
	}
	limits := map[string]time.Duration{
		"Slak":      10 * time.Minute,
		"Schildpad": 8 * time.Minute,
		"Haas":      7 * time.Minute,
		"Cheeta":    5 * time.Minute,
	}
	for _, tier := range tiers {
		if limits[tier.Label] != tier.Limit {
			t.Errorf("%s limit = %v, want %v", tier.Label, tier.Limit, limits[tier.Label])
		}
	}

	if def := DefaultSpeedTier(); def.Label != "Schildpad" {
		t.Errorf("DefaultSpeedTier = %s, want Schildpad", def.Label)
	}
	if _, ok := SpeedTierByLabel("Walrus"); ok {
		t.Error("SpeedTierByLabel found an unknown label")
	}
	if tier, ok := SpeedTierByLabel("Cheeta"); !ok || tier.Limit != 5*time.Minute {
		t.Errorf("SpeedTierByLabel(Cheeta) = %+v %v, want the 5m preset", tier, ok)
	}

	if got := AllTables(); len(got) != 10 || got[0] != 1 || got[9] != 10 {
		t.Errorf("AllTables = %v, want 1..10", got)
	}
	if DefaultQuestionCount != 50 {
		t.Errorf("DefaultQuestionCount = %d, want 50", DefaultQuestionCount)
	}
}
