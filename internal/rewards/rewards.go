// Package rewards holds the coin arithmetic for practice and test sessions.
// Every function is pure; callers apply the resulting deltas to a profile.
package rewards

import "math"

// TestPenalty is the flat coin cost of a wrong answer in a test session.
const TestPenalty = 2

// TimeBonusMax is the largest achievable time bonus.
const TimeBonusMax = 8

// speedBonuses maps speed-tier labels to their fixed coin bonus.
// Unknown labels earn nothing.
var speedBonuses = map[string]int{
	"Slak":      0,
	"Schildpad": 2,
	"Haas":      4,
	"Cheeta":    6,
}

// PerQuestion returns the coin reward for a correct answer on a table.
// Higher tables pay slightly more (2 to 4 coins across tables 1-10).
func PerQuestion(table int) int {
	return 2 + table/4
}

// PracticePenalty returns the coins lost for a wrong practice answer:
// half the table's reward, but at least 2. Test sessions use the flat
// TestPenalty instead.
func PracticePenalty(table int) int {
	p := PerQuestion(table) / 2
	if p < 2 {
		p = 2
	}
	return p
}

// LiveDelta returns the per-answer coin delta shown while a session runs.
// Practice applies it to the profile immediately; tests only display it and
// settle with TestPayout at the end.
func LiveDelta(table int, correct bool) int {
	if correct {
		return PerQuestion(table)
	}
	return -PracticePenalty(table)
}

// TimeBonus converts the fraction of the time limit left at the finish
// into bonus coins. The ratio is clamped to [0, 1].
func TimeBonus(ratio float64) int {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return int(math.Round(ratio * TimeBonusMax))
}

// SpeedBonus returns the fixed bonus for a speed-tier label.
func SpeedBonus(label string) int {
	return speedBonuses[label]
}

// EstimateMax returns the ceiling shown before a test starts: a perfect run
// on the average selected table plus the maximum time bonus and the speed
// bonus. Returns 0 when no tables are selected or the count is not positive.
func EstimateMax(tables []int, questionCount int, speedLabel string) int {
	if len(tables) == 0 || questionCount <= 0 {
		return 0
	}
	sum := 0
	for _, t := range tables {
		sum += PerQuestion(t)
	}
	mean := float64(sum) / float64(len(tables))
	total := int(math.Round(mean * float64(questionCount)))
	if bonus := TimeBonusMax + SpeedBonus(speedLabel); bonus > 0 {
		total += bonus
	}
	return total
}

// Answer records the attributed table and correctness of one scored answer.
type Answer struct {
	Table   int
	Correct bool
}

// TestPayout computes the coin delta for a finished test run: per-question
// rewards minus flat penalties, clamped at zero before the time and speed
// bonuses are added. The clamp ordering matters; a poor run never owes coins.
func TestPayout(answers []Answer, ratio float64, speedLabel string) int {
	total := 0
	for _, a := range answers {
		if a.Correct {
			total += PerQuestion(a.Table)
		} else {
			total -= TestPenalty
		}
	}
	if total < 0 {
		total = 0
	}
	if bonus := TimeBonus(ratio) + SpeedBonus(speedLabel); bonus > 0 {
		total += bonus
	}
	return total
}

// AdjustCoins applies a delta to a coin balance, clamping at zero.
// Profiles never owe coins no matter how large the penalty.
func AdjustCoins(coins, delta int) int {
	next := coins + delta
	if next < 0 {
		return 0
	}
	return next
}
