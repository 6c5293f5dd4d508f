// Package progress aggregates stored test results into the figures the
// progress screen shows: per-profile summaries, a leaderboard, trend lines
// and the tables that need work. Everything here is a pure function over
// result slices ordered oldest first, the order the score store returns.
package progress

import (
	"sort"
	"time"

	"github.com/jsterk/tafel/internal/score"
)

// Summary condenses one profile's test history into leaderboard figures.
type Summary struct {
	ProfileID    string
	Name         string
	Tests        int
	AvgAccuracy  float64
	BestAccuracy float64
	LastPlayed   time.Time
}

// Summarize builds a Summary from one profile's results. ok is false for an
// empty history; such profiles never reach the leaderboard.
func Summarize(profileID, name string, results []score.TestResult) (Summary, bool) {
	if len(results) == 0 {
		return Summary{}, false
	}
	s := Summary{ProfileID: profileID, Name: name, Tests: len(results)}
	var total float64
	for _, r := range results {
		acc := r.Accuracy()
		total += acc
		if acc > s.BestAccuracy {
			s.BestAccuracy = acc
		}
		if r.Timestamp.After(s.LastPlayed) {
			s.LastPlayed = r.Timestamp
		}
	}
	s.AvgAccuracy = total / float64(len(results))
	return s, true
}

// NamedResults pairs a profile with its stored history, in the caller's
// profile order.
type NamedResults struct {
	ProfileID string
	Name      string
	Results   []score.TestResult
}

// Leaderboard ranks every profile with at least one result, best average
// accuracy first and test count breaking ties. Input order decides the rest,
// so callers pass profiles in creation order.
func Leaderboard(entries []NamedResults) []Summary {
	ranked := make([]Summary, 0, len(entries))
	for _, e := range entries {
		if s, ok := Summarize(e.ProfileID, e.Name, e.Results); ok {
			ranked = append(ranked, s)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].AvgAccuracy != ranked[j].AvgAccuracy {
			return ranked[i].AvgAccuracy > ranked[j].AvgAccuracy
		}
		return ranked[i].Tests > ranked[j].Tests
	})
	return ranked
}

// AverageAccuracy returns the mean accuracy across results, 0 when empty.
func AverageAccuracy(results []score.TestResult) float64 {
	if len(results) == 0 {
		return 0
	}
	var total float64
	for _, r := range results {
		total += r.Accuracy()
	}
	return total / float64(len(results))
}

// AverageResponseTime returns elapsed seconds per answered question across
// the whole history, 0 when nothing was answered.
func AverageResponseTime(results []score.TestResult) float64 {
	var answered int
	var elapsed float64
	for _, r := range results {
		answered += r.Answered
		elapsed += r.ElapsedSeconds
	}
	if answered == 0 {
		return 0
	}
	return elapsed / float64(answered)
}

// AccuracyTrend returns the accuracy change between the two newest results
// in percentage points, 0 when fewer than two exist.
func AccuracyTrend(results []score.TestResult) float64 {
	if len(results) < 2 {
		return 0
	}
	latest := results[len(results)-1].Accuracy() * 100
	previous := results[len(results)-2].Accuracy() * 100
	return latest - previous
}

// LongestStreak returns the longest run of consecutive perfect tests. Any
// result below 100% accuracy resets the run.
func LongestStreak(results []score.TestResult) int {
	best, running := 0, 0
	for _, r := range results {
		if r.Accuracy() == 1.0 {
			running++
			if running > best {
				best = running
			}
		} else {
			running = 0
		}
	}
	return best
}

// TableDifficulty aggregates one table's record across a result set.
type TableDifficulty struct {
	Table     int
	Attempts  int
	Incorrect int
	TotalTime float64
}

// AverageTime returns seconds per attempt, 0 with no attempts.
func (d TableDifficulty) AverageTime() float64 {
	if d.Attempts == 0 {
		return 0
	}
	return d.TotalTime / float64(d.Attempts)
}

// TrickyTables sums per-table stats across all results and ranks tables by
// misses, slowest average time breaking ties. At most limit entries come
// back; pass 0 or less for all of them.
func TrickyTables(results []score.TestResult, limit int) []TableDifficulty {
	combined := make(map[int]TableDifficulty)
	for _, r := range results {
		for table, stat := range r.TableStats {
			d := combined[table]
			d.Table = table
			d.Attempts += stat.Attempts
			d.Incorrect += stat.Incorrect
			d.TotalTime += stat.TotalTime
			combined[table] = d
		}
	}
	ranked := make([]TableDifficulty, 0, len(combined))
	for _, d := range combined {
		ranked = append(ranked, d)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Incorrect != ranked[j].Incorrect {
			return ranked[i].Incorrect > ranked[j].Incorrect
		}
		if ranked[i].AverageTime() != ranked[j].AverageTime() {
			return ranked[i].AverageTime() > ranked[j].AverageTime()
		}
		return ranked[i].Table < ranked[j].Table
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Recent returns the n newest results, newest first.
func Recent(results []score.TestResult, n int) []score.TestResult {
	if n > len(results) {
		n = len(results)
	}
	out := make([]score.TestResult, 0, n)
	for i := len(results) - 1; i >= len(results)-n; i-- {
		out = append(out, results[i])
	}
	return out
}
