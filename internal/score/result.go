// Package score defines the immutable record of a finished test session and
// the append-only store those records live in.
package score

import (
	"sort"
	"time"
)

// TableStat is the running aggregate for one table within a session or a
// stored result. Attempts serializes as "questions", the field name the
// score files use.
type TableStat struct {
	Attempts  int     `json:"questions"`
	Correct   int     `json:"correct"`
	Incorrect int     `json:"incorrect"`
	TotalTime float64 `json:"total_time"`
}

// Record adds one answered question to the stat.
func (s *TableStat) Record(correct bool, seconds float64) {
	s.Attempts++
	s.TotalTime += seconds
	if correct {
		s.Correct++
	} else {
		s.Incorrect++
	}
}

// AverageTime returns the mean response time in seconds, 0 with no attempts.
func (s TableStat) AverageTime() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return s.TotalTime / float64(s.Attempts)
}

// TestResult is the record of one completed test session. It is created
// exactly once at termination, appended to the store, and never mutated.
// Practice sessions do not produce one.
type TestResult struct {
	ProfileID        string            `json:"profile_id"`
	ProfileName      string            `json:"profile_name"`
	Tables           []int             `json:"tables"`
	QuestionCount    int               `json:"question_count"`
	Answered         int               `json:"answered"`
	Correct          int               `json:"correct"`
	Incorrect        int               `json:"incorrect"`
	TimeLimitSeconds int               `json:"time_limit_seconds"`
	ElapsedSeconds   float64           `json:"elapsed_seconds"`
	Timestamp        time.Time         `json:"timestamp"`
	TableStats       map[int]TableStat `json:"table_stats"`
}

// Accuracy returns the fraction of answered questions that were correct,
// 0 when nothing was answered.
func (r TestResult) Accuracy() float64 {
	if r.Answered == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Answered)
}

// RemainingSeconds returns the time left on the clock at the finish,
// never negative.
func (r TestResult) RemainingSeconds() float64 {
	remaining := float64(r.TimeLimitSeconds) - r.ElapsedSeconds
	if remaining < 0 {
		return 0
	}
	return remaining
}

// SlowestTables returns up to two table ids ordered by highest average
// response time, for the summary highlight. Tables without attempts are
// ignored.
func (r TestResult) SlowestTables() []int {
	type entry struct {
		table   int
		avgTime float64
	}
	entries := make([]entry, 0, len(r.TableStats))
	for table, stat := range r.TableStats {
		if stat.Attempts == 0 {
			continue
		}
		entries = append(entries, entry{table, stat.AverageTime()})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].avgTime != entries[j].avgTime {
			return entries[i].avgTime > entries[j].avgTime
		}
		return entries[i].table < entries[j].table
	})
	if len(entries) > 2 {
		entries = entries[:2]
	}
	tables := make([]int, len(entries))
	for i, e := range entries {
		tables[i] = e.table
	}
	return tables
}

// TrickyTables returns the table ids that had wrong answers, worst first.
func (r TestResult) TrickyTables() []int {
	type entry struct {
		table     int
		incorrect int
	}
	entries := make([]entry, 0, len(r.TableStats))
	for table, stat := range r.TableStats {
		if stat.Incorrect == 0 {
			continue
		}
		entries = append(entries, entry{table, stat.Incorrect})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].incorrect != entries[j].incorrect {
			return entries[i].incorrect > entries[j].incorrect
		}
		return entries[i].table < entries[j].table
	})
	tables := make([]int, len(entries))
	for i, e := range entries {
		tables[i] = e.table
	}
	return tables
}
