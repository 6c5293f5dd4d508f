// Package question generates multiplication questions for both session
// modes: a fixed uniform sequence for tests and weighted adaptive picks for
// practice.
package question

import (
	"fmt"
	"math/rand"

	"github.com/jsterk/tafel/internal/score"
)

// operandMax bounds both operands; tables and second operands run 1..10.
const operandMax = 10

// Question is one multiplication prompt. The answer is derived, never
// stored.
type Question struct {
	Left  int
	Right int
}

// Answer returns the product the player must enter.
func (q Question) Answer() int {
	return q.Left * q.Right
}

// Text renders the question the way the screens show it.
func (q Question) Text() string {
	return fmt.Sprintf("%d × %d", q.Left, q.Right)
}

// Sequence builds the question list for a test run: each slot picks a table
// and a second operand uniformly, operand order is swapped half the time,
// and the finished list is shuffled. Repeats are allowed.
func Sequence(rnd *rand.Rand, tables []int, count int) []Question {
	qs := make([]Question, 0, count)
	for i := 0; i < count; i++ {
		table := tables[rnd.Intn(len(tables))]
		other := rnd.Intn(operandMax) + 1
		q := Question{Left: table, Right: other}
		if rnd.Intn(2) == 0 {
			q = Question{Left: other, Right: table}
		}
		qs = append(qs, q)
	}
	rnd.Shuffle(len(qs), func(i, j int) {
		qs[i], qs[j] = qs[j], qs[i]
	})
	return qs
}

// NextPractice returns a fresh practice question. The left operand is the
// weighted table pick; practice never swaps operand order.
func NextPractice(rnd *rand.Rand, tables []int, stats map[int]score.TableStat) Question {
	return Question{
		Left:  PickTable(rnd, tables, stats),
		Right: rnd.Intn(operandMax) + 1,
	}
}

// PickTable draws a table from the configured set, weighted by how often it
// was answered wrong and how slowly. With no recorded attempts every table
// weighs the same and the draw is uniform.
func PickTable(rnd *rand.Rand, tables []int, stats map[int]score.TableStat) int {
	weights := make([]float64, len(tables))
	total := 0.0
	for i, t := range tables {
		w := Weight(stats[t])
		weights[i] = w
		total += w
	}
	if total <= 0 {
		return tables[rnd.Intn(len(tables))]
	}

	r := rnd.Float64() * total
	cumulative := 0.0
	for i, t := range tables {
		cumulative += weights[i]
		if r <= cumulative {
			return t
		}
	}
	// Floating-point rounding can leave r past the final sum.
	return tables[len(tables)-1]
}

// Weight computes the selection weight of one table from its running stat:
// wrong answers weigh heavily, slow answers a little.
func Weight(stat score.TableStat) float64 {
	w := 1.0 + float64(stat.Incorrect)*2.5 + stat.AverageTime()/4.0
	if w < 0.1 {
		w = 0.1
	}
	return w
}
