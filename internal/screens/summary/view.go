package summary

import (
	"fmt"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/jsterk/tafel/internal/score"
	"github.com/jsterk/tafel/internal/ui/theme"
)

func (s *SummaryScreen) View(width, height int) string {
	if s.isTest {
		return s.renderTest(width)
	}
	return s.renderPractice(width)
}

func (s *SummaryScreen) renderTest(width int) string {
	var b strings.Builder

	title := "Test complete!"
	titleColor := theme.Primary
	if s.timedOut() {
		title = "Time's up!"
		titleColor = theme.Accent
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(titleColor).
		Bold(true).
		Render(title))
	b.WriteString("\n\n")

	b.WriteString(center(width, s.renderScoreCard()))
	b.WriteString("\n\n")

	b.WriteString(center(width, s.renderPayout()))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 40)))

	b.WriteString(center(width, lipgloss.NewStyle().Foreground(theme.TextDim).Render("Mistakes")))
	b.WriteString("\n")
	b.WriteString(center(width, divider))
	b.WriteString("\n")
	b.WriteString(s.renderMistakes(width))
	b.WriteString("\n")

	b.WriteString(center(width, s.renderAdvice()))
	b.WriteString("\n")

	return b.String()
}

func (s *SummaryScreen) renderScoreCard() string {
	r := s.result

	correct := lipgloss.NewStyle().Foreground(theme.Success).Bold(true).
		Render(fmt.Sprintf("✔ %d correct", r.Correct))
	wrong := lipgloss.NewStyle().Foreground(theme.Error).Bold(true).
		Render(fmt.Sprintf("✘ %d wrong", r.Incorrect))
	accuracy := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf("%.0f%% accuracy", r.Accuracy()*100))

	detail := fmt.Sprintf("Answered %d of %d", r.Answered, r.QuestionCount)
	if !s.timedOut() {
		detail += fmt.Sprintf(" with %s to spare", fmtClock(int(r.RemainingSeconds())))
	}

	return theme.Card.Render(lipgloss.JoinVertical(lipgloss.Center,
		correct+"   "+wrong+"   "+accuracy,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(detail),
	))
}

func (s *SummaryScreen) renderPayout() string {
	if s.payout > 0 {
		return theme.CoinGain.Render(fmt.Sprintf("+%d ● coins earned", s.payout))
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render("No coins this run. Next time!")
}

func (s *SummaryScreen) renderMistakes(width int) string {
	if len(s.mistakes) == 0 {
		return center(width, theme.Correct.Render("No mistakes. Amazing!")) + "\n"
	}

	var b strings.Builder
	shown := s.mistakes
	if len(shown) > 5 {
		shown = shown[:5]
	}
	for _, m := range shown {
		line := lipgloss.NewStyle().Foreground(theme.Text).
			Render(fmt.Sprintf("%s = %d", m.Question.Text(), m.Question.Answer())) +
			lipgloss.NewStyle().Foreground(theme.TextDim).
				Render(fmt.Sprintf("   (you said %d)", m.Guess))
		b.WriteString(center(width, line))
		b.WriteString("\n")
	}
	if rest := len(s.mistakes) - len(shown); rest > 0 {
		b.WriteString(center(width, lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("...and %d more", rest))))
		b.WriteString("\n")
	}
	return b.String()
}

// renderAdvice picks one takeaway line: perfect runs get praise, wrong
// answers point at the worst table, otherwise the slowest table.
func (s *SummaryScreen) renderAdvice() string {
	r := s.result
	if r.Answered == r.QuestionCount && r.Incorrect == 0 && r.Answered > 0 {
		return theme.Correct.Render("Perfect score! Ready for a faster speed?")
	}
	if tricky := r.TrickyTables(); len(tricky) > 0 {
		t := tricky[0]
		stat := r.TableStats[t]
		return lipgloss.NewStyle().Foreground(theme.Accent).Render(
			fmt.Sprintf("The table of %d needs a bit more love: %d wrong, %.1fs per answer.",
				t, stat.Incorrect, stat.AverageTime()))
	}
	if slow := r.SlowestTables(); len(slow) > 0 {
		t := slow[0]
		return lipgloss.NewStyle().Foreground(theme.Secondary).Render(
			fmt.Sprintf("All correct! The table of %d took the most thinking time (%.1fs).",
				t, r.TableStats[t].AverageTime()))
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render("Keep it up!")
}

func (s *SummaryScreen) renderPractice(width int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Nice practicing!"))
	b.WriteString("\n\n")

	snap := s.snap
	if snap.Attempts == 0 {
		b.WriteString(center(width, lipgloss.NewStyle().Foreground(theme.TextDim).
			Render("You stopped before answering anything.")))
		b.WriteString("\n")
		return b.String()
	}

	stats := fmt.Sprintf("Turns: %d        Correct: %d        Accuracy: %.0f%%",
		snap.Attempts, snap.Correct, snap.Accuracy()*100)
	b.WriteString(center(width, lipgloss.NewStyle().Foreground(theme.Text).Render(stats)))
	b.WriteString("\n")
	b.WriteString(center(width, lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("Streak at finish: %d        Time: %s", snap.Streak, fmtClock(int(snap.Elapsed.Seconds()))))))
	b.WriteString("\n")
	b.WriteString(center(width, lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		"Coins were added as you played.")))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 40)))

	tricky := trickyFromStats(snap.Stats, 4)
	if len(tricky) > 0 {
		b.WriteString(center(width, lipgloss.NewStyle().Foreground(theme.TextDim).Render("Tricky tables")))
		b.WriteString("\n")
		b.WriteString(center(width, divider))
		b.WriteString("\n")
		for _, row := range tricky {
			line := fmt.Sprintf("Table of %d   %d wrong   %.1fs per answer",
				row.table, row.stat.Incorrect, row.stat.AverageTime())
			b.WriteString(center(width, lipgloss.NewStyle().Foreground(theme.Accent).Render(line)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	} else {
		b.WriteString(center(width, theme.Correct.Render("No tricky tables. Well done!")))
		b.WriteString("\n\n")
	}

	if len(s.attempts) > 0 {
		b.WriteString(center(width, lipgloss.NewStyle().Foreground(theme.TextDim).Render("Last answers")))
		b.WriteString("\n")
		b.WriteString(center(width, divider))
		b.WriteString("\n")
		b.WriteString(s.renderLastAttempts(width))
	}

	return b.String()
}

// renderLastAttempts shows up to five answers, most recent first.
func (s *SummaryScreen) renderLastAttempts(width int) string {
	var b strings.Builder
	count := min(len(s.attempts), 5)
	for i := 0; i < count; i++ {
		a := s.attempts[len(s.attempts)-1-i]
		var line string
		if a.Correct {
			line = lipgloss.NewStyle().Foreground(theme.Text).
				Render(fmt.Sprintf("%s = %d ", a.Question.Text(), a.Guess)) +
				lipgloss.NewStyle().Foreground(theme.Success).Render("✔")
		} else {
			line = lipgloss.NewStyle().Foreground(theme.Text).
				Render(fmt.Sprintf("%s = %d ", a.Question.Text(), a.Guess)) +
				lipgloss.NewStyle().Foreground(theme.Error).Render("✘") +
				lipgloss.NewStyle().Foreground(theme.TextDim).
					Render(fmt.Sprintf("  (it's %d)", a.Question.Answer()))
		}
		b.WriteString(center(width, line))
		b.WriteString("\n")
	}
	return b.String()
}

type trickyRow struct {
	table int
	stat  score.TableStat
}

// trickyFromStats lists tables with wrong answers, worst first.
func trickyFromStats(stats map[int]score.TableStat, limit int) []trickyRow {
	rows := make([]trickyRow, 0, len(stats))
	for table, stat := range stats {
		if stat.Incorrect == 0 {
			continue
		}
		rows = append(rows, trickyRow{table, stat})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].stat.Incorrect != rows[j].stat.Incorrect {
			return rows[i].stat.Incorrect > rows[j].stat.Incorrect
		}
		return rows[i].table < rows[j].table
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

func center(width int, s string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}

// fmtClock formats whole seconds as M:SS.
func fmtClock(total int) string {
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
