package progress

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	prog "github.com/jsterk/tafel/internal/progress"
	"github.com/jsterk/tafel/internal/ui/theme"
)

func (s *ProgressScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\nCrunching the numbers...")
	}
	if !s.tested() {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\nNo tests yet. Finish one to see your progress!")
	}

	var b strings.Builder
	b.WriteString("\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 48)))

	b.WriteString(s.renderLeaderboard(width, divider))

	if len(s.mine) > 0 {
		b.WriteString(s.renderTrends(width, divider))
		b.WriteString(s.renderTricky(width, divider))
		b.WriteString(s.renderRecent(width, height, divider))
	} else {
		b.WriteString(center(width, lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
			Render("You have no tests yet. The board is waiting for you!")))
		b.WriteString("\n")
	}

	return b.String()
}

func (s *ProgressScreen) renderLeaderboard(width int, divider string) string {
	var b strings.Builder

	b.WriteString(center(width, lipgloss.NewStyle().Foreground(theme.TextDim).Render("Leaderboard")))
	b.WriteString("\n")
	b.WriteString(center(width, divider))
	b.WriteString("\n")

	header := fmt.Sprintf(" %s  %-12s  %5s  %5s  %5s  %s", "#", "PLAYER", "TESTS", "AVG", "BEST", "LAST")
	b.WriteString(center(width, lipgloss.NewStyle().Foreground(theme.TextDim).Render(header)))
	b.WriteString("\n")

	board := prog.Leaderboard(s.entries)
	if len(board) > 8 {
		board = board[:8]
	}
	for i, entry := range board {
		line := fmt.Sprintf(" %d  %-12s  %5d  %4.0f%%  %4.0f%%  %s",
			i+1,
			truncate(entry.Name, 12),
			entry.Tests,
			entry.AvgAccuracy*100,
			entry.BestAccuracy*100,
			entry.LastPlayed.Format("Jan 02"))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if entry.ProfileID == s.activeID {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(center(width, style.Render(line)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

func (s *ProgressScreen) renderTrends(width int, divider string) string {
	var b strings.Builder

	b.WriteString(center(width, lipgloss.NewStyle().Foreground(theme.TextDim).Render("Your numbers")))
	b.WriteString("\n")
	b.WriteString(center(width, divider))
	b.WriteString("\n")

	avg := prog.AverageAccuracy(s.mine) * 100
	pace := prog.AverageResponseTime(s.mine)
	line := fmt.Sprintf("Average %.0f%%      %.1fs per answer", avg, pace)
	b.WriteString(center(width, lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
	b.WriteString("\n")

	var extras []string
	if trend := prog.AccuracyTrend(s.mine); trend != 0 {
		style := theme.Correct
		if trend < 0 {
			style = theme.Incorrect
		}
		extras = append(extras, style.Render(fmt.Sprintf("%+.0f points since last test", trend)))
	}
	if streak := prog.LongestStreak(s.mine); streak > 1 {
		extras = append(extras, theme.CoinGain.Render(fmt.Sprintf("%d perfect tests in a row", streak)))
	}
	if len(extras) > 0 {
		b.WriteString(center(width, strings.Join(extras, "      ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

func (s *ProgressScreen) renderTricky(width int, divider string) string {
	ranked := prog.TrickyTables(s.mine, 4)
	kept := ranked[:0]
	for _, d := range ranked {
		if d.Incorrect > 0 {
			kept = append(kept, d)
		}
	}

	var b strings.Builder
	b.WriteString(center(width, lipgloss.NewStyle().Foreground(theme.TextDim).Render("Needs work")))
	b.WriteString("\n")
	b.WriteString(center(width, divider))
	b.WriteString("\n")

	if len(kept) == 0 {
		b.WriteString(center(width, theme.Correct.Render("Nothing! Every table looks solid.")))
		b.WriteString("\n\n")
		return b.String()
	}
	for _, d := range kept {
		line := fmt.Sprintf("Table of %-2d   %2d wrong   %.1fs per answer",
			d.Table, d.Incorrect, d.AverageTime())
		b.WriteString(center(width, lipgloss.NewStyle().Foreground(theme.Accent).Render(line)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

func (s *ProgressScreen) renderRecent(width, height int, divider string) string {
	count := 5
	if height < 26 {
		count = 3
	}
	recent := prog.Recent(s.mine, count)
	if len(recent) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(center(width, lipgloss.NewStyle().Foreground(theme.TextDim).Render("Recent tests")))
	b.WriteString("\n")
	b.WriteString(center(width, divider))
	b.WriteString("\n")

	for _, r := range recent {
		line := fmt.Sprintf("%s   %3.0f%%   Tables %-14s %s",
			r.Timestamp.Format("Jan 02"),
			r.Accuracy()*100,
			joinTables(r.Tables),
			fmtClock(int(r.ElapsedSeconds)))
		b.WriteString(center(width, lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func center(width int, s string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func joinTables(tables []int) string {
	parts := make([]string, len(tables))
	for i, t := range tables {
		parts[i] = strconv.Itoa(t)
	}
	return strings.Join(parts, ", ")
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
