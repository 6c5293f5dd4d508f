package quiz

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/jsterk/tafel/internal/ui/components"
	"github.com/jsterk/tafel/internal/ui/theme"
)

func (q *QuizScreen) View(width, height int) string {
	if q.errMsg != "" {
		return renderError(width, q.errMsg)
	}
	if (q.isTest && q.test == nil) || (!q.isTest && q.practice == nil) {
		return renderLoading(width)
	}
	if q.showConfirm {
		return renderQuitConfirm(width)
	}
	return q.renderQuestion(width)
}

func (q *QuizScreen) renderQuestion(width int) string {
	var b strings.Builder

	b.WriteString(q.renderInfoLine(width))
	b.WriteString("\n")
	sep := width - 4
	if sep < 0 {
		sep = 0
	}
	b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", sep)))
	b.WriteString("\n\n")

	if q.isTest {
		answered, total := q.test.Progress()
		ratio := 0.0
		if total > 0 {
			ratio = float64(answered) / float64(total)
		}
		bar := components.Bar{Ratio: ratio, Width: width / 2}.View()
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar))
		b.WriteString("\n\n")
	}

	b.WriteString(q.renderPrompt(width))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render("Answer: " + q.input.View()))
	b.WriteString("\n\n")

	b.WriteString(q.renderFeedbackLine(width))

	return b.String()
}

// renderInfoLine puts the table selection on the left and the live
// counters on the right.
func (q *QuizScreen) renderInfoLine(width int) string {
	var tables []int
	if q.isTest {
		tables = q.test.Config().Tables
	} else {
		tables = q.practice.Tables()
	}
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  Tables " + joinTables(tables))

	var right string
	if q.isTest {
		answered, total := q.test.Progress()
		right = lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%d/%d  ", answered, total)) +
			theme.CoinGain.Render(fmt.Sprintf("● %d", q.test.SessionCoins())) +
			lipgloss.NewStyle().Foreground(theme.Accent).Render("  ⏱ "+clock(q.test.Remaining()))
	} else {
		right = lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			fmt.Sprintf("✔ %d  streak %d", q.practice.CorrectCount(), q.practice.Streak()))
	}

	line := left
	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	return line
}

func (q *QuizScreen) renderPrompt(width int) string {
	var text string
	if q.isTest {
		cur, ok := q.test.Current()
		if !ok {
			return ""
		}
		text = cur.Text() + " = ?"
	} else {
		text = q.practice.Current().Text() + " = ?"
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(text)
}

func (q *QuizScreen) renderFeedbackLine(width int) string {
	if q.feedback != "" {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, q.feedback)
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Type the answer and press ENTER")
}

func renderQuitConfirm(width int) string {
	title := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true).
		Render("Stop the test?")
	body := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("Your answers and coins from this run are lost.")
	yes := lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("[Y] Yes, stop")
	no := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("[N] Keep going")

	card := theme.Card.Render(lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		body,
		"",
		yes+"   "+no,
	))
	return "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
}

func renderLoading(width int) string {
	return "\n\n" + lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Shuffling the questions...")
}

func renderError(width int, msg string) string {
	text := lipgloss.NewStyle().
		Foreground(theme.Error).
		Render("Something went wrong: " + msg)
	hint := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("Press any key to go back.")
	return "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, text) +
		"\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, hint)
}

// clock formats a duration as M:SS.
func clock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func joinTables(tables []int) string {
	parts := make([]string, len(tables))
	for i, t := range tables {
		parts[i] = strconv.Itoa(t)
	}
	return strings.Join(parts, ", ")
}
