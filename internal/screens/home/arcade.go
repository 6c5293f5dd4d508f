package home

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/jsterk/tafel/internal/ui/components"
	"github.com/jsterk/tafel/internal/ui/theme"
)

// Block-letter title, the same art the splash banner draws.
const arcadeTitleFull = ` ████████╗ █████╗ ███████╗███████╗██╗
 ╚══██╔══╝██╔══██╗██╔════╝██╔════╝██║
    ██║   ███████║█████╗  █████╗  ██║
    ██║   ██╔══██║██╔══╝  ██╔══╝  ██║
    ██║   ██║  ██║██║     ███████╗███████╗
    ╚═╝   ╚═╝  ╚═╝╚═╝     ╚══════╝╚══════╝`

const arcadeTitleCompact = "T · A · F · E · L"

// renderTitle draws the block-letter title, or the one-line fallback when
// the window cannot fit the art.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Coin).
		Bold(true)

	art := arcadeTitleFull
	if compact {
		art = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderGreeting renders the personal greeting under the title.
func renderGreeting(name, avatar string, cw int) string {
	greeting := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render(fmt.Sprintf("Hi, %s! %s", name, avatar))
	prompt := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("What do you feel like today?")
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(greeting + "\n" + prompt)
}

// renderStatsBar boxes the coin balance, test count and best score.
func renderStatsBar(coins, tests int, hasTests bool, best float64, cw int, compact bool) string {
	coinStyle := lipgloss.NewStyle().Foreground(theme.Coin).Bold(true)
	testStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	bestStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			coinStyle.Render(fmt.Sprintf("●%d", coins)),
			testStyle.Render(fmt.Sprintf("✎%d", tests)),
			bestText(hasTests, best, true, bestStyle, dimStyle),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			coinStyle.Render(fmt.Sprintf("● %d COINS", coins)),
			testStyle.Render(fmt.Sprintf("✎ %d TESTS", tests)),
			bestText(hasTests, best, false, bestStyle, dimStyle),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2). // border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func bestText(hasTests bool, best float64, compact bool, active, dim lipgloss.Style) string {
	if !hasTests {
		if compact {
			return dim.Render("★ –")
		}
		return dim.Render("★ NO TESTS YET")
	}
	pct := int(math.Round(best * 100))
	if compact {
		return active.Render(fmt.Sprintf("★%d%%", pct))
	}
	return active.Render(fmt.Sprintf("★ BEST %d%%", pct))
}

// Every menu button renders at the same width so the column lines up.
const buttonWidth = 22

// renderArcadeMenu stacks the menu items as chunky buttons.
func renderArcadeMenu(items []components.MenuItem, selected, cw int) string {
	var buttons []string
	for i, item := range items {
		buttons = append(buttons, components.ArcadeButton(item.Label, i == selected, buttonWidth))
	}
	block := strings.Join(buttons, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderArcadeMenuCompact draws the menu as plain text lines; bordered
// buttons overflow a short window.
func renderArcadeMenuCompact(items []components.MenuItem, selected, cw int) string {
	var lines []string
	for i, item := range items {
		var line string
		if i == selected {
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Coin).
				Bold(true).
				Render(" ▸ " + item.Label + " ")
		} else {
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + item.Label)
		}
		lines = append(lines, line)
	}
	block := strings.Join(lines, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderMascotBox centers the mascot across the content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
