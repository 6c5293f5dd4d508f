// Package theme is the single palette for every screen, colors picked for
// a kids' arcade, plus the shared styles built on them.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette. Names describe the job, comments the shade.
var (
	Primary   = lipgloss.Color("#8B5CF6") // purple, the cabinet color
	Secondary = lipgloss.Color("#14B8A6") // teal
	Accent    = lipgloss.Color("#F97316") // orange
	Success   = lipgloss.Color("#22C55E") // green
	Error     = lipgloss.Color("#F43F5E") // rose
	Coin      = lipgloss.Color("#FACC15") // gold, anything coins
	Text      = lipgloss.Color("#F8FAFC") // near white
	TextDim   = lipgloss.Color("#94A3B8") // slate
	BgDark    = lipgloss.Color("#0F172A") // deep navy
	BgCard    = lipgloss.Color("#1E293B") // dark slate
	Border    = lipgloss.Color("#334155") // slate
)

func fg(c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// Text ranks.
var (
	Title    = fg(Primary).Bold(true).Align(lipgloss.Center)
	Subtitle = fg(TextDim).Align(lipgloss.Center)
	Body     = fg(Text)
	Hint     = fg(TextDim).Italic(true)
)

// Answer states and coin movement.
var (
	Selected   = fg(Primary).Bold(true)
	Unselected = fg(Text)
	Correct    = fg(Success).Bold(true)
	Incorrect  = fg(Error).Bold(true)
	CoinGain   = fg(Coin).Bold(true)
	CoinLoss   = fg(Error)
)

// Chrome shared between the layout bars and the components.
var (
	Header = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	ProgressFilled = lipgloss.NewStyle().Background(Secondary)
	ProgressEmpty  = lipgloss.NewStyle().Background(Border)

	ButtonActive = lipgloss.NewStyle().
		Background(Primary).
		Foreground(Text).
		Bold(true).
		Padding(0, 2)
)
