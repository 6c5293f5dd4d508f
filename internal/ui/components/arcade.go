package components

import (
	"charm.land/lipgloss/v2"

	"github.com/jsterk/tafel/internal/ui/theme"
)

// ContentWidth is the inner width every arcade section renders at for a
// given window width, so the stacked boxes line up.
func ContentWidth(frameWidth int) int {
	// The cabinet border eats 2 columns, its inner padding 4.
	w := frameWidth - 6
	switch {
	case w > 60:
		return 60
	case w < 20:
		return 20
	}
	return w
}

// CabinetFrame is the double-bordered outer box every screen sits in,
// content centered both ways.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// ArcadeCard boxes one section of a screen at content width cw.
func ArcadeCard(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Padding(1, 2).
		Align(lipgloss.Center).
		Render(content)
}

// ArcadeButton draws one chunky menu button. The selected one lights up
// coin yellow behind a cursor arrow.
func ArcadeButton(label string, selected bool, width int) string {
	base := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	if selected {
		return base.
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.Coin).
			BorderForeground(theme.Coin).
			Render("▸ " + label)
	}
	return base.
		Foreground(theme.Text).
		BorderForeground(theme.Border).
		Render(label)
}
