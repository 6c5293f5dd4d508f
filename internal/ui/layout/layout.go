// Package layout draws the chrome shared by every screen: the header bar,
// the key-hint footer and the frame that stacks them around a body.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/jsterk/tafel/internal/ui/theme"
)

// Window size rules. Below MinWidth x MinHeight the app refuses to draw;
// under the compact thresholds screens drop decoration to fit.
const (
	MinWidth  = 80
	MinHeight = 24

	HeaderHeight = 3
	FooterHeight = 3

	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30
)

// KeyHint is one key plus what it does, shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompactWidth reports whether screens should use their narrow variants.
func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

// IsCompactHeight reports whether screens should use their short variants.
func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

// IsTooSmall reports whether the window is below the drawable minimum.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage fills the window with a resize plea.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

// RenderHeader draws the top bar: brand left, screen title centered,
// player badge right. An empty player hides the badge, which the profile
// picker uses before anyone signed in.
func RenderHeader(title, player string, coins, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  Tafel")
	heading := theme.Body.Render(title)

	badge := ""
	if player != "" {
		badge = theme.Body.Render(player) + "   " +
			lipgloss.NewStyle().Foreground(theme.Coin).Render(fmt.Sprintf("● %d", coins))
	}

	// Center the title across the inner width, then pad the badge out to
	// the right edge. The border swallows 4 columns.
	inner := width - 4
	if inner < 0 {
		inner = 0
	}
	gapL := (inner-lipgloss.Width(heading))/2 - lipgloss.Width(brand)
	if gapL < 1 {
		gapL = 1
	}
	gapR := inner - lipgloss.Width(brand) - gapL - lipgloss.Width(heading) - lipgloss.Width(badge)
	if gapR < 1 {
		gapR = 1
	}

	row := brand + strings.Repeat(" ", gapL) + heading + strings.Repeat(" ", gapR) + badge
	return theme.Header.Width(width).Render(row)
}

// RenderFooter draws the key hints along the bottom.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key)
		desc := lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
		parts = append(parts, key+" "+desc)
	}
	return theme.Footer.Width(width).Render("  " + strings.Join(parts, "   "))
}

// RenderFrame stacks header, body and footer into the full window.
func RenderFrame(header, content, footer string, width, height int) string {
	body := height - lipgloss.Height(header) - lipgloss.Height(footer)
	if body < 0 {
		body = 0
	}
	middle := lipgloss.NewStyle().Width(width).Height(body).Render(content)
	return header + "\n" + middle + "\n" + footer
}
