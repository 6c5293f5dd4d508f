package components

import (
	"strings"

	"github.com/jsterk/tafel/internal/ui/theme"
)

// Bar is a flat meter filled left to right. The quiz draws one under the
// question counter so kids can see the test shrinking.
type Bar struct {
	Ratio float64
	Width int
}

// View renders the bar, clamping Ratio into 0..1.
func (b Bar) View() string {
	width := b.Width
	if width < 4 {
		width = 4
	}
	filled := int(float64(width) * b.Ratio)
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", width-filled))
}
