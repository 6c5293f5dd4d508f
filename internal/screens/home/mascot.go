package home

import (
	"charm.land/lipgloss/v2"

	"github.com/jsterk/tafel/internal/ui/theme"
)

// MascotVariant picks the calculator face shown on the home screen.
type MascotVariant int

const (
	MascotIdle  MascotVariant = iota // Default purple
	MascotCheer                      // Gold, star eyes after a strong test
	MascotThink                      // Orange, puzzled after a rough test
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ 7×8 │
└─────┘`

const mascotCheer = `┌─────┐
│ ★ ★ │
│  ▿  │
│ 7×8 │
└─╥═╥─┘
  ╚═╝`

const mascotThink = `┌─────┐
│ ◉ ◉ │ ?
│  ~  │
│ 7×8 │
└─────┘`

// RenderMascot draws the variant's art in its color.
func RenderMascot(variant MascotVariant) string {
	var art string
	var fg = theme.Primary

	switch variant {
	case MascotCheer:
		art = mascotCheer
		fg = theme.Coin
	case MascotThink:
		art = mascotThink
		fg = theme.Accent
	default:
		art = mascotIdle
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}

// mascotFor picks a variant from the newest test result: stars above 90%
// accuracy, a puzzled look below 60%, idle otherwise or with no tests yet.
func mascotFor(hasTests bool, latestAccuracy float64) MascotVariant {
	if !hasTests {
		return MascotIdle
	}
	if latestAccuracy >= 0.9 {
		return MascotCheer
	}
	if latestAccuracy < 0.6 {
		return MascotThink
	}
	return MascotIdle
}
