// Package screen defines the contract every screen of the game implements
// and the messages screens use to talk past the router.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/jsterk/tafel/internal/ui/layout"
)

// Screen is one full-window view: the welcome picker, the home menu, a
// running quiz. The router owns a stack of these and hands every message
// to the top one.
type Screen interface {
	// Init runs when the screen becomes active, on first push and again
	// when a pop reveals it.
	Init() tea.Cmd

	// Update reacts to one message. Returning a different Screen swaps
	// the receiver in place on the stack.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View draws the body. The frame around it is not the screen's
	// business; width and height describe the body's box.
	View(width, height int) string

	// Title labels the header while the screen is active.
	Title() string
}

// KeyHintProvider lets a screen put its own key hints in the footer
// instead of the default set.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
