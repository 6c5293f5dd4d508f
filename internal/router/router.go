// Package router keeps the screen stack and routes messages to its top.
package router

import (
	"github.com/jsterk/tafel/internal/screen"

	tea "charm.land/bubbletea/v2"
)

// PushScreenMsg asks for a new screen on top of the stack. Screens return
// it as a command when they open a child, like home opening setup.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg asks for the top screen to go away, backing out to whatever
// sits underneath.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the top screen without growing the stack. The
// welcome picker hands off to home this way, so esc cannot lead back to it.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Router owns the screen stack. The bottom screen never pops; everything
// above it comes and goes as the player navigates.
type Router struct {
	stack []screen.Screen
}

// New starts the stack with its bottom screen.
func New(initial screen.Screen) *Router {
	return &Router{stack: []screen.Screen{initial}}
}

// Push puts s on top and runs its Init.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop drops the top screen and re-runs Init on the one revealed, so
// anything it cached (coin balances, score lists) reloads on the way back.
// The bottom screen stays put.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	r.stack = r.stack[:len(r.stack)-1]
	return r.Active().Init()
}

// Replace swaps the top screen for s and runs its Init. Depth does not
// change.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// Active is the screen receiving messages, the top of the stack.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth reports how many screens are stacked.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update consumes navigation messages itself and forwards the rest to the
// active screen, keeping whatever screen value comes back.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}

	active := r.Active()
	if active == nil {
		return nil
	}
	updated, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View draws the active screen's body.
func (r *Router) View(width, height int) string {
	if active := r.Active(); active != nil {
		return active.View(width, height)
	}
	return ""
}
