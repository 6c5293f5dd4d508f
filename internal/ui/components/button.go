package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/jsterk/tafel/internal/ui/theme"
)

// Button is the single action at the bottom of a form screen, START on
// setup and SAVE on settings. Enter fires it from anywhere in the form.
type Button struct {
	Label string
	Press func() tea.Cmd
}

// NewButton builds a button that runs press on enter.
func NewButton(label string, press func() tea.Cmd) Button {
	return Button{Label: label, Press: press}
}

// Update fires on enter and lets everything else pass.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" && b.Press != nil {
		return b, b.Press()
	}
	return b, nil
}

func (b Button) View() string {
	return theme.ButtonActive.Render("  ▸ " + b.Label + " ")
}
