package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/jsterk/tafel/internal/ui/theme"
)

// PickerOption is one selectable entry in a Picker.
type PickerOption struct {
	Label  string
	Detail string
}

// Picker is a single-select option list. Unlike Menu it carries no actions;
// the owning screen reads Selected after handling its own confirm key, so one
// screen can hold several pickers and route keys to the focused one.
type Picker struct {
	Options    []PickerOption
	Selected   int
	Horizontal bool
	Focused    bool
}

// NewPicker creates a picker with the given preselected index.
func NewPicker(options []PickerOption, selected int) Picker {
	if selected < 0 || selected >= len(options) {
		selected = 0
	}
	return Picker{
		Options:  options,
		Selected: selected,
	}
}

// Value returns the selected option.
func (p Picker) Value() PickerOption {
	if p.Selected < 0 || p.Selected >= len(p.Options) {
		return PickerOption{}
	}
	return p.Options[p.Selected]
}

// Update handles keyboard navigation. Vertical pickers move on up/down,
// horizontal ones on left/right.
func (p Picker) Update(msg tea.Msg) (Picker, tea.Cmd) {
	if !p.Focused {
		return p, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	prev, next := "up", "down"
	prevAlt, nextAlt := "k", "j"
	if p.Horizontal {
		prev, next = "left", "right"
		prevAlt, nextAlt = "h", "l"
	}

	switch kmsg.String() {
	case prev, prevAlt:
		if p.Selected > 0 {
			p.Selected--
		}
	case next, nextAlt:
		if p.Selected < len(p.Options)-1 {
			p.Selected++
		}
	}

	return p, nil
}

// View renders the picker.
func (p Picker) View() string {
	if p.Horizontal {
		return p.viewRow()
	}

	var s string
	for i, opt := range p.Options {
		line := "  " + opt.Label
		if i == p.Selected {
			line = "▸ " + opt.Label
		}
		if opt.Detail != "" {
			line += "  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(opt.Detail)
		}

		switch {
		case i == p.Selected && p.Focused:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		case i == p.Selected:
			s += lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(line) + "\n"
		case p.Focused:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		}
	}
	return s
}

func (p Picker) viewRow() string {
	parts := make([]string, 0, len(p.Options))
	for i, opt := range p.Options {
		if i == p.Selected {
			cell := "[" + opt.Label + "]"
			if p.Focused {
				parts = append(parts, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(cell))
			} else {
				parts = append(parts, lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(cell))
			}
		} else {
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.TextDim).Render(" "+opt.Label+" "))
		}
	}
	var s string
	for i, part := range parts {
		if i > 0 {
			s += " "
		}
		s += part
	}
	return s
}
