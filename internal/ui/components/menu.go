package components

import (
	tea "charm.land/bubbletea/v2"
)

// MenuItem is one row of the home menu. Disabled rows stay visible but the
// cursor skips them.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu tracks a cursor over a list of items. It carries no look of its
// own; the home screen draws its items as arcade buttons.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu starts the cursor on the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	for i, item := range items {
		if !item.Disabled {
			m.Selected = i
			break
		}
	}
	return m
}

// Update moves the cursor on up/down (or k/j) and runs the selected
// action on enter.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		m.Selected = m.step(-1)
	case "down", "j":
		m.Selected = m.step(1)
	case "enter":
		if m.Selected < 0 || m.Selected >= len(m.Items) {
			break
		}
		if item := m.Items[m.Selected]; item.Action != nil && !item.Disabled {
			return m, item.Action()
		}
	}
	return m, nil
}

// step finds the next enabled item in the given direction, wrapping around.
func (m Menu) step(dir int) int {
	if len(m.Items) == 0 {
		return m.Selected
	}
	i := m.Selected
	for range m.Items {
		i = (i + dir + len(m.Items)) % len(m.Items)
		if !m.Items[i].Disabled {
			return i
		}
	}
	return m.Selected
}
