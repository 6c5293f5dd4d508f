package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// TextInput is the one-line input used for answers and names, a thin wrap
// over bubbles/textinput. It stays focused for its whole life; what a
// submitted value means is the owning screen's call.
type TextInput struct {
	Model textinput.Model
}

// NewTextInput builds a focused input capped at limit runes.
func NewTextInput(placeholder string, limit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if limit > 0 {
		ti.CharLimit = limit
	}
	ti.Focus()
	return TextInput{Model: ti}
}

// Init re-arms the cursor blink.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update feeds a message through the wrapped model.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func (t TextInput) View() string {
	return t.Model.View()
}

// Value is the text typed so far.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Reset clears the text, keeping focus for the next question.
func (t *TextInput) Reset() {
	t.Model.SetValue("")
}
