// Package components provides reusable TUI components for the roster.
package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wexinc/roster/internal/tui/styles"
)

// TextInput is a labelled single-line field used by the person editor.
type TextInput struct {
	model      textinput.Model
	label      string
	labelWidth int
	focused    bool
	width      int
}

// NewTextInput creates a new TextInput component.
func NewTextInput(label, placeholder string) *TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 30

	return &TextInput{
		model:      ti,
		label:      label,
		labelWidth: len(label),
	}
}

// Label returns the field label.
func (t *TextInput) Label() string {
	return t.label
}

// SetLabelWidth pads the label so that several inputs line up.
func (t *TextInput) SetLabelWidth(w int) {
	if w > len(t.label) {
		t.labelWidth = w
	}
}

// Focus focuses the text input.
func (t *TextInput) Focus() tea.Cmd {
	t.focused = true
	return t.model.Focus()
}

// Blur removes focus from the text input.
func (t *TextInput) Blur() {
	t.focused = false
	t.model.Blur()
}

// Focused returns whether the text input is focused.
func (t *TextInput) Focused() bool {
	return t.focused
}

// SetValue sets the text input value.
func (t *TextInput) SetValue(value string) {
	t.model.SetValue(value)
}

// Value returns the current value without surrounding whitespace.
func (t *TextInput) Value() string {
	return strings.TrimSpace(t.model.Value())
}

// SetWidth sets the width of the text input.
func (t *TextInput) SetWidth(width int) {
	t.width = width
	t.model.Width = width - t.labelWidth - 5
	if t.model.Width < 10 {
		t.model.Width = 10
	}
}

// SetCharLimit sets the character limit. 0 means no limit.
func (t *TextInput) SetCharLimit(limit int) {
	t.model.CharLimit = limit
}

// Update handles messages for the text input.
func (t *TextInput) Update(msg tea.Msg) (*TextInput, tea.Cmd) {
	if !t.focused {
		return t, nil
	}

	var cmd tea.Cmd
	t.model, cmd = t.model.Update(msg)
	return t, cmd
}

// View renders the label and the input.
func (t *TextInput) View() string {
	labelText := t.label + ": " + strings.Repeat(" ", t.labelWidth-len(t.label))

	labelStyle := styles.FormLabelStyle
	inputStyle := styles.FormInputStyle
	if t.focused {
		labelStyle = styles.FormLabelFocusedStyle
		inputStyle = styles.FormInputFocusedStyle
	}

	return labelStyle.Render(labelText) + inputStyle.Render(t.model.View())
}

// Reset clears the text input value.
func (t *TextInput) Reset() {
	t.model.Reset()
}
