package components

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wexinc/roster/internal/person"
	"github.com/wexinc/roster/internal/roster"
	"github.com/wexinc/roster/internal/tui/styles"
)

// PersonEditorMode represents the current editing mode.
type PersonEditorMode int

const (
	// PersonEditorModeClosed means the dialog is not shown.
	PersonEditorModeClosed PersonEditorMode = iota
	// PersonEditorModeAdd is for entering a new person.
	PersonEditorModeAdd
	// PersonEditorModeEdit is for changing an existing entry.
	PersonEditorModeEdit
)

const (
	fieldFirstName = iota
	fieldLastName
	fieldAge
	fieldCount
)

// PersonEditor is the modal dialog used for both adding and editing a person.
type PersonEditor struct {
	mode   PersonEditorMode
	inputs [fieldCount]*TextInput
	focus  int
	slot   roster.Slot
	rules  person.Rules
	err    string
	width  int
}

// NewPersonEditor creates a closed editor that checks entries against rules.
func NewPersonEditor(rules person.Rules) *PersonEditor {
	e := &PersonEditor{
		rules: rules,
		width: 60,
	}
	e.inputs[fieldFirstName] = NewTextInput("Nombre", "First name")
	e.inputs[fieldLastName] = NewTextInput("Apellidos", "Last name")
	e.inputs[fieldAge] = NewTextInput("Edad", "Age")
	e.inputs[fieldAge].SetCharLimit(10)

	labelWidth := 0
	for _, in := range e.inputs {
		labelWidth = max(labelWidth, len(in.Label()))
	}
	for _, in := range e.inputs {
		in.SetLabelWidth(labelWidth)
	}
	if rules.MaxNameLength > 0 {
		e.inputs[fieldFirstName].SetCharLimit(rules.MaxNameLength)
		e.inputs[fieldLastName].SetCharLimit(rules.MaxNameLength)
	}
	return e
}

// SetWidth sets the dialog width.
func (e *PersonEditor) SetWidth(width int) {
	e.width = width
	for _, in := range e.inputs {
		in.SetWidth(width - 6)
	}
}

// Mode returns the current editing mode.
func (e *PersonEditor) Mode() PersonEditorMode {
	return e.mode
}

// IsActive returns true if the dialog is open.
func (e *PersonEditor) IsActive() bool {
	return e.mode != PersonEditorModeClosed
}

// Err returns the validation message currently shown, if any.
func (e *PersonEditor) Err() string {
	return e.err
}

// StartAdd opens the dialog empty.
func (e *PersonEditor) StartAdd() tea.Cmd {
	e.mode = PersonEditorModeAdd
	e.slot = roster.NilSlot
	for _, in := range e.inputs {
		in.Reset()
	}
	return e.open()
}

// StartEdit opens the dialog filled with p, the person held in slot.
func (e *PersonEditor) StartEdit(slot roster.Slot, p person.Person) tea.Cmd {
	e.mode = PersonEditorModeEdit
	e.slot = slot
	e.inputs[fieldFirstName].SetValue(p.FirstName)
	e.inputs[fieldLastName].SetValue(p.LastName)
	e.inputs[fieldAge].SetValue(strconv.Itoa(p.Age))
	return e.open()
}

func (e *PersonEditor) open() tea.Cmd {
	e.err = ""
	e.focus = fieldFirstName
	return e.updateFocus()
}

// Cancel closes the dialog without a result.
func (e *PersonEditor) Cancel() {
	e.mode = PersonEditorModeClosed
	e.slot = roster.NilSlot
	e.err = ""
	for _, in := range e.inputs {
		in.Blur()
	}
}

// Person reads the fields into a Person and applies the rules.
func (e *PersonEditor) Person() (person.Person, error) {
	raw := e.inputs[fieldAge].Value()
	age, err := strconv.Atoi(raw)
	if err != nil {
		return person.Person{}, &person.FieldError{Field: "age", Message: "must be a whole number"}
	}
	p := person.New(e.inputs[fieldFirstName].Value(), e.inputs[fieldLastName].Value(), age)
	if err := p.Validate(e.rules); err != nil {
		return person.Person{}, err
	}
	return p, nil
}

func (e *PersonEditor) move(delta int) tea.Cmd {
	e.focus = (e.focus + delta + fieldCount) % fieldCount
	return e.updateFocus()
}

func (e *PersonEditor) updateFocus() tea.Cmd {
	var cmd tea.Cmd
	for i, in := range e.inputs {
		if i == e.focus {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
	}
	return cmd
}

// Update handles input messages.
func (e *PersonEditor) Update(msg tea.Msg) tea.Cmd {
	if !e.IsActive() {
		return nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "down":
			return e.move(1)
		case "shift+tab", "up":
			return e.move(-1)
		case "enter":
			if e.focus < fieldAge {
				return e.move(1)
			}
			return e.submit()
		case "ctrl+s":
			return e.submit()
		case "esc":
			e.Cancel()
			return func() tea.Msg {
				return PersonEditorCancelMsg{}
			}
		}
	}

	e.err = ""
	var cmd tea.Cmd
	e.inputs[e.focus], cmd = e.inputs[e.focus].Update(msg)
	return cmd
}

func (e *PersonEditor) submit() tea.Cmd {
	p, err := e.Person()
	if err != nil {
		e.err = "Invalid " + err.Error() + "."
		return nil
	}
	submitted := PersonEditorSubmitMsg{Mode: e.mode, Slot: e.slot, Person: p}
	e.Cancel()
	return func() tea.Msg {
		return submitted
	}
}

// View renders the dialog.
func (e *PersonEditor) View() string {
	if !e.IsActive() {
		return ""
	}

	title := "Nueva persona"
	if e.mode == PersonEditorModeEdit {
		title = "Editar persona"
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(title))
	b.WriteString("\n\n")
	for _, in := range e.inputs {
		b.WriteString("  ")
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if e.err != "" {
		b.WriteString(styles.ErrorTextStyle.Render("  " + e.err))
		b.WriteString("\n\n")
	}
	b.WriteString(NewShortcutBar(PersonEditorShortcuts...).View())

	box := styles.FocusedBoxStyle.Padding(1, 2)
	if e.width > 0 {
		box = box.Width(e.width)
	}
	return box.Render(b.String())
}

// PersonEditorSubmitMsg is sent when the dialog is accepted with valid input.
type PersonEditorSubmitMsg struct {
	Mode   PersonEditorMode
	Slot   roster.Slot // NilSlot when adding
	Person person.Person
}

// PersonEditorCancelMsg is sent when the dialog is dismissed.
type PersonEditorCancelMsg struct{}
