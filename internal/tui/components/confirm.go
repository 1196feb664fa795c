package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wexinc/roster/internal/roster"
	"github.com/wexinc/roster/internal/tui/styles"
)

// ConfirmAction represents the action being confirmed.
type ConfirmAction string

const (
	// ConfirmActionDelete removes the selected person.
	ConfirmActionDelete ConfirmAction = "delete"
	// ConfirmActionOverwrite replaces an existing file on export.
	ConfirmActionOverwrite ConfirmAction = "overwrite"
)

// ConfirmDialog displays a yes/no prompt before a destructive action.
type ConfirmDialog struct {
	visible     bool
	action      ConfirmAction
	title       string
	message     string
	slot        roster.Slot
	path        string
	width       int
	destructive bool
}

// NewConfirmDialog creates a new ConfirmDialog component.
func NewConfirmDialog() *ConfirmDialog {
	return &ConfirmDialog{
		width: 50,
	}
}

// Show displays the dialog with the given action, title, and message.
func (c *ConfirmDialog) Show(action ConfirmAction, title, message string, destructive bool) {
	c.visible = true
	c.action = action
	c.title = title
	c.message = message
	c.destructive = destructive
	c.slot = roster.NilSlot
	c.path = ""
}

// ShowDelete asks before removing the person held in slot.
func (c *ConfirmDialog) ShowDelete(slot roster.Slot, name string) {
	c.Show(ConfirmActionDelete, "Delete person?",
		"Remove "+name+" from the roster?",
		true)
	c.slot = slot
}

// ShowOverwrite asks before replacing an existing file.
func (c *ConfirmDialog) ShowOverwrite(path string) {
	c.Show(ConfirmActionOverwrite, "Overwrite file?",
		path+" already exists. Replace it with the displayed rows?",
		false)
	c.path = path
}

// Hide hides the dialog.
func (c *ConfirmDialog) Hide() {
	c.visible = false
}

// IsVisible returns whether the dialog is visible.
func (c *ConfirmDialog) IsVisible() bool {
	return c.visible
}

// Action returns the current action being confirmed.
func (c *ConfirmDialog) Action() ConfirmAction {
	return c.action
}

// SetSize sets the dialog width.
func (c *ConfirmDialog) SetSize(width int) {
	c.width = width
}

// Update handles input messages.
func (c *ConfirmDialog) Update(msg tea.Msg) tea.Cmd {
	if !c.visible {
		return nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch strings.ToLower(msg.String()) {
		case "y", "enter":
			yes := ConfirmYesMsg{Action: c.action, Slot: c.slot, Path: c.path}
			c.Hide()
			return func() tea.Msg {
				return yes
			}
		case "n", "esc":
			c.Hide()
			return func() tea.Msg {
				return ConfirmNoMsg{}
			}
		}
	}
	return nil
}

// View renders the confirmation dialog.
func (c *ConfirmDialog) View() string {
	if !c.visible {
		return ""
	}

	accent := styles.Warning
	yesStyle := styles.ButtonPrimaryStyle
	if c.destructive {
		accent = styles.Error
		yesStyle = styles.ButtonDangerStyle
	}

	var b strings.Builder
	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Foreground).
		Background(accent).
		Bold(true).
		Padding(0, 1).
		Width(c.width - 4)
	b.WriteString(titleStyle.Render(c.title))
	b.WriteString("\n\n")

	msgStyle := lipgloss.NewStyle().
		Foreground(styles.Foreground).
		Width(c.width - 8)
	b.WriteString(msgStyle.Render(c.message))
	b.WriteString("\n\n")

	b.WriteString(yesStyle.Render("[Y]es"))
	b.WriteString("  ")
	b.WriteString(styles.ButtonSecondaryUnfocusedStyle.Render("[N]o"))

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(accent).
		Padding(1, 2).
		Render(b.String())
}

// ConfirmYesMsg is sent when the user confirms.
type ConfirmYesMsg struct {
	Action ConfirmAction
	Slot   roster.Slot
	Path   string
}

// ConfirmNoMsg is sent when the user cancels.
type ConfirmNoMsg struct{}
