package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wexinc/roster/internal/tui/styles"
)

// ShortcutGroup is a titled column of key bindings.
type ShortcutGroup struct {
	Title    string
	Bindings []key.Binding
}

// HelpOverlay lists every key binding of the main screen.
type HelpOverlay struct {
	visible bool
	width   int
	groups  []ShortcutGroup
}

// NewHelpOverlay creates a hidden overlay for the given groups.
func NewHelpOverlay(groups ...ShortcutGroup) *HelpOverlay {
	return &HelpOverlay{
		width:  60,
		groups: groups,
	}
}

// SetGroups replaces the listed groups.
func (h *HelpOverlay) SetGroups(groups []ShortcutGroup) {
	h.groups = groups
}

// SetSize sets the overlay width.
func (h *HelpOverlay) SetSize(width int) {
	h.width = width
}

// Show makes the overlay visible.
func (h *HelpOverlay) Show() {
	h.visible = true
}

// Hide hides the overlay.
func (h *HelpOverlay) Hide() {
	h.visible = false
}

// Toggle toggles visibility.
func (h *HelpOverlay) Toggle() {
	h.visible = !h.visible
}

// IsVisible returns whether the overlay is visible.
func (h *HelpOverlay) IsVisible() bool {
	return h.visible
}

// Update closes the overlay on any key.
func (h *HelpOverlay) Update(msg tea.Msg) tea.Cmd {
	if !h.visible {
		return nil
	}
	if _, ok := msg.(tea.KeyMsg); ok {
		h.Hide()
		return func() tea.Msg {
			return HelpClosedMsg{}
		}
	}
	return nil
}

// View renders the help overlay.
func (h *HelpOverlay) View() string {
	if !h.visible {
		return ""
	}

	var b strings.Builder
	titleStyle := styles.TitleStyle.Width(h.width - 4)
	b.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	for i, group := range h.groups {
		b.WriteString(renderGroup(group))
		if i < len(h.groups)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.MutedTextStyle.Italic(true).Render("Press any key to close"))

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(styles.Primary).
		Padding(1, 2).
		Render(b.String())
}

func renderGroup(group ShortcutGroup) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(styles.Secondary).Bold(true).Render(group.Title))
	b.WriteString("\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(styles.Foreground).
		Bold(true).
		Width(10)
	descStyle := lipgloss.NewStyle().Foreground(styles.MutedLight)

	for _, binding := range group.Bindings {
		if !binding.Enabled() {
			continue
		}
		hlp := binding.Help()
		b.WriteString("  ")
		b.WriteString(keyStyle.Render(hlp.Key))
		b.WriteString(" ")
		b.WriteString(descStyle.Render(hlp.Desc))
		b.WriteString("\n")
	}
	return b.String()
}

// HelpClosedMsg is sent when the help overlay is closed.
type HelpClosedMsg struct{}
