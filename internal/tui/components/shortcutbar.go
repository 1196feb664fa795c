package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wexinc/roster/internal/tui/styles"
)

// ShortcutDef defines a single keyboard shortcut.
type ShortcutDef struct {
	Key  string
	Desc string
}

// ShortcutBar displays contextual keyboard hints for a dialog.
type ShortcutBar struct {
	shortcuts []ShortcutDef
	width     int
	centered  bool
}

// NewShortcutBar creates a new ShortcutBar with the given shortcuts.
func NewShortcutBar(shortcuts ...ShortcutDef) *ShortcutBar {
	return &ShortcutBar{
		shortcuts: shortcuts,
	}
}

// SetWidth sets the bar width for alignment.
func (s *ShortcutBar) SetWidth(width int) {
	s.width = width
}

// SetCentered controls whether the bar content is centered.
func (s *ShortcutBar) SetCentered(centered bool) {
	s.centered = centered
}

// View renders the shortcut bar.
func (s *ShortcutBar) View() string {
	if len(s.shortcuts) == 0 {
		return ""
	}

	parts := make([]string, 0, len(s.shortcuts))
	for _, sc := range s.shortcuts {
		parts = append(parts, styles.KeyStyle.Render(sc.Key)+styles.HelpStyle.Render(":"+sc.Desc))
	}
	sep := lipgloss.NewStyle().Foreground(styles.Muted).Render(" │ ")
	content := strings.Join(parts, sep)

	if s.centered && s.width > 0 {
		return lipgloss.NewStyle().
			Width(s.width).
			Align(lipgloss.Center).
			Render(content)
	}
	return content
}

// Shortcut sets for the dialogs.
var (
	// PersonEditorShortcuts are shown in the person dialog.
	PersonEditorShortcuts = []ShortcutDef{
		{"Tab", "next field"},
		{"Enter", "save"},
		{"Esc", "cancel"},
	}

	// PathPromptShortcuts are shown in the import/export prompt.
	PathPromptShortcuts = []ShortcutDef{
		{"Enter", "submit"},
		{"Esc", "cancel"},
	}

	// NoticeLogShortcuts are shown under the notice log.
	NoticeLogShortcuts = []ShortcutDef{
		{"↑↓", "scroll"},
		{"c", "clear"},
		{"Esc", "close"},
	}
)
