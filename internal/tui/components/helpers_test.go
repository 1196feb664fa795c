package components

import (
	tea "github.com/charmbracelet/bubbletea"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// typeText sends s one rune at a time.
func typeText(update func(tea.Msg) tea.Cmd, s string) {
	for _, r := range s {
		update(runes(string(r)))
	}
}

// run executes cmd and returns its message, or nil.
func run(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}
