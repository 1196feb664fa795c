package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/wexinc/roster/internal/tui/components"
)

// KeyMap holds the bindings of the main screen.
type KeyMap struct {
	Add        key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Filter     key.Binding
	SortFirst  key.Binding
	SortLast   key.Binding
	SortAge    key.Binding
	Import     key.Binding
	Export     key.Binding
	Notices    key.Binding
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Top        key.Binding
	Bottom     key.Binding
	Help       key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
	ClearQuery key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:       key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e/enter", "edit")),
		Delete:     key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Filter:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		SortFirst:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "sort by Nombre")),
		SortLast:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "sort by Apellidos")),
		SortAge:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "sort by Edad")),
		Import:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import")),
		Export:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export")),
		Notices:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "notices")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Top:        key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first row")),
		Bottom:     key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last row")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		ClearQuery: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear filter")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Delete, k.Filter, k.Import, k.Export, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	groups := k.Groups()
	out := make([][]key.Binding, len(groups))
	for i, g := range groups {
		out[i] = g.Bindings
	}
	return out
}

// Groups returns the bindings grouped for the help overlay.
func (k KeyMap) Groups() []components.ShortcutGroup {
	return []components.ShortcutGroup{
		{Title: "Persons", Bindings: []key.Binding{k.Add, k.Edit, k.Delete}},
		{Title: "View", Bindings: []key.Binding{k.Filter, k.ClearQuery, k.SortFirst, k.SortLast, k.SortAge}},
		{Title: "Files", Bindings: []key.Binding{k.Import, k.Export, k.Notices}},
		{Title: "Navigation", Bindings: []key.Binding{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom}},
		{Title: "General", Bindings: []key.Binding{k.Help, k.Quit, k.ForceQuit}},
	}
}
