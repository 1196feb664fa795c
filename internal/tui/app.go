// Package tui provides the terminal user interface for the roster.
package tui

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wexinc/roster/internal/logging"
	"github.com/wexinc/roster/internal/person"
	"github.com/wexinc/roster/internal/recent"
	"github.com/wexinc/roster/internal/roster"
	"github.com/wexinc/roster/internal/session"
	"github.com/wexinc/roster/internal/tui/components"
	"github.com/wexinc/roster/internal/tui/styles"
	"github.com/wexinc/roster/internal/view"
)

// chrome is the number of lines around the table: header, filter line,
// blank line and the two status bar lines.
const chrome = 6

// Model is the Bubble Tea model for the roster TUI.
type Model struct {
	session *session.Session
	inbox   *inbox
	keys    KeyMap

	// Components
	header    *components.Header
	table     *components.RosterTable
	filter    textinput.Model
	statusBar *components.StatusBar
	editor    *components.PersonEditor
	confirm   *components.ConfirmDialog
	prompt    *components.PathPrompt
	notices   *components.NoticeLog
	help      *components.HelpOverlay

	// State
	preload     string
	defaultPath string
	currentFile string
	recent      *recent.List
	filtering   bool

	// Window dimensions
	width  int
	height int

	quitting bool
}

// Option configures a Model.
type Option func(*Model)

// WithPreload imports path as soon as the program starts.
func WithPreload(path string) Option {
	return func(m *Model) {
		m.preload = path
	}
}

// WithDefaultPath sets the path offered by the import and export prompts.
func WithDefaultPath(path string) Option {
	return func(m *Model) {
		m.defaultPath = path
	}
}

// WithBaseDir sets the directory relative prompt paths are resolved against.
func WithBaseDir(dir string) Option {
	return func(m *Model) {
		m.prompt = components.NewPathPrompt(dir)
	}
}

// WithRecent records every file imported or exported in l and offers the
// latest one in the prompts.
func WithRecent(l *recent.List) Option {
	return func(m *Model) {
		m.recent = l
	}
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(km KeyMap) Option {
	return func(m *Model) {
		m.keys = km
	}
}

// New creates a model driving s. Notices posted by s are shown in the status
// bar from then on.
func New(s *session.Session, opts ...Option) *Model {
	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "filter by first name"
	filter.CharLimit = 128
	filter.SetValue(s.View().Query())

	m := &Model{
		session: s,
		inbox:   &inbox{},
		keys:    DefaultKeyMap(),
		header:  components.NewHeader(),
		table:   components.NewRosterTable(),
		filter:  filter,
		editor:  components.NewPersonEditor(s.Rules()),
		confirm: components.NewConfirmDialog(),
		prompt:  components.NewPathPrompt(""),
		notices: components.NewNoticeLog(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.statusBar = components.NewStatusBar(m.keys)
	m.help = components.NewHelpOverlay(m.keys.Groups()...)

	s.SetNotifier(m.inbox)
	m.sync()
	return m
}

// Init is the Bubble Tea initialization function.
func (m *Model) Init() tea.Cmd {
	if m.preload == "" {
		return nil
	}
	path := m.preload
	return func() tea.Msg {
		return ImportFileMsg{Path: path}
	}
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.sync()
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return nil

	case ImportFileMsg:
		m.importFile(msg.Path)
		return nil

	case ExportFileMsg:
		m.exportFile(msg.Path)
		return nil

	case NoticeMsg:
		m.inbox.Notify(msg.Notice)
		return nil

	case QuitMsg:
		logging.Info("tui quit", "reason", msg.Reason)
		m.quitting = true
		return tea.Quit

	case components.PersonEditorSubmitMsg:
		m.applyEdit(msg)
		return nil

	case components.ConfirmYesMsg:
		return m.handleConfirmYes(msg)

	case components.PathSubmittedMsg:
		return m.handlePath(msg)

	case components.ConfirmNoMsg, components.PersonEditorCancelMsg,
		components.PathCanceledMsg, components.HelpClosedMsg, components.NoticeLogClosedMsg:
		return nil
	}

	// Overlays capture input while they are open.
	switch {
	case m.confirm.IsVisible():
		return m.confirm.Update(msg)
	case m.help.IsVisible():
		return m.help.Update(msg)
	case m.notices.IsVisible():
		return m.notices.Update(msg)
	case m.editor.IsActive():
		return m.editor.Update(msg)
	case m.prompt.IsVisible():
		return m.prompt.Update(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, m.keys.ForceQuit) {
			m.quitting = true
			return tea.Quit
		}
		if m.filtering {
			return m.handleFilterKey(msg)
		}
		return m.handleKeyPress(msg)
	}

	if m.filtering {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return cmd
	}
	return nil
}

// handleKeyPress handles keyboard input on the main screen.
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.Toggle()

	case key.Matches(msg, m.keys.Notices):
		m.notices.Show()

	case key.Matches(msg, m.keys.Add):
		return m.editor.StartAdd()

	case key.Matches(msg, m.keys.Edit):
		slot := m.table.Selected()
		p, ok := m.session.Store().Get(slot)
		if !ok {
			m.inbox.Notify(session.Notice{Level: session.LevelWarning, Message: session.MsgSelectToEdit})
			return nil
		}
		return m.editor.StartEdit(slot, p)

	case key.Matches(msg, m.keys.Delete):
		slot := m.table.Selected()
		p, ok := m.session.Store().Get(slot)
		if !ok {
			// Posts the "select a person" notice.
			_ = m.session.Remove(roster.NilSlot)
			return nil
		}
		m.confirm.ShowDelete(slot, p.FullName())

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filter.CursorEnd()
		return m.filter.Focus()

	case key.Matches(msg, m.keys.ClearQuery):
		if m.session.View().Query() != "" {
			m.setQuery("")
		}

	case key.Matches(msg, m.keys.SortFirst):
		m.session.CycleOrdering(view.ColumnFirstName)
	case key.Matches(msg, m.keys.SortLast):
		m.session.CycleOrdering(view.ColumnLastName)
	case key.Matches(msg, m.keys.SortAge):
		m.session.CycleOrdering(view.ColumnAge)

	case key.Matches(msg, m.keys.Import):
		return m.prompt.Show(components.PathImport, m.promptDefault())
	case key.Matches(msg, m.keys.Export):
		return m.prompt.Show(components.PathExport, m.promptDefault())

	case key.Matches(msg, m.keys.Up):
		m.table.MoveUp(1)
	case key.Matches(msg, m.keys.Down):
		m.table.MoveDown(1)
	case key.Matches(msg, m.keys.PageUp):
		m.table.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.table.PageDown()
	case key.Matches(msg, m.keys.Top):
		m.table.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.table.GotoBottom()
	}
	return nil
}

// handleFilterKey edits the query while the filter box has focus. The view
// follows every keystroke.
func (m *Model) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "tab":
		m.stopFiltering()
		return nil
	case "esc":
		m.stopFiltering()
		m.setQuery("")
		return nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != m.session.View().Query() {
		m.session.SetQuery(m.filter.Value())
	}
	return cmd
}

func (m *Model) stopFiltering() {
	m.filtering = false
	m.filter.Blur()
}

func (m *Model) setQuery(q string) {
	m.filter.SetValue(q)
	m.session.SetQuery(q)
}

// applyEdit hands a submitted dialog to the session, which validates it
// again and posts the outcome.
func (m *Model) applyEdit(msg components.PersonEditorSubmitMsg) {
	ed := submitted(msg.Person)
	switch msg.Mode {
	case components.PersonEditorModeAdd:
		if slot, ok := m.session.AddWith(ed); ok {
			m.refresh()
			m.table.Select(slot)
		}
	case components.PersonEditorModeEdit:
		m.session.EditWith(ed, msg.Slot)
	}
}

// submitted is an Editor that returns a dialog result already entered.
func submitted(p person.Person) session.Editor {
	return session.EditorFunc(func(*person.Person) (person.Person, bool) {
		return p, true
	})
}

func (m *Model) handleConfirmYes(msg components.ConfirmYesMsg) tea.Cmd {
	switch msg.Action {
	case components.ConfirmActionDelete:
		_ = m.session.Remove(msg.Slot)
	case components.ConfirmActionOverwrite:
		m.exportFile(msg.Path)
	}
	return nil
}

func (m *Model) handlePath(msg components.PathSubmittedMsg) tea.Cmd {
	switch msg.Purpose {
	case components.PathImport:
		m.importFile(msg.Path)
	case components.PathExport:
		if msg.Exists {
			m.confirm.ShowOverwrite(msg.Path)
			return nil
		}
		m.exportFile(msg.Path)
	}
	return nil
}

func (m *Model) importFile(path string) {
	if _, err := m.session.ImportFile(path); err == nil {
		m.useFile(path, "import")
	}
}

func (m *Model) exportFile(path string) {
	if err := m.session.ExportFile(path); err == nil {
		m.useFile(path, "export")
	}
}

func (m *Model) useFile(path, op string) {
	m.currentFile = path
	if m.recent == nil {
		return
	}
	m.recent.Add(path, op)
	if err := m.recent.Save(); err != nil {
		logging.Warn("failed to save recent files", "error", err)
	}
}

// promptDefault is the path offered when a prompt opens: the file used in
// this run, else the latest remembered one, else the configured default.
func (m *Model) promptDefault() string {
	if m.currentFile != "" {
		return m.currentFile
	}
	if m.recent != nil {
		if path, ok := m.recent.Latest(); ok {
			return path
		}
	}
	return m.defaultPath
}

// sync moves pending notices to the status bar and the notice log, and
// re-materializes the view.
func (m *Model) sync() {
	if batch := m.inbox.drain(); len(batch) > 0 {
		m.notices.Append(batch...)
		m.statusBar.SetNotice(batch[len(batch)-1], len(batch)-1)
	}
	m.refresh()
}

func (m *Model) refresh() {
	rows := m.session.Rows()
	ordering := m.session.View().Ordering()
	m.table.SetEntries(rows, ordering)
	m.header.SetCounts(len(rows), m.session.Store().Len())
	m.header.SetFile(displayPath(m.currentFile))
	m.statusBar.SetViewState(m.session.View().Query(), ordering)
}

func displayPath(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Base(path)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.header.SetWidth(width)
	m.statusBar.SetWidth(width)
	m.table.SetSize(width, height-chrome)
	m.filter.Width = width - 4
	m.editor.SetWidth(min(width-4, 60))
	m.confirm.SetSize(min(width-4, 50))
	m.prompt.SetWidth(min(width-4, 70))
	m.notices.SetSize(min(width-4, 90), max(height-8, 5))
	m.help.SetSize(min(width-4, 60))
}

// View renders the TUI.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.header.View())
	b.WriteString("\n")
	b.WriteString(m.filterView())
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(m.statusBar.View())
	base := b.String()

	switch {
	case m.confirm.IsVisible():
		return m.renderOverlay(base, m.confirm.View())
	case m.help.IsVisible():
		return m.renderOverlay(base, m.help.View())
	case m.notices.IsVisible():
		return m.renderOverlay(base, m.notices.View())
	case m.editor.IsActive():
		return m.renderOverlay(base, m.editor.View())
	case m.prompt.IsVisible():
		return m.renderOverlay(base, m.prompt.View())
	}
	return base
}

func (m *Model) filterView() string {
	if m.filtering || m.filter.Value() != "" {
		return m.filter.View()
	}
	return styles.MutedTextStyle.Render("Press / to filter by first name")
}

// renderOverlay centers overlay on the screen in place of the base view.
func (m *Model) renderOverlay(base, overlay string) string {
	if overlay == "" {
		return base
	}
	if m.width == 0 || m.height == 0 {
		return base + "\n" + overlay
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay,
		lipgloss.WithWhitespaceChars(" "))
}

// Run starts the TUI on s and blocks until the user quits.
func Run(s *session.Session, opts ...Option) error {
	p := tea.NewProgram(New(s, opts...), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
