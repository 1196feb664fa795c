package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wexinc/roster/internal/session"
	"github.com/wexinc/roster/internal/tui/styles"
)

// maxNotices bounds the history kept by a NoticeLog.
const maxNotices = 500

// NoticeLog is a scrollable history of every notice posted in the session.
type NoticeLog struct {
	viewport viewport.Model
	notices  []session.Notice
	visible  bool
	width    int
	height   int
	// dirty marks the viewport content as stale.
	dirty bool
}

// NewNoticeLog creates a new, hidden NoticeLog.
func NewNoticeLog() *NoticeLog {
	vp := viewport.New(70, 12)
	vp.Style = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Primary)

	return &NoticeLog{
		viewport: vp,
		notices:  make([]session.Notice, 0, 64),
		width:    70,
		height:   12,
	}
}

// SetSize sets the viewport dimensions.
func (l *NoticeLog) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.viewport.Width = width - 2
	l.viewport.Height = max(height-2, 1)
	l.dirty = true
}

// Append records notices, dropping the oldest past the history limit.
func (l *NoticeLog) Append(notices ...session.Notice) {
	if len(notices) == 0 {
		return
	}
	l.notices = append(l.notices, notices...)
	if over := len(l.notices) - maxNotices; over > 0 {
		l.notices = append(l.notices[:0], l.notices[over:]...)
	}
	l.dirty = true
}

// Notices returns the recorded history, oldest first.
func (l *NoticeLog) Notices() []session.Notice {
	return l.notices
}

// Len returns the number of recorded notices.
func (l *NoticeLog) Len() int {
	return len(l.notices)
}

// Clear drops the history.
func (l *NoticeLog) Clear() {
	l.notices = l.notices[:0]
	l.dirty = true
}

// Show opens the log scrolled to the newest notice.
func (l *NoticeLog) Show() {
	l.visible = true
	l.refresh()
	l.viewport.GotoBottom()
}

// Hide closes the log.
func (l *NoticeLog) Hide() {
	l.visible = false
}

// IsVisible returns whether the log is open.
func (l *NoticeLog) IsVisible() bool {
	return l.visible
}

// Content returns the rendered history as plain text.
func (l *NoticeLog) Content() string {
	lines := make([]string, len(l.notices))
	for i, n := range l.notices {
		lines[i] = formatNotice(n)
	}
	return strings.Join(lines, "\n")
}

func formatNotice(n session.Notice) string {
	line := NoticeIcon(n.Level) + " " + n.Message
	if n.Detail != "" {
		line += " (" + n.Detail + ")"
	}
	return line
}

func (l *NoticeLog) refresh() {
	if !l.dirty {
		return
	}
	lines := make([]string, len(l.notices))
	for i, n := range l.notices {
		lines[i] = NoticeStyle(n.Level).Render(formatNotice(n))
	}
	l.viewport.SetContent(strings.Join(lines, "\n"))
	l.dirty = false
}

// Update handles scrolling and closing.
func (l *NoticeLog) Update(msg tea.Msg) tea.Cmd {
	if !l.visible {
		return nil
	}

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "l", "q":
			l.Hide()
			return func() tea.Msg {
				return NoticeLogClosedMsg{}
			}
		case "c":
			l.Clear()
			l.refresh()
		case "up", "k":
			l.viewport.LineUp(1)
		case "down", "j":
			l.viewport.LineDown(1)
		case "home", "g":
			l.viewport.GotoTop()
		case "end", "G":
			l.viewport.GotoBottom()
		default:
			l.viewport, cmd = l.viewport.Update(msg)
		}
	default:
		l.viewport, cmd = l.viewport.Update(msg)
	}
	return cmd
}

// View renders the log.
func (l *NoticeLog) View() string {
	if !l.visible {
		return ""
	}
	l.refresh()

	titleStyle := styles.TitleStyle.Width(l.width - 8)
	scrollInfo := styles.MutedTextStyle.Render(fmt.Sprintf(" %.0f%%", l.viewport.ScrollPercent()*100))
	title := titleStyle.Render(fmt.Sprintf("Notices (%d)", len(l.notices))) + scrollInfo

	body := l.viewport.View()
	if len(l.notices) == 0 {
		body = styles.EmptyTableStyle.Render("No notices yet.")
	}

	return title + "\n" + body + "\n" + NewShortcutBar(NoticeLogShortcuts...).View()
}

// NoticeLogClosedMsg is sent when the notice log is closed.
type NoticeLogClosedMsg struct{}
