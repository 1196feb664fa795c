package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/wexinc/roster/internal/session"
	"github.com/wexinc/roster/internal/tui/styles"
	"github.com/wexinc/roster/internal/view"
)

// StatusBarData contains the data to display in the status bar.
type StatusBarData struct {
	Notice    session.Notice
	HasNotice bool
	// Unread counts notices posted with Notice that were not shown on their own.
	Unread   int
	Query    string
	Ordering view.Ordering
}

// StatusBar shows the latest notice, the view state and the key hints.
type StatusBar struct {
	data  StatusBarData
	keys  help.KeyMap
	help  help.Model
	width int
}

// NewStatusBar creates a status bar that lists the short help of keys.
func NewStatusBar(keys help.KeyMap) *StatusBar {
	h := help.New()
	h.Styles.ShortKey = styles.KeyStyle
	h.Styles.ShortDesc = styles.HelpStyle
	h.Styles.ShortSeparator = styles.HelpStyle
	return &StatusBar{
		keys: keys,
		help: h,
	}
}

// SetData updates the status bar data.
func (s *StatusBar) SetData(data StatusBarData) {
	s.data = data
}

// Data returns the current status bar data.
func (s *StatusBar) Data() StatusBarData {
	return s.data
}

// SetNotice replaces the displayed notice. unread is how many notices
// arrived in the same batch before it.
func (s *StatusBar) SetNotice(n session.Notice, unread int) {
	s.data.Notice = n
	s.data.HasNotice = true
	s.data.Unread = unread
}

// ClearNotice removes the displayed notice.
func (s *StatusBar) ClearNotice() {
	s.data.Notice = session.Notice{}
	s.data.HasNotice = false
	s.data.Unread = 0
}

// SetViewState sets the filter and ordering indicators.
func (s *StatusBar) SetViewState(query string, ordering view.Ordering) {
	s.data.Query = query
	s.data.Ordering = ordering
}

// SetWidth sets the width of the status bar.
func (s *StatusBar) SetWidth(width int) {
	s.width = width
	s.help.Width = width
}

// View renders the status bar.
func (s *StatusBar) View() string {
	left := s.renderNotice()
	right := s.renderViewState()

	line := left + "  " + right
	if s.width > 0 {
		padding := s.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
		if padding > 0 {
			line = left + strings.Repeat(" ", padding) + right
		}
	}

	container := styles.StatusBarStyle
	if s.width > 0 {
		container = container.Width(s.width)
	}
	hints := " " + s.help.ShortHelpView(s.keys.ShortHelp())
	return container.Render(line) + "\n" + hints
}

func (s *StatusBar) renderNotice() string {
	if !s.data.HasNotice {
		return ""
	}
	text := s.data.Notice.Message
	if s.data.Notice.Detail != "" {
		text += " " + styles.MutedTextStyle.Render("("+s.data.Notice.Detail+")")
	}
	out := NoticeStyle(s.data.Notice.Level).Render(NoticeIcon(s.data.Notice.Level)+" ") + text
	if s.data.Unread > 0 {
		out += styles.MutedTextStyle.Render(fmt.Sprintf("  +%d more, l to view", s.data.Unread))
	}
	return out
}

func (s *StatusBar) renderViewState() string {
	var parts []string
	if s.data.Query != "" {
		parts = append(parts, styles.HeaderLabelStyle.Render("Filter: ")+styles.HeaderValueStyle.Render(s.data.Query))
	}
	if s.data.Ordering.IsSet() {
		parts = append(parts, styles.HeaderLabelStyle.Render("Sort: ")+
			styles.HeaderValueStyle.Render(s.data.Ordering.Column.Title()+" "+s.data.Ordering.Direction.Arrow()))
	}
	return strings.Join(parts, "  ")
}

// NoticeStyle returns the text style for a notice level.
func NoticeStyle(level session.Level) lipgloss.Style {
	switch level {
	case session.LevelSuccess:
		return styles.SuccessTextStyle
	case session.LevelWarning:
		return styles.WarningTextStyle
	case session.LevelError:
		return styles.ErrorTextStyle
	default:
		return styles.InfoTextStyle
	}
}

// NoticeIcon returns the marker shown before a notice.
func NoticeIcon(level session.Level) string {
	switch level {
	case session.LevelSuccess:
		return "✓"
	case session.LevelWarning:
		return "⚠"
	case session.LevelError:
		return "✗"
	default:
		return "•"
	}
}
