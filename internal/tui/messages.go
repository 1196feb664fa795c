package tui

import (
	"github.com/wexinc/roster/internal/session"
)

// ImportFileMsg asks the model to merge a CSV file into the roster.
// It is sent once at startup when a file is preloaded.
type ImportFileMsg struct {
	Path string
}

// ExportFileMsg asks the model to write the displayed rows to a file.
type ExportFileMsg struct {
	Path string
}

// NoticeMsg posts a notice from outside the session, such as a failure in
// the program around the model.
type NoticeMsg struct {
	Notice session.Notice
}

// QuitMsg signals the TUI should quit.
type QuitMsg struct {
	Reason string
}

// inbox queues the notices the session posts while the model handles a
// message. The model drains it before rendering.
type inbox struct {
	pending []session.Notice
}

// Notify implements session.Notifier.
func (b *inbox) Notify(n session.Notice) {
	b.pending = append(b.pending, n)
}

func (b *inbox) drain() []session.Notice {
	out := b.pending
	b.pending = nil
	return out
}
