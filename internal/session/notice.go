package session

import (
	"github.com/wexinc/roster/internal/person"
)

// Level is the severity of a notice.
type Level int

const (
	// LevelInfo is a neutral message.
	LevelInfo Level = iota
	// LevelSuccess reports a completed operation.
	LevelSuccess
	// LevelWarning reports a rejected action the user can correct.
	LevelWarning
	// LevelError reports a failed operation.
	LevelError
)

// String returns the lower-case level name.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Notice is a message for the user.
type Notice struct {
	Level   Level
	Message string
	// Detail is optional secondary text, such as counts or a suggestion.
	Detail string
}

// Notifier shows notices to the user.
type Notifier interface {
	Notify(n Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notice) {
	f(n)
}

// Collector is a Notifier that keeps every notice it receives.
// The CLI uses it to print notices after a headless run.
type Collector struct {
	Notices []Notice
}

// Notify appends n.
func (c *Collector) Notify(n Notice) {
	c.Notices = append(c.Notices, n)
}

// Last returns the most recent notice.
func (c *Collector) Last() (Notice, bool) {
	if len(c.Notices) == 0 {
		return Notice{}, false
	}
	return c.Notices[len(c.Notices)-1], true
}

// Reset drops all collected notices.
func (c *Collector) Reset() {
	c.Notices = nil
}

type discard struct{}

func (discard) Notify(Notice) {}

// Editor is the person dialog. initial is nil when adding. It returns false
// when the user cancels.
type Editor interface {
	EditPerson(initial *person.Person) (person.Person, bool)
}

// EditorFunc adapts a function to Editor.
type EditorFunc func(initial *person.Person) (person.Person, bool)

// EditPerson calls f(initial).
func (f EditorFunc) EditPerson(initial *person.Person) (person.Person, bool) {
	return f(initial)
}

// User-facing messages.
const (
	MsgAdded          = "Person added successfully."
	MsgAlreadyListed  = "The person is already in the list."
	MsgDeleted        = "Person deleted successfully."
	MsgSelectToDelete = "Select a person to delete."
	MsgSelectToEdit   = "Select a person to edit."
	MsgUpdated        = "Person updated successfully."
	MsgExported       = "Data exported successfully."
	MsgExportFailed   = "Error exporting data: "
	MsgImported       = "Data imported successfully."
	MsgImportFailed   = "Error importing data: "
)
