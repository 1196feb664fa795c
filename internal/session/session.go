// Package session runs the roster's user actions. It owns the roster store
// and the filter-sort view, turns every outcome into a notice, and is the
// only thing the terminal UI and the CLI call into.
package session

import (
	"context"
	"fmt"
	"io"
	"iter"

	"github.com/wexinc/roster/internal/csvfile"
	rerrors "github.com/wexinc/roster/internal/errors"
	"github.com/wexinc/roster/internal/logging"
	"github.com/wexinc/roster/internal/person"
	"github.com/wexinc/roster/internal/roster"
	"github.com/wexinc/roster/internal/view"
)

// Session holds the roster and the active view.
type Session struct {
	store    *roster.Store
	view     *view.View
	notifier Notifier
	rules    person.Rules
	log      *logging.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithNotifier sets where notices go. The default discards them.
func WithNotifier(n Notifier) Option {
	return func(s *Session) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithRules sets the validation applied to persons entered through an Editor.
func WithRules(r person.Rules) Option {
	return func(s *Session) {
		s.rules = r
	}
}

// WithLogger sets the logger. The default is the global logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithStore uses an existing store instead of an empty one.
func WithStore(st *roster.Store) Option {
	return func(s *Session) {
		if st != nil {
			s.store = st
		}
	}
}

// WithView sets the initial query and ordering.
func WithView(query string, column view.Column, direction view.Direction) Option {
	return func(s *Session) {
		s.view.SetQuery(query)
		s.view.SetOrdering(column, direction)
	}
}

// New creates a Session with an empty roster.
func New(opts ...Option) *Session {
	s := &Session{
		store:    roster.NewStore(),
		view:     view.New(),
		notifier: discard{},
		rules:    person.DefaultRules(),
		log:      logging.Global(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetNotifier replaces where notices go. A nil n discards them.
func (s *Session) SetNotifier(n Notifier) {
	if n == nil {
		n = discard{}
	}
	s.notifier = n
}

// Store returns the underlying roster.
func (s *Session) Store() *roster.Store {
	return s.store
}

// View returns the active view.
func (s *Session) View() *view.View {
	return s.view
}

// Rules returns the validation rules for entered persons.
func (s *Session) Rules() person.Rules {
	return s.rules
}

func (s *Session) notify(level Level, msg, detail string) {
	s.notifier.Notify(Notice{Level: level, Message: msg, Detail: detail})
}

// Add appends p to the roster.
// A duplicate is reported with a warning notice and returned as an error.
func (s *Session) Add(p person.Person) (roster.Slot, error) {
	slot, err := s.store.Add(p)
	if err != nil {
		s.log.Info("add rejected", "person", p.String(), "error", err)
		s.notify(LevelWarning, MsgAlreadyListed, p.FullName())
		return roster.NilSlot, err
	}
	s.log.Info("person added", "slot", slot.String(), "person", p.String())
	s.notify(LevelSuccess, MsgAdded, p.FullName())
	return slot, nil
}

// Remove deletes the person in slot. A nil slot means nothing is selected.
func (s *Session) Remove(slot roster.Slot) error {
	if slot.IsNil() {
		s.notify(LevelWarning, MsgSelectToDelete, "")
		return rerrors.NotFound("selection")
	}

	p, _ := s.store.Get(slot)
	if err := s.store.RemoveSlot(slot); err != nil {
		s.log.Warn("remove failed", "slot", slot.String(), "error", err)
		s.notify(LevelWarning, MsgSelectToDelete, "")
		return err
	}
	s.log.Info("person removed", "slot", slot.String(), "person", p.String())
	s.notify(LevelSuccess, MsgDeleted, p.FullName())
	return nil
}

// Update overwrites the person in slot. Other entries are not checked for
// equality with the new values.
func (s *Session) Update(slot roster.Slot, p person.Person) error {
	if slot.IsNil() {
		s.notify(LevelWarning, MsgSelectToEdit, "")
		return rerrors.NotFound("selection")
	}
	if err := s.store.Update(slot, p); err != nil {
		s.log.Warn("update failed", "slot", slot.String(), "error", err)
		s.notify(LevelWarning, MsgSelectToEdit, "")
		return err
	}
	s.log.Info("person updated", "slot", slot.String(), "person", p.String())
	s.notify(LevelSuccess, MsgUpdated, p.FullName())
	return nil
}

// Contains reports whether an equal person is in the roster.
func (s *Session) Contains(p person.Person) bool {
	return s.store.Contains(p)
}

// AddWith opens ed empty and adds the result. It returns false if the user
// cancelled or the person could not be added.
func (s *Session) AddWith(ed Editor) (roster.Slot, bool) {
	p, ok := ed.EditPerson(nil)
	if !ok {
		return roster.NilSlot, false
	}
	if !s.accept(p) {
		return roster.NilSlot, false
	}
	slot, err := s.Add(p)
	return slot, err == nil
}

// EditWith opens ed with the person in slot and applies the result.
// With no selection it only posts a notice.
func (s *Session) EditWith(ed Editor, slot roster.Slot) bool {
	current, ok := s.store.Get(slot)
	if !ok {
		s.notify(LevelWarning, MsgSelectToEdit, "")
		return false
	}
	p, ok := ed.EditPerson(&current)
	if !ok {
		return false
	}
	if !s.accept(p) {
		return false
	}
	return s.Update(slot, p) == nil
}

// accept applies the rules to a person returned by an Editor. Editors are
// expected to validate already; this catches ones that do not.
func (s *Session) accept(p person.Person) bool {
	err := p.Validate(s.rules)
	if err == nil {
		return true
	}
	s.log.Debug("entry rejected", "person", p.String(), "error", err)
	s.notify(LevelWarning, "Invalid "+err.Error()+".", "")
	return false
}

// SetQuery sets the first name filter.
func (s *Session) SetQuery(text string) {
	s.view.SetQuery(text)
}

// SetOrdering sets the sort column and direction.
func (s *Session) SetOrdering(column view.Column, direction view.Direction) {
	s.view.SetOrdering(column, direction)
}

// CycleOrdering advances the sort state for column like a header click.
func (s *Session) CycleOrdering(column view.Column) {
	s.view.CycleOrdering(column)
}

// Materialize returns the current display sequence.
func (s *Session) Materialize() iter.Seq[roster.Entry] {
	return s.view.Materialize(s.store)
}

// Rows collects the current display sequence.
func (s *Session) Rows() []roster.Entry {
	var rows []roster.Entry
	for e := range s.Materialize() {
		rows = append(rows, e)
	}
	return rows
}

// Export writes the current display sequence, filtered and sorted as the
// user sees it, to w.
func (s *Session) Export(w io.Writer) error {
	return s.finishExport(context.Background(), csvfile.Export(w, s.displayed()))
}

// ExportFile writes the current display sequence to path.
func (s *Session) ExportFile(path string) error {
	ctx := logging.WithPath(context.Background(), path)
	return s.finishExport(ctx, csvfile.ExportFile(path, s.displayed()))
}

func (s *Session) displayed() iter.Seq[person.Person] {
	return view.People(s.Materialize())
}

func (s *Session) finishExport(ctx context.Context, err error) error {
	log := s.log.WithContext(logging.WithOperation(ctx, "export"))
	if err != nil {
		log.Error("export failed", "error", err)
		s.notify(LevelError, MsgExportFailed+causeText(err), "")
		return err
	}
	log.Info("export complete")
	s.notify(LevelSuccess, MsgExported, "")
	return nil
}

// Import merges persons read from r into the roster. Every rejected line is
// posted as a warning notice as soon as it is found.
func (s *Session) Import(r io.Reader) (*csvfile.ImportResult, error) {
	result, err := csvfile.Import(r, s.store, s.problemHandler())
	return s.finishImport(context.Background(), result, err)
}

// ImportFile merges persons read from path into the roster.
func (s *Session) ImportFile(path string) (*csvfile.ImportResult, error) {
	ctx := logging.WithPath(context.Background(), path)
	result, err := csvfile.ImportFile(path, s.store, s.problemHandler())
	return s.finishImport(ctx, result, err)
}

func (s *Session) problemHandler() csvfile.ImportOption {
	return csvfile.WithProblemHandler(func(err error) {
		s.log.Debug("import problem", "line", rerrors.LineOf(err), "error", err)
		s.notify(LevelWarning, importProblemMessage(err), fmt.Sprintf("line %d", rerrors.LineOf(err)))
	})
}

func importProblemMessage(err error) string {
	var dup *rerrors.DuplicateError
	if rerrors.As(err, &dup) {
		return "The person " + dup.Name + " already exists in the table."
	}
	return "Error: " + err.Error()
}

func (s *Session) finishImport(ctx context.Context, result *csvfile.ImportResult, err error) (*csvfile.ImportResult, error) {
	log := s.log.WithContext(logging.WithOperation(ctx, "import"))
	if err != nil {
		log.Error("import failed", "error", err)
		s.notify(LevelError, MsgImportFailed+causeText(err), "")
		return result, err
	}

	log.Info("import complete",
		"lines", result.Lines,
		"accepted", result.Accepted,
		"problems", len(result.Problems))

	level := LevelSuccess
	if result.HasProblems() {
		level = LevelWarning
	}
	s.notify(level, MsgImported, Summary(result))
	return result, nil
}

// causeText returns the message of the underlying fault, without the
// operation prefix the notice already carries.
func causeText(err error) string {
	var re *rerrors.RosterError
	if rerrors.As(err, &re) && re.Cause != nil {
		return re.Cause.Error()
	}
	return err.Error()
}

// Summary describes an import result in one line.
func Summary(r *csvfile.ImportResult) string {
	if r == nil {
		return ""
	}
	return fmt.Sprintf("%d added, %d skipped", r.Accepted, len(r.Problems))
}
