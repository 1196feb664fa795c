// Package view derives the filtered and sorted display sequence of a roster.
package view

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/wexinc/roster/internal/person"
	"github.com/wexinc/roster/internal/roster"
)

// Column identifies a sortable person field.
type Column string

// Sortable columns.
const (
	ColumnNone      Column = ""
	ColumnFirstName Column = "first"
	ColumnLastName  Column = "last"
	ColumnAge       Column = "age"
)

// Columns lists the sortable columns in table order.
var Columns = []Column{ColumnFirstName, ColumnLastName, ColumnAge}

// Title returns the table header for the column.
func (c Column) Title() string {
	switch c {
	case ColumnFirstName:
		return "Nombre"
	case ColumnLastName:
		return "Apellidos"
	case ColumnAge:
		return "Edad"
	default:
		return ""
	}
}

// IsValid reports whether c names a sortable column.
func (c Column) IsValid() bool {
	switch c {
	case ColumnFirstName, ColumnLastName, ColumnAge:
		return true
	default:
		return false
	}
}

// ParseColumn converts a column name to a Column. The empty string is
// accepted and means no ordering.
func ParseColumn(s string) (Column, error) {
	c := Column(strings.ToLower(strings.TrimSpace(s)))
	if c == ColumnNone || c.IsValid() {
		return c, nil
	}
	return ColumnNone, fmt.Errorf("unknown column %q (valid: first, last, age)", s)
}

// Direction is a sort direction.
type Direction string

// Sort directions.
const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection converts a direction name to a Direction.
// The empty string parses as Ascending.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return Ascending, fmt.Errorf("unknown sort direction %q (valid: asc, desc)", s)
	}
}

// Arrow returns the header marker for the direction.
func (d Direction) Arrow() string {
	if d == Descending {
		return "▼"
	}
	return "▲"
}

// Ordering is the active sort key. The zero value keeps roster order.
type Ordering struct {
	Column    Column
	Direction Direction
}

// IsSet reports whether the ordering sorts anything.
func (o Ordering) IsSet() bool {
	return o.Column.IsValid()
}

// Source is the read side of a roster that a View projects.
type Source interface {
	Entries() []roster.Entry
}

// View holds the active query and ordering. It never mutates the source.
type View struct {
	query    string
	ordering Ordering
}

// New creates a View with no filter and roster order.
func New() *View {
	return &View{}
}

// Query returns the active filter text.
func (v *View) Query() string {
	return v.query
}

// SetQuery sets the first name filter. An empty query matches everyone.
func (v *View) SetQuery(text string) {
	v.query = text
}

// Ordering returns the active ordering.
func (v *View) Ordering() Ordering {
	return v.ordering
}

// SetOrdering sorts by column in the given direction.
// An invalid column clears the ordering.
func (v *View) SetOrdering(column Column, direction Direction) {
	if !column.IsValid() {
		v.ordering = Ordering{}
		return
	}
	if direction != Descending {
		direction = Ascending
	}
	v.ordering = Ordering{Column: column, Direction: direction}
}

// ClearOrdering returns to roster order.
func (v *View) ClearOrdering() {
	v.ordering = Ordering{}
}

// CycleOrdering advances the ordering the way a table header click does:
// ascending, then descending, then unsorted. A different column starts at
// ascending.
func (v *View) CycleOrdering(column Column) {
	if !column.IsValid() {
		return
	}
	switch {
	case v.ordering.Column != column:
		v.ordering = Ordering{Column: column, Direction: Ascending}
	case v.ordering.Direction == Ascending:
		v.ordering.Direction = Descending
	default:
		v.ordering = Ordering{}
	}
}

// Matches reports whether p passes the active filter.
func (v *View) Matches(p person.Person) bool {
	return matches(strings.ToLower(v.query), p)
}

func matches(lowerQuery string, p person.Person) bool {
	if lowerQuery == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.FirstName), lowerQuery)
}

// Materialize returns the display sequence: entries that pass the filter,
// stably sorted by the active ordering. Each range over the sequence reads
// the source and the view state afresh.
func (v *View) Materialize(src Source) iter.Seq[roster.Entry] {
	return func(yield func(roster.Entry) bool) {
		for _, e := range v.collect(src) {
			if !yield(e) {
				return
			}
		}
	}
}

// Persons collects the display sequence as persons.
func (v *View) Persons(src Source) []person.Person {
	entries := v.collect(src)
	persons := make([]person.Person, len(entries))
	for i, e := range entries {
		persons[i] = e.Person
	}
	return persons
}

// People adapts an entry sequence to a person sequence.
func People(seq iter.Seq[roster.Entry]) iter.Seq[person.Person] {
	return func(yield func(person.Person) bool) {
		for e := range seq {
			if !yield(e.Person) {
				return
			}
		}
	}
}

func (v *View) collect(src Source) []roster.Entry {
	q := strings.ToLower(v.query)
	entries := slices.DeleteFunc(src.Entries(), func(e roster.Entry) bool {
		return !matches(q, e.Person)
	})

	if !v.ordering.IsSet() {
		return entries
	}

	compare := comparator(v.ordering.Column)
	if v.ordering.Direction == Descending {
		asc := compare
		compare = func(a, b person.Person) int { return asc(b, a) }
	}
	slices.SortStableFunc(entries, func(a, b roster.Entry) int {
		return compare(a.Person, b.Person)
	})
	return entries
}

func comparator(c Column) func(a, b person.Person) int {
	switch c {
	case ColumnLastName:
		return func(a, b person.Person) int { return strings.Compare(a.LastName, b.LastName) }
	case ColumnAge:
		return func(a, b person.Person) int { return cmp.Compare(a.Age, b.Age) }
	default:
		return func(a, b person.Person) int { return strings.Compare(a.FirstName, b.FirstName) }
	}
}
