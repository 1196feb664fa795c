package components

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"

	"github.com/wexinc/roster/internal/roster"
	"github.com/wexinc/roster/internal/tui/styles"
	"github.com/wexinc/roster/internal/view"
)

const (
	ageColumnWidth  = 8
	minNameWidth    = 12
	cellPaddingCols = 2
)

// RosterTable shows the materialized view as a table. Rows keep the slot of
// the entry they display, so the selection survives re-sorting.
type RosterTable struct {
	table    table.Model
	slots    []roster.Slot
	ordering view.Ordering
	width    int
	height   int
}

// NewRosterTable creates an empty, focused table.
func NewRosterTable() *RosterTable {
	s := table.DefaultStyles()
	s.Header = styles.TableHeaderStyle
	s.Cell = styles.TableCellStyle
	s.Selected = styles.TableSelectedStyle

	t := &RosterTable{width: 60, height: 10}
	t.table = table.New(
		table.WithColumns(t.columns()),
		table.WithFocused(true),
		table.WithHeight(t.height),
		table.WithStyles(s),
	)
	return t
}

// SetSize sets the table dimensions.
func (t *RosterTable) SetSize(width, height int) {
	t.width = width
	t.height = max(height, 3)
	t.table.SetColumns(t.columns())
	t.table.SetWidth(width)
	t.table.SetHeight(t.height)
}

func (t *RosterTable) columns() []table.Column {
	nameWidth := max((t.width-ageColumnWidth-3*cellPaddingCols)/2, minNameWidth)
	cols := []table.Column{
		{Title: t.title(view.ColumnFirstName), Width: nameWidth},
		{Title: t.title(view.ColumnLastName), Width: nameWidth},
		{Title: t.title(view.ColumnAge), Width: ageColumnWidth},
	}
	return cols
}

func (t *RosterTable) title(c view.Column) string {
	title := c.Title()
	if t.ordering.Column == c {
		title += " " + t.ordering.Direction.Arrow()
	}
	if c == view.ColumnAge {
		return fmt.Sprintf("%*s", ageColumnWidth, title)
	}
	return title
}

// SetEntries replaces the rows with entries, in order, and keeps the
// selected entry selected when it is still shown.
func (t *RosterTable) SetEntries(entries []roster.Entry, ordering view.Ordering) {
	selected := t.Selected()

	t.ordering = ordering
	t.table.SetColumns(t.columns())

	rows := make([]table.Row, len(entries))
	slots := make([]roster.Slot, len(entries))
	cursor := min(t.table.Cursor(), len(entries)-1)
	for i, e := range entries {
		rows[i] = table.Row{
			e.Person.FirstName,
			e.Person.LastName,
			fmt.Sprintf("%*s", ageColumnWidth, strconv.Itoa(e.Person.Age)),
		}
		slots[i] = e.Slot
		if e.Slot == selected {
			cursor = i
		}
	}
	t.slots = slots
	t.table.SetRows(rows)
	t.table.SetCursor(max(cursor, 0))
}

// Len returns the number of rows.
func (t *RosterTable) Len() int {
	return len(t.slots)
}

// Cursor returns the selected row index.
func (t *RosterTable) Cursor() int {
	return t.table.Cursor()
}

// Selected returns the slot of the selected row, or NilSlot when the table
// is empty.
func (t *RosterTable) Selected() roster.Slot {
	i := t.table.Cursor()
	if i < 0 || i >= len(t.slots) {
		return roster.NilSlot
	}
	return t.slots[i]
}

// Select moves the cursor to the row showing slot. It returns false if no
// row shows it.
func (t *RosterTable) Select(slot roster.Slot) bool {
	for i, s := range t.slots {
		if s == slot {
			t.table.SetCursor(i)
			return true
		}
	}
	return false
}

// MoveUp moves the selection up n rows.
func (t *RosterTable) MoveUp(n int) {
	t.table.MoveUp(n)
}

// MoveDown moves the selection down n rows.
func (t *RosterTable) MoveDown(n int) {
	t.table.MoveDown(n)
}

// PageUp moves the selection up one screen.
func (t *RosterTable) PageUp() {
	t.table.MoveUp(t.height)
}

// PageDown moves the selection down one screen.
func (t *RosterTable) PageDown() {
	t.table.MoveDown(t.height)
}

// GotoTop selects the first row.
func (t *RosterTable) GotoTop() {
	t.table.GotoTop()
}

// GotoBottom selects the last row.
func (t *RosterTable) GotoBottom() {
	t.table.GotoBottom()
}

// Rows returns the displayed cell values.
func (t *RosterTable) Rows() []table.Row {
	return t.table.Rows()
}

// View renders the table.
func (t *RosterTable) View() string {
	if len(t.slots) == 0 {
		return t.table.View() + "\n" + styles.EmptyTableStyle.Render("No persons to show.")
	}
	return t.table.View()
}
