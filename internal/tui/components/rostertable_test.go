package components

import (
	"slices"
	"strings"
	"testing"

	"github.com/wexinc/roster/internal/person"
	"github.com/wexinc/roster/internal/roster"
	"github.com/wexinc/roster/internal/view"
)

func sampleEntries(t *testing.T) []roster.Entry {
	t.Helper()
	st := roster.NewStore()
	for _, p := range []person.Person{
		person.New("Ana", "Ruiz", 30),
		person.New("Juan", "Diaz", 40),
		person.New("Pedro", "Lopez", 20),
	} {
		if _, err := st.Add(p); err != nil {
			t.Fatal(err)
		}
	}
	return st.Entries()
}

func TestRosterTable_Empty(t *testing.T) {
	tbl := NewRosterTable()

	if tbl.Len() != 0 {
		t.Errorf("expected no rows, got %d", tbl.Len())
	}
	if !tbl.Selected().IsNil() {
		t.Error("empty table should have no selection")
	}
	if !strings.Contains(tbl.View(), "No persons to show.") {
		t.Error("empty table should show a placeholder")
	}
}

func TestRosterTable_SetEntries(t *testing.T) {
	entries := sampleEntries(t)
	tbl := NewRosterTable()
	tbl.SetEntries(entries, view.Ordering{})

	rows := tbl.Rows()
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "Ana" || rows[0][1] != "Ruiz" {
		t.Errorf("unexpected first row %v", rows[0])
	}
	if len(rows[0][2]) != ageColumnWidth || strings.TrimSpace(rows[0][2]) != "30" {
		t.Errorf("age should be right-aligned to the column width, got %q", rows[0][2])
	}
	if tbl.Selected() != entries[0].Slot {
		t.Error("first row should be selected")
	}
}

func TestRosterTable_Navigation(t *testing.T) {
	entries := sampleEntries(t)
	tbl := NewRosterTable()
	tbl.SetEntries(entries, view.Ordering{})

	tbl.MoveDown(1)
	if tbl.Selected() != entries[1].Slot {
		t.Errorf("expected second row selected, cursor=%d", tbl.Cursor())
	}
	tbl.GotoBottom()
	if tbl.Selected() != entries[2].Slot {
		t.Error("expected last row selected")
	}
	tbl.MoveDown(5)
	if tbl.Cursor() != 2 {
		t.Errorf("cursor should stop at the last row, got %d", tbl.Cursor())
	}
	tbl.GotoTop()
	if tbl.Cursor() != 0 {
		t.Errorf("expected cursor 0, got %d", tbl.Cursor())
	}
	tbl.MoveUp(1)
	if tbl.Cursor() != 0 {
		t.Errorf("cursor should stop at the first row, got %d", tbl.Cursor())
	}
}

func TestRosterTable_SelectionFollowsEntry(t *testing.T) {
	entries := sampleEntries(t)
	tbl := NewRosterTable()
	tbl.SetEntries(entries, view.Ordering{})

	// Select Juan, then reverse the order.
	tbl.MoveDown(1)
	juan := tbl.Selected()

	reversed := slices.Clone(entries)
	slices.Reverse(reversed)
	tbl.SetEntries(reversed, view.Ordering{Column: view.ColumnAge, Direction: view.Descending})

	if tbl.Selected() != juan {
		t.Error("selection should stay on the same entry after re-ordering")
	}
}

func TestRosterTable_SelectionClampsWhenRowsShrink(t *testing.T) {
	entries := sampleEntries(t)
	tbl := NewRosterTable()
	tbl.SetEntries(entries, view.Ordering{})
	tbl.GotoBottom()

	tbl.SetEntries(entries[:1], view.Ordering{})
	if tbl.Selected() != entries[0].Slot {
		t.Error("selection should move to the remaining row")
	}

	tbl.SetEntries(nil, view.Ordering{})
	if !tbl.Selected().IsNil() {
		t.Error("selection should be empty with no rows")
	}
}

func TestRosterTable_Select(t *testing.T) {
	entries := sampleEntries(t)
	tbl := NewRosterTable()
	tbl.SetEntries(entries, view.Ordering{})

	if !tbl.Select(entries[2].Slot) {
		t.Fatal("expected Select to find the slot")
	}
	if tbl.Cursor() != 2 {
		t.Errorf("expected cursor 2, got %d", tbl.Cursor())
	}
	if tbl.Select(roster.NilSlot) {
		t.Error("nil slot should not be found")
	}
}

func TestRosterTable_HeaderArrow(t *testing.T) {
	tbl := NewRosterTable()
	tbl.SetEntries(sampleEntries(t), view.Ordering{Column: view.ColumnAge, Direction: view.Ascending})

	cols := tbl.columns()
	if !strings.Contains(cols[2].Title, "Edad ▲") {
		t.Errorf("expected ascending arrow on Edad, got %q", cols[2].Title)
	}
	if strings.Contains(cols[0].Title, "▲") || strings.Contains(cols[1].Title, "▲") {
		t.Error("only the sorted column should carry an arrow")
	}

	tbl.SetEntries(sampleEntries(t), view.Ordering{Column: view.ColumnFirstName, Direction: view.Descending})
	cols = tbl.columns()
	if cols[0].Title != "Nombre ▼" {
		t.Errorf("expected 'Nombre ▼', got %q", cols[0].Title)
	}
	if strings.TrimSpace(cols[2].Title) != "Edad" {
		t.Errorf("expected plain Edad, got %q", cols[2].Title)
	}
}
