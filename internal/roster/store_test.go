package roster

import (
	"errors"
	"testing"

	rerrors "github.com/wexinc/roster/internal/errors"
	"github.com/wexinc/roster/internal/person"
)

func TestNewStore(t *testing.T) {
	s := NewStore()

	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	if len(s.Entries()) != 0 {
		t.Errorf("Entries() length = %d, want 0", len(s.Entries()))
	}
}

func TestStore_Add(t *testing.T) {
	s := NewStore()
	p := person.New("Ana", "Ruiz", 30)

	slot, err := s.Add(p)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if slot.IsNil() {
		t.Error("Add should return a non-nil slot")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	if !s.Contains(p) {
		t.Error("Contains() should be true after Add")
	}

	got, ok := s.Get(slot)
	if !ok {
		t.Fatal("Get() should find the added slot")
	}
	if !got.Equal(p) {
		t.Errorf("Get() = %v, want %v", got, p)
	}
}

func TestStore_Add_Duplicate(t *testing.T) {
	s := NewStore()
	p := person.New("Ana", "Ruiz", 30)

	if _, err := s.Add(p); err != nil {
		t.Fatalf("Add: %v", err)
	}

	_, err := s.Add(person.New("Ana", "Ruiz", 30))
	if err == nil {
		t.Fatal("expected error adding duplicate person")
	}
	if !errors.Is(err, rerrors.ErrDuplicate) {
		t.Errorf("error = %v, want ErrDuplicate", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after rejected duplicate", s.Len())
	}
}

func TestStore_Add_PreservesOrder(t *testing.T) {
	s := NewStore()
	people := []person.Person{
		person.New("Ana", "Ruiz", 30),
		person.New("Juan", "Diaz", 40),
		person.New("Pedro", "Lopez", 20),
	}
	for _, p := range people {
		if _, err := s.Add(p); err != nil {
			t.Fatalf("Add(%v): %v", p, err)
		}
	}

	got := s.Persons()
	for i, p := range people {
		if !got[i].Equal(p) {
			t.Errorf("Persons()[%d] = %v, want %v", i, got[i], p)
		}
	}
}

func TestStore_Remove(t *testing.T) {
	s := NewStore()
	ana := person.New("Ana", "Ruiz", 30)
	juan := person.New("Juan", "Diaz", 40)
	_, _ = s.Add(ana)
	_, _ = s.Add(juan)

	if err := s.Remove(person.New("Ana", "Ruiz", 30)); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	if s.Contains(ana) {
		t.Error("Contains() should be false after Remove")
	}
	if !s.Contains(juan) {
		t.Error("Remove should not affect other entries")
	}
}

func TestStore_Remove_NotFound(t *testing.T) {
	s := NewStore()
	_, _ = s.Add(person.New("Ana", "Ruiz", 30))

	err := s.Remove(person.New("Ana", "Ruiz", 31))
	if !errors.Is(err, rerrors.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after failed Remove", s.Len())
	}
}

func TestStore_RemoveSlot(t *testing.T) {
	s := NewStore()
	slot, _ := s.Add(person.New("Ana", "Ruiz", 30))

	if err := s.RemoveSlot(slot); err != nil {
		t.Fatalf("RemoveSlot: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}

	err := s.RemoveSlot(slot)
	if !errors.Is(err, rerrors.ErrNotFound) {
		t.Errorf("second RemoveSlot error = %v, want ErrNotFound", err)
	}
	if err := s.RemoveSlot(NilSlot); !errors.Is(err, rerrors.ErrNotFound) {
		t.Errorf("RemoveSlot(NilSlot) error = %v, want ErrNotFound", err)
	}
}

func TestStore_Update(t *testing.T) {
	s := NewStore()
	_, _ = s.Add(person.New("Ana", "Ruiz", 30))
	slot, _ := s.Add(person.New("Juan", "Diaz", 40))
	_, _ = s.Add(person.New("Pedro", "Lopez", 20))

	updated := person.New("Juana", "Diaz", 41)
	if err := s.Update(slot, updated); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	if idx := s.IndexOf(slot); idx != 1 {
		t.Errorf("IndexOf() = %d, want 1 (position preserved)", idx)
	}
	got, ok := s.Get(slot)
	if !ok || !got.Equal(updated) {
		t.Errorf("Get() = %v, %v; want %v", got, ok, updated)
	}
	if s.Contains(person.New("Juan", "Diaz", 40)) {
		t.Error("old values should no longer be present")
	}
}

func TestStore_Update_SameValues(t *testing.T) {
	s := NewStore()
	p := person.New("Ana", "Ruiz", 30)
	slot, _ := s.Add(p)

	// Saving an edit without changes must not be rejected as a duplicate of itself.
	if err := s.Update(slot, p); err != nil {
		t.Fatalf("Update with unchanged values: %v", err)
	}
}

func TestStore_Update_AllowsEqualToOtherEntry(t *testing.T) {
	s := NewStore()
	_, _ = s.Add(person.New("Ana", "Ruiz", 30))
	slot, _ := s.Add(person.New("Juan", "Diaz", 40))

	if err := s.Update(slot, person.New("Ana", "Ruiz", 30)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestStore_Update_NotFound(t *testing.T) {
	s := NewStore()
	slot, _ := s.Add(person.New("Ana", "Ruiz", 30))
	_ = s.RemoveSlot(slot)

	err := s.Update(slot, person.New("Ana", "Ruiz", 31))
	if !errors.Is(err, rerrors.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
	if s.Len() != 0 {
		t.Error("failed Update should not add entries")
	}
}

func TestStore_SlotOf(t *testing.T) {
	s := NewStore()
	p := person.New("Ana", "Ruiz", 30)
	want, _ := s.Add(p)

	got, ok := s.SlotOf(p)
	if !ok || got != want {
		t.Errorf("SlotOf() = %v, %v; want %v, true", got, ok, want)
	}

	if _, ok := s.SlotOf(person.New("Nobody", "", 0)); ok {
		t.Error("SlotOf() should report false for missing person")
	}
}

func TestStore_Entries_IsSnapshot(t *testing.T) {
	s := NewStore()
	slot, _ := s.Add(person.New("Ana", "Ruiz", 30))

	entries := s.Entries()
	entries[0].Person.Age = 99

	got, _ := s.Get(slot)
	if got.Age != 30 {
		t.Errorf("modifying Entries() result changed the store: age = %d", got.Age)
	}
}

func TestStore_Clear(t *testing.T) {
	s := NewStore()
	_, _ = s.Add(person.New("Ana", "Ruiz", 30))
	_, _ = s.Add(person.New("Juan", "Diaz", 40))

	s.Clear()

	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after Clear", s.Len())
	}
}

func TestSlot_String(t *testing.T) {
	if NilSlot.String() != "00000000-0000-0000-0000-000000000000" {
		t.Errorf("NilSlot.String() = %q", NilSlot.String())
	}
	if !NilSlot.IsNil() {
		t.Error("NilSlot.IsNil() should be true")
	}
}
