// Package roster provides the in-memory roster of persons.
package roster

import (
	"sync"

	"github.com/google/uuid"

	rerrors "github.com/wexinc/roster/internal/errors"
	"github.com/wexinc/roster/internal/person"
)

// Slot is a stable handle to one position in the roster.
// It survives edits to the person it holds, so a table selection can be
// resolved after the values used for equality have changed.
type Slot uuid.UUID

// NilSlot is the zero Slot; it never refers to an entry.
var NilSlot = Slot(uuid.Nil)

// String returns the slot's UUID text.
func (s Slot) String() string {
	return uuid.UUID(s).String()
}

// IsNil reports whether s is the zero slot.
func (s Slot) IsNil() bool {
	return s == NilSlot
}

// Entry pairs a person with the slot holding it.
type Entry struct {
	Slot   Slot
	Person person.Person
}

// Store is an ordered collection of unique persons.
// No two entries are equal after Add, Remove or RemoveSlot returns.
type Store struct {
	mu      sync.RWMutex
	entries []*Entry
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		entries: []*Entry{},
	}
}

// Add appends p to the roster and returns its slot.
// Returns a DuplicateError if an equal person is already present.
func (s *Store) Add(p person.Person) (Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(p) >= 0 {
		return NilSlot, rerrors.Duplicate(p.FullName())
	}

	entry := &Entry{
		Slot:   Slot(uuid.New()),
		Person: p,
	}
	s.entries = append(s.entries, entry)
	return entry.Slot, nil
}

// Remove deletes the first entry equal to p.
// Returns a NotFound error if no equal person exists.
func (s *Store) Remove(p person.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(p)
	if i < 0 {
		return rerrors.NotFound(p.String())
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	return nil
}

// RemoveSlot deletes the entry held by slot.
// Returns a NotFound error if the slot no longer exists.
func (s *Store) RemoveSlot(slot Slot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfSlot(slot)
	if i < 0 {
		return rerrors.NotFound("slot " + slot.String())
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	return nil
}

// Update overwrites the person held by slot, keeping its position.
// The new values are not checked against the other entries, so an edit can
// make two entries equal.
// Returns a NotFound error if the slot no longer exists.
func (s *Store) Update(slot Slot, p person.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfSlot(slot)
	if i < 0 {
		return rerrors.NotFound("slot " + slot.String())
	}
	s.entries[i].Person = p
	return nil
}

// Contains reports whether a person equal to p is in the roster.
func (s *Store) Contains(p person.Person) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(p) >= 0
}

// Get returns the person held by slot.
func (s *Store) Get(slot Slot) (person.Person, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOfSlot(slot)
	if i < 0 {
		return person.Person{}, false
	}
	return s.entries[i].Person, true
}

// SlotOf returns the slot of the first entry equal to p.
func (s *Store) SlotOf(p person.Person) (Slot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(p)
	if i < 0 {
		return NilSlot, false
	}
	return s.entries[i].Slot, true
}

// IndexOf returns the position of slot in roster order, or -1.
func (s *Store) IndexOf(slot Slot) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOfSlot(slot)
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Entries returns a snapshot of all entries in roster order.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]Entry, len(s.entries))
	for i, e := range s.entries {
		entries[i] = *e
	}
	return entries
}

// Persons returns a snapshot of all persons in roster order.
func (s *Store) Persons() []person.Person {
	s.mu.RLock()
	defer s.mu.RUnlock()

	persons := make([]person.Person, len(s.entries))
	for i, e := range s.entries {
		persons[i] = e.Person
	}
	return persons
}

// Clear removes all entries.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = []*Entry{}
}

func (s *Store) indexOf(p person.Person) int {
	for i, e := range s.entries {
		if e.Person.Equal(p) {
			return i
		}
	}
	return -1
}

func (s *Store) indexOfSlot(slot Slot) int {
	if slot.IsNil() {
		return -1
	}
	for i, e := range s.entries {
		if e.Slot == slot {
			return i
		}
	}
	return -1
}
