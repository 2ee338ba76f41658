package models

import (
	"errors"
	"strings"
)

// ErrFrozen is returned when a frozen store is mutated.
var ErrFrozen = errors.New("inventory store is frozen")

// Store maps item identifiers to merged records and preserves first-insertion order.
type Store struct {
	records map[string]*Record
	order   []string
	frozen  bool
}

// NewStore creates an empty, mutable store.
func NewStore() *Store {
	return &Store{records: make(map[string]*Record)}
}

// Put inserts or replaces a record. A replaced identifier keeps its original position.
func (s *Store) Put(r Record) error {
	if s.frozen {
		return ErrFrozen
	}
	if _, exists := s.records[r.ID]; !exists {
		s.order = append(s.order, r.ID)
	}
	rec := r
	s.records[r.ID] = &rec
	return nil
}

// Update applies fn to an existing record. It returns false if the identifier is unknown.
func (s *Store) Update(id string, fn func(r *Record)) (bool, error) {
	if s.frozen {
		return false, ErrFrozen
	}
	rec, ok := s.records[id]
	if !ok {
		return false, nil
	}
	fn(rec)
	return true, nil
}

// Freeze makes the store read-only.
func (s *Store) Freeze() {
	s.frozen = true
}

// Frozen reports whether Freeze has been called.
func (s *Store) Frozen() bool {
	return s.frozen
}

// Get returns a copy of the record for id.
func (s *Store) Get(id string) (Record, bool) {
	rec, ok := s.records[id]
	if !ok {
		return Record{}, false
	}
	return *rec, true
}

// Contains reports whether id is present.
func (s *Store) Contains(id string) bool {
	_, ok := s.records[id]
	return ok
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.order)
}

// IDs returns the identifiers in insertion order.
func (s *Store) IDs() []string {
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	return ids
}

// Records returns copies of all records in insertion order.
func (s *Store) Records() []Record {
	out := make([]Record, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.records[id])
	}
	return out
}

// Manufacturers returns the distinct lowercased manufacturer names, in first-seen order.
func (s *Store) Manufacturers() []string {
	return s.distinct(func(r *Record) string { return r.Manufacturer })
}

// ItemTypes returns the distinct lowercased item types, in first-seen order.
func (s *Store) ItemTypes() []string {
	return s.distinct(func(r *Record) string { return r.ItemType })
}

func (s *Store) distinct(field func(*Record) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, id := range s.order {
		v := strings.ToLower(field(s.records[id]))
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
