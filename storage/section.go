package storage

import (
	"fmt"
	"slices"
)

// Section is an ordered set of named entries, the "object" of portable
// storage. The zero value is an empty section ready to use.
type Section struct {
	names   []string
	entries map[string]Entry
}

func NewSection() *Section {
	return &Section{}
}

func (*Section) Kind() Kind { return KindSection }
func (*Section) isEntry()   {}

// Len returns the number of entries.
func (s *Section) Len() int { return len(s.names) }

// Names returns entry names in insertion order.
func (s *Section) Names() []string { return slices.Clone(s.names) }

// Set stores e under name. Replacing an entry keeps its original position.
func (s *Section) Set(name string, e Entry) {
	if s.entries == nil {
		s.entries = make(map[string]Entry)
	}
	if _, ok := s.entries[name]; !ok {
		s.names = append(s.names, name)
	}
	s.entries[name] = e
}

// Get returns the entry stored under name.
func (s *Section) Get(name string) (Entry, bool) {
	e, ok := s.entries[name]
	return e, ok
}

// Delete removes the entry stored under name, if any.
func (s *Section) Delete(name string) {
	if _, ok := s.entries[name]; !ok {
		return
	}
	delete(s.entries, name)
	s.names = slices.DeleteFunc(s.names, func(n string) bool { return n == name })
}

// Put stores the entry form of v under name.
func (s *Section) Put(name string, v Marshaler) {
	s.Set(name, v.MarshalEntry())
}

// Decode restores v from the entry stored under name.
func (s *Section) Decode(name string, v Unmarshaler) error {
	e, ok := s.Get(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrMissingEntry, name)
	}
	if err := v.UnmarshalEntry(e); err != nil {
		return fmt.Errorf("storage: entry %q: %w", name, err)
	}
	return nil
}

// Range calls fn for each entry in insertion order until fn returns false.
func (s *Section) Range(fn func(name string, e Entry) bool) {
	for _, name := range s.names {
		if !fn(name, s.entries[name]) {
			return
		}
	}
}
