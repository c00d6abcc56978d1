// Package setutil provides generic set utilities for common ID collection patterns.
package setutil

// UintSet is a set of uint values.
// It uses map[uint]struct{} internally for memory efficiency.
type UintSet struct {
	items map[uint]struct{}
}

// NewUintSet creates a new empty UintSet.
func NewUintSet() *UintSet {
	return &UintSet{
		items: make(map[uint]struct{}),
	}
}

// NewUintSetWithCap creates a new UintSet with initial capacity.
func NewUintSetWithCap(cap int) *UintSet {
	return &UintSet{
		items: make(map[uint]struct{}, cap),
	}
}

// NewUintSetFrom creates a UintSet containing the given ids.
func NewUintSetFrom(ids []uint) *UintSet {
	s := NewUintSetWithCap(len(ids))
	s.AddAll(ids)
	return s
}

// Add adds an id to the set.
func (s *UintSet) Add(id uint) {
	s.items[id] = struct{}{}
}

// AddAll adds all ids to the set.
func (s *UintSet) AddAll(ids []uint) {
	for _, id := range ids {
		s.items[id] = struct{}{}
	}
}

// Has returns true if the id exists in the set.
func (s *UintSet) Has(id uint) bool {
	_, ok := s.items[id]
	return ok
}

// ToSlice returns all ids as a slice.
// The order is not guaranteed.
func (s *UintSet) ToSlice() []uint {
	result := make([]uint, 0, len(s.items))
	for id := range s.items {
		result = append(result, id)
	}
	return result
}

// Len returns the number of elements in the set.
func (s *UintSet) Len() int {
	return len(s.items)
}

// StringSet is a set of string values.
type StringSet struct {
	items map[string]struct{}
}

// NewStringSet creates a new empty StringSet.
func NewStringSet() *StringSet {
	return &StringSet{
		items: make(map[string]struct{}),
	}
}

// NewStringSetFrom creates a StringSet containing the given values.
func NewStringSetFrom(values []string) *StringSet {
	s := &StringSet{items: make(map[string]struct{}, len(values))}
	s.AddAll(values)
	return s
}

// Add adds a value to the set.
func (s *StringSet) Add(v string) {
	s.items[v] = struct{}{}
}

// AddAll adds all values to the set.
func (s *StringSet) AddAll(values []string) {
	for _, v := range values {
		s.items[v] = struct{}{}
	}
}

// Has returns true if the value exists in the set.
func (s *StringSet) Has(v string) bool {
	_, ok := s.items[v]
	return ok
}

// ToSlice returns all values as a slice.
// The order is not guaranteed.
func (s *StringSet) ToSlice() []string {
	result := make([]string, 0, len(s.items))
	for v := range s.items {
		result = append(result, v)
	}
	return result
}

// Len returns the number of elements in the set.
func (s *StringSet) Len() int {
	return len(s.items)
}
