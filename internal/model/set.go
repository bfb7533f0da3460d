package model

import (
	"encoding/json"
	"strings"
)

// StringSet is an insertion-ordered set of strings backing multi-select
// fields. The zero value is an empty set ready to use.
type StringSet struct {
	items []string
}

// NewStringSet builds a set from values, dropping duplicates and blank
// entries while keeping first-seen order.
func NewStringSet(values ...string) StringSet {
	var s StringSet
	for _, value := range values {
		if strings.TrimSpace(value) == "" {
			continue
		}
		s.Add(value)
	}
	return s
}

// Has reports membership.
func (s StringSet) Has(item string) bool {
	for _, existing := range s.items {
		if existing == item {
			return true
		}
	}
	return false
}

// Add inserts item if absent, blank items included. It reports whether the
// set changed.
func (s *StringSet) Add(item string) bool {
	if s.Has(item) {
		return false
	}
	s.items = append(s.items, item)
	return true
}

// Remove deletes item if present. It reports whether the set changed.
func (s *StringSet) Remove(item string) bool {
	for i, existing := range s.items {
		if existing == item {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Toggle removes item when present and adds it otherwise. It reports whether
// item is a member after the call.
func (s *StringSet) Toggle(item string) bool {
	if s.Remove(item) {
		return false
	}
	return s.Add(item)
}

// Len returns the number of members.
func (s StringSet) Len() int {
	return len(s.items)
}

// Items returns a copy of the members in insertion order. An empty set yields
// an empty, non-nil slice.
func (s StringSet) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// Clone returns an independent copy.
func (s StringSet) Clone() StringSet {
	return StringSet{items: s.Items()}
}

// Equal compares membership ignoring order.
func (s StringSet) Equal(other StringSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, item := range s.items {
		if !other.Has(item) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the set as an array, never null.
func (s StringSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Items())
}

// UnmarshalJSON decodes an array, collapsing duplicates.
func (s *StringSet) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = NewStringSet(values...)
	return nil
}

// MarshalYAML encodes the set as a sequence.
func (s StringSet) MarshalYAML() (any, error) {
	return s.Items(), nil
}

// UnmarshalYAML decodes a sequence, collapsing duplicates.
func (s *StringSet) UnmarshalYAML(unmarshal func(any) error) error {
	var values []string
	if err := unmarshal(&values); err != nil {
		return err
	}
	*s = NewStringSet(values...)
	return nil
}
