// Package collections holds small generic containers.
package collections

// Set is an unordered set backed by a map with zero-size values
type Set[T comparable] map[T]struct{}

// NewSet creates a Set holding vs
func NewSet[T comparable](vs ...T) Set[T] {
	s := make(Set[T], len(vs))
	s.Add(vs...)
	return s
}

// Add inserts vs
func (s Set[T]) Add(vs ...T) {
	for _, v := range vs {
		s[v] = struct{}{}
	}
}

// Has reports whether v is a member
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// HasAny reports whether at least one of vs is a member
func (s Set[T]) HasAny(vs ...T) bool {
	for _, v := range vs {
		if s.Has(v) {
			return true
		}
	}
	return false
}
