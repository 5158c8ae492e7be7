package event

// Stack is an ordered log of the inputs seen during one frame. Entries are
// removed by consumers so later queries in the same frame do not see them.
type Stack[T comparable] struct {
	items []T
}

// Push appends v.
func (s *Stack[T]) Push(v T) {
	s.items = append(s.items, v)
}

// Contains reports whether v was pushed and not yet consumed.
func (s *Stack[T]) Contains(v T) bool {
	for _, it := range s.items {
		if it == v {
			return true
		}
	}
	return false
}

// Consume removes the first entry equal to v and reports whether one was
// found.
func (s *Stack[T]) Consume(v T) bool {
	for i, it := range s.items {
		if it == v {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// ConsumeFunc removes the first entry for which match returns true.
func (s *Stack[T]) ConsumeFunc(match func(T) bool) bool {
	for i, it := range s.items {
		if match(it) {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// ConsumeAll removes every entry equal to v and returns how many there were.
func (s *Stack[T]) ConsumeAll(v T) int {
	kept := s.items[:0]
	for _, it := range s.items {
		if it != v {
			kept = append(kept, it)
		}
	}
	n := len(s.items) - len(kept)
	s.items = kept
	return n
}

// Clear empties the stack, keeping its capacity.
func (s *Stack[T]) Clear() {
	s.items = s.items[:0]
}

// Len returns the number of entries.
func (s *Stack[T]) Len() int {
	return len(s.items)
}

// Items returns the entries in push order. The slice is only valid until
// the next mutation.
func (s *Stack[T]) Items() []T {
	return s.items
}
