// stack.go provides a slice backed stack that holds arbitrary data.
// The bottom element is the first entry into the stack, while the top is
// the last entry to be added to the stack. The stack is not synchronised;
// a Stack must be owned by a single goroutine.

package util

// Stack is a LIFO stack of elements of type T.
type Stack[T any] struct {
	e []T // Elements, bottom first.
}

// NewStack returns an empty Stack with room for n elements before it has to grow.
func NewStack[T any](n int) *Stack[T] {
	if n < 0 {
		n = 0
	}
	return &Stack[T]{e: make([]T, 0, n)}
}

// Push adds a new element to the top of the stack.
func (s *Stack[T]) Push(e T) {
	s.e = append(s.e, e)
}

// Pop removes and returns the last inserted element on the stack.
// If the stack is empty the zero value of T and false is returned.
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	if len(s.e) == 0 {
		return zero, false
	}
	top := s.e[len(s.e)-1]
	s.e[len(s.e)-1] = zero
	s.e = s.e[:len(s.e)-1]
	return top, true
}

// Peek works just like Pop, but it does not remove the element from the stack.
func (s *Stack[T]) Peek() (T, bool) {
	if len(s.e) == 0 {
		var zero T
		return zero, false
	}
	return s.e[len(s.e)-1], true
}

// Size returns the number of elements in the stack.
func (s *Stack[T]) Size() int {
	return len(s.e)
}

// Empty returns true if the stack holds no elements.
func (s *Stack[T]) Empty() bool {
	return len(s.e) == 0
}

// Get returns the nth element from the stack, top down, not zero indexed.
// Get(1) returns the first element on stack, and is similar to Peek.
// Get(Stack.Size()) returns the bottom element. If the index n is out of
// range false is returned. Get does not remove elements from the stack.
func (s *Stack[T]) Get(n int) (T, bool) {
	if n < 1 || n > len(s.e) {
		var zero T
		return zero, false
	}
	return s.e[len(s.e)-n], true
}

// Reset removes all elements while keeping the allocated capacity.
func (s *Stack[T]) Reset() {
	var zero T
	for i1 := range s.e {
		s.e[i1] = zero
	}
	s.e = s.e[:0]
}
