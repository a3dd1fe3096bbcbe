package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStackLIFO verifies that elements are popped in reverse push order.
func TestStackLIFO(t *testing.T) {
	s := NewStack[int](2)
	for i1 := 0; i1 < 5; i1++ {
		s.Push(i1)
	}
	require.Equal(t, 5, s.Size())

	top, ok := s.Peek()
	require.True(t, ok)
	assert.Equal(t, 4, top)

	for i1 := 4; i1 >= 0; i1-- {
		e, ok := s.Pop()
		require.True(t, ok)
		assert.Equal(t, i1, e)
	}
	assert.True(t, s.Empty())

	_, ok = s.Pop()
	assert.False(t, ok)
	_, ok = s.Peek()
	assert.False(t, ok)
}

// TestStackGet verifies the one-indexed, top down Get accessor.
func TestStackGet(t *testing.T) {
	s := NewStack[string](0)
	s.Push("bottom")
	s.Push("middle")
	s.Push("top")

	tests := []struct {
		n   int
		exp string
		ok  bool
	}{
		{n: 1, exp: "top", ok: true},
		{n: 2, exp: "middle", ok: true},
		{n: 3, exp: "bottom", ok: true},
		{n: 0, ok: false},
		{n: 4, ok: false},
		{n: -1, ok: false},
	}
	for _, e1 := range tests {
		got, ok := s.Get(e1.n)
		assert.Equal(t, e1.ok, ok, "Get(%d)", e1.n)
		assert.Equal(t, e1.exp, got, "Get(%d)", e1.n)
	}
	assert.Equal(t, 3, s.Size(), "Get must not remove elements")
}

// TestStackReset verifies that Reset empties the stack and that it stays usable.
func TestStackReset(t *testing.T) {
	s := NewStack[int](-3)
	s.Push(1)
	s.Push(2)
	s.Reset()
	assert.True(t, s.Empty())

	s.Push(7)
	e, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, 7, e)
}
