// ABOUTME: Fixed-capacity LIFO root stack
// ABOUTME: The collector's sole root set

package vm

import (
	"errors"

	"github.com/prateek/microgc/heap"
)

var (
	// ErrStackOverflow is returned by Push when the stack is at capacity
	ErrStackOverflow = errors.New("vm: root stack overflow")

	// ErrStackUnderflow is returned by Pop when the stack is empty
	ErrStackUnderflow = errors.New("vm: root stack underflow")
)

// RootStack is a bounded last-in-first-out sequence of heap Refs. Its
// contents are the root set: everything the collector treats as alive by
// definition. Every Ref on the stack refers to a live object; the stack
// never holds a ref to something already swept.
type RootStack struct {
	refs     []heap.Ref
	capacity int
}

// NewRootStack creates an empty stack with the given maximum depth
func NewRootStack(capacity int) *RootStack {
	return &RootStack{
		refs:     make([]heap.Ref, 0, capacity),
		capacity: capacity,
	}
}

// Push appends r to the stack
func (s *RootStack) Push(r heap.Ref) error {
	if len(s.refs) == s.capacity {
		return ErrStackOverflow
	}
	s.refs = append(s.refs, r)
	return nil
}

// Pop removes and returns the most recently pushed Ref
func (s *RootStack) Pop() (heap.Ref, error) {
	if len(s.refs) == 0 {
		return heap.NilRef, ErrStackUnderflow
	}
	r := s.refs[len(s.refs)-1]
	s.refs = s.refs[:len(s.refs)-1]
	return r, nil
}

// Len returns the current stack depth
func (s *RootStack) Len() int {
	return len(s.refs)
}

// Refs exposes the stack contents bottom-first for the mark phase.
// Callers must not mutate the returned slice.
func (s *RootStack) Refs() []heap.Ref {
	return s.refs
}

// Reset drops every root, emptying the stack
func (s *RootStack) Reset() {
	s.refs = s.refs[:0]
}
