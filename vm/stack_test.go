// ABOUTME: Tests for the root stack
// ABOUTME: Validates LIFO order, capacity, and underflow errors

package vm

import (
	"errors"
	"testing"

	"github.com/prateek/microgc/heap"
)

func TestStackPushPop(t *testing.T) {
	a := heap.NewArena(0)
	s := NewRootStack(4)

	r1, _ := a.AllocScalar(1)
	r2, _ := a.AllocScalar(2)

	if err := s.Push(r1); err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	if err := s.Push(r2); err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("Expected depth 2, got %d", s.Len())
	}

	// Last in, first out
	got, err := s.Pop()
	if err != nil {
		t.Fatalf("Pop failed: %v", err)
	}
	if got != r2 {
		t.Errorf("Expected %v, got %v", r2, got)
	}
	got, _ = s.Pop()
	if got != r1 {
		t.Errorf("Expected %v, got %v", r1, got)
	}
}

func TestStackOverflow(t *testing.T) {
	a := heap.NewArena(0)
	s := NewRootStack(2)

	r, _ := a.AllocScalar(1)
	s.Push(r)
	s.Push(r)

	if err := s.Push(r); !errors.Is(err, ErrStackOverflow) {
		t.Errorf("Expected ErrStackOverflow, got %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("Failed push changed depth to %d", s.Len())
	}
}

func TestStackUnderflow(t *testing.T) {
	s := NewRootStack(2)

	if _, err := s.Pop(); !errors.Is(err, ErrStackUnderflow) {
		t.Errorf("Expected ErrStackUnderflow, got %v", err)
	}
}

func TestStackReset(t *testing.T) {
	a := heap.NewArena(0)
	s := NewRootStack(4)

	r, _ := a.AllocScalar(1)
	s.Push(r)
	s.Push(r)
	s.Reset()

	if s.Len() != 0 {
		t.Errorf("Expected empty stack after reset, got depth %d", s.Len())
	}
	if len(s.Refs()) != 0 {
		t.Errorf("Expected no refs after reset, got %v", s.Refs())
	}
}

func TestStackRefsOrder(t *testing.T) {
	a := heap.NewArena(0)
	s := NewRootStack(4)

	r1, _ := a.AllocScalar(1)
	r2, _ := a.AllocScalar(2)
	s.Push(r1)
	s.Push(r2)

	refs := s.Refs()
	if len(refs) != 2 || refs[0] != r1 || refs[1] != r2 {
		t.Errorf("Expected bottom-first [%v %v], got %v", r1, r2, refs)
	}
}
