// ABOUTME: Arena registry tracking every allocated-but-not-swept object
// ABOUTME: Generation-tagged slots with a free list; the only allocator

package heap

import "errors"

var (
	// ErrHeapExhausted is returned when an allocation would exceed the
	// arena's configured object limit
	ErrHeapExhausted = errors.New("heap: object limit reached")

	// ErrStaleRef is returned when a Ref is nil or no longer resolves to
	// a live object
	ErrStaleRef = errors.New("heap: stale or nil ref")

	// ErrNotPair is returned when a pair-field operation targets a scalar
	ErrNotPair = errors.New("heap: object is not a pair")
)

// slot holds one object plus its bookkeeping. The generation is bumped
// each time the slot is reused, so Refs handed out for a previous
// occupant stop resolving.
type slot struct {
	obj    Object
	gen    uint32
	used   bool
	marked bool
}

// Arena is the registry of every allocated object that has not yet been
// swept. Objects live in a dense slice of slots addressed by Ref; freed
// slots are recycled through a free list, giving O(1) allocation and one
// linear pass per sweep. An object belongs to exactly one Arena and is
// destroyed only by Sweep.
type Arena struct {
	slots []slot
	free  []int32
	live  int
	limit int // 0 means unbounded
}

// NewArena creates an empty arena. A limit of 0 means no object cap;
// otherwise allocations past the limit fail with ErrHeapExhausted.
func NewArena(limit int) *Arena {
	return &Arena{limit: limit}
}

// AllocScalar registers a new scalar object and returns its Ref
func (a *Arena) AllocScalar(v int64) (Ref, error) {
	return a.alloc(Object{Kind: KindScalar, Value: v})
}

// AllocPair registers a new pair referencing first and second. Both
// fields must resolve to live objects; pairs are never created with
// dangling fields.
func (a *Arena) AllocPair(first, second Ref) (Ref, error) {
	if _, err := a.lookup(first); err != nil {
		return NilRef, err
	}
	if _, err := a.lookup(second); err != nil {
		return NilRef, err
	}
	return a.alloc(Object{Kind: KindPair, First: first, Second: second})
}

// alloc places obj in a free slot, growing the slot slice if none is
// available, and increments the live count.
func (a *Arena) alloc(obj Object) (Ref, error) {
	if a.limit > 0 && a.live >= a.limit {
		return NilRef, ErrHeapExhausted
	}

	var idx int32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, slot{})
		idx = int32(len(a.slots) - 1)
	}

	s := &a.slots[idx]
	s.gen++
	s.used = true
	s.marked = false
	s.obj = obj
	a.live++

	return Ref{index: idx, gen: s.gen}, nil
}

// lookup resolves r to its slot, failing for nil, stale, and reused refs
func (a *Arena) lookup(r Ref) (*slot, error) {
	if r.IsNil() || int(r.index) >= len(a.slots) {
		return nil, ErrStaleRef
	}
	s := &a.slots[r.index]
	if !s.used || s.gen != r.gen {
		return nil, ErrStaleRef
	}
	return s, nil
}

// Get returns a copy of the object r refers to
func (a *Arena) Get(r Ref) (Object, error) {
	s, err := a.lookup(r)
	if err != nil {
		return Object{}, err
	}
	return s.obj, nil
}

// SetFirst repoints the first field of the pair r to target. target may
// be any live Ref, including one that reaches back to r (cycles are
// legal and are the collector's problem, not the mutator's).
func (a *Arena) SetFirst(r, target Ref) error {
	s, err := a.pair(r)
	if err != nil {
		return err
	}
	if _, err := a.lookup(target); err != nil {
		return err
	}
	s.obj.First = target
	return nil
}

// SetSecond repoints the second field of the pair r to target
func (a *Arena) SetSecond(r, target Ref) error {
	s, err := a.pair(r)
	if err != nil {
		return err
	}
	if _, err := a.lookup(target); err != nil {
		return err
	}
	s.obj.Second = target
	return nil
}

func (a *Arena) pair(r Ref) (*slot, error) {
	s, err := a.lookup(r)
	if err != nil {
		return nil, err
	}
	if s.obj.Kind != KindPair {
		return nil, ErrNotPair
	}
	return s, nil
}

// Live returns the number of registered objects not yet swept
func (a *Arena) Live() int {
	return a.live
}

// ForEachLive iterates over all live objects
func (a *Arena) ForEachLive(fn func(Ref, Object)) {
	for i := range a.slots {
		s := &a.slots[i]
		if !s.used {
			continue
		}
		fn(Ref{index: int32(i), gen: s.gen}, s.obj)
	}
}
