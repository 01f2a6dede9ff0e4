// ABOUTME: Mark phase of the collector
// ABOUTME: Work-list reachability walk over the object graph

package heap

// Mark sets the mark bit on every object transitively reachable from
// roots. The walk uses an explicit work list instead of recursion, so
// auxiliary memory is bounded by the live object count and a deep chain
// cannot overflow the call stack. Root order does not affect the result.
func (a *Arena) Mark(roots []Ref) {
	var pending []Ref
	for _, r := range roots {
		if a.markOne(r) {
			pending = append(pending, r)
		}
	}

	for len(pending) > 0 {
		r := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		obj := a.slots[r.index].obj
		if obj.Kind != KindPair {
			continue
		}
		if a.markOne(obj.First) {
			pending = append(pending, obj.First)
		}
		if a.markOne(obj.Second) {
			pending = append(pending, obj.Second)
		}
	}
}

// markOne marks r and reports whether it was newly marked. The
// already-marked check is both the cycle-termination condition and the
// guarantee that a subgraph shared by two roots is scanned once.
func (a *Arena) markOne(r Ref) bool {
	s, err := a.lookup(r)
	if err != nil || s.marked {
		return false
	}
	s.marked = true
	return true
}
