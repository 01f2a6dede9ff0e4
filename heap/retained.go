// ABOUTME: Computes how many live objects a single object keeps alive
// ABOUTME: Reachability difference with the target excluded from traversal

package heap

// RetainedCount reports how many live objects would become unreachable
// from roots if target dropped out of the graph, target itself included.
// It is computed as the difference between plain reachability and a
// second pass that refuses to traverse into target. Returns 0 when the
// target is not itself reachable.
func RetainedCount(a *Arena, roots []Ref, target Ref) int {
	full := reachableSet(a, roots, NilRef)
	if _, ok := full[target]; !ok {
		return 0
	}
	without := reachableSet(a, roots, target)
	return len(full) - len(without)
}

// reachableSet computes the set of objects reachable from roots,
// treating skip (if non-nil) as absent from the graph. Same work-list
// shape as Mark, but against a local visited set so it never touches
// the mark bits that belong to the collector.
func reachableSet(a *Arena, roots []Ref, skip Ref) map[Ref]struct{} {
	visited := make(map[Ref]struct{})

	visit := func(r Ref) bool {
		if r == skip {
			return false
		}
		if _, err := a.lookup(r); err != nil {
			return false
		}
		if _, ok := visited[r]; ok {
			return false
		}
		visited[r] = struct{}{}
		return true
	}

	var pending []Ref
	for _, r := range roots {
		if visit(r) {
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
		if visit(obj.First) {
			pending = append(pending, obj.First)
		}
		if visit(obj.Second) {
			pending = append(pending, obj.Second)
		}
	}

	return visited
}
