// ABOUTME: BFS over reverse edges answering why a live object is rooted
// ABOUTME: Finds paths from an object back to the root set

package heap

// ReverseEdges maps each live object to the live objects that point to it
type ReverseEdges map[Ref][]Ref

// BuildReverseEdges creates a map of reverse edges over the live graph
func BuildReverseEdges(a *Arena) ReverseEdges {
	reverse := make(ReverseEdges)

	a.ForEachLive(func(r Ref, obj Object) {
		if obj.Kind != KindPair {
			return
		}
		reverse[obj.First] = append(reverse[obj.First], r)
		reverse[obj.Second] = append(reverse[obj.Second], r)
	})

	return reverse
}

// Path is a chain of Refs from a target object back to a root
type Path struct {
	Refs []Ref
}

// PathsToRoots finds up to maxPaths chains from an object to the root
// set using BFS over reverse edges. Each returned path starts at `from`
// and ends at a root. Returns nil if the object is unreachable, which is
// the collector's cue that it will not survive the next sweep.
func PathsToRoots(a *Arena, roots []Ref, from Ref, maxPaths int) []Path {
	if maxPaths <= 0 {
		return nil
	}
	if _, err := a.lookup(from); err != nil {
		return nil
	}

	reverse := BuildReverseEdges(a)

	rootSet := make(map[Ref]bool)
	for _, r := range roots {
		rootSet[r] = true
	}

	// The target may itself be a root
	if rootSet[from] {
		return []Path{{Refs: []Ref{from}}}
	}

	type searchNode struct {
		ref  Ref
		path []Ref
	}

	var result []Path
	queue := []searchNode{{ref: from, path: []Ref{from}}}

	for len(queue) > 0 && len(result) < maxPaths {
		node := queue[0]
		queue = queue[1:]

		for _, referrer := range reverse[node.ref] {
			// Avoid cycles by checking if the referrer is already on this path
			inPath := false
			for _, r := range node.path {
				if r == referrer {
					inPath = true
					break
				}
			}
			if inPath {
				continue
			}

			newPath := make([]Ref, len(node.path)+1)
			copy(newPath, node.path)
			newPath[len(node.path)] = referrer

			if rootSet[referrer] {
				result = append(result, Path{Refs: newPath})
				if len(result) >= maxPaths {
					break
				}
			} else {
				queue = append(queue, searchNode{ref: referrer, path: newPath})
			}
		}
	}

	return result
}
