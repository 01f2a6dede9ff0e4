// ABOUTME: Property-based tests for mark and sweep
// ABOUTME: Random graphs must satisfy the core reachability invariants

package heap

import (
	"math/rand"
	"testing"
)

// buildRandomHeap allocates a random mix of scalars and pairs and returns
// a random subset of them as roots. Pairs reference earlier allocations,
// and a few second fields are rewired afterwards so cycles appear.
func buildRandomHeap(t *testing.T, rng *rand.Rand) (*Arena, []Ref) {
	t.Helper()
	a := NewArena(0)

	var refs []Ref
	n := 5 + rng.Intn(50)
	for i := 0; i < n; i++ {
		var (
			r   Ref
			err error
		)
		if len(refs) >= 2 && rng.Intn(2) == 0 {
			first := refs[rng.Intn(len(refs))]
			second := refs[rng.Intn(len(refs))]
			r, err = a.AllocPair(first, second)
		} else {
			r, err = a.AllocScalar(rng.Int63())
		}
		if err != nil {
			t.Fatalf("Allocation %d failed: %v", i, err)
		}
		refs = append(refs, r)
	}

	// Rewire some pairs, possibly into cycles
	for _, r := range refs {
		obj, _ := a.Get(r)
		if obj.Kind != KindPair || rng.Intn(3) != 0 {
			continue
		}
		if err := a.SetSecond(r, refs[rng.Intn(len(refs))]); err != nil {
			t.Fatalf("SetSecond failed: %v", err)
		}
	}

	var roots []Ref
	for _, r := range refs {
		if rng.Intn(3) == 0 {
			roots = append(roots, r)
		}
	}
	return a, roots
}

// Property: after a collection the live count equals the number of
// objects transitively reachable from the roots
func TestPropertyLiveEqualsReachable(t *testing.T) {
	for i := 0; i < 100; i++ {
		rng := rand.New(rand.NewSource(int64(i)))
		a, roots := buildRandomHeap(t, rng)

		want := len(reachableSet(a, roots, NilRef))

		a.Mark(roots)
		a.Sweep()

		if a.Live() != want {
			t.Errorf("Seed %d: live = %d, want %d reachable", i, a.Live(), want)
		}
		for _, r := range roots {
			if _, err := a.Get(r); err != nil {
				t.Errorf("Seed %d: root %v did not survive: %v", i, r, err)
			}
		}
	}
}

// Property: an immediate second collection with the same roots reclaims
// nothing and leaves the live count unchanged
func TestPropertyCollectionIdempotent(t *testing.T) {
	for i := 0; i < 100; i++ {
		rng := rand.New(rand.NewSource(int64(1000 + i)))
		a, roots := buildRandomHeap(t, rng)

		a.Mark(roots)
		a.Sweep()
		liveAfterFirst := a.Live()

		a.Mark(roots)
		if reclaimed := a.Sweep(); reclaimed != 0 {
			t.Errorf("Seed %d: second collection reclaimed %d objects", i, reclaimed)
		}
		if a.Live() != liveAfterFirst {
			t.Errorf("Seed %d: live count drifted from %d to %d", i, liveAfterFirst, a.Live())
		}
	}
}

// Property: no survivor carries a mark between collections
func TestPropertyMarksClearedBetweenCollections(t *testing.T) {
	for i := 0; i < 100; i++ {
		rng := rand.New(rand.NewSource(int64(2000 + i)))
		a, roots := buildRandomHeap(t, rng)

		a.Mark(roots)
		a.Sweep()

		a.ForEachLive(func(r Ref, obj Object) {
			if isMarked(a, r) {
				t.Errorf("Seed %d: survivor %v still marked", i, r)
			}
		})
	}
}

// Property: cyclic garbage is reclaimed together once unrooted
func TestPropertyCyclesDoNotLeak(t *testing.T) {
	for i := 0; i < 100; i++ {
		rng := rand.New(rand.NewSource(int64(3000 + i)))
		a := NewArena(0)

		// Build a detached ring of pairs of random length
		n := 2 + rng.Intn(10)
		seed, _ := a.AllocScalar(0)
		ring := make([]Ref, n)
		for j := range ring {
			ring[j], _ = a.AllocPair(seed, seed)
		}
		for j := range ring {
			a.SetSecond(ring[j], ring[(j+1)%n])
		}

		a.Mark(nil)
		reclaimed := a.Sweep()

		if reclaimed != n+1 {
			t.Errorf("Seed %d: reclaimed %d, want %d", i, reclaimed, n+1)
		}
		if a.Live() != 0 {
			t.Errorf("Seed %d: %d objects leaked", i, a.Live())
		}
	}
}
