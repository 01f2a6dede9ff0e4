// ABOUTME: Sweep phase of the collector
// ABOUTME: Linear pass releasing unmarked slots and clearing survivor marks

package heap

// Sweep visits every slot exactly once, releasing objects the preceding
// Mark did not reach and clearing the mark bit on survivors. Releasing a
// slot pushes it on the free list without disturbing the traversal, so
// head and interior slots are handled identically. Returns the number of
// objects reclaimed. Afterwards no live object is marked and the live
// count equals the number of survivors.
func (a *Arena) Sweep() int {
	reclaimed := 0
	for i := range a.slots {
		s := &a.slots[i]
		if !s.used {
			continue
		}
		if !s.marked {
			s.used = false
			s.obj = Object{}
			a.free = append(a.free, int32(i))
			a.live--
			reclaimed++
			continue
		}
		s.marked = false
	}
	return reclaimed
}
