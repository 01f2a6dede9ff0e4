// ABOUTME: Adaptive collection threshold policy
// ABOUTME: Doubles the trigger point after every collection

package vm

// Policy decides when an allocation must force a collection. A
// collection runs exactly when the live count has reached the trigger
// point, never before and never skipped; afterwards the trigger becomes
// twice the post-sweep live count, clamped to an optional floor.
//
// With a floor of zero and an empty surviving heap the next trigger is
// zero, so the very next allocation forces another (trivial) collection.
// That mirrors the reference behavior and is deliberate; set a floor to
// trade it away explicitly.
type Policy struct {
	trigger int
	floor   int
}

// NewPolicy creates a policy with the given initial trigger point and
// minimum trigger floor
func NewPolicy(initialTrigger, minTrigger int) *Policy {
	trigger := initialTrigger
	if trigger < minTrigger {
		trigger = minTrigger
	}
	return &Policy{trigger: trigger, floor: minTrigger}
}

// ShouldCollect reports whether a collection must run before the next
// allocation, given the current live count
func (p *Policy) ShouldCollect(live int) bool {
	return live >= p.trigger
}

// Update recomputes the trigger point from a post-sweep live count and
// returns the new trigger
func (p *Policy) Update(live int) int {
	p.trigger = 2 * live
	if p.trigger < p.floor {
		p.trigger = p.floor
	}
	return p.trigger
}

// Trigger returns the live count at which the next collection fires
func (p *Policy) Trigger() int {
	return p.trigger
}
