// ABOUTME: Execution context composing the root stack, arena, and policy
// ABOUTME: Owns allocation, collection, and teardown

package vm

import (
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/prateek/microgc/heap"
)

// ErrClosed is returned by every operation after Close
var ErrClosed = errors.New("vm: use after Close")

// CollectStats reports the outcome of one collection pass
type CollectStats struct {
	// Reclaimed is the number of objects freed by the sweep.
	Reclaimed int
	// Live is the number of objects that survived.
	Live int
	// Trigger is the live count at which the next collection fires.
	Trigger int
}

// VM is the execution context: a root stack, the arena it roots, and the
// threshold policy deciding when to collect. A VM is exclusively owned
// by its creator; operations are single-threaded by contract and a
// collection is a synchronous stop-the-world pass.
type VM struct {
	cfg     Config
	logger  log.Logger
	metrics *metrics

	stack  *RootStack
	arena  *heap.Arena
	policy *Policy
	closed bool
}

// New creates a VM with an empty stack and heap. logger and reg may be
// nil to disable logging and metrics.
func New(cfg Config, logger log.Logger, reg prometheus.Registerer) (*VM, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid vm config")
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &VM{
		cfg:     cfg,
		logger:  logger,
		metrics: newMetrics(reg),
		stack:   NewRootStack(cfg.StackCapacity),
		arena:   heap.NewArena(cfg.MaxObjects),
		policy:  NewPolicy(cfg.InitialTrigger, cfg.MinTrigger),
	}, nil
}

// PushScalar allocates a scalar holding v and pushes it onto the root
// stack. Net effect: stack depth +1. If the allocation succeeds but the
// push overflows, the fresh object is left unrooted and the next
// collection reclaims it.
func (m *VM) PushScalar(v int64) (heap.Ref, error) {
	if m.closed {
		return heap.NilRef, ErrClosed
	}
	m.maybeCollect()

	ref, err := m.arena.AllocScalar(v)
	if err != nil {
		return heap.NilRef, errors.Wrap(err, "alloc scalar")
	}
	if err := m.stack.Push(ref); err != nil {
		return heap.NilRef, err
	}
	return ref, nil
}

// MakePair pops two roots and pushes a pair referencing them. The
// second-popped (deeper) ref becomes First, preserving construction
// order: first-pushed becomes the pair's head. Net effect: stack depth
// -1. On failure the stack is left as it was.
func (m *VM) MakePair() (heap.Ref, error) {
	if m.closed {
		return heap.NilRef, ErrClosed
	}
	m.maybeCollect()

	second, err := m.stack.Pop()
	if err != nil {
		return heap.NilRef, errors.Wrap(err, "make pair")
	}
	first, err := m.stack.Pop()
	if err != nil {
		// Cannot overflow: the slot was freed by the pop above.
		_ = m.stack.Push(second)
		return heap.NilRef, errors.Wrap(err, "make pair")
	}

	ref, err := m.arena.AllocPair(first, second)
	if err != nil {
		_ = m.stack.Push(first)
		_ = m.stack.Push(second)
		return heap.NilRef, errors.Wrap(err, "alloc pair")
	}
	// Cannot overflow: two slots were just freed.
	_ = m.stack.Push(ref)
	return ref, nil
}

// Push roots an existing ref
func (m *VM) Push(r heap.Ref) error {
	if m.closed {
		return ErrClosed
	}
	return m.stack.Push(r)
}

// Pop unroots and returns the most recently pushed ref. The object is
// not freed; it merely becomes eligible for the next collection unless
// something reachable still refers to it.
func (m *VM) Pop() (heap.Ref, error) {
	if m.closed {
		return heap.NilRef, ErrClosed
	}
	return m.stack.Pop()
}

// SetPairFirst repoints the first field of the pair r to target
func (m *VM) SetPairFirst(r, target heap.Ref) error {
	if m.closed {
		return ErrClosed
	}
	return errors.Wrap(m.arena.SetFirst(r, target), "set pair first")
}

// SetPairSecond repoints the second field of the pair r to target
func (m *VM) SetPairSecond(r, target heap.Ref) error {
	if m.closed {
		return ErrClosed
	}
	return errors.Wrap(m.arena.SetSecond(r, target), "set pair second")
}

// Collect forces a stop-the-world collection: mark everything reachable
// from the root stack, sweep the rest, then recompute the trigger point
// from the survivor count.
func (m *VM) Collect() (CollectStats, error) {
	if m.closed {
		return CollectStats{}, ErrClosed
	}
	return m.collect(), nil
}

// maybeCollect runs a collection when the live count has reached the
// trigger point. It runs before the new object exists, so a triggered
// collection can never sweep the allocation that caused it.
func (m *VM) maybeCollect() {
	if m.policy.ShouldCollect(m.arena.Live()) {
		m.collect()
	}
}

func (m *VM) collect() CollectStats {
	start := time.Now()

	m.arena.Mark(m.stack.Refs())
	reclaimed := m.arena.Sweep()
	live := m.arena.Live()
	trigger := m.policy.Update(live)

	m.metrics.collections.Inc()
	m.metrics.reclaimed.Add(float64(reclaimed))
	m.metrics.liveObjects.Set(float64(live))
	m.metrics.trigger.Set(float64(trigger))
	m.metrics.duration.Observe(time.Since(start).Seconds())

	level.Debug(m.logger).Log(
		"msg", "collection complete",
		"reclaimed", reclaimed,
		"remaining", live,
		"next_trigger", trigger,
	)

	return CollectStats{Reclaimed: reclaimed, Live: live, Trigger: trigger}
}

// Close drops every root and runs a final collection, which reclaims the
// entire heap. The VM is unusable afterwards; Close is idempotent.
func (m *VM) Close() error {
	if m.closed {
		return nil
	}
	m.stack.Reset()
	m.collect()
	m.closed = true
	return nil
}

// Live returns the current live object count
func (m *VM) Live() int {
	return m.arena.Live()
}

// Trigger returns the live count at which the next collection fires
func (m *VM) Trigger() int {
	return m.policy.Trigger()
}

// Heap exposes the arena for diagnostics such as snapshots and
// paths-to-roots. The caller must not retain it across Close.
func (m *VM) Heap() *heap.Arena {
	return m.arena
}

// Roots returns a copy of the root stack contents, bottom-first
func (m *VM) Roots() []heap.Ref {
	refs := m.stack.Refs()
	out := make([]heap.Ref, len(refs))
	copy(out, refs)
	return out
}
