// ABOUTME: Core data types for the managed heap
// ABOUTME: Defines Kind, Ref handles, and the Object variant

package heap

import "fmt"

// Kind identifies the kind of a heap object
type Kind uint8

const (
	// KindScalar is an integer-valued leaf object
	KindScalar Kind = iota
	// KindPair is a two-field composite cell whose fields are Refs
	KindPair
)

// String returns a human-readable kind name
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindPair:
		return "pair"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Ref is a generation-tagged handle to an object in an Arena. Object
// links are Refs rather than Go pointers, so only the collector decides
// when storage is released; a Ref that outlives its object stops
// resolving instead of aliasing whatever reuses the slot.
type Ref struct {
	index int32
	gen   uint32
}

// NilRef is the zero Ref. It never refers to an object.
var NilRef = Ref{}

// IsNil reports whether r refers to no object
func (r Ref) IsNil() bool {
	return r.gen == 0
}

// ID returns a stable numeric identity for the handle, unique across the
// lifetime of an Arena (slot index in the low bits, generation above)
func (r Ref) ID() uint64 {
	return uint64(r.gen)<<32 | uint64(uint32(r.index))
}

// String returns a compact "slot@generation" form for diagnostics
func (r Ref) String() string {
	if r.IsNil() {
		return "nil"
	}
	return fmt.Sprintf("ref(%d@%d)", r.index, r.gen)
}

// Object is a single heap object. Scalars carry Value; pairs carry First
// and Second.
type Object struct {
	Kind   Kind
	Value  int64 // scalar payload
	First  Ref   // pair field
	Second Ref   // pair field
}
