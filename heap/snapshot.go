// ABOUTME: JSON snapshot of the live heap for offline inspection
// ABOUTME: Serializes objects and roots in a simple dump format

package heap

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Dump is a point-in-time snapshot of the live object graph
type Dump struct {
	Objects []DumpObject `json:"objects"`
	Roots   []uint64     `json:"roots"`
}

// DumpObject is one object in the dump
type DumpObject struct {
	ID    uint64   `json:"id"`
	Kind  string   `json:"kind"`
	Value int64    `json:"value,omitempty"`
	Ptrs  []uint64 `json:"ptrs,omitempty"`
}

// Snapshot captures every live object and the given root set. Object IDs
// are Ref identities, stable for the lifetime of the arena. Output order
// is deterministic.
func Snapshot(a *Arena, roots []Ref) *Dump {
	d := &Dump{}

	a.ForEachLive(func(r Ref, obj Object) {
		do := DumpObject{
			ID:   r.ID(),
			Kind: obj.Kind.String(),
		}
		switch obj.Kind {
		case KindScalar:
			do.Value = obj.Value
		case KindPair:
			do.Ptrs = []uint64{obj.First.ID(), obj.Second.ID()}
		}
		d.Objects = append(d.Objects, do)
	})
	sort.Slice(d.Objects, func(i, j int) bool {
		return d.Objects[i].ID < d.Objects[j].ID
	})

	for _, r := range roots {
		d.Roots = append(d.Roots, r.ID())
	}

	return d
}

// Encode writes the dump as indented JSON
func (d *Dump) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to encode dump: %w", err)
	}
	return nil
}
