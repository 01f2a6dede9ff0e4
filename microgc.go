// ABOUTME: Root package for the microgc mark-and-sweep collector
// ABOUTME: Provides version information and package documentation

// Package microgc implements a stop-the-world mark-and-sweep garbage
// collector embedded in a minimal stack-based execution context. The heap
// holds two object kinds, integer scalars and two-field pairs, reachable
// only through a bounded root stack. See the heap package for the object
// model and collector phases, and the vm package for the execution
// context that composes them.
package microgc

// Version is the semantic version of the microgc module
const Version = "0.1.0-dev"
