// ABOUTME: VM configuration, defaults, and flag registration
// ABOUTME: Defaults mirror the classic 256-slot stack and trigger of 10

package vm

import (
	"flag"

	"github.com/pkg/errors"
)

const (
	// DefaultStackCapacity is the default maximum root stack depth
	DefaultStackCapacity = 256

	// DefaultInitialTrigger is the default live count at which the first
	// collection fires
	DefaultInitialTrigger = 10
)

// Config holds the tunables of a VM
type Config struct {
	// StackCapacity is the maximum root stack depth.
	StackCapacity int

	// InitialTrigger is the live object count at which the first
	// collection fires.
	InitialTrigger int

	// MinTrigger is a floor for the recomputed trigger point. Zero keeps
	// the reference behavior of collecting on every allocation while the
	// heap is empty.
	MinTrigger int

	// MaxObjects caps the number of live objects the heap will hold.
	// Zero means unbounded.
	MaxObjects int
}

// DefaultConfig returns the configuration matching the reference system
func DefaultConfig() Config {
	return Config{
		StackCapacity:  DefaultStackCapacity,
		InitialTrigger: DefaultInitialTrigger,
	}
}

// RegisterFlags registers the config fields with fs
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.StackCapacity, "gc.stack-capacity", DefaultStackCapacity, "Maximum root stack depth.")
	fs.IntVar(&c.InitialTrigger, "gc.initial-trigger", DefaultInitialTrigger, "Live object count that fires the first collection.")
	fs.IntVar(&c.MinTrigger, "gc.min-trigger", 0, "Floor for the recomputed collection trigger. 0 preserves collect-on-every-allocation when the heap is empty.")
	fs.IntVar(&c.MaxObjects, "gc.max-objects", 0, "Maximum live objects the heap will hold. 0 means unbounded.")
}

// Validate checks the config for values the VM cannot run with
func (c *Config) Validate() error {
	if c.StackCapacity <= 0 {
		return errors.New("stack capacity must be positive")
	}
	if c.InitialTrigger < 0 {
		return errors.New("initial trigger must not be negative")
	}
	if c.MinTrigger < 0 {
		return errors.New("min trigger must not be negative")
	}
	if c.MaxObjects < 0 {
		return errors.New("max objects must not be negative")
	}
	return nil
}
