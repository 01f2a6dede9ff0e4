// ABOUTME: Demo harness running the four classic collector scenarios
// ABOUTME: Prints per-scenario results and optional heap snapshots

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/prateek/microgc"
	"github.com/prateek/microgc/heap"
	"github.com/prateek/microgc/vm"
)

type scenario struct {
	name     string
	wantLive int
	run      func(*vm.VM) error
}

func scenarios() []scenario {
	return []scenario{
		{
			name:     "objects on stack are preserved",
			wantLive: 2,
			run: func(m *vm.VM) error {
				if _, err := m.PushScalar(1); err != nil {
					return err
				}
				_, err := m.PushScalar(2)
				return err
			},
		},
		{
			name:     "unreached objects are collected",
			wantLive: 0,
			run: func(m *vm.VM) error {
				if _, err := m.PushScalar(1); err != nil {
					return err
				}
				if _, err := m.PushScalar(2); err != nil {
					return err
				}
				if _, err := m.Pop(); err != nil {
					return err
				}
				_, err := m.Pop()
				return err
			},
		},
		{
			name:     "nested objects are reached",
			wantLive: 7,
			run: func(m *vm.VM) error {
				for _, v := range []int64{1, 2} {
					if _, err := m.PushScalar(v); err != nil {
						return err
					}
				}
				if _, err := m.MakePair(); err != nil {
					return err
				}
				for _, v := range []int64{3, 4} {
					if _, err := m.PushScalar(v); err != nil {
						return err
					}
				}
				if _, err := m.MakePair(); err != nil {
					return err
				}
				_, err := m.MakePair()
				return err
			},
		},
		{
			name:     "cycles are handled",
			wantLive: 4,
			run: func(m *vm.VM) error {
				for _, v := range []int64{1, 2} {
					if _, err := m.PushScalar(v); err != nil {
						return err
					}
				}
				a, err := m.MakePair()
				if err != nil {
					return err
				}
				for _, v := range []int64{3, 4} {
					if _, err := m.PushScalar(v); err != nil {
						return err
					}
				}
				b, err := m.MakePair()
				if err != nil {
					return err
				}
				// Tie the pairs into a cycle; scalars 2 and 4 lose their
				// last referrer and become garbage.
				if err := m.SetPairSecond(a, b); err != nil {
					return err
				}
				return m.SetPairSecond(b, a)
			},
		},
	}
}

func main() {
	os.Exit(run())
}

func run() int {
	var (
		cfg     vm.Config
		verbose bool
		dump    bool
	)
	cfg.RegisterFlags(flag.CommandLine)
	flag.BoolVar(&verbose, "v", false, "Enable debug logging.")
	flag.BoolVar(&dump, "dump", false, "Print a JSON snapshot of the live heap before each collection.")
	flag.Parse()

	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	if !verbose {
		logger = level.NewFilter(logger, level.AllowInfo())
	}
	logger = log.With(logger, "app", "microgc", "version", microgc.Version)

	failed := false
	for i, sc := range scenarios() {
		m, err := vm.New(cfg, log.With(logger, "scenario", i+1), prometheus.NewRegistry())
		if err != nil {
			level.Error(logger).Log("msg", "failed to create vm", "err", err)
			return 1
		}

		if err := sc.run(m); err != nil {
			level.Error(logger).Log("msg", "scenario failed", "scenario", sc.name, "err", err)
			m.Close()
			failed = true
			continue
		}

		if dump {
			if err := heap.Snapshot(m.Heap(), m.Roots()).Encode(os.Stdout); err != nil {
				level.Error(logger).Log("msg", "failed to encode snapshot", "err", err)
			}
		}

		stats, err := m.Collect()
		if err != nil {
			level.Error(logger).Log("msg", "collection failed", "err", err)
			m.Close()
			failed = true
			continue
		}

		ok := stats.Live == sc.wantLive
		fmt.Printf("scenario %d (%s): collected %d objects, %d remaining (want %d) %s\n",
			i+1, sc.name, stats.Reclaimed, stats.Live, sc.wantLive, verdict(ok))
		if !ok {
			failed = true
		}
		m.Close()
	}

	if failed {
		return 1
	}
	return 0
}

func verdict(ok bool) string {
	if ok {
		return "OK"
	}
	return "FAIL"
}
