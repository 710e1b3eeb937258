package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/internal/trace"
)

var runStats bool

func init() {
	cmd := newRunCmd()
	cmd.Flags().BoolVar(&runStats, "stats", false, "Print operation counters after the replay")
	cmd.Flags().BoolVar(&mapped, "mapped", false, "Back the heap with an mmap reservation (unix)")
	cmd.Flags().Uint32Var(&reserve, "reserve", 0, "Heap size limit in bytes (0 = unbounded)")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [trace]",
		Short: "Replay a trace and report the break delta",
		Long: `The run command replays a trace file against a fresh allocator and
reports the heap boundary before and after. With no trace argument it runs
the built-in exercise, a balanced workload whose boundary must come back to
its starting value.

Example:
  heapctl run
  heapctl run workload.trace --stats
  heapctl run workload.trace --mapped --reserve 1048576`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runRun(path)
		},
	}
}

type runReport struct {
	Ops        int    `json:"ops"`
	Live       int    `json:"live"`
	BreakStart uint32 `json:"break_start"`
	BreakEnd   uint32 `json:"break_end"`
	Balanced   bool   `json:"balanced"`
}

func runRun(path string) error {
	ops, err := loadOps(path)
	if err != nil {
		return err
	}
	a, cleanup, err := newAllocator()
	if err != nil {
		return err
	}
	defer cleanup()

	start := a.Break()
	r := trace.NewRunner(a)
	for i, op := range ops {
		if err := r.Step(op); err != nil {
			return fmt.Errorf("op %d (%s): %w", i, op, err)
		}
		printVerbose("%3d  %-16s break=%d\n", i, op.String(), a.Break())
	}

	rep := runReport{
		Ops:        len(ops),
		Live:       r.Live(),
		BreakStart: start,
		BreakEnd:   a.Break(),
		Balanced:   r.Live() == 0 && a.Break() == start,
	}
	if jsonOut {
		if err := printJSON(rep); err != nil {
			return err
		}
	} else {
		printInfo("replayed %d ops, %d still live\n", rep.Ops, rep.Live)
		printInfo("break: %d -> %d bytes\n", rep.BreakStart, rep.BreakEnd)
		if rep.Balanced {
			printInfo("balanced: heap boundary returned to its starting value\n")
		} else if rep.Live == 0 {
			printInfo("warning: all payloads freed but the boundary moved by %d bytes\n",
				int64(rep.BreakEnd)-int64(rep.BreakStart))
		}
	}
	if runStats {
		printStats(a.Stats())
	}
	return nil
}
