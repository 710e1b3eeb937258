package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap/alloc"
	"github.com/joshuapare/heapkit/internal/trace"
)

func init() {
	cmd := newLayoutCmd()
	cmd.Flags().BoolVar(&mapped, "mapped", false, "Back the heap with an mmap reservation (unix)")
	cmd.Flags().Uint32Var(&reserve, "reserve", 0, "Heap size limit in bytes (0 = unbounded)")
	rootCmd.AddCommand(cmd)
}

func newLayoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layout [trace]",
		Short: "Replay a trace and dump the block and bin layout",
		Long: `The layout command replays a trace (or the built-in exercise) and
prints every physical block with its offset, size and state, followed by the
occupancy of the non-empty bins.

Example:
  heapctl layout workload.trace
  heapctl layout workload.trace --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runLayout(path)
		},
	}
}

type layoutReport struct {
	Break  uint32            `json:"break"`
	Blocks []alloc.BlockInfo `json:"blocks"`
	Bins   map[int]int       `json:"bins"`
}

func runLayout(path string) error {
	ops, err := loadOps(path)
	if err != nil {
		return err
	}
	a, cleanup, err := newAllocator()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := trace.NewRunner(a).Run(ops); err != nil {
		return err
	}

	blocks := a.Blocks()
	counts := a.BinCounts()

	if jsonOut {
		rep := layoutReport{Break: a.Break(), Bins: map[int]int{}}
		rep.Blocks = blocks
		for i, c := range counts {
			if c > 0 {
				rep.Bins[i] = c
			}
		}
		return printJSON(rep)
	}

	printInfo("break: %d bytes, %d blocks\n", a.Break(), len(blocks))
	for _, b := range blocks {
		state := "free"
		if b.InUse {
			state = "used"
		}
		printInfo("  0x%08X  %8d bytes  %s\n", b.Off, b.Size, state)
	}
	printInfo("bins:\n")
	empty := true
	for i, c := range counts {
		if c == 0 {
			continue
		}
		empty = false
		printInfo("  %s: %d free\n", binLabel(i), c)
	}
	if empty {
		printInfo("  (all empty)\n")
	}
	return nil
}

// binLabel names a bin by the data size class it holds.
func binLabel(i int) string {
	if i == alloc.OverflowBin {
		return fmt.Sprintf("bin %2d (>%d)", i, alloc.BiggestBinnedSize)
	}
	return fmt.Sprintf("bin %2d (%d)", i, alloc.MinAllocation+i*alloc.SizeMultiple)
}
