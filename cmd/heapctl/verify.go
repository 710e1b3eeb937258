package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/internal/trace"
)

func init() {
	cmd := newVerifyCmd()
	cmd.Flags().BoolVar(&mapped, "mapped", false, "Back the heap with an mmap reservation (unix)")
	cmd.Flags().Uint32Var(&reserve, "reserve", 0, "Heap size limit in bytes (0 = unbounded)")
	rootCmd.AddCommand(cmd)
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [trace]",
		Short: "Replay a trace, checking heap invariants after every operation",
		Long: `The verify command replays a trace (or the built-in exercise) and
re-checks the structural invariants after each step: physical-list
contiguity, bin membership, and the absence of adjacent free blocks.

Example:
  heapctl verify workload.trace`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runVerify(path)
		},
	}
}

func runVerify(path string) error {
	ops, err := loadOps(path)
	if err != nil {
		return err
	}
	a, cleanup, err := newAllocator()
	if err != nil {
		return err
	}
	defer cleanup()

	r := trace.NewRunner(a)
	for i, op := range ops {
		if err := r.Step(op); err != nil {
			return fmt.Errorf("op %d (%s): %w", i, op, err)
		}
		if err := a.Verify(); err != nil {
			return fmt.Errorf("after op %d (%s): %w", i, op, err)
		}
		printVerbose("%3d  %-16s ok\n", i, op.String())
	}
	printInfo("%d ops verified, heap invariants hold\n", len(ops))
	return nil
}
