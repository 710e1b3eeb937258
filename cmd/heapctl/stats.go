package main

import "github.com/joshuapare/heapkit/heap/alloc"

func printStats(s alloc.Stats) {
	printInfo("alloc calls:       %d\n", s.AllocCalls)
	printInfo("free calls:        %d\n", s.FreeCalls)
	printInfo("bin hits/misses:   %d/%d\n", s.BinHits, s.BinMisses)
	printInfo("heap grows:        %d\n", s.Grows)
	printInfo("contractions:      %d\n", s.Contractions)
	printInfo("splits:            %d\n", s.Splits)
	printInfo("coalesces fwd/bwd: %d/%d\n", s.CoalesceForward, s.CoalesceBackward)
	printInfo("bytes allocated:   %d\n", s.BytesAllocated)
	printInfo("bytes freed:       %d\n", s.BytesFreed)
}
