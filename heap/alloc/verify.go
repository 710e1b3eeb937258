package alloc

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// BlockInfo is a read-only snapshot of one physical block, for diagnostics
// and tooling.
type BlockInfo struct {
	Off   uint32 // header offset
	Size  uint32 // data-area bytes
	InUse bool
}

// Blocks walks the physical list head to tail and returns a snapshot of
// every block.
func (a *Allocator) Blocks() []BlockInfo {
	var out []BlockInfo
	if a.tail == format.NilOff {
		return out
	}
	for b := a.base; b != format.NilOff; b = a.nextPhys(b) {
		out = append(out, BlockInfo{Off: b, Size: a.size(b), InUse: a.inUse(b)})
	}
	return out
}

// BinCounts returns the number of free blocks in each bin.
func (a *Allocator) BinCounts() [NumBins]int {
	var counts [NumBins]int
	for i := range a.bins {
		for cur := a.bins[i]; cur != format.NilOff; cur = a.nextFree(cur) {
			counts[i]++
		}
	}
	return counts
}

// Verify walks the whole heap and checks the structural invariants:
//
//   - the physical list covers [base, break) with no gaps or overlaps and
//     strictly ascending addresses, and its last block is the tracked tail;
//   - physical back-links mirror the forward links;
//   - every bin member is free and classifies to its bin (overflow members
//     only need to be free and above the largest fixed class);
//   - every free physical block sits in exactly one bin;
//   - no two physically adjacent blocks are both free.
//
// Returns nil or an error wrapping ErrCorrupt.
func (a *Allocator) Verify() error {
	brkOff := a.h.Break()
	if a.tail == format.NilOff {
		if brkOff != a.base {
			return fmt.Errorf("%w: empty heap but break=%d base=%d", ErrCorrupt, brkOff, a.base)
		}
		for i, head := range a.bins {
			if head != format.NilOff {
				return fmt.Errorf("%w: empty heap but bin %d non-empty", ErrCorrupt, i)
			}
		}
		return nil
	}

	// Physical walk.
	freeBlocks := make(map[uint32]bool)
	prev := format.NilOff
	prevWasFree := false
	b := a.base
	for {
		end := dataOf(b) + a.size(b)
		if end > brkOff {
			return fmt.Errorf("%w: block 0x%X ends at %d past break %d", ErrCorrupt, b, end, brkOff)
		}
		if a.prevPhys(b) != prev {
			return fmt.Errorf("%w: block 0x%X prevPhys=0x%X want 0x%X", ErrCorrupt, b, a.prevPhys(b), prev)
		}
		free := !a.inUse(b)
		if free {
			if prevWasFree {
				return fmt.Errorf("%w: adjacent free blocks at 0x%X", ErrCorrupt, b)
			}
			freeBlocks[b] = false // seen in a bin later
		}
		prevWasFree = free

		next := a.nextPhys(b)
		if next == format.NilOff {
			if b != a.tail {
				return fmt.Errorf("%w: last block 0x%X is not the tail 0x%X", ErrCorrupt, b, a.tail)
			}
			if end != brkOff {
				return fmt.Errorf("%w: tail ends at %d, break is %d", ErrCorrupt, end, brkOff)
			}
			break
		}
		if next != end {
			return fmt.Errorf("%w: block 0x%X (end %d) followed by 0x%X", ErrCorrupt, b, end, next)
		}
		prev, b = b, next
	}

	// Bin walk.
	for i := range a.bins {
		for cur := a.bins[i]; cur != format.NilOff; cur = a.nextFree(cur) {
			binned, tracked := freeBlocks[cur]
			if !tracked {
				return fmt.Errorf("%w: bin %d holds non-free or unknown block 0x%X", ErrCorrupt, i, cur)
			}
			if binned {
				return fmt.Errorf("%w: block 0x%X appears in more than one bin", ErrCorrupt, cur)
			}
			freeBlocks[cur] = true
			if got := BinFor(a.size(cur)); got != i {
				return fmt.Errorf("%w: block 0x%X (size %d) in bin %d, classifies to %d",
					ErrCorrupt, cur, a.size(cur), i, got)
			}
		}
	}
	for off, binned := range freeBlocks {
		if !binned {
			return fmt.Errorf("%w: free block 0x%X is in no bin", ErrCorrupt, off)
		}
	}
	return nil
}
