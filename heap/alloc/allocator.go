package alloc

import (
	"fmt"
	"os"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/internal/buf"
	"github.com/joshuapare/heapkit/internal/format"
)

// Runtime flag for allocation logging - controlled by HEAP_LOG_ALLOC env var.
var logAlloc = os.Getenv("HEAP_LOG_ALLOC") != ""

// Allocator manages one heap. It owns the bin array and the physical-list
// tail; constructing separate Allocators over separate heaps gives fully
// isolated instances, there is no process-wide state.
type Allocator struct {
	h *heap.Heap

	// bins holds the head block of each segregated free list, NilOff when
	// the bin is empty.
	bins [NumBins]uint32

	// tail is the last physical block of the heap, NilOff when the heap
	// holds no blocks.
	tail uint32

	// base is the heap boundary at construction; every block lives in
	// [base, Break()).
	base uint32

	stats Stats
}

// Stats holds allocator operation counters.
type Stats struct {
	AllocCalls       int   // Total Alloc() calls, including zero-size
	FreeCalls        int   // Total Free() calls, including NilRef
	Grows            int   // Heap-boundary extensions
	Contractions     int   // Heap-boundary contractions
	Splits           int   // Blocks carved into prefix + remainder
	CoalesceForward  int   // Merges with the physical successor
	CoalesceBackward int   // Merges with the physical predecessor
	BytesAllocated   int64 // Total data bytes handed out
	BytesFreed       int64 // Total data bytes released
	BinHits          int   // Allocations satisfied from the bins
	BinMisses        int   // Allocations that had to extend the boundary
}

// New returns an allocator over h. The heap's current boundary becomes the
// allocator's base; a balanced allocate/free workload contracts back to it.
func New(h *heap.Heap) *Allocator {
	a := &Allocator{h: h, tail: format.NilOff, base: h.Break()}
	for i := range a.bins {
		a.bins[i] = format.NilOff
	}
	return a
}

// Stats returns a copy of the operation counters.
func (a *Allocator) Stats() Stats { return a.stats }

// Break returns the current heap boundary, the collaborator query used by
// harnesses to check that balanced workloads contract fully.
func (a *Allocator) Break() uint32 { return a.h.Break() }

// Base returns the boundary the allocator started from.
func (a *Allocator) Base() uint32 { return a.base }

// Data returns the payload of a live reference. The slice is invalidated by
// the next Alloc call.
func (a *Allocator) Data(ref Ref) []byte {
	b := blockOf(ref)
	return a.bytes()[dataOf(b) : dataOf(b)+a.size(b)]
}

// Alloc returns a reference to a writable region of at least size bytes,
// plus the payload slice itself. A zero size yields NilRef and touches
// nothing. Fails with ErrOutOfMemory when the segment cannot extend the
// boundary.
func (a *Allocator) Alloc(size uint32) (Ref, []byte, error) {
	a.stats.AllocCalls++
	if size == 0 {
		return NilRef, nil, nil
	}
	if size > maxRequest {
		// Rounding or the header addition would wrap uint32.
		return NilRef, nil, fmt.Errorf("%w: %d bytes", ErrOutOfMemory, size)
	}
	size = RoundUp(size)
	bin := BinFor(size)

	b := format.NilOff
	if bin < OverflowBin {
		if head := a.bins[bin]; head != format.NilOff {
			// Exact class hit: pop the LIFO head.
			a.binRemove(head)
			a.setInUse(head, true)
			b = head
		} else {
			b = a.splitFromLargerBin(size)
		}
	}
	if b == format.NilOff {
		b = a.overflowFirstFit(size)
	}
	if b == format.NilOff {
		grown, err := a.grow(size)
		if err != nil {
			return NilRef, nil, err
		}
		b = grown
		a.stats.BinMisses++
	} else {
		a.stats.BinHits++
	}

	a.stats.BytesAllocated += int64(a.size(b))
	payload := a.bytes()[dataOf(b) : dataOf(b)+a.size(b)]
	return Ref(dataOf(b)), payload, nil
}

// splitFromLargerBin scans the fixed classes strictly above size's class for
// a block whose remainder after the split would still be a viable block.
// Fixed bins hold uniform sizes, so checking a bin's head speaks for every
// member. Returns NilOff when no class can serve.
func (a *Allocator) splitFromLargerBin(size uint32) uint32 {
	for sc := BinFor(size + MinBlockSize); sc < OverflowBin; sc++ {
		head := a.bins[sc]
		if head == format.NilOff {
			continue
		}
		if a.size(head)-size < MinBlockSize {
			continue
		}
		return a.split(head, size)
	}
	return format.NilOff
}

// overflowFirstFit walks the overflow bin in list order and takes the first
// block large enough: split when the remainder stays viable, otherwise hand
// out the whole block.
func (a *Allocator) overflowFirstFit(size uint32) uint32 {
	for cur := a.bins[OverflowBin]; cur != format.NilOff; cur = a.nextFree(cur) {
		if a.size(cur) < size {
			continue
		}
		if a.size(cur)-size >= MinBlockSize {
			return a.split(cur, size)
		}
		a.binRemove(cur)
		a.setInUse(cur, true)
		return cur
	}
	return format.NilOff
}

// grow extends the heap boundary by exactly one block of the rounded size
// and appends it to the physical tail, already in use.
func (a *Allocator) grow(size uint32) (uint32, error) {
	b, err := a.h.Extend(size + format.HeaderSize)
	if err != nil {
		return format.NilOff, fmt.Errorf("%w: %d bytes: %v", ErrOutOfMemory, size, err)
	}
	a.stats.Grows++
	if logAlloc {
		fmt.Fprintf(os.Stderr, "[GROW] #%d: need=%d, break=%d\n",
			a.stats.Grows, size, a.h.Break())
	}
	a.setSize(b, size)
	a.setInUse(b, true)
	a.appendTail(b)
	return b, nil
}

// Free releases a reference previously returned by Alloc. NilRef is a no-op;
// references outside the managed region fail with ErrBadRef. The block is
// coalesced with free neighbours, then either the boundary is contracted
// (when the result is the tail block) or the block is binned.
func (a *Allocator) Free(ref Ref) error {
	a.stats.FreeCalls++
	if ref == NilRef {
		return nil
	}
	if uint32(ref) < a.base+format.HeaderSize ||
		!buf.Has(a.bytes(), int(blockOf(ref)), format.HeaderSize) {
		return ErrBadRef
	}

	b := blockOf(ref)
	a.stats.BytesFreed += int64(a.size(b))

	b = a.coalesce(b)

	if a.nextPhys(b) == format.NilOff {
		// Tail block: give its whole span back to the segment and drop
		// it from the physical list.
		a.removeTail()
		if err := a.h.Contract(b); err != nil {
			return err
		}
		a.stats.Contractions++
		if logAlloc {
			fmt.Fprintf(os.Stderr, "[CONTRACT] #%d: break=%d\n",
				a.stats.Contractions, a.h.Break())
		}
		return nil
	}

	a.binInsert(b)
	return nil
}
