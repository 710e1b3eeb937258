package alloc

import "github.com/joshuapare/heapkit/internal/format"

// coalesce merges a just-freed block with whichever physical neighbours are
// free and returns the resulting block, which is always left free and
// unbinned; the caller decides whether it goes into a bin or is handed back
// to the segment. Merging forward first and then backward covers the
// both-neighbours case: the successor is folded into b, then b (now carrying
// the successor's span) is folded into the predecessor.
func (a *Allocator) coalesce(b uint32) uint32 {
	next := a.nextPhys(b)
	if next != format.NilOff && !a.inUse(next) {
		a.stats.CoalesceForward++
		a.binRemove(next) // size of the merged block differs from next's
		after := a.nextPhys(next)
		a.setSize(b, a.size(b)+format.HeaderSize+a.size(next))
		a.setNextPhys(b, after)
		if after == format.NilOff {
			a.tail = b
		} else {
			a.setPrevPhys(after, b)
		}
	}

	prev := a.prevPhys(b)
	if prev != format.NilOff && !a.inUse(prev) {
		a.stats.CoalesceBackward++
		a.binRemove(prev)
		after := a.nextPhys(b)
		a.setSize(prev, a.size(prev)+format.HeaderSize+a.size(b))
		a.setNextPhys(prev, after)
		if after == format.NilOff {
			a.tail = prev
		} else {
			a.setPrevPhys(after, prev)
		}
		b = prev
	}

	a.setInUse(b, false)
	return b
}
