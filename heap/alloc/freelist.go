package alloc

import "github.com/joshuapare/heapkit/internal/format"

// Bin membership is determined by a block's current size, so a block must be
// removed from its bin before any size mutation (coalescing, splitting) and
// reinserted afterwards if still free.

// binInsert pushes a free block at the head of its size-class bin. The LIFO
// order makes the most recently freed block the first reuse candidate.
func (a *Allocator) binInsert(b uint32) {
	bin := BinFor(a.size(b))
	head := a.bins[bin]
	a.setPrevFree(b, format.NilOff)
	a.setNextFree(b, head)
	if head != format.NilOff {
		a.setPrevFree(head, b)
	}
	a.bins[bin] = b
}

// binRemove detaches a block from its bin. The caller must know the block is
// currently a bin member; there are four structural cases and all are O(1).
func (a *Allocator) binRemove(b uint32) {
	bin := BinFor(a.size(b))
	prev := a.prevFree(b)
	next := a.nextFree(b)
	switch {
	case prev == format.NilOff && next == format.NilOff:
		// Sole member.
		a.bins[bin] = format.NilOff
	case prev == format.NilOff:
		// Head of a longer list.
		a.setPrevFree(next, format.NilOff)
		a.bins[bin] = next
	case next == format.NilOff:
		// Tail.
		a.setNextFree(prev, format.NilOff)
	default:
		// Interior.
		a.setNextFree(prev, next)
		a.setPrevFree(next, prev)
	}
}
