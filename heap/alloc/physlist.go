package alloc

import "github.com/joshuapare/heapkit/internal/format"

// The physical block list has no container of its own: it is the address
// order of every block in the heap, chained through the prevPhys/nextPhys
// header fields, with the allocator tracking only the tail. appendTail and
// removeTail are the only physical-list mutations outside splitting and
// coalescing, and both happen exactly at the heap-growth and heap-contraction
// boundaries.

// appendTail links a freshly grown block after the current tail, or
// establishes it as the sole block of an empty heap.
func (a *Allocator) appendTail(b uint32) {
	a.setPrevPhys(b, a.tail)
	a.setNextPhys(b, format.NilOff)
	if a.tail != format.NilOff {
		a.setNextPhys(a.tail, b)
	}
	a.tail = b
}

// removeTail detaches the tail block, promoting its physical predecessor, or
// empties the list when the tail was the only block. The detached block's
// memory is about to be returned to the segment, so its own header is left
// untouched.
func (a *Allocator) removeTail() {
	if a.tail == format.NilOff {
		return
	}
	prev := a.prevPhys(a.tail)
	if prev != format.NilOff {
		a.setNextPhys(prev, format.NilOff)
	}
	a.tail = prev
}
