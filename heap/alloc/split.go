package alloc

import "github.com/joshuapare/heapkit/internal/format"

// split carves an allocated prefix of dataSize bytes out of the free block b
// and links the remainder into the physical list and its bin. dataSize must
// already be rounded, and the caller must have checked that the remainder is
// viable: a.size(b)-dataSize >= MinBlockSize. Returns the prefix, marked in
// use.
func (a *Allocator) split(b uint32, dataSize uint32) uint32 {
	a.stats.Splits++

	oldSize := a.size(b)
	next := a.nextPhys(b)

	// Off the bin first: the size rewrite below would strand the block in
	// the wrong size class.
	a.binRemove(b)

	a.setSize(b, dataSize)
	a.setInUse(b, true)

	rem := dataOf(b) + dataSize
	a.setSize(rem, oldSize-dataSize-format.HeaderSize)
	a.setInUse(rem, false)

	a.setNextPhys(b, rem)
	a.setPrevPhys(rem, b)
	a.setNextPhys(rem, next)
	if next == format.NilOff {
		a.tail = rem
	} else {
		a.setPrevPhys(next, rem)
	}

	a.binInsert(rem)
	return b
}
