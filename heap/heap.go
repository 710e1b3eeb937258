// Package heap exposes the managed region the allocator operates on: a
// contiguous run of bytes addressed by uint32 offsets whose high-water mark
// (the break) can be extended and contracted through a brk.Segment.
package heap

import "github.com/joshuapare/heapkit/internal/brk"

// Heap is the managed region, backed by a program-break segment.
type Heap struct {
	seg brk.Segment
}

// New returns a heap backed by an unbounded in-process segment.
func New() *Heap {
	return &Heap{seg: brk.NewSlice()}
}

// NewLimited returns a heap whose segment refuses to grow past limit bytes.
func NewLimited(limit uint32) *Heap {
	return &Heap{seg: brk.NewSliceLimit(limit)}
}

// NewWithSegment wraps an existing segment, e.g. a brk.MappedSegment.
func NewWithSegment(seg brk.Segment) *Heap {
	return &Heap{seg: seg}
}

// Bytes returns the live region [0, Break()). Invalidated by Extend.
func (h *Heap) Bytes() []byte { return h.seg.Bytes() }

// Break returns the current heap boundary.
func (h *Heap) Break() uint32 { return h.seg.Brk() }

// Extend grows the boundary by n bytes and returns the previous break, the
// offset where the new space begins.
func (h *Heap) Extend(n uint32) (uint32, error) {
	return h.seg.Sbrk(n)
}

// Contract shrinks the boundary to exactly off, returning the span
// [off, Break()) to the segment.
func (h *Heap) Contract(off uint32) error {
	return h.seg.SetBrk(off)
}

// Close releases the backing segment.
func (h *Heap) Close() error { return h.seg.Close() }
