// Package brk provides the program-break collaborator the allocator grows and
// shrinks its heap through. A Segment models a contiguous region addressed by
// uint32 offsets with a movable break: everything below the break is live
// heap, everything above it belongs to the backing reservation.
//
// Two implementations exist: SliceSegment (portable, backed by a Go slice)
// and MappedSegment (unix, backed by an anonymous memory mapping so that
// contracted pages are actually released to the operating system).
package brk

import "errors"

var (
	// ErrExhausted indicates the break cannot be extended any further.
	ErrExhausted = errors.New("brk: segment exhausted")

	// ErrBadBreak indicates a SetBrk target outside the current segment.
	ErrBadBreak = errors.New("brk: break target out of range")
)

// Segment is the movable-break region the allocator manages.
//
// Sbrk and SetBrk are the only mutations; both are synchronous and either
// take full effect or leave the break unchanged. None of the methods are
// safe for concurrent use.
type Segment interface {
	// Bytes returns the live region [0, Brk()). The slice is invalidated
	// by the next Sbrk call.
	Bytes() []byte

	// Brk returns the current break offset.
	Brk() uint32

	// Sbrk extends the break by n bytes and returns the previous break,
	// i.e. the offset of the newly exposed region. Fails with ErrExhausted
	// when the backing reservation cannot cover the extension.
	Sbrk(n uint32) (uint32, error)

	// SetBrk contracts the break to exactly off. off must not exceed the
	// current break.
	SetBrk(off uint32) error

	// Close releases the backing reservation. The segment must not be
	// used afterwards.
	Close() error
}
