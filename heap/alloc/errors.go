package alloc

import "errors"

var (
	// ErrOutOfMemory indicates the heap boundary could not be extended to
	// satisfy an allocation.
	ErrOutOfMemory = errors.New("alloc: cannot extend heap")

	// ErrBadRef indicates a reference outside the managed region.
	ErrBadRef = errors.New("alloc: bad block reference")

	// ErrCorrupt indicates a violated heap invariant, reported by Verify.
	ErrCorrupt = errors.New("alloc: heap invariant violated")
)
