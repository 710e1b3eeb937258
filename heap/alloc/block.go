package alloc

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// Debug flag - set to true to enable free-link access assertions
// (compile-time toggle).
const debugAlloc = false

// Ref is the handle returned to callers: the offset of a block's data area
// from the heap base. NilRef is the null-equivalent handle; no payload can
// ever sit at offset 0 because a header always precedes it.
type Ref uint32

// NilRef is returned for zero-sized allocations and is a no-op to Free.
const NilRef Ref = 0

// dataOf converts a block header offset to its data-area offset.
func dataOf(b uint32) uint32 { return b + format.HeaderSize }

// blockOf converts a data reference back to its block header offset.
func blockOf(r Ref) uint32 { return uint32(r) - format.HeaderSize }

func (a *Allocator) bytes() []byte { return a.h.Bytes() }

// Header field accessors. All block metadata lives in the region bytes, so
// these are the only reads and writes of header fields in the package.

func (a *Allocator) size(b uint32) uint32 {
	return format.ReadU32(a.bytes(), int(b)+format.SizeOff)
}

func (a *Allocator) setSize(b, v uint32) {
	format.PutU32(a.bytes(), int(b)+format.SizeOff, v)
}

func (a *Allocator) inUse(b uint32) bool {
	return format.ReadU32(a.bytes(), int(b)+format.FlagsOff)&format.FlagInUse != 0
}

func (a *Allocator) setInUse(b uint32, used bool) {
	var v uint32
	if used {
		v = format.FlagInUse
	}
	format.PutU32(a.bytes(), int(b)+format.FlagsOff, v)
}

func (a *Allocator) prevPhys(b uint32) uint32 {
	return format.ReadU32(a.bytes(), int(b)+format.PrevPhysOff)
}

func (a *Allocator) setPrevPhys(b, v uint32) {
	format.PutU32(a.bytes(), int(b)+format.PrevPhysOff, v)
}

func (a *Allocator) nextPhys(b uint32) uint32 {
	return format.ReadU32(a.bytes(), int(b)+format.NextPhysOff)
}

func (a *Allocator) setNextPhys(b, v uint32) {
	format.PutU32(a.bytes(), int(b)+format.NextPhysOff, v)
}

// Free-list links occupy the first bytes of the data area and are valid only
// while the block is free. The debugAlloc assertions enforce that state
// dependence; production builds rely on the orchestration order instead.

func (a *Allocator) prevFree(b uint32) uint32 {
	a.assertFree(b, "prevFree")
	return format.ReadU32(a.bytes(), int(b)+format.PrevFreeOff)
}

func (a *Allocator) setPrevFree(b, v uint32) {
	a.assertFree(b, "setPrevFree")
	format.PutU32(a.bytes(), int(b)+format.PrevFreeOff, v)
}

func (a *Allocator) nextFree(b uint32) uint32 {
	a.assertFree(b, "nextFree")
	return format.ReadU32(a.bytes(), int(b)+format.NextFreeOff)
}

func (a *Allocator) setNextFree(b, v uint32) {
	a.assertFree(b, "setNextFree")
	format.PutU32(a.bytes(), int(b)+format.NextFreeOff, v)
}

func (a *Allocator) assertFree(b uint32, op string) {
	if debugAlloc && a.inUse(b) {
		panic(fmt.Sprintf("alloc: %s on in-use block at 0x%X", op, b))
	}
}
