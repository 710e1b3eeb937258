// Package format houses the byte layout of block headers inside the managed
// heap region. The goal is to keep the layout in exactly one place so the
// allocator's address arithmetic never drifts between the allocation and free
// paths: every field offset and the header size are named constants consumed
// by higher-level packages.
package format

const (
	// HeaderSize is the number of bytes of metadata preceding the data area
	// of every block, free or in use. This is the USED-block header: the
	// free-list link pair is not part of it, because those two fields live
	// in the first FreeLinksSize bytes of the data area and are only valid
	// while the block is free.
	//
	// NEVER derive this from a Go struct size; the on-region layout is
	// fixed at four little-endian uint32 fields.
	HeaderSize = 16

	// FreeLinksSize is the number of data-area bytes reused for the
	// prev-free/next-free link pair while a block sits on a free list.
	FreeLinksSize = 8

	// Field offsets within a block header, relative to the header start.
	SizeOff     = 0  // uint32: byte length of the data area
	FlagsOff    = 4  // uint32: FlagInUse
	PrevPhysOff = 8  // uint32: header offset of the previous physical block
	NextPhysOff = 12 // uint32: header offset of the next physical block

	// Free-list link offsets, relative to the header start. These overlap
	// the data area (HeaderSize+0 and HeaderSize+4) and must never be read
	// while the block is in use.
	PrevFreeOff = 16
	NextFreeOff = 20

	// FlagInUse marks an allocated block.
	FlagInUse = uint32(1)
)

// NilOff is the null link value for physical and free-list references.
// Offset 0 is a valid header address (the first block of the heap), so the
// all-ones pattern serves as the sentinel instead.
const NilOff = ^uint32(0)
