package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Verify_EmptyHeap(t *testing.T) {
	a := newTestAllocator(t)
	require.NoError(t, a.Verify())
}

func Test_Verify_DetectsSizeCorruption(t *testing.T) {
	a := newTestAllocator(t)
	mustAlloc(t, a, 64)
	mustAlloc(t, a, 64)

	// Smash the first block's size field: the physical walk no longer
	// lands on the second header.
	a.setSize(0, 48)
	require.ErrorIs(t, a.Verify(), ErrCorrupt)
}

func Test_Verify_DetectsBrokenBackLink(t *testing.T) {
	a := newTestAllocator(t)
	b1 := mustAlloc(t, a, 64)
	mustAlloc(t, a, 64)

	second := blockOf(b1) + 16 + 64
	a.setPrevPhys(second, 4)
	require.ErrorIs(t, a.Verify(), ErrCorrupt)
}

func Test_Verify_DetectsUnbinnedFreeBlock(t *testing.T) {
	a := newTestAllocator(t)
	v := mustAlloc(t, a, 64)
	mustAlloc(t, a, 64)
	mustFree(t, a, v)

	// Forcibly empty the bin: the free block is now orphaned.
	a.bins[BinFor(64)] = ^uint32(0)
	require.ErrorIs(t, a.Verify(), ErrCorrupt)
}

func Test_Verify_DetectsAdjacentFreeBlocks(t *testing.T) {
	a := newTestAllocator(t)
	v1 := mustAlloc(t, a, 64)
	mustAlloc(t, a, 64)
	mustAlloc(t, a, 16)
	mustFree(t, a, v1)

	// Mark the second block free behind the allocator's back.
	second := blockOf(v1) + 16 + 64
	a.setInUse(second, false)
	require.ErrorIs(t, a.Verify(), ErrCorrupt)
}
