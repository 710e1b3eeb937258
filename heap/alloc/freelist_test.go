package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Builds five 64-byte blocks separated by 16-byte in-use guards, so freed
// blocks never coalesce with each other and stack up in one bin.
func buildGuardedRow(t *testing.T, a *Allocator) (victims [5]Ref, guards [5]Ref) {
	t.Helper()
	for i := range victims {
		victims[i] = mustAlloc(t, a, 64)
		guards[i] = mustAlloc(t, a, 16)
	}
	return victims, guards
}

func Test_Bin_LIFOOrderAcrossMultipleFrees(t *testing.T) {
	a := newTestAllocator(t)
	victims, _ := buildGuardedRow(t, a)

	mustFree(t, a, victims[0])
	mustFree(t, a, victims[1])
	mustFree(t, a, victims[2])
	require.Equal(t, 3, a.BinCounts()[BinFor(64)])

	// Most recently freed comes back first.
	require.Equal(t, victims[2], mustAlloc(t, a, 64))
	require.Equal(t, victims[1], mustAlloc(t, a, 64))
	require.Equal(t, victims[0], mustAlloc(t, a, 64))
	require.Zero(t, a.BinCounts()[BinFor(64)])
}

func Test_Bin_RemoveInteriorMember(t *testing.T) {
	a := newTestAllocator(t)
	victims, guards := buildGuardedRow(t, a)

	// Bin list becomes v2 -> v1 -> v0; v1 is interior.
	mustFree(t, a, victims[0])
	mustFree(t, a, victims[1])
	mustFree(t, a, victims[2])

	// Freeing the guard between v0 and v1 coalesces those three spans,
	// removing v1 (an interior bin member) and v0 (the bin tail).
	mustFree(t, a, guards[0])

	counts := a.BinCounts()
	require.Equal(t, 1, counts[BinFor(64)], "only v2 remains in the 64 class")
	merged := uint32(64 + 16 + 64 + 2*16) // v0 + guard + v1 + two headers
	require.Equal(t, 1, counts[BinFor(merged)])
}

func Test_Bin_RemoveTailMember(t *testing.T) {
	a := newTestAllocator(t)
	victims, guards := buildGuardedRow(t, a)

	// Bin list: v1 -> v0; v0 is the list tail.
	mustFree(t, a, victims[0])
	mustFree(t, a, victims[1])

	// Freeing guard 0 merges v0 (list tail) and v1 (list head) around it.
	mustFree(t, a, guards[0])

	counts := a.BinCounts()
	require.Zero(t, counts[BinFor(64)])
	require.Equal(t, 1, counts[BinFor(64+16+64+32)])
	require.NoError(t, a.Verify())
}

func Test_Bin_SoleMemberRemoval(t *testing.T) {
	a := newTestAllocator(t)

	v := mustAlloc(t, a, 128)
	mustAlloc(t, a, 16)
	mustFree(t, a, v)
	require.Equal(t, 1, a.BinCounts()[BinFor(128)])

	require.Equal(t, v, mustAlloc(t, a, 128))
	for i, c := range a.BinCounts() {
		require.Zero(t, c, "bin %d", i)
	}
}
