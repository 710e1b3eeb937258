package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Test_RoundTrip_BalancedWorkloadContractsFully replays the canonical
// exercise: ten allocations of mixed sizes freed in a shuffled order. Every
// handle is freed exactly once, so the heap boundary must return to its
// starting value and no block may survive.
func Test_RoundTrip_BalancedWorkloadContractsFully(t *testing.T) {
	a := newTestAllocator(t)
	start := a.Break()

	sizes := []uint32{24, 2000, 56, 64, 200, 16, 64, 40, 800, 512}
	refs := make([]Ref, len(sizes))
	for i, size := range sizes {
		refs[i] = mustAlloc(t, a, size)
		require.NoError(t, a.Verify())
	}

	// Free order from the exercise, by payload identity:
	// 16, 24, 56, 512, 64(#2), 200, 40, 800, 2000, 64(#1).
	for _, i := range []int{5, 0, 2, 9, 6, 4, 7, 8, 1, 3} {
		mustFree(t, a, refs[i])
	}

	require.Equal(t, start, a.Break(), "boundary must return to its starting value")
	require.Empty(t, a.Blocks())
	for i, c := range a.BinCounts() {
		require.Zero(t, c, "bin %d not empty after balanced workload", i)
	}
}

// Same payloads, freed in reverse allocation order: pure tail frees, so every
// free contracts immediately and the bins stay empty throughout.
func Test_RoundTrip_ReverseOrderContractsEveryFree(t *testing.T) {
	a := newTestAllocator(t)

	sizes := []uint32{24, 2000, 56, 64, 200, 16, 64, 40, 800, 512}
	refs := make([]Ref, len(sizes))
	for i, size := range sizes {
		refs[i] = mustAlloc(t, a, size)
	}

	for i := len(refs) - 1; i >= 0; i-- {
		before := a.Break()
		mustFree(t, a, refs[i])
		require.Less(t, a.Break(), before, "tail free must contract")
	}
	require.Equal(t, uint32(0), a.Break())
	require.Equal(t, len(sizes), a.Stats().Contractions)
}

// Freeing in allocation order leaves everything binned until the tail goes,
// at which point one cascade of coalesced frees collapses the whole heap.
func Test_RoundTrip_ForwardOrderCollapsesAtTail(t *testing.T) {
	a := newTestAllocator(t)

	sizes := []uint32{24, 2000, 56, 64, 200, 16, 64, 40, 800, 512}
	refs := make([]Ref, len(sizes))
	for i, size := range sizes {
		refs[i] = mustAlloc(t, a, size)
	}
	brkFull := a.Break()

	for i, ref := range refs[:len(refs)-1] {
		mustFree(t, a, ref)
		require.Equal(t, brkFull, a.Break(), "free #%d should not contract", i)
	}
	mustFree(t, a, refs[len(refs)-1])
	require.Equal(t, uint32(0), a.Break())
	require.Empty(t, a.Blocks())
}
