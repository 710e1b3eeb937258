package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap"
)

// newTestAllocator returns an allocator over a fresh unbounded heap.
func newTestAllocator(t *testing.T) *Allocator {
	t.Helper()
	h := heap.New()
	t.Cleanup(func() { _ = h.Close() })
	return New(h)
}

// mustAlloc allocates and fails the test on error.
func mustAlloc(t *testing.T, a *Allocator, size uint32) Ref {
	t.Helper()
	ref, _, err := a.Alloc(size)
	require.NoError(t, err)
	require.NotEqual(t, NilRef, ref)
	return ref
}

// mustFree frees and re-checks the heap invariants, since every public spec
// invariant must hold at the orchestration boundaries.
func mustFree(t *testing.T, a *Allocator, ref Ref) {
	t.Helper()
	require.NoError(t, a.Free(ref))
	require.NoError(t, a.Verify())
}
