// Package alloc implements the heap allocator: segregated free-list bins over
// a contiguous region whose boundary is grown and contracted through the heap
// package. Blocks are addressed by uint32 offsets into the region; every
// block carries a fixed-size header holding its data size, an in-use flag and
// the physical-adjacency links, and free blocks additionally reuse the first
// bytes of their data area for free-list links.
//
// Allocation strategy, in order: pop the exact size-class bin, split the head
// of a larger bin, first-fit scan of the overflow bin, then extend the heap
// boundary. Freeing coalesces with free physical neighbours and either
// contracts the boundary (when the result is the last block) or reinserts the
// block into its bin.
//
// None of the operations are safe for concurrent use. The bins and the
// physical chain are shared mutable state across all calls; callers that need
// concurrency must serialize every operation behind one lock.
//
// Freeing a reference twice, freeing a reference never returned by Alloc, or
// touching a payload after freeing it is undefined behavior. Only the
// null reference and out-of-range references are detected.
package alloc
