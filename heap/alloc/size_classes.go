package alloc

import "github.com/joshuapare/heapkit/internal/format"

// Size class layout. Bin 0 is the underflow class holding all blocks of the
// minimum size; bins 1..OverflowBin-1 each hold one rounded size
// (MinAllocation + i*SizeMultiple); OverflowBin is the catch-all for
// everything above BiggestBinnedSize and is the only bin whose members may
// differ in size.
const (
	// MinAllocation is the smallest data area a block can have. Requests
	// below it are rounded up to it. It must be able to hold the free-list
	// link pair, which occupies the data area while the block is free.
	MinAllocation = 16

	// SizeMultiple is the rounding granularity for binned sizes.
	SizeMultiple = 8

	// BiggestBinnedSize is the largest fixed size class.
	BiggestBinnedSize = 512

	// NumBins counts the underflow bin, the fixed classes and the
	// overflow bin.
	NumBins = 2 + (BiggestBinnedSize-MinAllocation)/SizeMultiple

	// OverflowBin is the index of the catch-all bin.
	OverflowBin = NumBins - 1

	// MinBlockSize is the smallest whole block (header plus data) worth
	// creating, used as the split threshold: a split only happens when the
	// free remainder would be at least this large.
	MinBlockSize = MinAllocation + format.HeaderSize

	// maxRequest caps a single allocation so that rounding and the header
	// addition can never wrap the uint32 offset arithmetic.
	maxRequest = ^uint32(0) - format.HeaderSize - SizeMultiple
)

// RoundUp rounds a requested data size to its canonical block size: zero
// stays zero, sub-minimum sizes become MinAllocation, everything else rounds
// up to the next SizeMultiple. Idempotent.
func RoundUp(n uint32) uint32 {
	switch {
	case n == 0:
		return 0
	case n < MinAllocation:
		return MinAllocation
	default:
		return (n + SizeMultiple - 1) &^ (SizeMultiple - 1)
	}
}

// BinFor maps a data size to its bin index. Monotonic non-decreasing in n.
func BinFor(n uint32) int {
	r := RoundUp(n)
	if r < MinAllocation {
		// Only reachable for n == 0; keeps the subtraction below from
		// wrapping.
		return 0
	}
	bin := (r - MinAllocation) / SizeMultiple
	if bin > OverflowBin {
		return OverflowBin
	}
	return int(bin)
}
