package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_RoundUp(t *testing.T) {
	cases := []struct {
		in, want uint32
	}{
		{0, 0},
		{1, 16},
		{15, 16},
		{16, 16},
		{17, 24},
		{24, 24},
		{25, 32},
		{511, 512},
		{512, 512},
		{513, 520},
		{2000, 2000},
		{2001, 2008},
	}
	for _, c := range cases {
		require.Equal(t, c.want, RoundUp(c.in), "RoundUp(%d)", c.in)
	}
}

func Test_RoundUp_Idempotent(t *testing.T) {
	for n := uint32(0); n < 4096; n++ {
		r := RoundUp(n)
		require.Equal(t, r, RoundUp(r), "RoundUp not idempotent at %d", n)
	}
}

func Test_BinFor_Bounds(t *testing.T) {
	require.Equal(t, 64, NumBins)
	require.Equal(t, 63, OverflowBin)

	// Underflow catch-all.
	require.Equal(t, 0, BinFor(0))
	require.Equal(t, 0, BinFor(1))
	require.Equal(t, 0, BinFor(16))

	// Fixed classes hold one rounded size each.
	require.Equal(t, 1, BinFor(17))
	require.Equal(t, 1, BinFor(24))
	require.Equal(t, 6, BinFor(64))
	require.Equal(t, OverflowBin-1, BinFor(BiggestBinnedSize))

	// Everything above the largest fixed class lands in overflow.
	require.Equal(t, OverflowBin, BinFor(BiggestBinnedSize+1))
	require.Equal(t, OverflowBin, BinFor(1<<20))
}

func Test_BinFor_Monotonic(t *testing.T) {
	prev := BinFor(0)
	for n := uint32(1); n < 8192; n++ {
		bin := BinFor(n)
		require.GreaterOrEqual(t, bin, prev, "BinFor decreased at %d", n)
		require.Less(t, bin, NumBins)
		prev = bin
	}
}
