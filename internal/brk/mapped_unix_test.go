//go:build unix

package brk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_MappedSegment_BreakWithinReservation(t *testing.T) {
	m, err := NewMapped(1 << 16)
	require.NoError(t, err)
	defer m.Close()

	prev, err := m.Sbrk(4096)
	require.NoError(t, err)
	require.Equal(t, uint32(0), prev)

	b := m.Bytes()
	require.Len(t, b, 4096)
	b[0] = 0xAB
	b[4095] = 0xCD
	require.Equal(t, byte(0xAB), m.Bytes()[0])

	require.NoError(t, m.SetBrk(0))
	require.Equal(t, uint32(0), m.Brk())
}

func Test_MappedSegment_ExhaustsAtReservation(t *testing.T) {
	m, err := NewMapped(8192)
	require.NoError(t, err)
	defer m.Close()

	_, err = m.Sbrk(8192)
	require.NoError(t, err)

	_, err = m.Sbrk(1)
	require.ErrorIs(t, err, ErrExhausted)
}

func Test_MappedSegment_ContractionKeepsLivePage(t *testing.T) {
	m, err := NewMapped(1 << 16)
	require.NoError(t, err)
	defer m.Close()

	_, err = m.Sbrk(10000)
	require.NoError(t, err)
	b := m.Bytes()
	for i := 0; i < 100; i++ {
		b[i] = byte(i)
	}

	// Contract into the middle of a page; the live prefix must survive.
	require.NoError(t, m.SetBrk(100))
	for i, v := range m.Bytes() {
		require.Equal(t, byte(i), v)
	}
}
