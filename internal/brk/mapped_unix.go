//go:build unix

package brk

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// MappedSegment backs the break with an anonymous private mapping of fixed
// reservation size. Extending the break past the reservation fails with
// ErrExhausted, which gives the allocator a real out-of-memory condition to
// report. Contraction advises the kernel that the released tail pages are no
// longer needed, so a balanced workload hands its pages back to the OS.
type MappedSegment struct {
	data []byte // the whole reservation
	brk  uint32
}

// NewMapped reserves a segment of the given size via mmap.
func NewMapped(reserve uint32) (*MappedSegment, error) {
	if reserve == 0 {
		return nil, fmt.Errorf("brk: zero reservation")
	}
	data, err := unix.Mmap(-1, 0, int(reserve),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("brk: mmap %d bytes: %w", reserve, err)
	}
	return &MappedSegment{data: data}, nil
}

func (m *MappedSegment) Bytes() []byte { return m.data[:m.brk] }

func (m *MappedSegment) Brk() uint32 { return m.brk }

func (m *MappedSegment) Sbrk(n uint32) (uint32, error) {
	prev := m.brk
	next := uint64(prev) + uint64(n)
	if next > uint64(len(m.data)) {
		return 0, ErrExhausted
	}
	m.brk = uint32(next)
	return prev, nil
}

func (m *MappedSegment) SetBrk(off uint32) error {
	if off > m.brk {
		return ErrBadBreak
	}
	old := m.brk
	m.brk = off

	// Hand whole pages above the new break back to the kernel. Only full
	// pages strictly above off may be dropped: MADV_DONTNEED zero-fills an
	// anonymous page on next touch, and the page containing off may still
	// hold live heap bytes.
	page := uint32(os.Getpagesize())
	start := (off + page - 1) / page * page
	end := (old + page - 1) / page * page
	if start < end {
		// Advisory only; a failure leaves the pages resident but the
		// break itself has already moved.
		_ = unix.Madvise(m.data[start:end], unix.MADV_DONTNEED)
	}
	return nil
}

func (m *MappedSegment) Close() error {
	if m.data == nil {
		return nil
	}
	err := unix.Munmap(m.data)
	m.data = nil
	m.brk = 0
	return err
}
