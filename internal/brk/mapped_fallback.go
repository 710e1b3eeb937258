//go:build !unix

package brk

import "fmt"

// NewMapped is unavailable without mmap support; callers fall back to the
// slice segment with an explicit limit instead.
func NewMapped(reserve uint32) (Segment, error) {
	return nil, fmt.Errorf("brk: mapped segment not supported on this platform")
}
