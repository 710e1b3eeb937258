package brk

// SliceSegment is the portable Segment: a growable Go slice with a soft
// capacity limit. A limit of 0 means unbounded growth (until the process
// itself runs out of memory).
type SliceSegment struct {
	buf   []byte
	brk   uint32
	limit uint32
}

// NewSlice returns an empty slice-backed segment with no capacity limit.
func NewSlice() *SliceSegment {
	return &SliceSegment{}
}

// NewSliceLimit returns an empty slice-backed segment that refuses to grow
// past limit bytes. Used by tests and callers that need a deterministic
// out-of-memory condition.
func NewSliceLimit(limit uint32) *SliceSegment {
	return &SliceSegment{limit: limit}
}

func (s *SliceSegment) Bytes() []byte { return s.buf[:s.brk] }

func (s *SliceSegment) Brk() uint32 { return s.brk }

func (s *SliceSegment) Sbrk(n uint32) (uint32, error) {
	prev := s.brk
	next := uint64(prev) + uint64(n)
	if next > uint64(^uint32(0)) {
		return 0, ErrExhausted
	}
	if s.limit != 0 && next > uint64(s.limit) {
		return 0, ErrExhausted
	}
	if int(next) > len(s.buf) {
		// Grow geometrically so repeated small extensions stay cheap.
		newLen := 2 * len(s.buf)
		if newLen < int(next) {
			newLen = int(next)
		}
		grown := make([]byte, newLen)
		copy(grown, s.buf[:prev])
		s.buf = grown
	}
	s.brk = uint32(next)
	return prev, nil
}

func (s *SliceSegment) SetBrk(off uint32) error {
	if off > s.brk {
		return ErrBadBreak
	}
	s.brk = off
	return nil
}

func (s *SliceSegment) Close() error {
	s.buf = nil
	s.brk = 0
	return nil
}
