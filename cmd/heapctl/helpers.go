package main

import (
	"os"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/alloc"
	"github.com/joshuapare/heapkit/internal/brk"
	"github.com/joshuapare/heapkit/internal/trace"
)

var (
	mapped  bool
	reserve uint32
)

// newAllocator builds the heap backing for a replay. --mapped selects the
// mmap-reservation segment (unix only); otherwise a slice segment with
// --reserve as its growth limit (0 = unbounded).
func newAllocator() (*alloc.Allocator, func(), error) {
	var h *heap.Heap
	if mapped {
		r := reserve
		if r == 0 {
			r = 64 << 20 // default 64 MiB reservation
		}
		seg, err := brk.NewMapped(r)
		if err != nil {
			return nil, nil, err
		}
		h = heap.NewWithSegment(seg)
	} else {
		h = heap.NewLimited(reserve)
	}
	return alloc.New(h), func() { _ = h.Close() }, nil
}

// loadOps reads a trace file, or the built-in exercise when path is empty.
func loadOps(path string) ([]trace.Op, error) {
	if path == "" {
		return trace.Exercise(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return trace.Parse(f)
}
