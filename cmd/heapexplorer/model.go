package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/alloc"
	"github.com/joshuapare/heapkit/internal/trace"
)

// model holds the loaded trace and an allocator positioned after ops[:pos].
// Stepping backward rebuilds the heap and replays, which is cheap at trace
// scale and keeps the allocator free of any undo machinery.
type model struct {
	tracePath string
	ops       []trace.Op
	pos       int

	h      *heap.Heap
	a      *alloc.Allocator
	runner *trace.Runner

	width  int
	height int
	err    error
}

func newModel(tracePath string) (*model, error) {
	var ops []trace.Op
	if tracePath == "" {
		ops = trace.Exercise()
	} else {
		f, err := os.Open(tracePath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		ops, err = trace.Parse(f)
		if err != nil {
			return nil, err
		}
	}
	m := &model{tracePath: tracePath, ops: ops}
	m.rebuild(0)
	return m, nil
}

// rebuild resets the heap and replays the first pos operations.
func (m *model) rebuild(pos int) {
	if m.h != nil {
		_ = m.h.Close()
	}
	m.h = heap.New()
	m.a = alloc.New(m.h)
	m.runner = trace.NewRunner(m.a)
	m.pos = 0
	m.err = nil
	for m.pos < pos {
		if !m.step() {
			break
		}
	}
}

// step applies the next operation; reports whether one was applied.
func (m *model) step() bool {
	if m.pos >= len(m.ops) || m.err != nil {
		return false
	}
	if err := m.runner.Step(m.ops[m.pos]); err != nil {
		m.err = err
		return false
	}
	m.pos++
	return true
}

func (m *model) Init() tea.Cmd { return nil }
