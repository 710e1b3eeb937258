// Package trace parses and replays allocate/free scripts against an
// allocator. A trace is a line-oriented text format used by the CLI and the
// explorer:
//
//	# comment
//	alloc <tag> <size>
//	free <tag>
//
// Tags name payloads, so a free refers to the allocation's identity rather
// than its size or address.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/joshuapare/heapkit/heap/alloc"
)

// Kind discriminates trace operations.
type Kind uint8

const (
	KindAlloc Kind = iota
	KindFree
)

// Op is one scripted operation.
type Op struct {
	Kind Kind
	Tag  string
	Size uint32 // alloc only
}

func (o Op) String() string {
	if o.Kind == KindAlloc {
		return fmt.Sprintf("alloc %s %d", o.Tag, o.Size)
	}
	return fmt.Sprintf("free %s", o.Tag)
}

// Parse reads a trace script. Unknown directives, duplicate alloc tags and
// frees of unknown tags are reported with their line number.
func Parse(r io.Reader) ([]Op, error) {
	var ops []Op
	seen := map[string]bool{}

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		switch fields[0] {
		case "alloc":
			if len(fields) != 3 {
				return nil, fmt.Errorf("trace: line %d: want 'alloc <tag> <size>'", line)
			}
			size, err := strconv.ParseUint(fields[2], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("trace: line %d: bad size %q: %w", line, fields[2], err)
			}
			if seen[fields[1]] {
				return nil, fmt.Errorf("trace: line %d: tag %q already live", line, fields[1])
			}
			seen[fields[1]] = true
			ops = append(ops, Op{Kind: KindAlloc, Tag: fields[1], Size: uint32(size)})
		case "free":
			if len(fields) != 2 {
				return nil, fmt.Errorf("trace: line %d: want 'free <tag>'", line)
			}
			if !seen[fields[1]] {
				return nil, fmt.Errorf("trace: line %d: tag %q not live", line, fields[1])
			}
			delete(seen, fields[1])
			ops = append(ops, Op{Kind: KindFree, Tag: fields[1]})
		default:
			return nil, fmt.Errorf("trace: line %d: unknown directive %q", line, fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ops, nil
}

// Exercise returns the built-in balanced workload: ten mixed-size
// allocations freed in a shuffled order. A correct allocator ends it with
// the heap boundary back at its starting value.
func Exercise() []Op {
	return []Op{
		{Kind: KindAlloc, Tag: "a", Size: 24},
		{Kind: KindAlloc, Tag: "b", Size: 2000},
		{Kind: KindAlloc, Tag: "c", Size: 56},
		{Kind: KindAlloc, Tag: "d", Size: 64},
		{Kind: KindAlloc, Tag: "e", Size: 200},
		{Kind: KindAlloc, Tag: "f", Size: 16},
		{Kind: KindAlloc, Tag: "g", Size: 64},
		{Kind: KindAlloc, Tag: "h", Size: 40},
		{Kind: KindAlloc, Tag: "i", Size: 800},
		{Kind: KindAlloc, Tag: "j", Size: 512},
		{Kind: KindFree, Tag: "f"},
		{Kind: KindFree, Tag: "a"},
		{Kind: KindFree, Tag: "c"},
		{Kind: KindFree, Tag: "j"},
		{Kind: KindFree, Tag: "g"},
		{Kind: KindFree, Tag: "e"},
		{Kind: KindFree, Tag: "h"},
		{Kind: KindFree, Tag: "i"},
		{Kind: KindFree, Tag: "b"},
		{Kind: KindFree, Tag: "d"},
	}
}

// Runner replays ops one at a time against an allocator.
type Runner struct {
	a    *alloc.Allocator
	refs map[string]alloc.Ref
}

// NewRunner wraps an allocator for replay.
func NewRunner(a *alloc.Allocator) *Runner {
	return &Runner{a: a, refs: make(map[string]alloc.Ref)}
}

// Step applies one operation.
func (r *Runner) Step(op Op) error {
	switch op.Kind {
	case KindAlloc:
		ref, _, err := r.a.Alloc(op.Size)
		if err != nil {
			return fmt.Errorf("alloc %s (%d bytes): %w", op.Tag, op.Size, err)
		}
		r.refs[op.Tag] = ref
		return nil
	case KindFree:
		ref, ok := r.refs[op.Tag]
		if !ok {
			return fmt.Errorf("free %s: tag not live", op.Tag)
		}
		delete(r.refs, op.Tag)
		return r.a.Free(ref)
	default:
		return fmt.Errorf("unknown op kind %d", op.Kind)
	}
}

// Run applies every op in order.
func (r *Runner) Run(ops []Op) error {
	for i, op := range ops {
		if err := r.Step(op); err != nil {
			return fmt.Errorf("op %d (%s): %w", i, op, err)
		}
	}
	return nil
}

// Live returns the number of outstanding allocations.
func (r *Runner) Live() int { return len(r.refs) }
