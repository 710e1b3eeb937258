package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/joshuapare/heapkit/heap/alloc"
)

// View renders the header, the physical block list, the bin summary and the
// status line.
func (m *model) View() string {
	header := m.renderHeader()
	blocks := m.renderBlocks()
	bins := m.renderBins()
	status := m.renderStatus()

	return lipgloss.JoinVertical(lipgloss.Left, header, blocks, bins, status)
}

func (m *model) renderHeader() string {
	source := m.tracePath
	if source == "" {
		source = "built-in exercise"
	}
	return titleStyle.Render(fmt.Sprintf("Heap Explorer — %s", source))
}

func (m *model) renderBlocks() string {
	blocks := m.a.Blocks()
	if len(blocks) == 0 {
		return dimStyle.Render("  (empty heap)")
	}

	var sb strings.Builder
	maxRows := m.height - 8
	if maxRows < 4 {
		maxRows = 4
	}
	for i, b := range blocks {
		if i >= maxRows {
			sb.WriteString(dimStyle.Render(fmt.Sprintf("  … %d more blocks", len(blocks)-i)))
			sb.WriteByte('\n')
			break
		}
		bar := blockBar(b)
		line := fmt.Sprintf("  0x%08X %8d B  %s", b.Off, b.Size, bar)
		if b.InUse {
			sb.WriteString(usedStyle.Render(line))
		} else {
			sb.WriteString(freeStyle.Render(line))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// blockBar draws a proportional bar, log-scaled so a 2 KB block doesn't
// flood the row.
func blockBar(b alloc.BlockInfo) string {
	n := 1
	for s := b.Size; s > 16; s >>= 1 {
		n++
	}
	glyph := "█"
	if !b.InUse {
		glyph = "░"
	}
	return strings.Repeat(glyph, n)
}

func (m *model) renderBins() string {
	counts := m.a.BinCounts()
	var parts []string
	for i, c := range counts {
		if c == 0 {
			continue
		}
		if i == alloc.OverflowBin {
			parts = append(parts, fmt.Sprintf(">%d:%d", alloc.BiggestBinnedSize, c))
		} else {
			parts = append(parts, fmt.Sprintf("%d:%d", alloc.MinAllocation+i*alloc.SizeMultiple, c))
		}
	}
	if len(parts) == 0 {
		return dimStyle.Render("  bins: all empty")
	}
	return dimStyle.Render("  bins: " + strings.Join(parts, "  "))
}

func (m *model) renderStatus() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v — press q to quit", m.err))
	}
	next := "(end of trace)"
	if m.pos < len(m.ops) {
		next = m.ops[m.pos].String()
	}
	return statusStyle.Render(fmt.Sprintf(
		"op %d/%d  break=%d B  next: %s   [→ step | ← back | r reset | e end | q quit]",
		m.pos, len(m.ops), m.a.Break(), next))
}
