// Package prefilter finds candidate match positions for a cell pattern
// faster than walking every window.
//
// A prefilter searches for one cell of the pattern (the anchor) with a
// vectorised byte search and reports the window start that would put the
// anchor byte in place. The caller then verifies the whole window.
//
// The Builder picks the strategy from the pattern:
//   - one exact cell: memchr, complete (no verification needed)
//   - one nibble cell: masked memchr, complete
//   - longer patterns: memchr or masked memchr on the rarest fixed cell,
//     ranked by simd.MaskedRank
//   - patterns made only of "??" cells: no prefilter
//
// Example:
//
//	p := syntax.MustParse("?? ?? 4D 5A")
//	pf := prefilter.NewBuilder(p).Build()
//	pos := pf.Find(haystack, 0)
//	for pos != -1 && !verify(haystack, pos) {
//	    pos = pf.Find(haystack, pos+1)
//	}
package prefilter

import (
	"github.com/coregx/hexscan/simd"
	"github.com/coregx/hexscan/syntax"
)

// Prefilter reports candidate window starts.
type Prefilter interface {
	// Find returns the smallest candidate window start >= start whose
	// window lies inside haystack, or -1.
	//
	// A candidate only guarantees the anchor cell matches. Unless
	// IsComplete is true the caller must verify the whole window.
	Find(haystack []byte, start int) int

	// IsComplete reports whether every candidate is a full match.
	IsComplete() bool
}

// Builder selects a prefilter for a pattern.
type Builder struct {
	pattern *syntax.Pattern
}

// NewBuilder creates a builder for p.
func NewBuilder(p *syntax.Pattern) *Builder {
	return &Builder{pattern: p}
}

// Build returns the best prefilter for the pattern, or nil when the pattern
// has no fixed cell to anchor on.
func (b *Builder) Build() Prefilter {
	return selectPrefilter(b.pattern)
}

func selectPrefilter(p *syntax.Pattern) Prefilter {
	if p == nil || p.Len() == 0 {
		return nil
	}

	anchor := RarestCell(p)
	if anchor < 0 {
		return nil
	}
	cell := p.Cell(anchor)
	complete := p.Len() == 1

	if cell.Mask == syntax.MaskByte && complete {
		return newMemchrPrefilter(cell.Value)
	}
	return newCellPrefilter(cell, anchor, p.Len(), complete)
}

// RarestCell returns the index of the fixed cell with the lowest
// simd.MaskedRank, or -1 if every cell is "??". Ties go to the rightmost
// cell, which keeps the anchor close to where Horspool probes.
func RarestCell(p *syntax.Pattern) int {
	best, bestRank := -1, 0
	for i, c := range p.Cells() {
		if c.Mask == syntax.MaskAny {
			continue
		}
		rank := simd.MaskedRank(c.Mask, c.Value)
		if best < 0 || rank <= bestRank {
			best, bestRank = i, rank
		}
	}
	return best
}

// memchrPrefilter wraps simd.Memchr as a Prefilter for one exact cell.
type memchrPrefilter struct {
	needle byte
}

func newMemchrPrefilter(needle byte) Prefilter {
	return &memchrPrefilter{needle: needle}
}

// Find implements Prefilter.Find using simd.Memchr.
func (p *memchrPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}

	idx := simd.Memchr(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

// IsComplete implements Prefilter.IsComplete.
func (p *memchrPrefilter) IsComplete() bool {
	return true
}
