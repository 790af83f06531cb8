package prefilter

import (
	"github.com/coregx/hexscan/simd"
	"github.com/coregx/hexscan/syntax"
)

// cellPrefilter searches for the anchor cell of a longer pattern.
//
// With the anchor at offset k of a pattern of length n, a byte matching the
// anchor at position p yields the candidate window start p-k. Only anchor
// positions in [start+k, len(haystack)-(n-1-k)) are searched, so every
// candidate window fits in haystack.
type cellPrefilter struct {
	mask     byte
	value    byte
	offset   int // anchor index within the pattern
	length   int // pattern length
	complete bool
}

func newCellPrefilter(c syntax.Cell, offset, length int, complete bool) Prefilter {
	return &cellPrefilter{
		mask:     c.Mask,
		value:    c.Value,
		offset:   offset,
		length:   length,
		complete: complete,
	}
}

// Find implements Prefilter.Find using simd.MemchrMasked.
func (p *cellPrefilter) Find(haystack []byte, start int) int {
	if start < 0 {
		return -1
	}
	from := start + p.offset
	to := len(haystack) - (p.length - 1 - p.offset)
	if from >= to {
		return -1
	}

	idx := simd.MemchrMasked(haystack[from:to], p.mask, p.value)
	if idx == -1 {
		return -1
	}
	return from + idx - p.offset
}

// IsComplete implements Prefilter.IsComplete.
func (p *cellPrefilter) IsComplete() bool {
	return p.complete
}
