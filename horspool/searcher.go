package horspool

import (
	"bytes"

	"github.com/coregx/hexscan/syntax"
)

// Searcher is a compiled pattern: skip table plus verifier.
type Searcher struct {
	length int
	table  *Table
	cells  []syntax.Cell
	exact  []byte // literal bytes when every cell is exact, nil otherwise
	alloc  Allocator
}

// Compile builds a Searcher for p, taking its skip table from alloc.
// A nil alloc means HeapAllocator.
//
// The table is filled with the pattern length and then, cell by cell from
// left to right, every slot the cell accepts is set to the cell's distance
// from the end of the pattern. Later cells overwrite earlier ones, so each
// slot ends up holding the distance of the rightmost cell that accepts it:
//
//	exact XY  one slot, XY
//	X?        16 slots with high nibble X (consecutive from X<<4)
//	?Y        16 slots with low nibble Y (stride 16 from Y)
//	??        all 256 slots
func Compile(p *syntax.Pattern, alloc Allocator) *Searcher {
	if alloc == nil {
		alloc = HeapAllocator{}
	}
	s := &Searcher{
		length: p.Len(),
		table:  alloc.Acquire(),
		cells:  p.Cells(),
		alloc:  alloc,
	}
	if p.IsExact() {
		s.exact = p.Bytes()
	}
	buildTable(s.table, s.cells)
	return s
}

func buildTable(t *Table, cells []syntax.Cell) {
	length := len(cells)
	t.Fill(length)
	for i, c := range cells {
		badMove := length - 1 - i
		switch c.Mask {
		case syntax.MaskByte:
			t[c.Value] = badMove
		case syntax.MaskHigh:
			base := int(c.Value)
			for v := base; v < base+16; v++ {
				t[v] = badMove
			}
		case syntax.MaskLow:
			for v := int(c.Value); v < TableSize; v += 16 {
				t[v] = badMove
			}
		default:
			t.Fill(badMove)
		}
	}
}

// Len returns the pattern length in bytes.
func (s *Searcher) Len() int {
	return s.length
}

// Shift returns the skip-table entry for b.
func (s *Searcher) Shift(b byte) int {
	return s.table[b]
}

// MaxShift returns the largest entry in the skip table. A wildcard cell
// near the end of the pattern caps every entry at its distance from the
// end, so a small MaxShift means the scan advances slowly whatever the
// haystack holds.
func (s *Searcher) MaxShift() int {
	maxShift := 0
	for _, v := range s.table {
		if v > maxShift {
			maxShift = v
		}
	}
	return maxShift
}

// Cells returns the compiled cells. The slice must not be modified.
func (s *Searcher) Cells() []syntax.Cell {
	return s.cells
}

// Table returns the skip table. It must not be modified.
func (s *Searcher) Table() *Table {
	return s.table
}

// Release hands the skip table back to the allocator it came from. It is a
// no-op on an already released Searcher. A released Searcher must not be
// used for searching.
func (s *Searcher) Release() {
	if s.table == nil {
		return
	}
	s.alloc.Release(s.table)
	s.table = nil
}

// Released reports whether Release has been called.
func (s *Searcher) Released() bool {
	return s.table == nil
}

// Verify reports whether the window starting at src[idx] matches every
// cell. The caller guarantees idx+Len() <= len(src).
func (s *Searcher) Verify(src []byte, idx int) bool {
	window := src[idx : idx+s.length]
	if s.exact != nil {
		return bytes.Equal(window, s.exact)
	}
	for i, c := range s.cells {
		if window[i]&c.Mask != c.Value {
			return false
		}
	}
	return true
}

// Find returns the index of the first match whose window lies entirely in
// src[start:start+count], or -1.
//
// Find does not validate its arguments. Callers must ensure
// 0 <= start, 0 <= count and start+count <= len(src).
func (s *Searcher) Find(src []byte, start, count int) int {
	length := s.length
	pattMaxIdx := length - 1
	end := start + count - length + 1 // exclusive bound on window starts
	table := s.table

	idx := start
	for idx < end {
		move := table[src[idx+pattMaxIdx]]
		if move < length {
			idx += move
			if idx < end && s.Verify(src, idx) {
				return idx
			}
			idx++
		} else {
			idx += length
		}
	}
	return -1
}
