// Package horspool implements Boyer-Moore-Horspool search over cell patterns.
//
// A Searcher is compiled once from a syntax.Pattern and then used for any
// number of searches. Compilation builds two things:
//   - a 256-entry bad-character Table indexed by the byte under the last
//     position of the current window
//   - a verifier that checks a full window cell by cell
//
// Wildcard cells take part in the table: a cell that accepts several byte
// values writes its shift into every slot it accepts, so the table never
// shifts past a window that could still match.
//
// Searchers are immutable and safe for concurrent use.
package horspool

// TableSize is the number of slots in a skip table, one per byte value.
const TableSize = 256

// Sentinel marks table slots that have not been filled by Compile.
// Allocators hand out tables with every slot set to Sentinel.
const Sentinel = -1

// Table is a bad-character shift table.
type Table [TableSize]int

// Fill sets every slot to v.
func (t *Table) Fill(v int) {
	for i := range t {
		t[i] = v
	}
}

// Allocator supplies and reclaims skip-table buffers.
//
// Acquire returns a table with every slot set to Sentinel. A table passed to
// Release must not be used again by the caller. Implementations must be safe
// for concurrent use and must never hand out a table that has not been
// released.
type Allocator interface {
	Acquire() *Table
	Release(t *Table)
}

// HeapAllocator allocates a fresh table on every Acquire and lets the
// garbage collector reclaim released ones.
type HeapAllocator struct{}

// Acquire returns a new Sentinel-filled table.
func (HeapAllocator) Acquire() *Table {
	t := new(Table)
	t.Fill(Sentinel)
	return t
}

// Release drops the table.
func (HeapAllocator) Release(*Table) {}
