package meta

import (
	"sync"
	"sync/atomic"

	"github.com/coregx/hexscan/horspool"
)

// TablePool recycles skip tables through a sync.Pool.
//
// It implements horspool.Allocator. Acquire and Release are safe for
// concurrent use, and a table is never handed to two callers unless it was
// released in between. No ordering is promised on which table comes back.
//
// Usage pattern:
//
//	t := pool.Acquire()
//	defer pool.Release(t)
type TablePool struct {
	pool sync.Pool

	// outstanding counts tables acquired and not yet released.
	outstanding atomic.Int64
}

// NewTablePool creates an empty pool.
func NewTablePool() *TablePool {
	p := &TablePool{}
	p.pool = sync.Pool{
		New: func() any {
			t := new(horspool.Table)
			t.Fill(horspool.Sentinel)
			return t
		},
	}
	return p
}

// Acquire returns a Sentinel-filled table.
func (p *TablePool) Acquire() *horspool.Table {
	p.outstanding.Add(1)
	return p.pool.Get().(*horspool.Table)
}

// Release resets t to Sentinel and returns it to the pool.
func (p *TablePool) Release(t *horspool.Table) {
	if t == nil {
		return
	}
	p.outstanding.Add(-1)
	t.Fill(horspool.Sentinel)
	p.pool.Put(t)
}

// Outstanding returns the number of tables currently checked out.
func (p *TablePool) Outstanding() int64 {
	return p.outstanding.Load()
}

var defaultTablePool = NewTablePool()

// DefaultTablePool returns the pool used when Config.Tables is nil.
func DefaultTablePool() *TablePool {
	return defaultTablePool
}
