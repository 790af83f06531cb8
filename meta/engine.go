package meta

import (
	"strconv"
	"sync/atomic"

	"github.com/coregx/hexscan/horspool"
	"github.com/coregx/hexscan/prefilter"
	"github.com/coregx/hexscan/syntax"
)

// Engine is a compiled pattern together with its search strategy.
//
// An Engine is safe for concurrent searches. Release must not run
// concurrently with a search.
type Engine struct {
	pattern   *syntax.Pattern
	searcher  *horspool.Searcher
	prefilter prefilter.Prefilter
	strategy  Strategy
	config    Config
	stats     Stats
}

// Stats tracks execution statistics for performance analysis.
// All counters are updated atomically.
type Stats struct {
	// HorspoolSearches counts searches run by the Horspool loop,
	// including prefilter searches that fell back to it.
	HorspoolSearches uint64

	// MemchrSearches counts single-cell byte searches.
	MemchrSearches uint64

	// PrefilterSearches counts searches started with the prefilter.
	PrefilterSearches uint64

	// PrefilterHits counts prefilter candidates that verified.
	PrefilterHits uint64

	// PrefilterMisses counts prefilter candidates that did not verify.
	PrefilterMisses uint64

	// PrefilterAbandoned counts searches where the tracker retired the
	// prefilter and the search finished with Horspool.
	PrefilterAbandoned uint64

	// PrefilterSkipped counts the bytes the prefilter jumped over between
	// candidates. Divided by PrefilterHits+PrefilterMisses it gives the
	// average skip the tracker judges the prefilter by.
	PrefilterSkipped uint64
}

// Compile parses hex pattern text and compiles it with config.
func Compile(text string, config Config) (*Engine, error) {
	p, err := syntax.Parse(text)
	if err != nil {
		return nil, err
	}
	return CompilePattern(p, config)
}

// CompileBytes compiles an exact byte pattern with config.
func CompileBytes(b []byte, config Config) (*Engine, error) {
	p, err := syntax.FromBytes(b)
	if err != nil {
		return nil, err
	}
	return CompilePattern(p, config)
}

// CompilePattern compiles a parsed pattern with config.
func CompilePattern(p *syntax.Pattern, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.MaxPatternLen > 0 && p.Len() > config.MaxPatternLen {
		return nil, &ConfigError{
			Field:   "MaxPatternLen",
			Message: "pattern has " + strconv.Itoa(p.Len()) + " cells, limit is " + strconv.Itoa(config.MaxPatternLen),
		}
	}

	alloc := config.Tables
	if alloc == nil {
		alloc = defaultTablePool
	}

	s := horspool.Compile(p, alloc)
	e := &Engine{
		pattern:  p,
		searcher: s,
		strategy: SelectStrategy(p, s, config),
		config:   config,
	}
	if e.strategy == UsePrefilter {
		e.prefilter = prefilter.NewBuilder(p).Build()
		if e.prefilter == nil {
			e.strategy = UseHorspool
		}
	}
	return e, nil
}

// Pattern returns the parsed pattern.
func (e *Engine) Pattern() *syntax.Pattern {
	return e.pattern
}

// Searcher returns the compiled Horspool searcher.
func (e *Engine) Searcher() *horspool.Searcher {
	return e.searcher
}

// Strategy returns the execution strategy selected for this engine.
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// Len returns the pattern length in bytes.
func (e *Engine) Len() int {
	return e.searcher.Len()
}

// Release returns the skip table to its allocator. It is a no-op when
// called again. A released engine must not be searched.
func (e *Engine) Release() {
	e.searcher.Release()
}

// Released reports whether Release has been called.
func (e *Engine) Released() bool {
	return e.searcher.Released()
}

// Stats returns a snapshot of execution statistics.
func (e *Engine) Stats() Stats {
	return Stats{
		HorspoolSearches:   atomic.LoadUint64(&e.stats.HorspoolSearches),
		MemchrSearches:     atomic.LoadUint64(&e.stats.MemchrSearches),
		PrefilterSearches:  atomic.LoadUint64(&e.stats.PrefilterSearches),
		PrefilterHits:      atomic.LoadUint64(&e.stats.PrefilterHits),
		PrefilterMisses:    atomic.LoadUint64(&e.stats.PrefilterMisses),
		PrefilterAbandoned: atomic.LoadUint64(&e.stats.PrefilterAbandoned),
		PrefilterSkipped:   atomic.LoadUint64(&e.stats.PrefilterSkipped),
	}
}

// ResetStats resets execution statistics to zero.
func (e *Engine) ResetStats() {
	atomic.StoreUint64(&e.stats.HorspoolSearches, 0)
	atomic.StoreUint64(&e.stats.MemchrSearches, 0)
	atomic.StoreUint64(&e.stats.PrefilterSearches, 0)
	atomic.StoreUint64(&e.stats.PrefilterHits, 0)
	atomic.StoreUint64(&e.stats.PrefilterMisses, 0)
	atomic.StoreUint64(&e.stats.PrefilterAbandoned, 0)
	atomic.StoreUint64(&e.stats.PrefilterSkipped, 0)
}
