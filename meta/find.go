package meta

import (
	"sync/atomic"

	"github.com/coregx/hexscan/prefilter"
	"github.com/coregx/hexscan/simd"
)

// FindIn returns the index of the first match whose window lies inside
// src[start:start+count], or -1.
//
// FindIn does not validate its arguments. The caller guarantees
// 0 <= start, 0 <= count, start+count <= len(src) and that the engine has
// not been released.
func (e *Engine) FindIn(src []byte, start, count int) int {
	switch e.strategy {
	case UseMemchr:
		return e.findMemchr(src, start, count)
	case UseMaskedMemchr:
		return e.findMaskedMemchr(src, start, count)
	case UsePrefilter:
		return e.findPrefilter(src, start, count)
	default:
		return e.findHorspool(src, start, count)
	}
}

// IsMatchIn reports whether any match lies inside src[start:start+count].
func (e *Engine) IsMatchIn(src []byte, start, count int) bool {
	return e.FindIn(src, start, count) >= 0
}

func (e *Engine) findHorspool(src []byte, start, count int) int {
	atomic.AddUint64(&e.stats.HorspoolSearches, 1)
	return e.searcher.Find(src, start, count)
}

func (e *Engine) findMemchr(src []byte, start, count int) int {
	atomic.AddUint64(&e.stats.MemchrSearches, 1)
	idx := simd.Memchr(src[start:start+count], e.pattern.Cell(0).Value)
	if idx < 0 {
		return -1
	}
	return start + idx
}

func (e *Engine) findMaskedMemchr(src []byte, start, count int) int {
	atomic.AddUint64(&e.stats.MemchrSearches, 1)
	c := e.pattern.Cell(0)
	idx := simd.MemchrMasked(src[start:start+count], c.Mask, c.Value)
	if idx < 0 {
		return -1
	}
	return start + idx
}

// findPrefilter verifies prefilter candidates until one matches. When the
// tracker retires the prefilter, the rest of the range is handed to the
// Horspool loop.
func (e *Engine) findPrefilter(src []byte, start, count int) int {
	atomic.AddUint64(&e.stats.PrefilterSearches, 1)

	end := start + count
	haystack := src[:end]

	var tracker prefilter.Tracker
	tracker.Init(e.prefilter, e.config.Tracker)
	defer func() {
		_, skipped := tracker.Stats()
		atomic.AddUint64(&e.stats.PrefilterSkipped, skipped)
	}()

	at := start
	for {
		if !tracker.IsActive() {
			atomic.AddUint64(&e.stats.PrefilterAbandoned, 1)
			return e.findHorspool(src, at, end-at)
		}
		pos := tracker.Find(haystack, at)
		if pos < 0 {
			return -1
		}
		if tracker.IsComplete() || e.searcher.Verify(haystack, pos) {
			atomic.AddUint64(&e.stats.PrefilterHits, 1)
			return pos
		}
		atomic.AddUint64(&e.stats.PrefilterMisses, 1)
		at = pos + 1
	}
}
