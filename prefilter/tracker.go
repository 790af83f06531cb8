package prefilter

// Tracker wraps a Prefilter with effectiveness tracking for one search.
//
// A prefilter pays off only while its candidates are sparse. The tracker
// counts candidates and the bytes skipped to reach them; once the average
// skip falls below a threshold the prefilter is retired and the caller
// continues with its regular scan loop from the current position.
//
// Algorithm:
//  1. Every Find adds one candidate and (pos - start) skipped bytes
//  2. After WarmupPeriod candidates, every CheckInterval candidates, compare
//     skipped/candidates with MinAvgSkip
//  3. Below the threshold the tracker turns inactive for the rest of the
//     search
//
// A Tracker holds per-search state and must not be shared between
// goroutines. It is small enough to live on the stack of a search call.
//
// Example usage:
//
//	var tracker prefilter.Tracker
//	tracker.Init(pf, prefilter.DefaultTrackerConfig())
//	for at := start; tracker.IsActive(); {
//	    pos := tracker.Find(haystack, at)
//	    if pos == -1 {
//	        return -1
//	    }
//	    if verify(haystack, pos) {
//	        return pos
//	    }
//	    at = pos + 1
//	}
//	// fall back to the scan loop at 'at'
type Tracker struct {
	inner Prefilter

	candidates uint64 // candidate positions returned
	skipped    uint64 // bytes jumped over to reach them

	checkInterval  uint64
	minAvgSkip     uint64
	warmupPeriod   uint64
	lastCheckpoint uint64

	active bool
}

// TrackerConfig tunes when a prefilter is retired.
type TrackerConfig struct {
	// CheckInterval is the number of candidates between checks.
	CheckInterval uint64

	// MinAvgSkip is the smallest acceptable average number of bytes
	// skipped per candidate.
	MinAvgSkip uint64

	// WarmupPeriod is the number of candidates before the first check.
	WarmupPeriod uint64
}

// DefaultTrackerConfig returns the default configuration.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		CheckInterval: 32,
		MinAvgSkip:    16,
		WarmupPeriod:  64,
	}
}

// Init prepares a zero Tracker in place, so callers can keep it in a local
// variable instead of allocating.
func (t *Tracker) Init(inner Prefilter, config TrackerConfig) {
	*t = Tracker{
		inner:         inner,
		checkInterval: config.CheckInterval,
		minAvgSkip:    config.MinAvgSkip,
		warmupPeriod:  config.WarmupPeriod,
		active:        true,
	}
}

// Find returns the next candidate from the wrapped prefilter, or -1 when
// there is none or the tracker is inactive.
func (t *Tracker) Find(haystack []byte, start int) int {
	if !t.active {
		return -1
	}

	pos := t.inner.Find(haystack, start)
	if pos >= 0 {
		t.candidates++
		t.skipped += uint64(pos - start)
		t.checkEffectiveness()
	}
	return pos
}

// IsActive reports whether the prefilter is still in use.
func (t *Tracker) IsActive() bool {
	return t.active
}

// IsComplete implements Prefilter.IsComplete.
func (t *Tracker) IsComplete() bool {
	return t.inner.IsComplete()
}

// Stats returns the number of candidates reported so far and the bytes
// skipped to reach them.
func (t *Tracker) Stats() (candidates, skipped uint64) {
	return t.candidates, t.skipped
}

func (t *Tracker) checkEffectiveness() {
	if t.candidates < t.warmupPeriod {
		return
	}
	if t.candidates-t.lastCheckpoint < t.checkInterval {
		return
	}
	t.lastCheckpoint = t.candidates

	if t.skipped/t.candidates < t.minAvgSkip {
		t.active = false
	}
}
