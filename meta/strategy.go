package meta

import (
	"github.com/coregx/hexscan/horspool"
	"github.com/coregx/hexscan/syntax"
)

// Strategy is the search method chosen for a pattern.
type Strategy int

const (
	// UseHorspool runs the Boyer-Moore-Horspool loop with the skip table.
	UseHorspool Strategy = iota

	// UseMemchr searches for the single byte of a one-cell exact pattern.
	UseMemchr

	// UseMaskedMemchr searches for the single nibble cell of a one-cell
	// pattern with a masked byte search.
	UseMaskedMemchr

	// UsePrefilter finds candidates with a byte search on the rarest fixed
	// cell and verifies each one. Selected when wildcards near the end of
	// the pattern leave every skip-table entry below MinHorspoolShift.
	UsePrefilter
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case UseHorspool:
		return "UseHorspool"
	case UseMemchr:
		return "UseMemchr"
	case UseMaskedMemchr:
		return "UseMaskedMemchr"
	case UsePrefilter:
		return "UsePrefilter"
	default:
		return "Unknown"
	}
}

// SelectStrategy picks the strategy for p given its compiled searcher.
func SelectStrategy(p *syntax.Pattern, s *horspool.Searcher, config Config) Strategy {
	if p.Len() == 1 && config.EnableMemchr {
		switch p.Cell(0).Kind() {
		case syntax.Exact:
			return UseMemchr
		case syntax.HighNibble, syntax.LowNibble:
			return UseMaskedMemchr
		}
	}

	if config.EnablePrefilter && p.Len() > 1 && p.FixedCells() > 0 &&
		s.MaxShift() < config.MinHorspoolShift {
		return UsePrefilter
	}

	return UseHorspool
}
