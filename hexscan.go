// Package hexscan finds byte patterns with nibble wildcards in byte buffers.
//
// A pattern is given either as exact bytes or as hex text in which every two
// characters form one byte cell and '?' leaves a nibble free:
//
//	"4D 5A"   two exact bytes
//	"4?"      high nibble 4, low nibble anything
//	"?A"      low nibble A, high nibble anything
//	"??"      any byte
//
// Spaces are ignored. After removing them the text must have an even,
// non-zero number of hex digits and '?' characters.
//
// Basic usage:
//
//	p, err := hexscan.Compile("4D 5A ?? 00")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Release()
//
//	idx, err := p.Index(data) // -1 when there is no match
//
// One-shot searches compile, search and release in one call:
//
//	idx, err := hexscan.IndexString(data, "50 4B 03 04")
//
// Searches use Boyer-Moore-Horspool with a skip table that accounts for
// wildcards. Single-cell patterns use a vectorised byte search, and patterns
// whose wildcards sit at the end use a prefilter on their rarest fixed cell.
// All of this is internal: every method returns the smallest matching index.
//
// A Pattern is safe for concurrent use by multiple goroutines. Release must
// not run concurrently with a search.
package hexscan

import (
	"github.com/coregx/hexscan/meta"
)

// Pattern is a compiled byte pattern.
type Pattern struct {
	engine *meta.Engine
}

// Compile compiles hex pattern text.
//
// Example:
//
//	p, err := hexscan.Compile("01 02 ?? 04")
func Compile(text string) (*Pattern, error) {
	return CompileWithConfig(text, meta.DefaultConfig())
}

// CompileBytes compiles an exact byte pattern. The bytes are copied.
// An empty pattern fails with an error matching both ErrInvalidArgument and
// ErrInvalidPattern.
func CompileBytes(b []byte) (*Pattern, error) {
	return CompileBytesWithConfig(b, meta.DefaultConfig())
}

// MustCompile is like Compile but panics if the text cannot be parsed.
//
// Example:
//
//	var mzHeader = hexscan.MustCompile("4D 5A ?? ??")
func MustCompile(text string) *Pattern {
	p, err := Compile(text)
	if err != nil {
		panic("hexscan: Compile(`" + text + "`): " + err.Error())
	}
	return p
}

// CompileWithConfig compiles hex pattern text with a custom configuration.
//
// Example:
//
//	config := hexscan.DefaultConfig()
//	config.EnablePrefilter = false
//	p, err := hexscan.CompileWithConfig("4D 5A ??", config)
func CompileWithConfig(text string, config meta.Config) (*Pattern, error) {
	engine, err := meta.Compile(text, config)
	if err != nil {
		return nil, err
	}
	return &Pattern{engine: engine}, nil
}

// CompileBytesWithConfig compiles an exact byte pattern with a custom
// configuration.
func CompileBytesWithConfig(b []byte, config meta.Config) (*Pattern, error) {
	engine, err := meta.CompileBytes(b, config)
	if err != nil {
		return nil, bytesCompileError(err)
	}
	return &Pattern{engine: engine}, nil
}

// DefaultConfig returns the default configuration for compilation.
func DefaultConfig() meta.Config {
	return meta.DefaultConfig()
}

// Index returns the index of the first match in src, or -1.
func (p *Pattern) Index(src []byte) (int, error) {
	return p.IndexRange(src, 0, len(src))
}

// IndexFrom returns the index of the first match at or after start, or -1.
func (p *Pattern) IndexFrom(src []byte, start int) (int, error) {
	return p.IndexRange(src, start, len(src)-start)
}

// IndexRange returns the index of the first match lying entirely inside
// src[start:start+count], or -1. The index is relative to src.
//
// Errors:
//   - ErrInvalidArgument when src is empty
//   - ErrOutOfRange unless 0 <= start < len(src) and 0 < count <= len(src)-start
//   - ErrReleased after Release
func (p *Pattern) IndexRange(src []byte, start, count int) (int, error) {
	if p.engine.Released() {
		return -1, ErrReleased
	}
	if err := checkRange(len(src), start, count); err != nil {
		return -1, err
	}
	return p.engine.FindIn(src, start, count), nil
}

// Contains reports whether src contains a match. It returns the same
// errors as Index.
func (p *Pattern) Contains(src []byte) (bool, error) {
	idx, err := p.Index(src)
	return idx >= 0, err
}

// IndexAll returns the start index of successive matches in src. Matches may
// overlap: the search resumes one byte after each match start. If n >= 0 at
// most n indices are returned; n < 0 means all.
//
// Example:
//
//	p := hexscan.MustCompile("AA ??")
//	idx, _ := p.IndexAll([]byte{0xAA, 0xAA, 0xAA}, -1)
//	// idx == [0 1]
func (p *Pattern) IndexAll(src []byte, n int) ([]int, error) {
	if p.engine.Released() {
		return nil, ErrReleased
	}
	if err := checkRange(len(src), 0, len(src)); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}

	var indices []int
	for at := 0; at < len(src); {
		idx := p.engine.FindIn(src, at, len(src)-at)
		if idx < 0 {
			break
		}
		indices = append(indices, idx)
		if n > 0 && len(indices) == n {
			break
		}
		at = idx + 1
	}
	return indices, nil
}

// Count returns the number of (possibly overlapping) matches in src.
func (p *Pattern) Count(src []byte) (int, error) {
	indices, err := p.IndexAll(src, -1)
	return len(indices), err
}

// Len returns the match length in bytes.
func (p *Pattern) Len() int {
	return p.engine.Len()
}

// String returns the canonical pattern text, e.g. "4D 5A ?? 0?".
func (p *Pattern) String() string {
	return p.engine.Pattern().String()
}

// Strategy returns the search strategy selected for the pattern.
func (p *Pattern) Strategy() meta.Strategy {
	return p.engine.Strategy()
}

// Stats returns execution statistics.
func (p *Pattern) Stats() meta.Stats {
	return p.engine.Stats()
}

// Release returns the pattern's skip table to the pool it came from.
// Later searches fail with ErrReleased. Calling Release twice is safe.
func (p *Pattern) Release() {
	p.engine.Release()
}
