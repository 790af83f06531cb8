package hexscan

import (
	"github.com/coregx/hexscan/meta"
)

// Index returns the index of the first occurrence of the exact byte
// pattern in src, or -1.
//
// The pattern is compiled with a pooled skip table that is returned before
// Index returns, on every path.
func Index(src, pattern []byte) (int, error) {
	return IndexRange(src, pattern, 0, len(src))
}

// IndexRange is like Index but only reports a match lying entirely inside
// src[start:start+count].
func IndexRange(src, pattern []byte, start, count int) (int, error) {
	if err := checkRange(len(src), start, count); err != nil {
		return -1, err
	}
	engine, err := meta.CompileBytes(pattern, meta.DefaultConfig())
	if err != nil {
		return -1, bytesCompileError(err)
	}
	defer engine.Release()
	return engine.FindIn(src, start, count), nil
}

// IndexString returns the index of the first match of hex pattern text in
// src, or -1.
//
// Example:
//
//	idx, err := hexscan.IndexString(data, "01 02 ?? 04")
func IndexString(src []byte, pattern string) (int, error) {
	return IndexStringRange(src, pattern, 0, len(src))
}

// IndexStringRange is like IndexString but only reports a match lying
// entirely inside src[start:start+count].
func IndexStringRange(src []byte, pattern string, start, count int) (int, error) {
	if err := checkRange(len(src), start, count); err != nil {
		return -1, err
	}
	engine, err := meta.Compile(pattern, meta.DefaultConfig())
	if err != nil {
		return -1, err
	}
	defer engine.Release()
	return engine.FindIn(src, start, count), nil
}
