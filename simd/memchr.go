// Package simd provides byte search primitives used by the pattern
// strategies: single byte search (Memchr) and nibble-masked byte search
// (MemchrMasked).
//
// Memchr dispatches on CPU features detected through golang.org/x/sys/cpu.
// When the CPU has wide vector units (AVX2 on x86-64, ASIMD on arm64) the
// Go runtime's assembly bytes.IndexByte is faster than anything written in
// Go, so it is used. Elsewhere the SWAR (SIMD Within A Register) path
// processes 8 bytes per step with uint64 arithmetic.
//
// MemchrMasked has no runtime equivalent and always uses SWAR.
package simd

import "bytes"

// Memchr returns the index of the first instance of needle in haystack,
// or -1 if needle is not present in haystack.
//
// Example:
//
//	pos := simd.Memchr([]byte("hello world"), 'o')
//	// pos == 4
func Memchr(haystack []byte, needle byte) int {
	if len(haystack) == 0 {
		return -1
	}
	if useRuntimeIndexByte && len(haystack) >= runtimeIndexByteMin {
		return bytes.IndexByte(haystack, needle)
	}
	return memchrGeneric(haystack, needle)
}

// MemchrMasked returns the index of the first byte b in haystack with
// b&mask == value, or -1 if there is none.
//
// With mask 0xFF this is Memchr. With mask 0xF0 or 0x0F it finds the first
// byte whose high or low nibble is fixed, which is how a single wildcard
// nibble cell is searched:
//
//	pos := simd.MemchrMasked([]byte{0x05, 0x06, 0x17}, 0x0F, 0x07)
//	// pos == 2
//
// A value with bits outside mask never matches. A zero mask with a zero
// value matches at index 0 of any non-empty haystack.
func MemchrMasked(haystack []byte, mask, value byte) int {
	if len(haystack) == 0 || value&^mask != 0 {
		return -1
	}
	switch mask {
	case 0xFF:
		return Memchr(haystack, value)
	case 0x00:
		return 0
	}
	return memchrMaskedGeneric(haystack, mask, value)
}

// runtimeIndexByteMin is the haystack size below which the call into the
// runtime costs more than the SWAR loop.
const runtimeIndexByteMin = 32
