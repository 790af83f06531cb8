package simd

import (
	"encoding/binary"
	"math/bits"
)

const (
	lo8 = 0x0101010101010101
	hi8 = 0x8080808080808080
)

// memchrGeneric is the portable single byte search: a masked search with
// every bit fixed.
func memchrGeneric(haystack []byte, needle byte) int {
	return memchrMaskedGeneric(haystack, 0xFF, needle)
}

// memchrMaskedGeneric finds the first byte b with b&mask == value, eight
// bytes per step (SWAR).
//
// mask and value are broadcast to every lane. For each little-endian chunk,
// (chunk & maskWord) ^ valueWord has a zero lane exactly where the fixed bits
// agree. The lowest zero lane is found with
//
//	(x - 0x0101..01) &^ x & 0x8080..80
//
// whose lowest set bit is always exact; borrows can only mark lanes above
// it. TrailingZeros64/8 turns that bit into a byte offset.
//
// Inputs shorter than a word, and the tail, are compared one byte at a time.
func memchrMaskedGeneric(haystack []byte, mask, value byte) int {
	n := len(haystack)
	maskWord := uint64(mask) * lo8
	valueWord := uint64(value) * lo8

	i := 0
	for ; i+8 <= n; i += 8 {
		x := (binary.LittleEndian.Uint64(haystack[i:]) & maskWord) ^ valueWord
		if zero := (x - lo8) &^ x & hi8; zero != 0 {
			return i + bits.TrailingZeros64(zero)/8
		}
	}
	for ; i < n; i++ {
		if haystack[i]&mask == value {
			return i
		}
	}
	return -1
}
