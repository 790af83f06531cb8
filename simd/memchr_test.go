package simd

import (
	"bytes"
	"fmt"
	"testing"
)

// memchrImpls runs each check against the dispatching entry point and the
// SWAR path, which Memchr skips on CPUs with wide vector units.
var memchrImpls = []struct {
	name string
	fn   func([]byte, byte) int
}{
	{"Memchr", Memchr},
	{"generic", memchrGeneric},
}

func checkMemchr(t *testing.T, haystack []byte, needle byte) {
	t.Helper()
	want := bytes.IndexByte(haystack, needle)
	for _, impl := range memchrImpls {
		if got := impl.fn(haystack, needle); got != want {
			t.Errorf("%s(len=%d, %#02x) = %d, want %d", impl.name, len(haystack), needle, got, want)
		}
	}
}

func TestMemchrBasic(t *testing.T) {
	const fox = "the quick brown fox jumps over the lazy dog"
	tests := []struct {
		name     string
		haystack []byte
		needle   byte
	}{
		{"empty", nil, 'a'},
		{"single_match", []byte{'a'}, 'a'},
		{"single_miss", []byte{'a'}, 'b'},
		{"first", []byte("hello"), 'h'},
		{"repeated", []byte("hello"), 'l'},
		{"last", []byte("hello"), 'o'},
		{"absent", []byte("hello"), 'x'},
		{"zero_byte", []byte{1, 0, 2, 0}, 0},
		{"ff_byte", []byte{1, 2, 0xFF, 4}, 0xFF},
		{"fox_q", []byte(fox), 'q'},
		{"fox_g", []byte(fox), 'g'},
		{"fox_absent", []byte(fox), '!'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkMemchr(t, tt.haystack, tt.needle)
		})
	}
}

// TestMemchrSizes covers word, vector and page boundaries with the needle
// at the start, at the end and missing.
func TestMemchrSizes(t *testing.T) {
	sizes := []int{1, 7, 8, 9, 15, 16, 17, 31, 32, 33, 63, 64, 65, 255, 256, 257, 4095, 4096, 4097, 65536}

	for _, size := range sizes {
		t.Run(fmt.Sprintf("size_%d", size), func(t *testing.T) {
			haystack := bytes.Repeat([]byte{'a'}, size)
			checkMemchr(t, haystack, 'X')

			haystack[size-1] = 'X'
			checkMemchr(t, haystack, 'X')

			haystack[0] = 'X'
			checkMemchr(t, haystack, 'X')
		})
	}
}

func TestMemchrAlignment(t *testing.T) {
	buf := bytes.Repeat([]byte{'a'}, 256)
	buf[128] = 'X'

	for offset := 0; offset < 32; offset++ {
		checkMemchr(t, buf[offset:], 'X')
		checkMemchr(t, buf[offset:offset+64], 'X')
	}
}

func TestMemchrAllBytes(t *testing.T) {
	haystack := make([]byte, 256)
	for i := range haystack {
		haystack[i] = byte(i)
	}

	for needle := 0; needle < 256; needle++ {
		if got := Memchr(haystack, byte(needle)); got != needle {
			t.Errorf("Memchr(0..255, %d) = %d", needle, got)
		}
		checkMemchr(t, haystack[1:], byte(needle))
	}
}

// naiveMasked is the byte-at-a-time reference for MemchrMasked.
func naiveMasked(haystack []byte, mask, value byte) int {
	for i, b := range haystack {
		if b&mask == value {
			return i
		}
	}
	return -1
}

// TestMemchrMaskedBasic tests nibble-masked search
func TestMemchrMaskedBasic(t *testing.T) {
	tests := []struct {
		name     string
		haystack []byte
		mask     byte
		value    byte
		want     int
	}{
		{"empty", nil, 0x0F, 0x07, -1},
		{"low_nibble", []byte{0, 1, 2, 3, 4, 5, 6, 0x17}, 0x0F, 0x07, 7},
		{"high_nibble", []byte{0, 1, 2, 3, 4, 5, 6, 0x17}, 0xF0, 0x10, 7},
		{"high_nibble_absent", []byte{0, 1, 2, 3, 4, 5, 6, 0x17}, 0xF0, 0x20, -1},
		{"exact_mask", []byte("hello"), 0xFF, 'l', 2},
		{"zero_mask", []byte("hello"), 0x00, 0x00, 0},
		{"value_outside_mask", []byte{0x17}, 0x0F, 0x17, -1},
		{"long_late", append(make([]byte, 40), 0xA5), 0xF0, 0xA0, 40},
		{"long_first_lane", append([]byte{0x3C}, make([]byte, 40)...), 0x0F, 0x0C, 0},
		{"short_tail", append(make([]byte, 9), 0x0E), 0x0F, 0x0E, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MemchrMasked(tt.haystack, tt.mask, tt.value)
			if got != tt.want {
				t.Errorf("MemchrMasked(%x, %#02x, %#02x) = %d, want %d",
					tt.haystack, tt.mask, tt.value, got, tt.want)
			}
		})
	}
}

// TestMemchrMaskedLanes places the only match in every lane of a chunk
func TestMemchrMaskedLanes(t *testing.T) {
	for size := 1; size <= 40; size++ {
		for pos := 0; pos < size; pos++ {
			haystack := bytes.Repeat([]byte{0x11}, size)
			haystack[pos] = 0x1B
			if got := MemchrMasked(haystack, 0x0F, 0x0B); got != pos {
				t.Fatalf("size %d: got %d, want %d", size, got, pos)
			}
			haystack[pos] = 0xB1
			if got := MemchrMasked(haystack, 0xF0, 0xB0); got != pos {
				t.Fatalf("size %d: got %d, want %d", size, got, pos)
			}
		}
	}
}

// TestMemchrMaskedFalsePositives checks that a zero lane after a borrow
// does not report an earlier position
func TestMemchrMaskedFalsePositives(t *testing.T) {
	haystack := []byte{0x01, 0x00, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01}
	for mask := 0; mask < 256; mask += 0x0F {
		m := byte(mask)
		for value := 0; value < 256; value++ {
			v := byte(value)
			if v&^m != 0 {
				continue
			}
			if got, want := MemchrMasked(haystack, m, v), naiveMasked(haystack, m, v); got != want {
				t.Fatalf("mask %#02x value %#02x: got %d, want %d", m, v, got, want)
			}
		}
	}
}

// BenchmarkMemchrMasked benchmarks nibble-masked search against the byte loop
func BenchmarkMemchrMasked(b *testing.B) {
	sizes := []int{64, 1024, 65536}

	for _, size := range sizes {
		haystack := bytes.Repeat([]byte{'a'}, size)
		haystack[size-1] = 0x9C

		b.Run(fmt.Sprintf("swar_%d", size), func(b *testing.B) {
			b.SetBytes(int64(size))
			for i := 0; i < b.N; i++ {
				_ = MemchrMasked(haystack, 0xF0, 0x90)
			}
		})

		b.Run(fmt.Sprintf("naive_%d", size), func(b *testing.B) {
			b.SetBytes(int64(size))
			for i := 0; i < b.N; i++ {
				_ = naiveMasked(haystack, 0xF0, 0x90)
			}
		})
	}
}

func BenchmarkMemchr(b *testing.B) {
	impls := append(memchrImpls[:len(memchrImpls):len(memchrImpls)], struct {
		name string
		fn   func([]byte, byte) int
	}{"stdlib", bytes.IndexByte})

	for _, size := range []int{16, 64, 1024, 65536, 1 << 20} {
		haystack := bytes.Repeat([]byte{'a'}, size)
		for _, impl := range impls {
			b.Run(fmt.Sprintf("%s_miss_%d", impl.name, size), func(b *testing.B) {
				b.SetBytes(int64(size))
				for i := 0; i < b.N; i++ {
					_ = impl.fn(haystack, 'X')
				}
			})
		}
	}
}

func FuzzMemchr(f *testing.F) {
	f.Add([]byte("hello world"), byte('o'))
	f.Add([]byte(""), byte('x'))
	f.Add(make([]byte, 1000), byte(0))
	f.Add([]byte{0, 1, 2, 3, 255}, byte(255))

	f.Fuzz(func(t *testing.T, haystack []byte, needle byte) {
		checkMemchr(t, haystack, needle)
	})
}

// FuzzMemchrMasked compares MemchrMasked with the byte loop
func FuzzMemchrMasked(f *testing.F) {
	f.Add([]byte("hello world"), byte(0xF0), byte(0x60))
	f.Add([]byte{}, byte(0x0F), byte(0x01))
	f.Add(make([]byte, 100), byte(0x0F), byte(0x00))

	f.Fuzz(func(t *testing.T, haystack []byte, mask, value byte) {
		value &= mask
		got := MemchrMasked(haystack, mask, value)
		want := naiveMasked(haystack, mask, value)
		if got != want {
			t.Errorf("MemchrMasked(%x, %#02x, %#02x) = %d, want %d", haystack, mask, value, got, want)
		}
	})
}
