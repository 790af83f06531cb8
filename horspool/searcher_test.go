package horspool

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/coregx/hexscan/syntax"
)

var scenarioSrc = []byte{0, 1, 2, 3, 4, 5, 6, 0x17}

func compileText(t testing.TB, text string) *Searcher {
	t.Helper()
	p, err := syntax.Parse(text)
	if err != nil {
		t.Fatalf("Parse(%q): %v", text, err)
	}
	return Compile(p, nil)
}

func compileBytes(t testing.TB, b []byte) *Searcher {
	t.Helper()
	p, err := syntax.FromBytes(b)
	if err != nil {
		t.Fatalf("FromBytes(%x): %v", b, err)
	}
	return Compile(p, nil)
}

// naiveFind is the reference: try every window start in order.
func naiveFind(src []byte, cells []syntax.Cell, start, count int) int {
	for idx := start; idx+len(cells) <= start+count; idx++ {
		ok := true
		for i, c := range cells {
			if !c.Matches(src[idx+i]) {
				ok = false
				break
			}
		}
		if ok {
			return idx
		}
	}
	return -1
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		literal []byte
		want    int
	}{
		{"bytes_found", "", []byte{1, 2, 3}, 1},
		{"bytes_not_found", "", []byte{8, 9, 10}, -1},
		{"wild_middle", "01 02 ?? 04", nil, 1},
		{"wild_middle_mismatch", "01 02 ?? 03", nil, -1},
		{"low_nibble", "05 06 ?7", nil, 5},
		{"high_nibble", "05 06 1?", nil, 5},
		{"low_nibble_mismatch", "05 06 ?8", nil, -1},
		{"high_nibble_mismatch", "05 06 2?", nil, -1},
		{"all_wild_fits", "?? ?? ?? ?? ?? ?? ?? ??", nil, 0},
		{"all_wild_too_long", "?? ?? ?? ?? ?? ?? ?? ?? ??", nil, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s *Searcher
			if tt.literal != nil {
				s = compileBytes(t, tt.literal)
			} else {
				s = compileText(t, tt.text)
			}
			if got := s.Find(scenarioSrc, 0, len(scenarioSrc)); got != tt.want {
				t.Errorf("Find = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBuildTableExact(t *testing.T) {
	s := compileBytes(t, []byte("abcab"))
	want := map[byte]int{'a': 1, 'b': 0, 'c': 2}
	for v := 0; v < TableSize; v++ {
		exp, ok := want[byte(v)]
		if !ok {
			exp = 5
		}
		if got := s.Shift(byte(v)); got != exp {
			t.Errorf("Shift(%#02x) = %d, want %d", v, got, exp)
		}
	}
}

func TestBuildTableWildcards(t *testing.T) {
	// cell distances from the end: 3, 2, 1, 0
	s := compileText(t, "?? 4? ?7 AA")

	for v := 0; v < TableSize; v++ {
		b := byte(v)
		var want int
		switch {
		case b == 0xAA:
			want = 0
		case b&0x0F == 0x07:
			want = 1
		case b&0xF0 == 0x40:
			want = 2
		default:
			want = 3 // the leading ?? reaches every slot
		}
		if got := s.Shift(b); got != want {
			t.Errorf("Shift(%#02x) = %d, want %d", v, got, want)
		}
	}
	if s.MaxShift() != 3 {
		t.Errorf("MaxShift() = %d, want 3", s.MaxShift())
	}
}

func TestBuildTableLaterCellsWin(t *testing.T) {
	// 0x41 is accepted by "4?" (distance 2) and by "41" (distance 0).
	s := compileText(t, "4? 00 41")
	if got := s.Shift(0x41); got != 0 {
		t.Errorf("Shift(0x41) = %d, want 0", got)
	}
	if got := s.Shift(0x42); got != 2 {
		t.Errorf("Shift(0x42) = %d, want 2", got)
	}
	if got := s.Shift(0x00); got != 1 {
		t.Errorf("Shift(0x00) = %d, want 1", got)
	}
	if got := s.Shift(0x50); got != 3 {
		t.Errorf("Shift(0x50) = %d, want 3", got)
	}
}

func TestFindRange(t *testing.T) {
	src := []byte("xxABCxxABCxx")
	s := compileBytes(t, []byte("ABC"))

	tests := []struct {
		start, count int
		want         int
	}{
		{0, len(src), 2},
		{3, len(src) - 3, 7},
		{2, 3, 2},
		{2, 2, -1}, // window shorter than pattern
		{0, 4, -1}, // match straddles the end of the range
		{8, 4, -1}, // match straddles the start of the range
		{7, 3, 7},
	}
	for _, tt := range tests {
		// Cap the slice at the range end so a read past it panics.
		bounded := src[: tt.start+tt.count : tt.start+tt.count]
		if got := s.Find(bounded, tt.start, tt.count); got != tt.want {
			t.Errorf("Find(start=%d, count=%d) = %d, want %d", tt.start, tt.count, got, tt.want)
		}
	}
}

func TestFindDoesNotReadPastRange(t *testing.T) {
	// "AB" with "A" as the last byte of the range shifts by one and would
	// verify a window ending outside the range.
	s := compileBytes(t, []byte("AB"))
	src := []byte("xA")
	if got := s.Find(src[:2:2], 0, 2); got != -1 {
		t.Errorf("Find = %d, want -1", got)
	}

	w := compileText(t, "41 ?? 4?")
	src = []byte("zzA")
	if got := w.Find(src[:3:3], 0, 3); got != -1 {
		t.Errorf("Find = %d, want -1", got)
	}
}

func TestFindAgainstNaive(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	alphabet := []byte{0x00, 0x01, 0x10, 0x11, 0x41, 0x4F, 0xF1}

	for iter := 0; iter < 2000; iter++ {
		src := make([]byte, 1+rng.Intn(64))
		for i := range src {
			src[i] = alphabet[rng.Intn(len(alphabet))]
		}
		cells := make([]syntax.Cell, 1+rng.Intn(6))
		for i := range cells {
			b := alphabet[rng.Intn(len(alphabet))]
			switch rng.Intn(4) {
			case 0:
				cells[i] = syntax.AnyCell()
			case 1:
				cells[i] = syntax.HighCell(b >> 4)
			case 2:
				cells[i] = syntax.LowCell(b & 0x0F)
			default:
				cells[i] = syntax.ExactCell(b)
			}
		}
		p, err := syntax.New(cells...)
		if err != nil {
			t.Fatal(err)
		}
		s := Compile(p, nil)

		start := rng.Intn(len(src))
		count := 1 + rng.Intn(len(src)-start)
		got := s.Find(src, start, count)
		want := naiveFind(src, cells, start, count)
		if got != want {
			t.Fatalf("pattern %v in %x [%d,+%d): got %d, want %d", p, src, start, count, got, want)
		}
	}
}

func TestExactMatchesBytesIndex(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for iter := 0; iter < 1000; iter++ {
		src := make([]byte, 1+rng.Intn(200))
		for i := range src {
			src[i] = byte('a' + rng.Intn(3))
		}
		needle := make([]byte, 1+rng.Intn(5))
		for i := range needle {
			needle[i] = byte('a' + rng.Intn(3))
		}
		s := compileBytes(t, needle)
		if got, want := s.Find(src, 0, len(src)), bytes.Index(src, needle); got != want {
			t.Fatalf("Find(%q, %q) = %d, bytes.Index = %d", src, needle, got, want)
		}
	}
}

// Replacing cells with wildcards never loses a match.
func TestWildcardsNeverLoseMatches(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for iter := 0; iter < 500; iter++ {
		src := make([]byte, 32)
		rng.Read(src)
		off := rng.Intn(28)
		needle := append([]byte(nil), src[off:off+4]...)

		cells := make([]syntax.Cell, len(needle))
		for i, b := range needle {
			switch rng.Intn(4) {
			case 0:
				cells[i] = syntax.AnyCell()
			case 1:
				cells[i] = syntax.HighCell(b >> 4)
			case 2:
				cells[i] = syntax.LowCell(b & 0x0F)
			default:
				cells[i] = syntax.ExactCell(b)
			}
		}
		p, _ := syntax.New(cells...)
		exact := compileBytes(t, needle)
		wild := Compile(p, nil)

		e := exact.Find(src, 0, len(src))
		w := wild.Find(src, 0, len(src))
		if e < 0 {
			t.Fatalf("literal %x not found in its own source", needle)
		}
		if w < 0 || w > e {
			t.Fatalf("wildcard %v found %d, literal found %d", p, w, e)
		}
	}
}

func TestCompileIsDeterministic(t *testing.T) {
	a := compileText(t, "4? ?? ?1 FF")
	b := compileText(t, "4? ?? ?1 FF")
	if *a.Table() != *b.Table() {
		t.Fatal("two compilations produced different tables")
	}
	src := []byte("\x00\x40\x99\x31\xFF\x4A\x00\x01\xFF")
	if a.Find(src, 0, len(src)) != b.Find(src, 0, len(src)) {
		t.Fatal("two compilations produced different results")
	}
}

type countingAllocator struct {
	acquired, released int
}

func (a *countingAllocator) Acquire() *Table {
	a.acquired++
	return HeapAllocator{}.Acquire()
}

func (a *countingAllocator) Release(*Table) {
	a.released++
}

func TestRelease(t *testing.T) {
	alloc := &countingAllocator{}
	s := Compile(syntax.MustParse("01 02"), alloc)
	if s.Released() {
		t.Fatal("Released() = true before Release")
	}
	s.Release()
	s.Release()
	if !s.Released() {
		t.Fatal("Released() = false after Release")
	}
	if alloc.acquired != 1 || alloc.released != 1 {
		t.Errorf("acquired=%d released=%d, want 1 and 1", alloc.acquired, alloc.released)
	}
}

func TestHeapAllocatorSentinel(t *testing.T) {
	tbl := HeapAllocator{}.Acquire()
	for i, v := range tbl {
		if v != Sentinel {
			t.Fatalf("slot %d = %d, want Sentinel", i, v)
		}
	}
}
