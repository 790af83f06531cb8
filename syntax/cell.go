// Package syntax parses byte patterns into cell sequences.
//
// A pattern is a sequence of cells. Each cell describes one byte of a match
// window as a (mask, value) pair: a haystack byte b satisfies the cell when
// b&Mask == Value. Four kinds of cells exist:
//   - Exact ("4D"): mask 0xFF, the byte must be equal
//   - HighNibble ("4?"): mask 0xF0, only the high nibble is fixed
//   - LowNibble ("?D"): mask 0x0F, only the low nibble is fixed
//   - Any ("??"): mask 0x00, every byte matches
//
// Patterns come either from raw bytes (FromBytes, all cells exact) or from
// hex text (Parse), where spaces are ignored and every two characters form
// one cell:
//
//	p, err := syntax.Parse("4D 5A ?? 00 5?")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(p.Len())    // 5
//	fmt.Println(p.String()) // 4D 5A ?? 00 5?
package syntax

// Kind classifies a cell by which nibbles of the byte it fixes.
type Kind uint8

const (
	// Any matches every byte.
	Any Kind = iota
	// HighNibble fixes the upper four bits.
	HighNibble
	// LowNibble fixes the lower four bits.
	LowNibble
	// Exact fixes the whole byte.
	Exact
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Any:
		return "Any"
	case HighNibble:
		return "HighNibble"
	case LowNibble:
		return "LowNibble"
	case Exact:
		return "Exact"
	default:
		return "Kind(?)"
	}
}

// Masks for each cell kind.
const (
	MaskAny  byte = 0x00
	MaskHigh byte = 0xF0
	MaskLow  byte = 0x0F
	MaskByte byte = 0xFF
)

// Cell is one byte position of a pattern.
//
// Invariant: Value&^Mask == 0, so a cell never requires bits it does not fix.
type Cell struct {
	Mask  byte
	Value byte
}

// ExactCell returns a cell that matches only b.
func ExactCell(b byte) Cell {
	return Cell{Mask: MaskByte, Value: b}
}

// HighCell returns a cell whose high nibble must equal hi (0..15).
func HighCell(hi byte) Cell {
	return Cell{Mask: MaskHigh, Value: (hi & 0x0F) << 4}
}

// LowCell returns a cell whose low nibble must equal lo (0..15).
func LowCell(lo byte) Cell {
	return Cell{Mask: MaskLow, Value: lo & 0x0F}
}

// AnyCell returns a cell that matches every byte.
func AnyCell() Cell {
	return Cell{}
}

// Kind reports the cell kind derived from its mask.
func (c Cell) Kind() Kind {
	switch c.Mask {
	case MaskByte:
		return Exact
	case MaskHigh:
		return HighNibble
	case MaskLow:
		return LowNibble
	default:
		return Any
	}
}

// Matches reports whether b satisfies the cell.
//
//go:inline
func (c Cell) Matches(b byte) bool {
	return b&c.Mask == c.Value
}

// Cardinality returns how many distinct byte values satisfy the cell:
// 1 for Exact, 16 for either nibble kind, 256 for Any.
func (c Cell) Cardinality() int {
	switch c.Kind() {
	case Exact:
		return 1
	case HighNibble, LowNibble:
		return 16
	default:
		return 256
	}
}

const hexDigits = "0123456789ABCDEF"

// String renders the cell as two pattern characters, e.g. "4D", "4?", "?D", "??".
func (c Cell) String() string {
	var buf [2]byte
	return string(c.appendTo(buf[:0]))
}

func (c Cell) appendTo(dst []byte) []byte {
	hi, lo := byte('?'), byte('?')
	if c.Mask&MaskHigh != 0 {
		hi = hexDigits[c.Value>>4]
	}
	if c.Mask&MaskLow != 0 {
		lo = hexDigits[c.Value&0x0F]
	}
	return append(dst, hi, lo)
}
