package syntax

// Pattern is an immutable, non-empty sequence of cells.
type Pattern struct {
	cells []Cell
	exact bool
}

// Parse parses hex pattern text.
//
// ASCII spaces are removed first. The remaining characters must be hex
// digits (either case) or '?', and their count must be even and non-zero.
// Each pair forms one cell:
//
//	"4D" exact byte 0x4D
//	"4?" high nibble 4, low nibble free
//	"?D" low nibble D, high nibble free
//	"??" any byte
//
// Cells are fixed at two characters, so "A1 ? C3" is rejected (five
// characters remain once spaces are gone) while "A1 ?? C3" is accepted.
func Parse(text string) (*Pattern, error) {
	n := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == ' ' {
			continue
		}
		if c != '?' && unhex(c) < 0 {
			return nil, &Error{Code: ErrInvalidChar, Pattern: text, Offset: i}
		}
		n++
	}
	if n == 0 {
		return nil, &Error{Code: ErrEmptyPattern, Pattern: text, Offset: -1}
	}
	if n%2 != 0 {
		return nil, &Error{Code: ErrOddLength, Pattern: text, Offset: -1}
	}

	cells := make([]Cell, 0, n/2)
	exact := true
	var hi byte
	half := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == ' ' {
			continue
		}
		if !half {
			hi = c
			half = true
			continue
		}
		half = false
		cell := makeCell(hi, c)
		if cell.Mask != MaskByte {
			exact = false
		}
		cells = append(cells, cell)
	}
	return &Pattern{cells: cells, exact: exact}, nil
}

// MustParse is like Parse but panics if the text cannot be parsed.
func MustParse(text string) *Pattern {
	p, err := Parse(text)
	if err != nil {
		panic("syntax: Parse(`" + text + "`): " + err.Error())
	}
	return p
}

// FromBytes returns an all-exact pattern for b. The bytes are copied.
func FromBytes(b []byte) (*Pattern, error) {
	if len(b) == 0 {
		return nil, &Error{Code: ErrEmptyPattern, Offset: -1}
	}
	cells := make([]Cell, len(b))
	for i, v := range b {
		cells[i] = ExactCell(v)
	}
	return &Pattern{cells: cells, exact: true}, nil
}

// New builds a pattern from explicit cells. The cells are copied.
func New(cells ...Cell) (*Pattern, error) {
	if len(cells) == 0 {
		return nil, &Error{Code: ErrEmptyPattern, Offset: -1}
	}
	exact := true
	for _, c := range cells {
		if c.Value&^c.Mask != 0 {
			return nil, &Error{Code: ErrInvalidCell, Offset: -1}
		}
		switch c.Mask {
		case MaskAny, MaskHigh, MaskLow:
			exact = false
		case MaskByte:
		default:
			return nil, &Error{Code: ErrInvalidCell, Offset: -1}
		}
	}
	return &Pattern{cells: append([]Cell(nil), cells...), exact: exact}, nil
}

// makeCell assumes both characters were validated.
func makeCell(hi, lo byte) Cell {
	switch {
	case hi == '?' && lo == '?':
		return AnyCell()
	case hi == '?':
		return LowCell(byte(unhex(lo)))
	case lo == '?':
		return HighCell(byte(unhex(hi)))
	default:
		return ExactCell(byte(unhex(hi)<<4 | unhex(lo)))
	}
}

func unhex(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c - 'a' + 10)
	case 'A' <= c && c <= 'F':
		return int(c - 'A' + 10)
	}
	return -1
}

// Len returns the number of cells, which is also the match length in bytes.
func (p *Pattern) Len() int {
	return len(p.cells)
}

// Cells returns the cell sequence. The slice must not be modified.
func (p *Pattern) Cells() []Cell {
	return p.cells
}

// Cell returns the i-th cell.
func (p *Pattern) Cell(i int) Cell {
	return p.cells[i]
}

// IsExact reports whether every cell fixes a whole byte.
func (p *Pattern) IsExact() bool {
	return p.exact
}

// Bytes returns the cell values. For an exact pattern this is the literal
// byte sequence it matches; wildcard bits are reported as zero.
func (p *Pattern) Bytes() []byte {
	b := make([]byte, len(p.cells))
	for i, c := range p.cells {
		b[i] = c.Value
	}
	return b
}

// FixedCells counts cells that are not Any.
func (p *Pattern) FixedCells() int {
	n := 0
	for _, c := range p.cells {
		if c.Mask != MaskAny {
			n++
		}
	}
	return n
}

// String renders the canonical text form: uppercase hex, cells separated by
// one space. Parse(p.String()) yields an equal pattern.
func (p *Pattern) String() string {
	if len(p.cells) == 0 {
		return ""
	}
	buf := make([]byte, 0, len(p.cells)*3-1)
	for i, c := range p.cells {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = c.appendTo(buf)
	}
	return string(buf)
}
