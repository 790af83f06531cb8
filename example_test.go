package hexscan_test

import (
	"errors"
	"fmt"

	"github.com/coregx/hexscan"
)

func ExampleCompile() {
	p, err := hexscan.Compile("4D 5A ?? 00")
	if err != nil {
		panic(err)
	}
	defer p.Release()

	idx, err := p.Index([]byte{0xFF, 0x4D, 0x5A, 0x90, 0x00})
	fmt.Println(idx, err)
	// Output: 1 <nil>
}

func ExampleMustCompile() {
	p := hexscan.MustCompile("0? 1?")
	defer p.Release()

	fmt.Println(p.String(), p.Len())
	// Output: 0? 1? 2
}

func ExamplePattern_IndexRange() {
	p := hexscan.MustCompile("04 05")
	defer p.Release()

	src := []byte{0, 1, 2, 3, 4, 5, 6, 0x17}
	a, _ := p.IndexRange(src, 2, 4)
	b, _ := p.IndexRange(src, 2, 3)
	fmt.Println(a, b)
	// Output: 4 -1
}

func ExamplePattern_IndexAll() {
	p := hexscan.MustCompile("AA ??")
	defer p.Release()

	idx, _ := p.IndexAll([]byte{0xAA, 0xAA, 0xAA}, -1)
	fmt.Println(idx)
	// Output: [0 1]
}

func ExampleIndexString() {
	idx, err := hexscan.IndexString([]byte("PK\x03\x04rest"), "50 4B 03 04")
	fmt.Println(idx, err)
	// Output: 0 <nil>
}

func ExampleIndexRange() {
	_, err := hexscan.IndexRange([]byte{1, 2, 3}, []byte{2}, 2, 5)
	fmt.Println(errors.Is(err, hexscan.ErrOutOfRange))
	// Output: true
}
