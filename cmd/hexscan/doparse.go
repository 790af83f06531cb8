package main

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/pkg/errors"

	"github.com/coregx/hexscan/horspool"
	"github.com/coregx/hexscan/meta"
	"github.com/coregx/hexscan/simd"
	"github.com/coregx/hexscan/syntax"
)

func doParse(w io.Writer) error {
	return runParse(w, *parseArgs.pattern, strategyFlags{
		noPrefilter: *appArgs.noPrefilter,
		noMemchr:    *appArgs.noMemchr,
	})
}

func runParse(w io.Writer, text string, c strategyFlags) error {
	p, err := syntax.Parse(text)
	if err != nil {
		return errors.Wrap(err, "parsing pattern")
	}

	config := meta.DefaultConfig()
	config.EnablePrefilter = !c.noPrefilter
	config.EnableMemchr = !c.noMemchr
	config.Tables = horspool.HeapAllocator{}

	engine, err := meta.CompilePattern(p, config)
	if err != nil {
		return errors.Wrap(err, "compiling pattern")
	}
	defer engine.Release()

	fmt.Fprintf(w, "pattern:  %s\n", p)
	fmt.Fprintf(w, "length:   %d\n", p.Len())
	fmt.Fprintf(w, "fixed:    %d\n", p.FixedCells())
	fmt.Fprintf(w, "strategy: %s\n", engine.Strategy())

	fmt.Fprintln(w, "cells:")
	for i, cell := range p.Cells() {
		fmt.Fprintf(w, "  %2d  %s  mask=%02X value=%02X  %s (%d bytes)\n",
			i, cell, cell.Mask, cell.Value, cell.Kind(), cell.Cardinality())
	}

	s := engine.Searcher()
	fmt.Fprintf(w, "skip table: default %d, max %d\n", p.Len(), s.MaxShift())
	writeShifts(w, s)
	return nil
}

// writeShifts prints every byte whose shift differs from the pattern
// length, grouped by shift.
func writeShifts(w io.Writer, s *horspool.Searcher) {
	byShift := make(map[int][]string)
	for b := 0; b < horspool.TableSize; b++ {
		shift := s.Shift(byte(b))
		if shift == s.Len() {
			continue
		}
		byShift[shift] = append(byShift[shift], fmt.Sprintf("%02X", b))
	}
	for shift := 0; shift < s.Len(); shift++ {
		slots := byShift[shift]
		if len(slots) == 0 {
			continue
		}
		if len(slots) == horspool.TableSize {
			fmt.Fprintf(w, "  %2d  all bytes\n", shift)
			continue
		}
		fmt.Fprintf(w, "  %2d  %s\n", shift, strings.Join(slots, " "))
	}
}

func doInfo(w io.Writer) error {
	fmt.Fprintf(w, "arch:     %s\n", runtime.GOARCH)
	features := simd.Features()
	if len(features) == 0 {
		fmt.Fprintln(w, "features: none")
	} else {
		fmt.Fprintf(w, "features: %s\n", strings.Join(features, " "))
	}
	return nil
}
