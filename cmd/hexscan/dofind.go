package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"

	"github.com/coregx/hexscan"
)

type findOptions struct {
	pattern string
	files   []string
	all     bool
	limit   int
	offset  int
	config  strategyFlags
}

// strategyFlags carries the global strategy switches.
type strategyFlags struct {
	noPrefilter bool
	noMemchr    bool
}

func doFind(w io.Writer, logger *slog.Logger) error {
	return runFind(w, logger, findOptions{
		pattern: *findArgs.pattern,
		files:   *findArgs.files,
		all:     *findArgs.all,
		limit:   *findArgs.limit,
		offset:  *findArgs.offset,
		config: strategyFlags{
			noPrefilter: *appArgs.noPrefilter,
			noMemchr:    *appArgs.noMemchr,
		},
	})
}

func compilePattern(text string, c strategyFlags) (*hexscan.Pattern, error) {
	config := hexscan.DefaultConfig()
	config.EnablePrefilter = !c.noPrefilter
	config.EnableMemchr = !c.noMemchr

	p, err := hexscan.CompileWithConfig(text, config)
	if err != nil {
		return nil, errors.Wrap(err, "compiling pattern")
	}
	return p, nil
}

func runFind(w io.Writer, logger *slog.Logger, opts findOptions) error {
	if opts.offset < 0 {
		return errors.Errorf("negative offset %d", opts.offset)
	}

	p, err := compilePattern(opts.pattern, opts.config)
	if err != nil {
		return err
	}
	defer p.Release()

	logger.Debug("pattern compiled",
		"pattern", p.String(),
		"length", p.Len(),
		"strategy", p.Strategy().String())

	for _, path := range opts.files {
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "reading %s", path)
		}
		logger.Debug("searching file", "file", path, "size", len(data))

		if opts.offset >= len(data) {
			logger.Info("offset past end of file, skipping", "file", path, "size", len(data), "offset", opts.offset)
			continue
		}

		var offsets []int
		if opts.all {
			offsets, err = findAll(p, data, opts.offset, opts.limit)
		} else {
			var idx int
			idx, err = p.IndexFrom(data, opts.offset)
			if idx >= 0 {
				offsets = []int{idx}
			}
		}
		if err != nil {
			return errors.Wrapf(err, "searching %s", path)
		}

		for _, off := range offsets {
			fmt.Fprintf(w, "%s: 0x%08X\n", path, off)
		}
		logger.Debug("file done", "file", path, "matches", len(offsets))
	}

	stats := p.Stats()
	logger.Debug("search stats",
		"horspool", stats.HorspoolSearches,
		"memchr", stats.MemchrSearches,
		"prefilter", stats.PrefilterSearches,
		"prefilter_abandoned", stats.PrefilterAbandoned,
		"prefilter_skipped", stats.PrefilterSkipped)
	return nil
}

// findAll collects overlapping matches at or after offset, at most limit
// of them when limit > 0.
func findAll(p *hexscan.Pattern, data []byte, offset, limit int) ([]int, error) {
	var offsets []int
	for at := offset; at < len(data); {
		idx, err := p.IndexFrom(data, at)
		if err != nil {
			return nil, err
		}
		if idx < 0 {
			break
		}
		offsets = append(offsets, idx)
		if limit > 0 && len(offsets) == limit {
			break
		}
		at = idx + 1
	}
	return offsets, nil
}
