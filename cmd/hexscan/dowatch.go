package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/coregx/hexscan"
)

type watchOptions struct {
	pattern string
	paths   []string
	config  strategyFlags
}

func doWatch(w io.Writer, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return runWatch(ctx, w, logger, watchOptions{
		pattern: *watchArgs.pattern,
		paths:   *watchArgs.paths,
		config: strategyFlags{
			noPrefilter: *appArgs.noPrefilter,
			noMemchr:    *appArgs.noMemchr,
		},
	}, nil)
}

// runWatch rescans every file that is created or written under the watched
// paths until ctx is done. ready, if non-nil, is closed once all paths are
// being watched.
func runWatch(ctx context.Context, w io.Writer, logger *slog.Logger, opts watchOptions, ready chan<- struct{}) error {
	p, err := compilePattern(opts.pattern, opts.config)
	if err != nil {
		return err
	}
	defer p.Release()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating watcher")
	}
	defer watcher.Close()

	for _, path := range opts.paths {
		if err := watcher.Add(path); err != nil {
			return errors.Wrapf(err, "watching %s", path)
		}
		logger.Debug("watching", "path", path)
	}
	if ready != nil {
		close(ready)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if err := scanChanged(w, logger, p, ev.Name); err != nil {
				logger.Warn("rescan failed", "file", ev.Name, "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}

// scanChanged prints the first match in path. Directories and empty files
// are skipped.
func scanChanged(w io.Writer, logger *slog.Logger, p *hexscan.Pattern, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "stat %s", path)
	}
	if info.IsDir() || info.Size() == 0 {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}
	if len(data) == 0 {
		return nil
	}

	idx, err := p.Index(data)
	if err != nil {
		return errors.Wrapf(err, "searching %s", path)
	}
	logger.Debug("rescanned", "file", path, "size", len(data), "match", idx)
	if idx >= 0 {
		fmt.Fprintf(w, "%s: 0x%08X\n", path, idx)
	}
	return nil
}
