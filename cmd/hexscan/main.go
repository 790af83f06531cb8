// Command hexscan searches files for hex byte patterns with nibble
// wildcards.
//
//	hexscan find "4D 5A ?? 00" a.exe b.dll
//	hexscan find --all --limit 10 "50 4B 03 04" archive.zip
//	hexscan parse "4D 5A ?? 0?"
//	hexscan watch "DE AD ?? EF" ./incoming
//	hexscan info
//
// Logging goes to stderr and is configured with HEXSCAN_LOG_LEVEL
// (debug, info, warn, error) and HEXSCAN_JSON_LOG (1, true or json).
package main

import (
	"fmt"
	"os"

	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app = kingpin.New("hexscan", "Search files for hex byte patterns with nibble wildcards.")

	appArgs = struct {
		noPrefilter *bool
		noMemchr    *bool
	}{
		app.Flag("no-prefilter", "Disable the rare-cell prefilter strategy").Bool(),
		app.Flag("no-memchr", "Disable single-byte search for one-cell patterns").Bool(),
	}

	findCmd  = app.Command("find", "Print the offsets where a pattern occurs in files")
	findArgs = struct {
		all     *bool
		limit   *int
		offset  *int
		pattern *string
		files   *[]string
	}{
		findCmd.Flag("all", "Print every (possibly overlapping) match, not only the first").Short('a').Bool(),
		findCmd.Flag("limit", "Stop after this many matches per file with --all, 0 means no limit").Default("0").Int(),
		findCmd.Flag("offset", "Start searching at this byte offset").Default("0").Int(),
		findCmd.Arg("pattern", "Hex pattern, e.g. \"4D 5A ?? 0?\"").Required().String(),
		findCmd.Arg("files", "Files to search").Required().ExistingFiles(),
	}

	parseCmd  = app.Command("parse", "Print the canonical form and skip table of a pattern")
	parseArgs = struct {
		pattern *string
	}{
		parseCmd.Arg("pattern", "Hex pattern").Required().String(),
	}

	watchCmd  = app.Command("watch", "Rescan files whenever they are created or written")
	watchArgs = struct {
		pattern *string
		paths   *[]string
	}{
		watchCmd.Arg("pattern", "Hex pattern").Required().String(),
		watchCmd.Arg("paths", "Files or directories to watch").Required().Strings(),
	}

	infoCmd = app.Command("info", "Print the CPU features used by byte search")
)

func main() {
	app.HelpFlag.Short('h')
	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	logger := initLogging(os.Stderr)

	var err error
	switch cmd {
	case findCmd.FullCommand():
		err = doFind(os.Stdout, logger)
	case parseCmd.FullCommand():
		err = doParse(os.Stdout)
	case watchCmd.FullCommand():
		err = doWatch(os.Stdout, logger)
	case infoCmd.FullCommand():
		err = doInfo(os.Stdout)
	}

	if err != nil {
		logger.Error("command failed", "command", cmd, "error", err)
		fmt.Fprintf(os.Stderr, "hexscan: %v\n", err)
		os.Exit(1)
	}
}
