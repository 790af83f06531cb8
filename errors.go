package hexscan

import (
	"errors"
	"fmt"

	"github.com/coregx/hexscan/syntax"
)

// Error kinds. Every error returned by this package matches exactly one of
// the first three with errors.Is, except that an empty byte pattern matches
// both ErrInvalidArgument and ErrInvalidPattern.
var (
	// ErrInvalidArgument reports an empty source buffer or an empty byte
	// pattern.
	ErrInvalidArgument = errors.New("hexscan: invalid argument")

	// ErrOutOfRange reports a start or count outside the source buffer.
	ErrOutOfRange = errors.New("hexscan: out of range")

	// ErrInvalidPattern reports malformed pattern text. It is the same value
	// as syntax.ErrInvalidPattern; the concrete error is a *syntax.Error.
	ErrInvalidPattern = syntax.ErrInvalidPattern

	// ErrReleased reports a search on a Pattern after Release.
	ErrReleased = errors.New("hexscan: pattern released")
)

// checkRange is the validation layer in front of every search: the engine
// itself does no bounds checking.
func checkRange(srcLen, start, count int) error {
	if srcLen == 0 {
		return fmt.Errorf("%w: empty source", ErrInvalidArgument)
	}
	if start < 0 || start >= srcLen {
		return fmt.Errorf("%w: start %d outside [0, %d)", ErrOutOfRange, start, srcLen)
	}
	if count <= 0 || count > srcLen-start {
		return fmt.Errorf("%w: count %d outside [1, %d]", ErrOutOfRange, count, srcLen-start)
	}
	return nil
}

// bytesCompileError tags an empty byte pattern as an invalid argument as
// well. Text patterns keep the parser's error unchanged.
func bytesCompileError(err error) error {
	if errors.Is(err, syntax.ErrEmptyPattern) {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return err
}
