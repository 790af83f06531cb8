package syntax

import (
	"errors"
	"strconv"
)

// ErrInvalidPattern is matched by every error returned from this package:
//
//	if errors.Is(err, syntax.ErrInvalidPattern) { ... }
var ErrInvalidPattern = errors.New("invalid pattern")

// ErrorCode describes why a pattern was rejected.
type ErrorCode string

const (
	// ErrEmptyPattern: no cells remain after spaces are removed.
	ErrEmptyPattern ErrorCode = "empty pattern"
	// ErrOddLength: the character count after space removal is odd.
	ErrOddLength ErrorCode = "odd number of pattern characters"
	// ErrInvalidChar: a character other than a hex digit, '?' or space.
	ErrInvalidChar ErrorCode = "invalid pattern character"
	// ErrInvalidCell: a cell requires bits outside its mask.
	ErrInvalidCell ErrorCode = "invalid cell"
)

func (e ErrorCode) Error() string {
	return string(e)
}

// Error describes a failure to parse a pattern and the text involved.
type Error struct {
	Code    ErrorCode
	Pattern string // the text as given by the caller
	Offset  int    // byte offset of the offending character, or -1
}

func (e *Error) Error() string {
	msg := "error parsing pattern: " + e.Code.Error()
	if e.Offset >= 0 && e.Offset < len(e.Pattern) {
		msg += " " + quoteChar(e.Pattern[e.Offset]) + " at offset " + strconv.Itoa(e.Offset)
	}
	return msg + ": `" + e.Pattern + "`"
}

// Unwrap exposes both the specific code and ErrInvalidPattern to errors.Is.
func (e *Error) Unwrap() []error {
	return []error{e.Code, ErrInvalidPattern}
}

func quoteChar(c byte) string {
	if c < 0x20 || c >= 0x7F {
		return "0x" + string([]byte{hexDigits[c>>4], hexDigits[c&0x0F]})
	}
	return "'" + string(c) + "'"
}
