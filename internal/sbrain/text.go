package sbrain

import (
	"strings"
	"unicode/utf8"
)

// TapeToString decodes a tape as text, one code point per cell. Cells that
// are not valid Unicode scalar values decode as utf8.RuneError.
func TapeToString(tape Tape) string {
	var sb strings.Builder
	sb.Grow(len(tape))
	for _, c := range tape {
		sb.WriteRune(CellRune(c))
	}
	return sb.String()
}

// CellRune decodes a single cell, substituting utf8.RuneError for cells that
// are not valid code points.
func CellRune(c Cell) rune {
	if c > utf8.MaxRune {
		return utf8.RuneError
	}
	if r := rune(c); utf8.ValidRune(r) {
		return r
	}
	return utf8.RuneError
}
