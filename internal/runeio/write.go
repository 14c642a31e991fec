package runeio

import (
	"io"
	"unicode/utf8"
)

// WriteEscapedRune writes a rune to the given writer:
// - line feed and tab are written as is
// - other control runes are written as their mnemonic, e.g. "<NUL>"
// - all other runes are written in utf8 form
func WriteEscapedRune(w io.Writer, r rune) (n int, err error) {
	if r != '\n' && r != '\t' {
		if name := ControlName(r, false); name != "" {
			return io.WriteString(w, name)
		}
	}
	if r < utf8.RuneSelf {
		if bw, ok := w.(io.ByteWriter); ok {
			return 1, bw.WriteByte(byte(r))
		}
		return w.Write([]byte{byte(r)})
	}
	var buf [utf8.UTFMax]byte
	return w.Write(buf[:utf8.EncodeRune(buf[:], r)])
}

// WriteEscapedString writes a string using WriteEscapedRune for each rune.
func WriteEscapedString(w io.Writer, s string) (n int, err error) {
	for _, r := range s {
		m, err := WriteEscapedRune(w, r)
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
