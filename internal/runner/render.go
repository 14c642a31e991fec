package runner

import (
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/sbrain/internal/flushio"
	"github.com/jcorbin/sbrain/internal/runeio"
	"github.com/jcorbin/sbrain/internal/sbrain"
)

// Mode selects how an output tape is rendered.
type Mode uint8

// Render modes.
const (
	// Raw renders the tape as a literal listing like "[72, 105]".
	Raw Mode = iota

	// Text renders each cell as the character it encodes.
	Text

	// Escaped is Text with control characters spelled out by name.
	Escaped
)

func (mode Mode) String() string {
	switch mode {
	case Raw:
		return "raw"
	case Text:
		return "text"
	case Escaped:
		return "escaped"
	}
	return fmt.Sprintf("Mode(%d)", uint8(mode))
}

// Render writes tape to w as a single line in the given mode.
func Render(w io.Writer, tape sbrain.Tape, mode Mode) error {
	var line string
	switch mode {
	case Raw:
		line = tape.String()
	case Text:
		line = sbrain.TapeToString(tape)
	case Escaped:
		var sb strings.Builder
		if _, err := runeio.WriteEscapedString(&sb, sbrain.TapeToString(tape)); err != nil {
			return InternalFault.Wrap(err, "couldn't escape output")
		}
		line = sb.String()
	default:
		return InternalFault.New("invalid render mode %v", mode)
	}
	if err := flushio.WriteLine(flushio.NewWriteFlusher(w), line); err != nil {
		return FileAccessFault.Wrap(err, "couldn't write output")
	}
	return nil
}
