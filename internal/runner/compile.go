package runner

import "github.com/jcorbin/sbrain/internal/sbrain"

// Tapes is a compiled program tape and its initial data tape.
type Tapes struct {
	Program sbrain.Tape
	Data    sbrain.Tape
}

// Compile turns source text into tapes; name only serves to locate errors.
func Compile(name, source string) (Tapes, error) {
	prog, data, err := sbrain.SourceToTapes(name, source)
	if err != nil {
		return Tapes{}, CompileFault.Wrap(err, "couldn't compile %v", name)
	}
	return Tapes{Program: prog, Data: data}, nil
}
