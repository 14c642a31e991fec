package sbrain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

type sourceFile struct {
	Ops  []*opToken   `parser:"@@*"`
	Data *dataSection `parser:"( '#' @@ )?"`
}

type opToken struct {
	Pos lexer.Position

	Sym string `parser:"@Op"`
}

type dataSection struct {
	Cells []*numeral `parser:"( @@ ','? )*"`
}

type numeral struct {
	Pos lexer.Position

	Text string `parser:"@Number"`
}

var (
	sourceLexer = lexer.MustSimple([]lexer.Rule{
		{Name: "comment", Pattern: `;[^\n]*`, Action: nil},
		{Name: "whitespace", Pattern: `\s+`, Action: nil},

		{Name: "Number", Pattern: `0[xX][0-9a-fA-F_]+|0[oO][0-7_]+|0[bB][01_]+|[0-9]+`, Action: nil},
		{Name: "Sep", Pattern: `#`, Action: nil},
		{Name: "Op", Pattern: `[<>\-+\[\].,{}()z!?s|&*~adm/%lr=gjJ@]`, Action: nil},
	})
	sourceParser = participle.MustBuild(&sourceFile{},
		participle.Lexer(sourceLexer))
)

// CompileError describes source text that cannot be turned into tapes.
type CompileError struct {
	Pos string // like "name:line:col", may be empty
	Err error
}

func (err *CompileError) Error() string {
	if err.Pos == "" {
		return err.Err.Error()
	}
	return fmt.Sprintf("%v: %v", err.Pos, err.Err)
}

func (err *CompileError) Unwrap() error { return err.Err }

// SourceToTapes compiles source text into a program tape and a data tape.
// The name is only used to locate errors. Numerals must fit in 32 bits;
// narrower machines reject wider values when the data tape is loaded.
func SourceToTapes(name, src string) (program, data Tape, err error) {
	var ast sourceFile
	if err := sourceParser.ParseString(name, src, &ast); err != nil {
		return nil, nil, &CompileError{Err: err}
	}

	program = make(Tape, 0, len(ast.Ops))
	for _, tok := range ast.Ops {
		code := -1
		if len(tok.Sym) == 1 {
			code = strings.IndexByte(opSymbols, tok.Sym[0])
		}
		if code < 0 {
			return nil, nil, &CompileError{
				Pos: tok.Pos.String(),
				Err: fmt.Errorf("invalid instruction %q", tok.Sym),
			}
		}
		program = append(program, Cell(code))
	}

	data = Tape{}
	if ast.Data != nil {
		data = make(Tape, 0, len(ast.Data.Cells))
		for _, num := range ast.Data.Cells {
			c, err := parseNumeral(num.Text)
			if err != nil {
				return nil, nil, &CompileError{
					Pos: num.Pos.String(),
					Err: fmt.Errorf("invalid numeral %q: %w", num.Text, err),
				}
			}
			data = append(data, c)
		}
	}

	return program, data, nil
}

func parseNumeral(text string) (Cell, error) {
	base := 10
	if len(text) > 1 && text[0] == '0' {
		switch text[1] {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			base = 0
		}
	}
	n, err := strconv.ParseUint(text, base, 32)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok {
			err = ne.Err
		}
		return 0, err
	}
	return Cell(n), nil
}
