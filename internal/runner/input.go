package runner

import "github.com/jcorbin/sbrain/internal/sbrain"

// Input is a source of input cells for a machine with the given cell width.
type Input interface {
	Cells(width uint) (sbrain.Tape, error)
}

// BytesInput adapts raw bytes, such as an input file, one cell per byte.
type BytesInput []byte

// ValuesInput adapts numeric values, such as a configuration list.
type ValuesInput []uint64

// Cells converts each byte into a cell.
func (in BytesInput) Cells(width uint) (sbrain.Tape, error) {
	tape := make(sbrain.Tape, len(in))
	for i, b := range in {
		if !fits(uint64(b), width) {
			return nil, ConfigurationFault.New("input byte @%v value %v does not fit in %v bit cells", i, b, width)
		}
		tape[i] = sbrain.Cell(b)
	}
	return tape, nil
}

// Cells converts each value into a cell.
func (in ValuesInput) Cells(width uint) (sbrain.Tape, error) {
	tape := make(sbrain.Tape, len(in))
	for i, v := range in {
		if !fits(v, width) {
			return nil, ConfigurationFault.New("input value @%v value %v does not fit in %v bit cells", i, v, width)
		}
		tape[i] = sbrain.Cell(v)
	}
	return tape, nil
}

func fits(v uint64, width uint) bool {
	return width >= 64 || v>>width == 0
}
