package sbrain

import (
	"fmt"
	"strings"

	"github.com/jcorbin/sbrain/internal/mem"
)

// Cell is the machine's unit of storage; only the low Width() bits are used.
type Cell = uint32

// Tape is an ordered sequence of cells.
type Tape []Cell

// String formats the tape as a literal listing like "[1, 2, 3]".
func (t Tape) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, c := range t {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprint(&sb, c)
	}
	sb.WriteByte(']')
	return sb.String()
}

const (
	// DefaultWidth is the cell width, in bits, used unless WithCellWidth is given.
	DefaultWidth = 32

	// MaxWidth is the widest supported cell.
	MaxWidth = 32

	// DefaultCapacity is the tape length used unless WithCapacity is given.
	DefaultCapacity = 65536
)

// CheckWidth returns an error unless bits is a supported cell width.
func CheckWidth(bits uint) error {
	if bits < 1 || bits > MaxWidth {
		return fmt.Errorf("invalid cell width %v, must be within 1..%v", bits, MaxWidth)
	}
	return nil
}

// CheckCapacity returns an error unless n is a usable tape capacity.
func CheckCapacity(n uint) error {
	if n < 1 {
		return fmt.Errorf("invalid tape capacity %v, must be at least 1", n)
	}
	return nil
}

// Machine is a single SBrain machine instance. It is loaded once, run once,
// and then only queried for output.
type Machine struct {
	logging

	width    uint
	mask     Cell
	capacity uint

	prog  Tape
	jumps []uint // matching bracket addresses, parallel to prog
	data  mem.Cells

	progLoaded bool
	dataLoaded bool
	ran        bool

	pc     uint
	ptr    uint
	reg    Cell
	stack  []Cell
	input  Tape
	output Tape

	cycles uint64
	halted bool
}

// New constructs a machine that will consume the given input queue.
// The queue is copied; cells wider than the machine are masked.
func New(input Tape, opts ...Option) *Machine {
	var m Machine
	m.apply(opts...)
	m.mask = Cell(uint64(1)<<m.width - 1)
	m.data.Limit = m.capacity
	if len(input) > 0 {
		m.input = make(Tape, len(input))
		for i, c := range input {
			m.input[i] = c & m.mask
		}
	}
	return &m
}

// Width returns the cell width in bits.
func (m *Machine) Width() uint { return m.width }

// Capacity returns the maximum length of any tape.
func (m *Machine) Capacity() uint { return m.capacity }

// Loaded returns true once both program and data tapes have been loaded.
func (m *Machine) Loaded() bool { return m.progLoaded && m.dataLoaded }

// Cycles returns the number of instructions executed so far.
func (m *Machine) Cycles() uint64 { return m.cycles }

// Halted returns true if the machine stopped by itself, rather than by
// reaching a cycle bound.
func (m *Machine) Halted() bool { return m.halted }

// Output returns a copy of the output tape.
func (m *Machine) Output() Tape {
	out := make(Tape, len(m.output))
	copy(out, m.output)
	return out
}

// Data returns a copy of the data tape, up to the highest cell ever stored.
func (m *Machine) Data() Tape {
	tape := make(Tape, m.data.Size())
	if err := m.data.LoadInto(0, tape); err != nil {
		panic(err)
	}
	return tape
}

type logging struct {
	logfn func(mess string, args ...interface{})
}

func (log logging) logf(mess string, args ...interface{}) {
	if log.logfn != nil {
		log.logfn(mess, args...)
	}
}
