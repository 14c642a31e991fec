package sbrain

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyLoaded is returned when loading a tape a second time.
	ErrAlreadyLoaded = errors.New("tape already loaded")

	// ErrNotLoaded is returned when running before both tapes are loaded.
	ErrNotLoaded = errors.New("machine not loaded")

	// ErrAlreadyRun is returned when running a machine a second time.
	ErrAlreadyRun = errors.New("machine already run")
)

// TapeKind names one of the two loadable tapes.
type TapeKind uint8

// Loadable tapes.
const (
	ProgramTape TapeKind = iota
	DataTape
)

func (kind TapeKind) String() string {
	switch kind {
	case ProgramTape:
		return "program"
	case DataTape:
		return "data"
	}
	return fmt.Sprintf("TapeKind(%d)", uint8(kind))
}

// Constraint names a rule that a tape must satisfy to be loaded.
type Constraint string

// Load constraints.
const (
	ConstraintCapacity Constraint = "capacity"
	ConstraintWidth    Constraint = "width"
	ConstraintOpcode   Constraint = "opcode"
	ConstraintBrackets Constraint = "brackets"
)

// LoadError describes a tape that violates one of the machine's constraints.
// Index and Value locate the offending cell; for capacity violations Index is
// the tape length.
type LoadError struct {
	Tape       TapeKind
	Constraint Constraint
	Index      int
	Value      Cell
	Limit      uint
}

func (err *LoadError) Error() string {
	switch err.Constraint {
	case ConstraintCapacity:
		return fmt.Sprintf("%v tape length %v exceeds capacity %v", err.Tape, err.Index, err.Limit)
	case ConstraintWidth:
		return fmt.Sprintf("%v tape cell @%v value %v does not fit in %v bits", err.Tape, err.Index, err.Value, err.Limit)
	case ConstraintOpcode:
		return fmt.Sprintf("%v tape cell @%v value %v is not an opcode", err.Tape, err.Index, err.Value)
	case ConstraintBrackets:
		return fmt.Sprintf("%v tape cell @%v has no matching bracket", err.Tape, err.Index)
	}
	return fmt.Sprintf("%v tape cell @%v violates %v", err.Tape, err.Index, err.Constraint)
}

// CheckProgram validates a program tape without loading it.
func (m *Machine) CheckProgram(tape Tape) error {
	_, err := m.checkProgram(tape)
	return err
}

// CheckData validates a data tape without loading it.
func (m *Machine) CheckData(tape Tape) error {
	if uint(len(tape)) > m.capacity {
		return &LoadError{Tape: DataTape, Constraint: ConstraintCapacity, Index: len(tape), Limit: m.capacity}
	}
	for i, c := range tape {
		if c&^m.mask != 0 {
			return &LoadError{Tape: DataTape, Constraint: ConstraintWidth, Index: i, Value: c, Limit: m.width}
		}
	}
	return nil
}

// LoadProgram validates and commits the program tape. On error the machine
// is left without a program.
func (m *Machine) LoadProgram(tape Tape) error {
	if m.progLoaded {
		return ErrAlreadyLoaded
	}
	jumps, err := m.checkProgram(tape)
	if err != nil {
		return err
	}
	m.prog = make(Tape, len(tape))
	copy(m.prog, tape)
	m.jumps = jumps
	m.progLoaded = true
	m.logf("loaded %v program cells", len(tape))
	return nil
}

// LoadData validates and commits the initial data tape. On error the machine
// is left without data.
func (m *Machine) LoadData(tape Tape) error {
	if m.dataLoaded {
		return ErrAlreadyLoaded
	}
	if err := m.CheckData(tape); err != nil {
		return err
	}
	if err := m.data.Stor(0, tape...); err != nil {
		return err
	}
	m.dataLoaded = true
	m.logf("loaded %v data cells", len(tape))
	return nil
}

// checkProgram validates tape, returning its bracket jump table.
func (m *Machine) checkProgram(tape Tape) ([]uint, error) {
	if uint(len(tape)) > m.capacity {
		return nil, &LoadError{Tape: ProgramTape, Constraint: ConstraintCapacity, Index: len(tape), Limit: m.capacity}
	}
	jumps := make([]uint, len(tape))
	var open []int
	for i, c := range tape {
		if c >= Cell(opCount) {
			return nil, &LoadError{Tape: ProgramTape, Constraint: ConstraintOpcode, Index: i, Value: c}
		}
		switch opcode(c) {
		case opLoop:
			open = append(open, i)
		case opPool:
			j := len(open) - 1
			if j < 0 {
				return nil, &LoadError{Tape: ProgramTape, Constraint: ConstraintBrackets, Index: i, Value: c}
			}
			jumps[i], jumps[open[j]] = uint(open[j]), uint(i)
			open = open[:j]
		}
	}
	if j := len(open) - 1; j >= 0 {
		return nil, &LoadError{Tape: ProgramTape, Constraint: ConstraintBrackets, Index: open[j], Value: tape[open[j]]}
	}
	return jumps, nil
}
