package sbrain

import "fmt"

type opcode uint8

const (
	opLeft opcode = iota
	opRight
	opDec
	opInc
	opLoop
	opPool
	opOut
	opIn
	opPush
	opPop
	opPushReg
	opPopReg
	opZero
	opStore
	opFetch
	opSwap
	opOr
	opAnd
	opXor
	opNot
	opAdd
	opSub
	opMul
	opDiv
	opMod
	opShl
	opShr
	opEq
	opGt
	opJump
	opJumpIf
	opHalt

	opCount
)

// opSymbols maps opcodes to their source symbol.
const opSymbols = "<>-+[].,{}()z!?s|&*~adm/%lr=gjJ@"

func (op opcode) String() string {
	if op < opCount {
		return opSymbols[op : op+1]
	}
	return fmt.Sprintf("opcode(%d)", uint8(op))
}

// CycleBound limits how many instructions a run may execute.
// The zero value is unbounded.
type CycleBound struct {
	n       uint64
	bounded bool
}

// MaxCycles returns a bound of n cycles.
func MaxCycles(n uint64) CycleBound { return CycleBound{n, true} }

// Limit returns the bound, and whether there is one.
func (b CycleBound) Limit() (n uint64, ok bool) { return b.n, b.bounded }

func (b CycleBound) String() string {
	if !b.bounded {
		return "unbounded"
	}
	return fmt.Sprintf("%v cycles", b.n)
}

// Run executes the loaded program until it halts or the bound is reached,
// whichever comes first. A machine may only be run once; errors are only
// returned for running an unloaded machine, or running it again.
func (m *Machine) Run(bound CycleBound) error {
	if !m.Loaded() {
		return ErrNotLoaded
	}
	if m.ran {
		return ErrAlreadyRun
	}
	m.ran = true

	limit, bounded := bound.Limit()
	for !m.halted {
		if bounded && m.cycles >= limit {
			m.logf("stop after %v cycles", m.cycles)
			return nil
		}
		m.step()
	}
	m.logf("halt after %v cycles", m.cycles)
	return nil
}

func (m *Machine) step() {
	if m.pc >= uint(len(m.prog)) {
		m.halted = true
		return
	}

	at := m.pc
	op := opcode(m.prog[at])
	m.pc++
	m.cycles++
	if m.logfn != nil {
		c := m.cell()
		m.logf("exec @%v %v -- ptr:%v c:%v r:%v s:%v", at, op, m.ptr, c, m.reg, m.stack)
	}

	switch op {
	case opLeft:
		if m.ptr == 0 {
			m.ptr = m.capacity
		}
		m.ptr--
	case opRight:
		if m.ptr++; m.ptr >= m.capacity {
			m.ptr = 0
		}
	case opDec:
		m.setCell(m.cell() - 1)
	case opInc:
		m.setCell(m.cell() + 1)
	case opLoop:
		if m.cell() == 0 {
			m.pc = m.jumps[at] + 1
		}
	case opPool:
		if m.cell() != 0 {
			m.pc = m.jumps[at] + 1
		}
	case opOut:
		m.output = append(m.output, m.cell())
	case opIn:
		var c Cell
		if len(m.input) > 0 {
			c, m.input = m.input[0], m.input[1:]
		}
		m.setCell(c)
	case opPush:
		m.push(m.cell())
	case opPop:
		m.setCell(m.pop())
	case opPushReg:
		m.push(m.reg)
	case opPopReg:
		m.setReg(m.pop())
	case opZero:
		m.reg = 0
	case opStore:
		m.reg = m.cell()
	case opFetch:
		m.setCell(m.reg)
	case opSwap:
		c := m.cell()
		m.setCell(m.reg)
		m.reg = c
	case opOr:
		m.reg |= m.cell()
	case opAnd:
		m.reg &= m.cell()
	case opXor:
		m.reg ^= m.cell()
	case opNot:
		m.setReg(^m.cell())
	case opAdd:
		m.setReg(m.cell() + m.reg)
	case opSub:
		m.setReg(m.cell() - m.reg)
	case opMul:
		m.setReg(m.cell() * m.reg)
	case opDiv:
		if m.reg != 0 {
			m.reg = m.cell() / m.reg
		}
	case opMod:
		if m.reg != 0 {
			m.reg = m.cell() % m.reg
		}
	case opShl:
		if uint(m.reg) >= m.width {
			m.reg = 0
		} else {
			m.setReg(m.cell() << m.reg)
		}
	case opShr:
		if uint(m.reg) >= m.width {
			m.reg = 0
		} else {
			m.reg = m.cell() >> m.reg
		}
	case opEq:
		m.reg = boolCell(m.cell() == m.reg)
	case opGt:
		m.reg = boolCell(m.cell() > m.reg)
	case opJump:
		m.jump(m.cell())
	case opJumpIf:
		if m.reg != 0 {
			m.jump(m.cell())
		}
	case opHalt:
		m.halted = true
	default:
		// checkProgram rejects these before any run
		panic(fmt.Errorf("invalid opcode %v @%v", uint8(op), at))
	}
}

func (m *Machine) cell() Cell {
	c, err := m.data.Load(m.ptr)
	if err != nil {
		panic(err)
	}
	return c
}

func (m *Machine) setCell(c Cell) {
	if err := m.data.Stor(m.ptr, c&m.mask); err != nil {
		panic(err)
	}
}

func (m *Machine) setReg(c Cell) { m.reg = c & m.mask }

func (m *Machine) push(c Cell) {
	if uint(len(m.stack)) < m.capacity {
		m.stack = append(m.stack, c)
	}
}

func (m *Machine) pop() (c Cell) {
	if i := len(m.stack) - 1; i >= 0 {
		c, m.stack = m.stack[i], m.stack[:i]
	}
	return c
}

func (m *Machine) jump(addr Cell) {
	m.pc = uint(addr)
	if m.pc >= uint(len(m.prog)) {
		m.halted = true
	}
}

func boolCell(b bool) Cell {
	if b {
		return 1
	}
	return 0
}
