// Package mem provides sparse storage for machine tapes.
package mem

import "fmt"

// DefaultPageSize is used when Cells.PageSize is zero.
const DefaultPageSize = 256

// Cells is a sparse tape of 32-bit cells. Storage is allocated a page at a
// time on first store; cells never stored into read as zero.
type Cells struct {
	// PageSize is the length of every page; it may only be changed before
	// the first store.
	PageSize uint

	// Limit is the number of addressable cells; any load or store at or past
	// it is a LimitError. Zero means unlimited.
	Limit uint

	pages [][]uint32 // indexed by addr / PageSize, nil until stored into
	size  uint
}

// LimitError is returned by any access outside of a Cells' Limit.
type LimitError struct {
	Addr  uint
	Limit uint
	Op    string
}

func (lim LimitError) Error() string {
	return fmt.Sprintf("memory limit %v exceeded by %v @%v", lim.Limit, lim.Op, lim.Addr)
}

// Size returns one past the highest address ever stored into.
func (m *Cells) Size() uint { return m.size }

// Allocated returns how many pages hold storage.
func (m *Cells) Allocated() (n int) {
	for _, page := range m.pages {
		if page != nil {
			n++
		}
	}
	return n
}

// Load returns the cell at addr.
func (m *Cells) Load(addr uint) (uint32, error) {
	if err := m.check(addr, addr+1, "load"); err != nil {
		return 0, err
	}
	if page := m.page(addr); page != nil {
		return page[addr%m.pageSize()], nil
	}
	return 0, nil
}

// LoadInto fills buf with the cells starting at addr; nothing is read if any
// of them lies past Limit.
func (m *Cells) LoadInto(addr uint, buf []uint32) error {
	if err := m.check(addr, addr+uint(len(buf)), "load"); err != nil {
		return err
	}
	size := m.pageSize()
	for len(buf) > 0 {
		off := addr % size
		n := min(uint(len(buf)), size-off)
		if page := m.page(addr); page != nil {
			copy(buf[:n], page[off:])
		} else {
			clear(buf[:n])
		}
		buf = buf[n:]
		addr += n
	}
	return nil
}

// Stor stores values starting at addr; nothing is stored if any of them
// would lie past Limit.
func (m *Cells) Stor(addr uint, values ...uint32) error {
	end := addr + uint(len(values))
	if err := m.check(addr, end, "stor"); err != nil {
		return err
	}
	size := m.pageSize()
	for len(values) > 0 {
		i, off := addr/size, addr%size
		for uint(len(m.pages)) <= i {
			m.pages = append(m.pages, nil)
		}
		if m.pages[i] == nil {
			m.pages[i] = make([]uint32, size)
		}
		n := uint(copy(m.pages[i][off:], values))
		values = values[n:]
		addr += n
	}
	if end > m.size {
		m.size = end
	}
	return nil
}

func (m *Cells) pageSize() uint {
	if m.PageSize == 0 {
		m.PageSize = DefaultPageSize
	}
	return m.PageSize
}

func (m *Cells) page(addr uint) []uint32 {
	if i := addr / m.pageSize(); i < uint(len(m.pages)) {
		return m.pages[i]
	}
	return nil
}

// check validates the half open range [addr, end).
func (m *Cells) check(addr, end uint, op string) error {
	if lim := m.Limit; lim != 0 {
		if addr >= lim {
			return LimitError{addr, lim, op}
		}
		if end > lim {
			return LimitError{end - 1, lim, op}
		}
	}
	return nil
}
