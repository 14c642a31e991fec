package sbrain

// Option customizes a Machine under construction.
type Option interface{ apply(m *Machine) }

// Options combines any number of options into one; nil options are ignored.
func Options(opts ...Option) Option {
	var all options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case options:
			all = append(all, impl...)
		default:
			all = append(all, opt)
		}
	}
	return all
}

// WithCellWidth sets the cell width in bits; it panics unless CheckWidth
// accepts the width.
func WithCellWidth(bits uint) Option {
	if err := CheckWidth(bits); err != nil {
		panic(err)
	}
	return widthOption(bits)
}

// WithCapacity sets the maximum length of the program, data and stack tapes;
// it panics unless CheckCapacity accepts n.
func WithCapacity(n uint) Option {
	if err := CheckCapacity(n); err != nil {
		panic(err)
	}
	return capacityOption(n)
}

// WithLogf enables a trace of every executed instruction.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return logfnOption(logfn) }

var defaults = options{
	widthOption(DefaultWidth),
	capacityOption(DefaultCapacity),
}

func (m *Machine) apply(opts ...Option) {
	defaults.apply(m)
	Options(opts...).apply(m)
}

type options []Option
type widthOption uint
type capacityOption uint
type logfnOption func(mess string, args ...interface{})

func (opts options) apply(m *Machine) {
	for _, opt := range opts {
		opt.apply(m)
	}
}

func (bits widthOption) apply(m *Machine)  { m.width = uint(bits) }
func (n capacityOption) apply(m *Machine)  { m.capacity = uint(n) }
func (logfn logfnOption) apply(m *Machine) { m.logfn = logfn }
