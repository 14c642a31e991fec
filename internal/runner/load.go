package runner

import "github.com/jcorbin/sbrain/internal/sbrain"

// Machine is the part of *sbrain.Machine that a run is orchestrated through.
type Machine interface {
	CheckProgram(tape sbrain.Tape) error
	CheckData(tape sbrain.Tape) error
	LoadProgram(tape sbrain.Tape) error
	LoadData(tape sbrain.Tape) error
	Run(bound sbrain.CycleBound) error
	Output() sbrain.Tape
	Data() sbrain.Tape
	Cycles() uint64
	Halted() bool
}

var _ Machine = (*sbrain.Machine)(nil)

// Load commits both tapes into m. Both are validated before either is
// loaded, so on error m is left unloaded rather than half loaded.
func Load(m Machine, tapes Tapes) error {
	if err := m.CheckProgram(tapes.Program); err != nil {
		return LoadFault.Wrap(err, "couldn't load program tape")
	}
	if err := m.CheckData(tapes.Data); err != nil {
		return LoadFault.Wrap(err, "couldn't load data tape")
	}
	if err := m.LoadProgram(tapes.Program); err != nil {
		return LoadFault.Wrap(err, "couldn't load program tape")
	}
	if err := m.LoadData(tapes.Data); err != nil {
		return LoadFault.Wrap(err, "couldn't load data tape")
	}
	return nil
}
