package runner_test

import (
	"log/slog"
	"testing"

	"github.com/jcorbin/sbrain/internal/logio"
	"github.com/jcorbin/sbrain/internal/logs"
	"github.com/jcorbin/sbrain/internal/sbrain"
)

func testLogger(t *testing.T) *slog.Logger {
	lw := logio.NewWriter(t.Logf)
	t.Cleanup(func() { lw.Close() })
	return logs.New(logs.Options{Output: lw, Verbose: true})
}

// fakeMachine stands in for *sbrain.Machine where a test needs the machine
// to misbehave.
type fakeMachine struct {
	checkErr error
	loadErr  error
	run      func(bound sbrain.CycleBound) error
	output   sbrain.Tape

	loads int
}

func (fm *fakeMachine) CheckProgram(sbrain.Tape) error { return fm.checkErr }
func (fm *fakeMachine) CheckData(sbrain.Tape) error    { return nil }
func (fm *fakeMachine) LoadProgram(sbrain.Tape) error  { fm.loads++; return fm.loadErr }
func (fm *fakeMachine) LoadData(sbrain.Tape) error     { fm.loads++; return fm.loadErr }
func (fm *fakeMachine) Output() sbrain.Tape            { return fm.output }
func (fm *fakeMachine) Data() sbrain.Tape              { return nil }
func (fm *fakeMachine) Cycles() uint64                 { return 0 }
func (fm *fakeMachine) Halted() bool                   { return false }

func (fm *fakeMachine) Run(bound sbrain.CycleBound) error {
	if fm.run != nil {
		return fm.run(bound)
	}
	return nil
}
