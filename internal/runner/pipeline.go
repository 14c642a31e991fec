package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/joomcode/errorx"

	"github.com/jcorbin/sbrain/internal/sbrain"
)

// Stage is a point in the life of a Pipeline run.
type Stage uint8

// Pipeline stages, in the order they are reached.
const (
	Start Stage = iota
	InputsResolved
	Compiled
	Loaded
	Executed
	Rendered
	Done

	// Fatal is entered from any other stage on the first fault.
	Fatal
)

var stageNames = [...]string{
	Start:          "start",
	InputsResolved: "inputs resolved",
	Compiled:       "compiled",
	Loaded:         "loaded",
	Executed:       "executed",
	Rendered:       "rendered",
	Done:           "done",
	Fatal:          "fatal",
}

func (stage Stage) String() string {
	if int(stage) < len(stageNames) {
		return stageNames[stage]
	}
	return fmt.Sprintf("Stage(%d)", uint8(stage))
}

// Resolved is everything a front end gathers before compilation starts.
type Resolved struct {
	Name   string // names the source in compile faults
	Source string
	Input  Input
	Bound  sbrain.CycleBound

	Width    uint // cell width; 0 means sbrain.DefaultWidth
	Capacity uint // tape capacity; 0 means sbrain.DefaultCapacity
}

// Inputs is how a front end provides what a run needs, be that from flags and
// files or from a configuration document.
type Inputs interface {
	Resolve() (Resolved, error)
}

// InputsFunc adapts a function into Inputs.
type InputsFunc func() (Resolved, error)

// Resolve calls f.
func (f InputsFunc) Resolve() (Resolved, error) { return f() }

// StageProperty records, on a fault returned by Pipeline.Run, the stage that
// could not be reached.
var StageProperty = errorx.RegisterProperty("stage")

// StageOf returns the stage that a Pipeline.Run fault failed to reach.
func StageOf(err error) (Stage, bool) {
	v, ok := errorx.ExtractProperty(err, StageProperty)
	if !ok {
		return 0, false
	}
	stage, ok := v.(Stage)
	return stage, ok
}

// Pipeline is the sequence shared by every front end: resolve inputs, compile,
// load a fresh machine, execute, and render its output.
type Pipeline struct {
	Inputs Inputs
	Mode   Mode
	Log    *slog.Logger

	// Trace logs every executed instruction at debug level.
	Trace bool

	// MachineOptions are passed to every constructed machine, after any
	// width or capacity resolved from Inputs.
	MachineOptions []sbrain.Option

	// NewMachine constructs the machine; defaults to sbrain.New.
	NewMachine func(input sbrain.Tape, opts ...sbrain.Option) Machine

	stage Stage
}

// Stage returns the last stage reached.
func (p *Pipeline) Stage() Stage { return p.stage }

// Run drives the pipeline to Done, writing rendered output to out.
// Nothing is written to out unless execution completes, so a fault never
// leaves partial output behind. A pipeline may only be run once.
func (p *Pipeline) Run(ctx context.Context, out io.Writer) error {
	if p.stage != Start {
		return InternalFault.New("pipeline already run, stage is %v", p.stage)
	}
	log := p.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	res, err := p.resolve()
	if err != nil {
		return p.fail(ctx, log, InputsResolved, err)
	}
	p.advance(ctx, log, InputsResolved, "source", res.Name, "bound", res.Bound)

	tapes, err := Compile(res.Name, res.Source)
	if err != nil {
		return p.fail(ctx, log, Compiled, err)
	}
	p.advance(ctx, log, Compiled, "program", len(tapes.Program), "data", len(tapes.Data))

	m, err := p.construct(ctx, log, res)
	if err == nil {
		err = Load(m, tapes)
	}
	if err != nil {
		return p.fail(ctx, log, Loaded, err)
	}
	p.advance(ctx, log, Loaded)

	if err := (Supervisor{Log: log}).Run(ctx, m, res.Bound); err != nil {
		return p.fail(ctx, log, Executed, err)
	}
	p.advance(ctx, log, Executed)

	output := m.Output()
	if err := Render(out, output, p.Mode); err != nil {
		return p.fail(ctx, log, Rendered, err)
	}
	p.advance(ctx, log, Rendered, "mode", p.Mode, "cells", len(output))

	p.advance(ctx, log, Done)
	return nil
}

func (p *Pipeline) resolve() (Resolved, error) {
	if p.Inputs == nil {
		return Resolved{}, ConfigurationFault.New("no inputs given")
	}
	res, err := p.Inputs.Resolve()
	if err != nil {
		return Resolved{}, err
	}
	if res.Width == 0 {
		res.Width = sbrain.DefaultWidth
	} else if err := sbrain.CheckWidth(res.Width); err != nil {
		return Resolved{}, ConfigurationFault.Wrap(err, "bad cell width")
	}
	if res.Capacity == 0 {
		res.Capacity = sbrain.DefaultCapacity
	} else if err := sbrain.CheckCapacity(res.Capacity); err != nil {
		return Resolved{}, ConfigurationFault.Wrap(err, "bad capacity")
	}
	if res.Input == nil {
		res.Input = ValuesInput(nil)
	}
	return res, nil
}

func (p *Pipeline) construct(ctx context.Context, log *slog.Logger, res Resolved) (Machine, error) {
	input, err := res.Input.Cells(res.Width)
	if err != nil {
		return nil, err
	}

	opts := []sbrain.Option{
		sbrain.WithCellWidth(res.Width),
		sbrain.WithCapacity(res.Capacity),
	}
	if p.Trace {
		opts = append(opts, sbrain.WithLogf(func(mess string, args ...interface{}) {
			log.DebugContext(ctx, fmt.Sprintf(mess, args...))
		}))
	}
	opts = append(opts, p.MachineOptions...)

	newMachine := p.NewMachine
	if newMachine == nil {
		newMachine = func(input sbrain.Tape, opts ...sbrain.Option) Machine {
			return sbrain.New(input, opts...)
		}
	}
	return newMachine(input, opts...), nil
}

func (p *Pipeline) advance(ctx context.Context, log *slog.Logger, stage Stage, attrs ...any) {
	p.stage = stage
	log.DebugContext(ctx, "pipeline "+stage.String(), attrs...)
}

func (p *Pipeline) fail(ctx context.Context, log *slog.Logger, stage Stage, err error) error {
	p.stage = Fatal
	ex := errorx.Cast(err)
	if ex == nil {
		ex = InternalFault.Wrap(err, "unclassified failure")
	}
	ex = ex.WithProperty(StageProperty, stage)
	log.DebugContext(ctx, "pipeline failed", "stage", stage, "err", ex)
	return ex
}
