package runner_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/sbrain/internal/logs"
	"github.com/jcorbin/sbrain/internal/runner"
	"github.com/jcorbin/sbrain/internal/sbrain"
)

type pipelineTestCase struct {
	name     string
	resolved runner.Resolved
	inputErr error
	mode     runner.Mode

	out   string
	fault *errorx.Type
	stage runner.Stage
	mess  string
}

func (tc pipelineTestCase) run(t *testing.T) {
	p := runner.Pipeline{
		Inputs: runner.InputsFunc(func() (runner.Resolved, error) {
			return tc.resolved, tc.inputErr
		}),
		Mode:  tc.mode,
		Log:   testLogger(t),
		Trace: true,
	}
	assert.Equal(t, runner.Start, p.Stage())

	var out bytes.Buffer
	err := p.Run(context.Background(), &out)
	if tc.fault == nil {
		require.NoError(t, err)
		assert.Equal(t, runner.Done, p.Stage())
		assert.Equal(t, tc.out, out.String())
		return
	}

	require.Error(t, err)
	assert.Equal(t, runner.Fatal, p.Stage())
	assert.Equal(t, tc.fault, runner.FaultOf(err))
	stage, ok := runner.StageOf(err)
	assert.True(t, ok, "expected fault to carry a stage")
	assert.Equal(t, tc.stage, stage)
	if tc.mess != "" {
		assert.Contains(t, runner.Message(err), tc.mess)
	}
	assert.Equal(t, "", out.String(), "expected no partial output")
}

func TestPipeline(t *testing.T) {
	for _, tc := range []pipelineTestCase{
		{
			name: "hello",
			resolved: runner.Resolved{
				Name:   "hello.sb",
				Source: ".>.@ # 72 105",
			},
			mode: runner.Text,
			out:  "Hi\n",
		},
		{
			name: "raw echo",
			resolved: runner.Resolved{
				Name:   "cat.sb",
				Source: ",[.,]",
				Input:  runner.BytesInput("ok"),
			},
			out: "[111, 107]\n",
		},
		{
			name: "values input",
			resolved: runner.Resolved{
				Name:   "cat.sb",
				Source: ",[.,]",
				Input:  runner.ValuesInput{1000, 2000},
			},
			out: "[1000, 2000]\n",
		},
		{
			name: "bounded",
			resolved: runner.Resolved{
				Name:   "forever.sb",
				Source: "+[.]",
				Bound:  sbrain.MaxCycles(7),
			},
			out: "[1, 1, 1]\n",
		},
		{
			name: "minimal program",
			resolved: runner.Resolved{
				Name:   "tiny.sb",
				Source: "><+",
				Bound:  sbrain.MaxCycles(10),
			},
			out: "[]\n",
		},
		{
			name: "escaped",
			resolved: runner.Resolved{
				Name:   "bell.sb",
				Source: ".>.@ # 7 10",
			},
			mode: runner.Escaped,
			out:  "<BEL>\n\n",
		},
		{
			name: "narrow cells",
			resolved: runner.Resolved{
				Name:   "wrap.sb",
				Source: "-.@",
				Width:  4,
			},
			out: "[15]\n",
		},

		{
			name:     "inputs fail",
			inputErr: runner.FileAccessFault.New("couldn't open nope.sb"),
			fault:    runner.FileAccessFault,
			stage:    runner.InputsResolved,
			mess:     "couldn't open nope.sb",
		},
		{
			name:     "unclassified inputs failure",
			inputErr: errors.New("mystery"),
			fault:    runner.InternalFault,
			stage:    runner.InputsResolved,
			mess:     "mystery",
		},
		{
			name: "bad width",
			resolved: runner.Resolved{
				Name:  "x.sb",
				Width: 64,
			},
			fault: runner.ConfigurationFault,
			stage: runner.InputsResolved,
			mess:  "invalid cell width 64",
		},
		{
			name: "compile",
			resolved: runner.Resolved{
				Name:   "bad.sb",
				Source: "+ # 1 # 2",
			},
			fault: runner.CompileFault,
			stage: runner.Compiled,
			mess:  "couldn't compile bad.sb",
		},
		{
			name: "input too wide",
			resolved: runner.Resolved{
				Name:   "x.sb",
				Source: ",.",
				Input:  runner.ValuesInput{256},
				Width:  8,
			},
			fault: runner.ConfigurationFault,
			stage: runner.Loaded,
		},
		{
			name: "load",
			resolved: runner.Resolved{
				Name:     "big.sb",
				Source:   "# 1 2 3",
				Capacity: 2,
			},
			fault: runner.LoadFault,
			stage: runner.Loaded,
			mess:  "data tape length 3 exceeds capacity 2",
		},
		{
			name: "unbalanced",
			resolved: runner.Resolved{
				Name:   "open.sb",
				Source: "+[.",
			},
			fault: runner.LoadFault,
			stage: runner.Loaded,
			mess:  "has no matching bracket",
		},
	} {
		t.Run(tc.name, tc.run)
	}
}

func TestPipeline_errors(t *testing.T) {
	ctx := context.Background()

	t.Run("no inputs", func(t *testing.T) {
		var p runner.Pipeline
		err := p.Run(ctx, nil)
		assert.Equal(t, runner.ConfigurationFault, runner.FaultOf(err))
	})

	t.Run("run twice", func(t *testing.T) {
		p := runner.Pipeline{Inputs: runner.InputsFunc(func() (runner.Resolved, error) {
			return runner.Resolved{Name: "x.sb", Source: "@"}, nil
		})}
		var out bytes.Buffer
		require.NoError(t, p.Run(ctx, &out))
		err := p.Run(ctx, &out)
		assert.Equal(t, runner.InternalFault, runner.FaultOf(err))
		assert.Equal(t, "[]\n", out.String())
	})

	t.Run("machine panic", func(t *testing.T) {
		p := runner.Pipeline{
			Inputs: runner.InputsFunc(func() (runner.Resolved, error) {
				return runner.Resolved{Name: "x.sb", Source: "+"}, nil
			}),
			Log: testLogger(t),
			NewMachine: func(sbrain.Tape, ...sbrain.Option) runner.Machine {
				return &fakeMachine{
					output: sbrain.Tape{1},
					run:    func(sbrain.CycleBound) error { panic("boom") },
				}
			},
		}
		var out bytes.Buffer
		err := p.Run(ctx, &out)
		assert.Equal(t, runner.InternalFault, runner.FaultOf(err))
		stage, _ := runner.StageOf(err)
		assert.Equal(t, runner.Executed, stage)
		assert.Equal(t, 0, out.Len())
	})

	t.Run("machine options", func(t *testing.T) {
		var gotInput sbrain.Tape
		p := runner.Pipeline{
			Inputs: runner.InputsFunc(func() (runner.Resolved, error) {
				return runner.Resolved{Name: "x.sb", Source: ",.", Input: runner.ValuesInput{9}}, nil
			}),
			MachineOptions: []sbrain.Option{sbrain.WithCellWidth(8)},
			NewMachine: func(input sbrain.Tape, opts ...sbrain.Option) runner.Machine {
				gotInput = input
				m := sbrain.New(input, opts...)
				assert.Equal(t, uint(8), m.Width(), "later options must win")
				return m
			},
		}
		var out bytes.Buffer
		require.NoError(t, p.Run(ctx, &out))
		assert.Equal(t, sbrain.Tape{9}, gotInput)
		assert.Equal(t, "[9]\n", out.String())
	})
}

func TestPipeline_trace(t *testing.T) {
	var buf bytes.Buffer
	p := runner.Pipeline{
		Inputs: runner.InputsFunc(func() (runner.Resolved, error) {
			return runner.Resolved{Name: "trace.sb", Source: "+.@"}, nil
		}),
		Log:   logs.New(logs.Options{Output: &buf, Verbose: true}),
		Trace: true,
	}
	var out bytes.Buffer
	require.NoError(t, p.Run(logs.WithRun(context.Background(), "trace.sb"), &out))

	var traced int
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.Contains(t, line, "run=trace.sb", "every record must carry the run name")
		if strings.Contains(line, `msg="exec @`) {
			traced++
		}
	}
	assert.Equal(t, 3, traced, "expected one trace record per instruction")
}

func TestStage_String(t *testing.T) {
	assert.Equal(t, "inputs resolved", runner.InputsResolved.String())
	assert.Equal(t, "fatal", runner.Fatal.String())
	assert.Equal(t, "Stage(42)", runner.Stage(42).String())
}
