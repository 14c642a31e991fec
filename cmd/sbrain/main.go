// Command sbrain compiles and runs an SBrain source file, printing the
// machine's output tape.
package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jcorbin/sbrain/internal/logio"
	"github.com/jcorbin/sbrain/internal/logs"
	"github.com/jcorbin/sbrain/internal/runner"
	"github.com/jcorbin/sbrain/internal/sbrain"
)

var version = "dev"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

type flags struct {
	input    string
	cycles   uint64
	bytes    bool
	escape   bool
	verbose  bool
	trace    bool
	width    uint
	capacity uint
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	diag := logio.NewLogger(stdout)
	if args == nil {
		args = []string{}
	}
	cmd := newCommand(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		diag.Fatalf("%v", runner.Message(err))
	}
	return diag.ExitCode()
}

func newCommand(stdout, stderr io.Writer) *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "sbrain [SOURCE]",
		Short: "Run an SBrain program",
		Long: `Sbrain compiles SOURCE into program and data tapes, runs them on a fresh
machine, and prints the output tape as text, or as a numeric listing with -b.

Input cells are read, one byte each, from the file given with -i. Without -c
the machine runs until it halts.`,
		Version:       version,
		Args:          configurationArgs(cobra.MaximumNArgs(1)),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runner.ConfigurationFault.New("no source file given")
			}
			if err := sbrain.CheckWidth(f.width); err != nil {
				return runner.ConfigurationFault.Wrap(err, "bad --cell-width")
			}
			if err := sbrain.CheckCapacity(f.capacity); err != nil {
				return runner.ConfigurationFault.Wrap(err, "bad --capacity")
			}
			in := fileInputs{
				source:   args[0],
				input:    f.input,
				width:    f.width,
				capacity: f.capacity,
			}
			if cmd.Flags().Changed("cycles") {
				in.bound = sbrain.MaxCycles(f.cycles)
			}
			return f.pipeline(in, stderr).Run(logs.WithRun(cmd.Context(), in.source), cmd.OutOrStdout())
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return runner.ConfigurationFault.Wrap(err, "bad arguments")
	})

	fs := cmd.Flags()
	fs.StringVarP(&f.input, "input", "i", "", "read input bytes from `FILE`")
	fs.Uint64VarP(&f.cycles, "cycles", "c", 0, "stop after `N` cycles")
	fs.BoolVarP(&f.bytes, "bytes-output", "b", false, "print output cells as numbers rather than text")
	fs.BoolVar(&f.escape, "escape", false, "name control characters in text output")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log pipeline progress")
	fs.BoolVar(&f.trace, "trace", false, "log every executed instruction; implies -v")
	fs.UintVar(&f.width, "cell-width", sbrain.DefaultWidth, "cell width in `BITS`")
	fs.UintVar(&f.capacity, "capacity", sbrain.DefaultCapacity, "maximum tape length in `CELLS`")
	return cmd
}

func configurationArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return runner.ConfigurationFault.Wrap(err, "usage: %v", cmd.UseLine())
		}
		return nil
	}
}

func (f flags) pipeline(in runner.Inputs, stderr io.Writer) *runner.Pipeline {
	mode := runner.Text
	if f.bytes {
		mode = runner.Raw
	} else if f.escape {
		mode = runner.Escaped
	}
	return &runner.Pipeline{
		Inputs: in,
		Mode:   mode,
		Trace:  f.trace,
		Log: logs.New(logs.Options{
			Output:  stderr,
			Verbose: f.verbose || f.trace,
			Journal: logs.JournalAvailable(),
			Service: logs.IsSystemdService(),
		}),
	}
}

// fileInputs resolves a run from a source file and an optional input file.
type fileInputs struct {
	source   string
	input    string
	bound    sbrain.CycleBound
	width    uint
	capacity uint
}

func (in fileInputs) Resolve() (runner.Resolved, error) {
	src, err := os.ReadFile(in.source)
	if err != nil {
		return runner.Resolved{}, runner.FileAccessFault.Wrap(err, "couldn't open %v", in.source)
	}
	var input []byte
	if in.input != "" {
		if input, err = os.ReadFile(in.input); err != nil {
			return runner.Resolved{}, runner.FileAccessFault.Wrap(err, "couldn't open %v", in.input)
		}
	}
	return runner.Resolved{
		Name:     in.source,
		Source:   string(src),
		Input:    runner.BytesInput(input),
		Bound:    in.bound,
		Width:    in.width,
		Capacity: in.capacity,
	}, nil
}
