// Command sbrain-config runs the SBrain program described by a configuration
// document, printing the machine's output tape as a numeric listing.
package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jcorbin/sbrain/internal/config"
	"github.com/jcorbin/sbrain/internal/logio"
	"github.com/jcorbin/sbrain/internal/logs"
	"github.com/jcorbin/sbrain/internal/runner"
)

var version = "dev"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
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
	var verbose bool
	cmd := &cobra.Command{
		Use:   "sbrain-config CONFIG_FILE",
		Short: "Run the SBrain program described by a configuration file",
		Long: `Sbrain-config loads CONFIG_FILE, a TOML, YAML, JSON or CUE document with
these fields:

  source       program source text (required)
  input        list of input cell values
  max_runtime  cycle cap; without it the machine runs until it halts
  cell_width   cell width in bits, 1 to 32
  capacity     maximum tape length

The format is chosen by file extension, defaulting to CUE (which includes JSON).`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return runner.ConfigurationFault.Wrap(err, "usage: %v", cmd.UseLine())
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p := runner.Pipeline{
				Inputs: config.File(args[0]),
				Mode:   runner.Raw,
				Log: logs.New(logs.Options{
					Output:  stderr,
					Verbose: verbose,
					Journal: logs.JournalAvailable(),
					Service: logs.IsSystemdService(),
				}),
			}
			return p.Run(logs.WithRun(cmd.Context(), args[0]), cmd.OutOrStdout())
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return runner.ConfigurationFault.Wrap(err, "bad arguments")
	})
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline progress")
	return cmd
}
