package runner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/sbrain/internal/runner"
	"github.com/jcorbin/sbrain/internal/sbrain"
)

func TestInput(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input runner.Input
		width uint
		tape  sbrain.Tape
		err   string
	}{
		{name: "no bytes", input: runner.BytesInput(nil), width: 8, tape: sbrain.Tape{}},
		{name: "bytes", input: runner.BytesInput("Hi\n"), width: 8, tape: sbrain.Tape{72, 105, 10}},
		{name: "high bytes", input: runner.BytesInput{0xff}, width: 32, tape: sbrain.Tape{255}},
		{
			name:  "bytes too wide",
			input: runner.BytesInput{1, 200},
			width: 7,
			err:   "input byte @1 value 200 does not fit in 7 bit cells",
		},
		{name: "values", input: runner.ValuesInput{0, 1, 4294967295}, width: 32, tape: sbrain.Tape{0, 1, 4294967295}},
		{
			name:  "value too wide",
			input: runner.ValuesInput{4294967296},
			width: 32,
			err:   "input value @0 value 4294967296 does not fit in 32 bit cells",
		},
		{
			name:  "value too wide for narrow cells",
			input: runner.ValuesInput{3, 16},
			width: 4,
			err:   "input value @1 value 16 does not fit in 4 bit cells",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			tape, err := tc.input.Cells(tc.width)
			if tc.err != "" {
				require.Error(t, err)
				assert.Equal(t, runner.ConfigurationFault, runner.FaultOf(err))
				assert.Equal(t, tc.err, runner.Message(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.tape, tape)
		})
	}
}
