package runner_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/sbrain/internal/runner"
	"github.com/jcorbin/sbrain/internal/sbrain"
)

func TestRender(t *testing.T) {
	for _, tc := range []struct {
		name string
		tape sbrain.Tape
		mode runner.Mode
		out  string
	}{
		{name: "raw empty", tape: sbrain.Tape{}, mode: runner.Raw, out: "[]\n"},
		{name: "raw", tape: sbrain.Tape{1, 2, 3}, mode: runner.Raw, out: "[1, 2, 3]\n"},
		{name: "text empty", tape: nil, mode: runner.Text, out: "\n"},
		{name: "text", tape: sbrain.Tape{72, 105}, mode: runner.Text, out: "Hi\n"},
		{name: "text is lossy", tape: sbrain.Tape{72, 0xd800, 0x110000}, mode: runner.Text, out: "H��\n"},
		{name: "escaped", tape: sbrain.Tape{'a', 0, '\n', 0x7f, 'b'}, mode: runner.Escaped, out: "a<NUL>\n<DEL>b\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, runner.Render(&buf, tc.tape, tc.mode))
			assert.Equal(t, tc.out, buf.String())
		})
	}

	t.Run("invalid mode", func(t *testing.T) {
		var buf bytes.Buffer
		err := runner.Render(&buf, sbrain.Tape{1}, runner.Mode(9))
		assert.Equal(t, runner.InternalFault, runner.FaultOf(err))
		assert.Equal(t, 0, buf.Len())
	})

	t.Run("write failure", func(t *testing.T) {
		err := runner.Render(failWriter{}, sbrain.Tape{1}, runner.Raw)
		assert.Equal(t, runner.FileAccessFault, runner.FaultOf(err))
	})
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "raw", runner.Raw.String())
	assert.Equal(t, "text", runner.Text.String())
	assert.Equal(t, "escaped", runner.Escaped.String())
	assert.Equal(t, "Mode(9)", runner.Mode(9).String())
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }
