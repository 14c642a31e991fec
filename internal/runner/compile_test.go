package runner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/sbrain/internal/runner"
	"github.com/jcorbin/sbrain/internal/sbrain"
)

func TestCompile(t *testing.T) {
	tapes, err := runner.Compile("hi.sb", ".>.@ # 72 105")
	require.NoError(t, err)
	assert.Equal(t, sbrain.Tape{6, 1, 6, 31}, tapes.Program)
	assert.Equal(t, sbrain.Tape{72, 105}, tapes.Data)

	again, err := runner.Compile("hi.sb", ".>.@ # 72 105")
	require.NoError(t, err)
	assert.Equal(t, tapes, again, "compilation must be deterministic")

	_, err = runner.Compile("bad.sb", "+\n# 99999999999")
	require.Error(t, err)
	assert.Equal(t, runner.CompileFault, runner.FaultOf(err))
	ce, ok := runner.Cause[*sbrain.CompileError](err)
	require.True(t, ok, "expected a compile error cause")
	assert.Contains(t, ce.Pos, "bad.sb:2:3")
	assert.Contains(t, runner.Message(err), "couldn't compile bad.sb")
}
