package runner

import (
	"context"
	"log/slog"

	"github.com/jcorbin/sbrain/internal/panicerr"
	"github.com/jcorbin/sbrain/internal/sbrain"
)

// Supervisor runs a loaded machine, isolating the caller from any panic.
type Supervisor struct {
	Log *slog.Logger
}

// Run executes m under bound. Lifecycle errors and recovered panics are
// returned as InternalFault; hitting the bound is not an error.
func (sup Supervisor) Run(ctx context.Context, m Machine, bound sbrain.CycleBound) error {
	log := sup.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	log.DebugContext(ctx, "run machine", "bound", bound)
	var runErr error
	if err := panicerr.Guard("machine", func() {
		runErr = m.Run(bound)
	}); err != nil {
		log.ErrorContext(ctx, "machine crashed", "err", err, "stack", panicerr.PanicStack(err))
		return InternalFault.Wrap(err, "machine crashed")
	}
	if runErr != nil {
		return InternalFault.Wrap(runErr, "couldn't run machine")
	}
	if log.Enabled(ctx, slog.LevelDebug) {
		data := m.Data()
		log.DebugContext(ctx, "machine stopped",
			"cycles", m.Cycles(),
			"halted", m.Halted(),
			"output", len(m.Output()),
			"data", dataPreview(data),
			"data_len", len(data))
	}
	return nil
}

// dataPreviewCells is how much of the data tape is logged after a run.
const dataPreviewCells = 16

func dataPreview(data sbrain.Tape) string {
	if len(data) <= dataPreviewCells {
		return data.String()
	}
	s := data[:dataPreviewCells].String()
	return s[:len(s)-1] + ", ...]"
}
