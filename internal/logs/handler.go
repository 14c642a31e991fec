package logs

import (
	"context"
	"log/slog"
)

type runKey struct{}

// WithRun returns a context whose log records are tagged with the given run
// name, typically the source or configuration file being run.
func WithRun(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, runKey{}, name)
}

// RunOf returns the run name set by WithRun.
func RunOf(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(runKey{}).(string)
	return name, ok
}

// Handler adds the run name from the record's context.
type Handler struct {
	slog.Handler
}

func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	if name, ok := RunOf(ctx); ok {
		record.Add("run", name)
	}
	return h.Handler.Handle(ctx, record)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{Handler: h.Handler.WithGroup(name)}
}
