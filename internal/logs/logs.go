// Package logs builds the operational slog.Logger used by the command line
// tools; it logs to a terminal stream and, when one is available, to the
// systemd journal. Services log only to the journal.
package logs

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

// Options configures New.
type Options struct {
	// Output receives text formatted records; defaults to os.Stderr.
	Output io.Writer

	// Verbose lowers the level from warn to debug.
	Verbose bool

	// Journal also sends records to the systemd journal, if it can be opened.
	Journal bool

	// Service drops the Output handler in favor of the journal, as a
	// service's stderr usually ends up there anyway. Output is still used if
	// the journal cannot be opened.
	Service bool
}

// Level returns the minimum level logged under opts.
func (opts Options) Level() slog.Level {
	if opts.Verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// JournalSocket is where the systemd journal accepts native protocol records.
const JournalSocket = "/run/systemd/journal/socket"

// JournalAvailable returns true if the systemd journal socket exists.
func JournalAvailable() bool {
	_, err := os.Stat(JournalSocket)
	return err == nil
}

var newJournalHandler = func(level slog.Leveler) (slog.Handler, error) {
	return slogjournal.NewHandler(&slogjournal.Options{
		Level:        level,
		ReplaceGroup: toJournalKey,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			a.Key = toJournalKey(a.Key)
			return a
		},
	})
}

// New creates a logger per opts; records go to every sink it could open.
func New(opts Options) *slog.Logger {
	level := new(slog.LevelVar)
	level.Set(opts.Level())

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	terminalHandler := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: level,
	})

	var handlers []slog.Handler
	if !opts.Service {
		handlers = append(handlers, terminalHandler)
	}

	if opts.Journal {
		journalHandler, err := newJournalHandler(level)
		if err != nil {
			record := slog.NewRecord(time.Now(), slog.LevelWarn, "new systemd journal handler", 0)
			record.Add("error", err)
			_ = terminalHandler.Handle(context.Background(), record)
		} else {
			handlers = append(handlers, journalHandler)
		}
	}

	if len(handlers) == 0 {
		handlers = append(handlers, terminalHandler)
	}

	return slog.New(&Handler{
		Handler: slogmulti.Fanout(handlers...),
	})
}

// IsSystemdService returns true if the process runs in a systemd service unit.
func IsSystemdService() bool {
	cgroupPath, err := getCgroupPath()
	return err == nil && strings.HasSuffix(path.Dir(cgroupPath), ".service")
}

func toJournalKey(str string) string {
	str = strings.ToUpper(str)
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' ||
			r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, str)
}

func getCgroupPath() (string, error) {
	content, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return "", err
	}
	parts := strings.Split(strings.TrimSpace(string(content)), ":")
	if len(parts) >= 3 {
		return parts[2], nil
	}
	return "", nil
}
