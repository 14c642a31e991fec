package logio

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Logger reports fatal diagnostics on an output stream, and tracks the exit
// code that the process should end with.
type Logger struct {
	sync.Mutex
	output   io.Writer
	exitCode int
}

// NewLogger creates a logger writing to out.
func NewLogger(out io.Writer) *Logger {
	return &Logger{output: out}
}

// ExitCode returns a code to pass to os.Exit: 0 until Fatalf is called, 1
// after, or 2 if a fatal line could not even be written.
func (log *Logger) ExitCode() int {
	log.Lock()
	defer log.Unlock()
	return log.exitCode
}

// Fatalf writes a single "FATAL: message" line. It does not exit the process;
// that decision is left to whoever calls ExitCode.
func (log *Logger) Fatalf(mess string, args ...interface{}) {
	log.Lock()
	defer log.Unlock()
	if log.exitCode == 0 {
		log.exitCode = 1
	}
	if log.output == nil {
		return
	}
	line := fmt.Sprintf(mess, args...)
	line = "FATAL: " + strings.TrimRight(line, "\n") + "\n"
	if _, err := io.WriteString(log.output, line); err != nil {
		log.exitCode = 2
	}
}
