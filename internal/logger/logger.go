// Package logger provides leveled console logging for entigraph.
// Debug, Info and Section output is only printed in verbose mode (--verbose);
// warnings and errors are always printed. Everything goes to stderr so that
// stdout stays reserved for command output.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level is the severity of a log line.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the tag printed in front of a line.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// timestampLayout is used when timestamps are enabled.
const timestampLayout = "15:04:05"

var (
	mu         sync.RWMutex
	verbose    bool
	timestamps bool
	output     io.Writer = os.Stderr

	// now is replaced in tests.
	now = time.Now
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetTimestamps prefixes every line with the wall-clock time. Long-running
// commands such as watch turn this on.
func SetTimestamps(on bool) {
	mu.Lock()
	defer mu.Unlock()
	timestamps = on
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// enabled reports whether lines at level l are printed (caller holds mu).
func enabled(l Level) bool {
	return verbose || l >= LevelWarn
}

// prefix returns the timestamp prefix, if any (caller holds mu).
func prefix() string {
	if !timestamps {
		return ""
	}
	return now().Format(timestampLayout) + " "
}

func logf(l Level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !enabled(l) {
		return
	}
	fmt.Fprintf(output, "%s[%s] %s\n", prefix(), l, fmt.Sprintf(format, args...))
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) { logf(LevelDebug, format, args...) }

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) { logf(LevelInfo, format, args...) }

// Warn prints a warning message.
func Warn(format string, args ...any) { logf(LevelWarn, format, args...) }

// Error prints an error message.
func Error(format string, args ...any) { logf(LevelError, format, args...) }

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if !enabled(LevelInfo) {
		return
	}
	fmt.Fprintf(output, "\n%s=== %s ===\n", prefix(), name)
}
