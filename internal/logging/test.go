package logging

import (
	"fmt"
	"strings"
	"testing"

	"github.com/arloliu/affinity/types"
)

// TestLogger implements types.Logger using testing.T for output.
// This ensures log messages appear next to the failing test.
type TestLogger struct {
	t      testing.TB
	prefix string
}

var (
	_ types.Logger = (*TestLogger)(nil)
	_ Namer        = (*TestLogger)(nil)
)

// NewTest creates a new test logger that writes to t.
//
// Parameters:
//   - t: The test or benchmark to write logs to
//
// Returns:
//   - *TestLogger: A new logger instance that uses t.Logf()
func NewTest(t testing.TB) *TestLogger {
	return &TestLogger{t: t}
}

// Named returns a logger prefixing every message with [name].
func (l *TestLogger) Named(name string) types.Logger {
	return &TestLogger{t: l.t, prefix: l.prefix + "[" + name + "] "}
}

// Debug logs a debug-level message with optional key-value pairs.
func (l *TestLogger) Debug(msg string, keysAndValues ...any) {
	l.t.Helper()
	l.t.Logf("DEBUG: %s%s %s", l.prefix, msg, formatKeyValues(keysAndValues))
}

// Info logs an info-level message with optional key-value pairs.
func (l *TestLogger) Info(msg string, keysAndValues ...any) {
	l.t.Helper()
	l.t.Logf("INFO: %s%s %s", l.prefix, msg, formatKeyValues(keysAndValues))
}

// Warn logs a warning-level message with optional key-value pairs.
func (l *TestLogger) Warn(msg string, keysAndValues ...any) {
	l.t.Helper()
	l.t.Logf("WARN: %s%s %s", l.prefix, msg, formatKeyValues(keysAndValues))
}

// Error logs an error-level message with optional key-value pairs.
func (l *TestLogger) Error(msg string, keysAndValues ...any) {
	l.t.Helper()
	l.t.Logf("ERROR: %s%s %s", l.prefix, msg, formatKeyValues(keysAndValues))
}

// Fatal logs a fatal-level message and fails the test.
func (l *TestLogger) Fatal(msg string, keysAndValues ...any) {
	l.t.Helper()
	l.t.Fatalf("FATAL: %s%s %s", l.prefix, msg, formatKeyValues(keysAndValues))
}

func formatKeyValues(keysAndValues []any) string {
	if len(keysAndValues) == 0 {
		return ""
	}

	var sb strings.Builder
	for i := 0; i < len(keysAndValues); i += 2 {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if i+1 < len(keysAndValues) {
			fmt.Fprintf(&sb, "%v=%v", keysAndValues[i], keysAndValues[i+1])
		} else {
			fmt.Fprintf(&sb, "%v=<missing>", keysAndValues[i])
		}
	}

	return sb.String()
}
