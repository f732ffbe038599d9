// Package logging provides the types.Logger implementations used across affinity.
package logging

import (
	"context"
	"log/slog"
	"os"

	"github.com/arloliu/affinity/types"
)

// exit terminates the process after a Fatal message. Replaced in tests.
var exit = os.Exit

// SlogLogger implements types.Logger on top of a log/slog logger.
type SlogLogger struct {
	logger *slog.Logger
}

var (
	_ types.Logger = (*SlogLogger)(nil)
	_ Namer        = (*SlogLogger)(nil)
)

// NewSlog wraps a slog logger.
//
// Parameters:
//   - logger: Underlying slog logger (slog.Default() if nil)
//
// Returns:
//   - *SlogLogger: Logger writing through logger's handler
//
// Example:
//
//	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
//	placement, err := affinity.New(ctx, &cfg, src, affinity.WithLogger(affinity.NewSlogLogger(slog.New(handler))))
func NewSlog(logger *slog.Logger) *SlogLogger {
	if logger == nil {
		logger = slog.Default()
	}

	return &SlogLogger{logger: logger}
}

// NewSlogDefault wraps the process-wide slog.Default() logger.
func NewSlogDefault() *SlogLogger {
	return NewSlog(nil)
}

// With returns a logger that adds keysAndValues to every message.
func (l *SlogLogger) With(keysAndValues ...any) *SlogLogger {
	return &SlogLogger{logger: l.logger.With(keysAndValues...)}
}

// Named returns a logger tagging every message with component=name.
func (l *SlogLogger) Named(name string) types.Logger {
	return l.With("component", name)
}

// Debug logs at slog.LevelDebug.
func (l *SlogLogger) Debug(msg string, keysAndValues ...any) {
	l.log(slog.LevelDebug, msg, keysAndValues)
}

// Info logs at slog.LevelInfo.
func (l *SlogLogger) Info(msg string, keysAndValues ...any) {
	l.log(slog.LevelInfo, msg, keysAndValues)
}

// Warn logs at slog.LevelWarn.
func (l *SlogLogger) Warn(msg string, keysAndValues ...any) {
	l.log(slog.LevelWarn, msg, keysAndValues)
}

// Error logs at slog.LevelError.
func (l *SlogLogger) Error(msg string, keysAndValues ...any) {
	l.log(slog.LevelError, msg, keysAndValues)
}

// Fatal logs at slog.LevelError with fatal=true, then exits with status 1.
func (l *SlogLogger) Fatal(msg string, keysAndValues ...any) {
	l.log(slog.LevelError, msg, append(keysAndValues, "fatal", true))
	exit(1)
}

func (l *SlogLogger) log(level slog.Level, msg string, keysAndValues []any) {
	ctx := context.Background()
	if !l.logger.Enabled(ctx, level) {
		return
	}
	l.logger.Log(ctx, level, msg, keysAndValues...)
}
