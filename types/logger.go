package types

// Logger is the structured logger accepted by every affinity component.
//
// Methods take a message followed by alternating key-value pairs, the calling
// convention of zap.SugaredLogger and log/slog. Components default to a no-op
// logger; use affinity.NewSlogLogger to adapt a *slog.Logger.
type Logger interface {
	// Debug logs a message at DebugLevel.
	Debug(msg string, keysAndValues ...any)

	// Info logs a message at InfoLevel.
	Info(msg string, keysAndValues ...any)

	// Warn logs a message at WarnLevel.
	Warn(msg string, keysAndValues ...any)

	// Error logs a message at ErrorLevel.
	Error(msg string, keysAndValues ...any)

	// Fatal logs a message at FatalLevel and then terminates the process.
	Fatal(msg string, keysAndValues ...any)
}
